package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/spf13/cobra"
)

var rankCmd = &cobra.Command{
	Use:   "rank <resume>...",
	Short: "Rank several resumes against one job description",
	Long:  "Order resumes by TF-IDF similarity to a job description. Nothing is saved to history.",
	Example: `  resumatch rank cv-a.pdf cv-b.docx cv-c.txt --jd posting.txt
  resumatch rank candidates/*.pdf --jd-url https://company.com/jobs/123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return app.ErrNoResumes
		}

		jdText, err := readJobDescription(ctx, cmd, application)
		if err != nil {
			return err
		}

		rankings, err := application.Analyzer.Rank(ctx, args, jdText)
		if err != nil {
			return err
		}

		cmd.Println(titleStyle.Render("Resume Ranking"))
		for i, r := range rankings {
			name := filepath.Base(r.File)
			if r.Err != nil {
				cmd.Printf("%s %s %s\n", labelStyle.Render(fmt.Sprintf("%d.", i+1)), name, badStyle.Render("(unreadable: "+r.Err.Error()+")"))
				continue
			}
			cmd.Printf("%s %s\n", labelStyle.Render(fmt.Sprintf("%d.", i+1)), name)
			cmd.Printf("   %s %.3f   %s %d%%\n",
				labelStyle.Render("Similarity:"), r.Similarity,
				labelStyle.Render("Keyword Match:"), r.MatchPercent)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)
	addJobDescriptionFlags(rankCmd)
}
