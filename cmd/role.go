package cmd

import (
	"strings"

	"github.com/khrees2412/resumatch/internal/matcher"
	"github.com/spf13/cobra"
)

var roleCmd = &cobra.Command{
	Use:   "role",
	Short: "Find the best-fit job role for a resume",
	Long:  "Score a resume against every role in the catalog and show which skills it has and lacks for each",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		path, _ := cmd.Flags().GetString("resume")
		text, err := readResume(cmd, path)
		if err != nil {
			return err
		}

		best, scores := matcher.BestRole(text, application.Catalog.Roles)
		cmd.Println(titleStyle.Render("Best-Fit Role: " + best))

		width := 0
		for _, rs := range scores {
			width = max(width, len(rs.Role))
		}
		for _, rs := range scores {
			cmd.Println(percentLine(rs.Role, width, rs.Score))
			if len(rs.Talent) > 0 {
				cmd.Printf("    %s %s\n", goodStyle.Render("has:"), strings.Join(rs.Talent, ", "))
			}
			if len(rs.Lack) > 0 {
				cmd.Printf("    %s %s\n", badStyle.Render("lacks:"), strings.Join(rs.Lack, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roleCmd)
	roleCmd.Flags().String("resume", "", "Resume file (.txt, .pdf, .docx)")
	roleCmd.MarkFlagRequired("resume")
}
