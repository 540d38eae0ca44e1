package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/khrees2412/resumatch/internal/matcher"
	"github.com/khrees2412/resumatch/pkg/models"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long:  "Score a resume against a job description and save the result to your history",
	Example: `  resumatch analyze --user alice --resume cv.pdf --jd posting.txt
  resumatch analyze --user alice --resume cv.docx --jd-text "Looking for a Python developer..."
  resumatch analyze --user alice --resume cv.pdf --jd-url https://company.com/jobs/123 --browser`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		user, err := currentUser(ctx, cmd, application)
		if err != nil {
			return err
		}

		resumePath, _ := cmd.Flags().GetString("resume")
		resumeText, err := readResume(cmd, resumePath)
		if err != nil {
			return err
		}
		jdText, err := readJobDescription(ctx, cmd, application)
		if err != nil {
			return err
		}

		report, saveErr := application.Analyzer.Analyze(ctx, user.Username, resumeText, jdText)
		if report == nil {
			return saveErr
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			renderReport(cmd.OutOrStdout(), report)
		}

		if saveErr != nil {
			return fmt.Errorf("analysis shown but not saved to history: %w", saveErr)
		}
		return nil
	},
}

// renderReport prints a report the way `analyze` shows it
func renderReport(w io.Writer, r *models.Report) {
	fmt.Fprintln(w, titleStyle.Render("Resume Analysis"))

	decision := badStyle.Render(r.Match.Decision)
	if r.Match.Decision == matcher.DecisionGood {
		decision = goodStyle.Render(r.Match.Decision)
	}
	fmt.Fprintf(w, "%s %d%% %s\n", labelStyle.Render("JD Match:"), r.Match.MatchPercent, decision)
	fmt.Fprintf(w, "%s %s %s\n", labelStyle.Render("ATS Score:"),
		scoreStyle(r.ATSScore).Render(fmt.Sprintf("%d/100", r.ATSScore)), valueStyle.Render("("+r.Verdict+")"))
	fmt.Fprintf(w, "%s %d%%\n", labelStyle.Render("Keyword Coverage:"), r.TextScore)
	if r.BestRole != "" {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Best-Fit Role:"), r.BestRole)
	}

	fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Skill Match"))
	if len(r.SkillTable) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  The job description has no keywords to compare."))
	}
	for _, row := range r.SkillTable {
		if row.InResume {
			fmt.Fprintf(w, "  %s %s\n", goodStyle.Render("✓"), titleCase(row.Skill))
		} else {
			fmt.Fprintf(w, "  %s %s\n", badStyle.Render("✗"), titleCase(row.Skill))
		}
	}

	if len(r.RoleScores) > 0 {
		fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Role Fit"))
		width := 0
		for _, rs := range r.RoleScores {
			width = max(width, len(rs.Role))
		}
		for _, rs := range r.RoleScores {
			fmt.Fprintln(w, percentLine(rs.Role, width, rs.Score))
		}
	}

	if len(r.Suggestions) > 0 {
		fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Jobs Worth a Look"))
		fmt.Fprintf(w, "  %s\n", strings.Join(r.Suggestions, ", "))
	}

	fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Tips"))
	for _, tip := range r.Tips {
		fmt.Fprintf(w, "  • %s\n", tip)
	}
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().String("resume", "", "Resume file (.txt, .pdf, .docx)")
	analyzeCmd.Flags().Bool("json", false, "Print the report as JSON")
	analyzeCmd.MarkFlagRequired("resume")
	addJobDescriptionFlags(analyzeCmd)
}
