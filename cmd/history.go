package cmd

import (
	"fmt"
	"io"

	"github.com/khrees2412/resumatch/pkg/models"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View your analysis history and progress",
	Long:  "Display your dashboard: total analyses, average job description match and the match trend over time",
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

		records, err := application.Store.History(ctx, user.Username)
		if err != nil {
			return fmt.Errorf("fetch history: %w", err)
		}
		if len(records) == 0 {
			cmd.Println("No analyses yet. Run one with 'resumatch analyze --resume FILE --jd FILE'")
			return nil
		}

		stats, err := application.Store.UserStats(ctx, user.Username)
		if err != nil {
			return fmt.Errorf("fetch stats: %w", err)
		}

		renderDashboard(cmd.OutOrStdout(), user.Username, stats, records)
		return nil
	},
}

// renderDashboard prints the per-user overview and match trend
func renderDashboard(w io.Writer, username string, stats models.UserStats, records []*models.AnalysisRecord) {
	fmt.Fprintln(w, titleStyle.Render("Dashboard: "+username))

	fmt.Fprintf(w, "%s\n", labelStyle.Render("Overview"))
	fmt.Fprintf(w, "  Total Analyses: %d\n", stats.Total)
	fmt.Fprintf(w, "  Average JD Match: %s\n", scoreStyle(stats.AverageMatch).Render(fmt.Sprintf("%d%%", stats.AverageMatch)))

	fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Match vs Gap"))
	fmt.Fprintln(w, percentLine("Match", 5, stats.AverageMatch))
	fmt.Fprintln(w, percentLine("Gap", 5, stats.Gap))

	fmt.Fprintf(w, "\n%s\n", labelStyle.Render("JD Match Trend"))
	for _, rec := range records {
		label := rec.Time.Local().Format("Jan 02 15:04")
		fmt.Fprintf(w, "%s  %s\n", percentLine(label, 12, rec.JDMatch), mutedStyle.Render(rec.Role))
	}
}

func init() {
	rootCmd.AddCommand(historyCmd)
}
