package cmd

import (
	"fmt"
	"io"

	"github.com/khrees2412/resumatch/pkg/models"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "View usage across all users",
	Long:  "Display total users and analyses, the best-fit role distribution, the daily analysis trend and the full history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		application, err := getApp(cmd)
		if err != nil {
			return err
		}

		users, err := application.Store.CountUsers(ctx)
		if err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		records, err := application.Store.AllHistory(ctx)
		if err != nil {
			return fmt.Errorf("fetch history: %w", err)
		}
		roles, err := application.Store.RoleDistribution(ctx)
		if err != nil {
			return fmt.Errorf("fetch role distribution: %w", err)
		}
		days, err := application.Store.DailyCounts(ctx)
		if err != nil {
			return fmt.Errorf("fetch daily counts: %w", err)
		}

		limit, _ := cmd.Flags().GetInt("limit")
		renderAdmin(cmd.OutOrStdout(), users, records, roles, days, limit)
		return nil
	},
}

// renderAdmin prints the admin overview. At most limit history rows are
// listed, newest last; limit <= 0 lists them all.
func renderAdmin(w io.Writer, users int, records []*models.AnalysisRecord, roles []models.RoleCount, days []models.DayCount, limit int) {
	fmt.Fprintln(w, titleStyle.Render("Admin Dashboard"))
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Total Users:"), users)
	fmt.Fprintf(w, "%s %d\n", labelStyle.Render("Total Analyses:"), len(records))
	if len(records) == 0 {
		return
	}

	fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Job Role Distribution"))
	width := 0
	for _, rc := range roles {
		width = max(width, len(rc.Role))
	}
	for _, rc := range roles {
		percent := 100 * rc.Count / len(records)
		fmt.Fprintf(w, "%s  %s\n", percentLine(rc.Role, width, percent), mutedStyle.Render(fmt.Sprintf("(%d)", rc.Count)))
	}

	fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Analysis Trend"))
	busiest := 0
	for _, d := range days {
		busiest = max(busiest, d.Count)
	}
	for _, d := range days {
		fmt.Fprintf(w, "  %s %s %d\n", d.Day, bar(100*d.Count/busiest, barWidth), d.Count)
	}

	fmt.Fprintf(w, "\n%s\n", labelStyle.Render("Full Analysis History"))
	shown := records
	if limit > 0 && len(shown) > limit {
		shown = shown[len(shown)-limit:]
		fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf("  showing the latest %d of %d", limit, len(records))))
	}
	fmt.Fprintf(w, "  %-16s  %-16s  %-20s  %s\n", "TIME", "USER", "ROLE", "JD MATCH")
	for _, rec := range shown {
		fmt.Fprintf(w, "  %-16s  %-16s  %-20s  %d%%\n",
			rec.Time.Local().Format("2006-01-02 15:04"), rec.User, rec.Role, rec.JDMatch)
	}
}

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.Flags().Int("limit", 50, "Maximum history rows to list (0 for all)")
}
