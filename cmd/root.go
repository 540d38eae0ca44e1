package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumatch",
	Short: "Match resumes against job descriptions",
	Long: `Resumatch compares a resume with a job description and reports how well they match.
It scores keyword overlap, estimates an ATS score, suggests the best-fit role and
keeps a history of every analysis so progress can be tracked over time.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize app with all dependencies
		application, err := app.NewApp(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to initialize app: %w", err)
		}

		// Store app in command context
		cmd.SetContext(app.SetAppInContext(cmd.Context(), application))
		return nil
	},
}

// Execute runs the root command
func Execute() {
	// Cancel in-flight work on Ctrl-C
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	executed, err := rootCmd.ExecuteContextC(ctx)

	// Cleanup: close app resources
	if executed != nil {
		if appInstance := app.GetAppFromContext(executed.Context()); appInstance != nil {
			appInstance.Close()
		}
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("user", "", "Account to run as")
	rootCmd.PersistentFlags().String("password", "", "Account password (or set RESUMATCH_PASSWORD)")
}
