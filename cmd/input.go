package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/khrees2412/resumatch/internal/app"
	"github.com/khrees2412/resumatch/internal/ingest"
	"github.com/khrees2412/resumatch/pkg/models"
	"github.com/spf13/cobra"
)

const passwordEnv = "RESUMATCH_PASSWORD"

// getApp returns the App stored by the root command
func getApp(cmd *cobra.Command) (*app.App, error) {
	application := app.GetAppFromContext(cmd.Context())
	if application == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return application, nil
}

// credentials reads --user and --password, falling back to RESUMATCH_PASSWORD
func credentials(cmd *cobra.Command) (string, string) {
	user, _ := cmd.Flags().GetString("user")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		password = os.Getenv(passwordEnv)
	}
	return user, password
}

// currentUser logs in with the credentials given on the command line
func currentUser(ctx context.Context, cmd *cobra.Command, a *app.App) (*models.User, error) {
	username, password := credentials(cmd)
	if username == "" || password == "" {
		return nil, app.ErrNotLoggedIn
	}
	return a.Auth.Login(ctx, username, password)
}

// readResume extracts the text of a resume file. A file that cannot be parsed
// is treated as an empty resume and reported on stderr.
func readResume(cmd *cobra.Command, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	text := ingest.ExtractText(filepath.Base(path), data)
	if text == "" {
		cmd.PrintErrln(warnStyle.Render("Warning: no text could be read from " + path + "; scoring it as empty"))
	}
	return text, nil
}

// readJobDescription takes the job description from --jd, --jd-text or --jd-url
func readJobDescription(ctx context.Context, cmd *cobra.Command, a *app.App) (string, error) {
	jdPath, _ := cmd.Flags().GetString("jd")
	jdText, _ := cmd.Flags().GetString("jd-text")
	jdURL, _ := cmd.Flags().GetString("jd-url")

	switch {
	case jdText != "":
		return jdText, nil
	case jdPath != "":
		text, err := ingest.ExtractFile(jdPath)
		if err != nil {
			return "", fmt.Errorf("read job description: %w", err)
		}
		return text, nil
	case jdURL != "":
		if browser, _ := cmd.Flags().GetBool("browser"); browser {
			a.Fetcher.UseBrowser = true
		}
		cmd.PrintErrf("Fetching job description from %s...\n", jdURL)
		text, err := a.Fetcher.Fetch(ctx, jdURL)
		if err != nil {
			return "", fmt.Errorf("fetch job description: %w", err)
		}
		return text, nil
	default:
		return "", app.ErrNoJobDescription
	}
}

// addJobDescriptionFlags registers the job description source flags on cmd
func addJobDescriptionFlags(cmd *cobra.Command) {
	cmd.Flags().String("jd", "", "Job description file (.txt, .pdf, .docx)")
	cmd.Flags().String("jd-text", "", "Job description text")
	cmd.Flags().String("jd-url", "", "Job posting URL to fetch the description from")
	cmd.Flags().Bool("browser", false, "Render --jd-url pages in headless Chrome when the static page has too little text")
	cmd.MarkFlagsMutuallyExclusive("jd", "jd-text", "jd-url")
}
