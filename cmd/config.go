package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/khrees2412/resumatch/internal/app"
	"github.com/khrees2412/resumatch/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  "View and update configuration settings",
	// config must work even when the rest of the app cannot start,
	// for example to fix a bad db_path
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		cfg, err := config.Initialize()
		if err != nil && cmd.Name() != "set" {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		cmd.SetContext(app.SetAppInContext(cmd.Context(), &app.App{Config: cfg}))
		return nil
	},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := getApp(cmd)
		if err != nil {
			return err
		}
		cfg := application.Config

		catalogPath := cfg.CatalogPath
		if catalogPath == "" {
			catalogPath = "(built-in)"
		}

		cmd.Println(titleStyle.Render("Configuration"))
		cmd.Printf("%s %s\n", labelStyle.Render("Config File:"), config.GetConfigPath())
		cmd.Printf("%s %s\n", labelStyle.Render("Database:"), cfg.DBPath)
		cmd.Printf("%s %s\n", labelStyle.Render("Catalog:"), catalogPath)
		cmd.Printf("%s %s\n", labelStyle.Render("Log Level:"), cfg.LogLevel)
		cmd.Printf("%s m=%d KiB, t=%d, p=%d\n", labelStyle.Render("Password Hashing:"), cfg.ArgonMemory, cfg.ArgonTime, cfg.ArgonThreads)
		cmd.Printf("%s %s\n", labelStyle.Render("Fetch Timeout:"), cfg.FetchTimeout)
		if cfg.UseBrowser {
			cmd.Printf("%s %s\n", labelStyle.Render("Browser Fallback:"), "✓ Enabled")
		} else {
			cmd.Printf("%s %s\n", labelStyle.Render("Browser Fallback:"), "✗ Disabled")
		}
		return nil
	},
}

var setConfigCmd = &cobra.Command{
	Use:   "set",
	Short: "Update a configuration value",
	Example: `  resumatch config set --key log_level --value debug
  resumatch config set --key catalog_path --value ~/roles.yaml
  resumatch config set --key fetch_timeout --value 30s
  resumatch config set --key use_browser --value true`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("key")
		value, _ := cmd.Flags().GetString("value")

		if key == "" {
			return fmt.Errorf("%w: --key is required, one of: %s", app.ErrInvalidArgument, strings.Join(config.Keys, ", "))
		}

		if _, err := config.Set(key, value); err != nil {
			return fmt.Errorf("update config: %w", err)
		}

		cmd.Printf("✓ Configuration updated: %s\n", key)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setConfigCmd)

	// Flags for set command
	setConfigCmd.Flags().String("key", "", "Configuration key")
	setConfigCmd.Flags().String("value", "", "Configuration value")
}
