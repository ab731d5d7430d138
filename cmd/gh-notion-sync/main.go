package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/naag/gh-notion-sync/internal/config"
	"github.com/naag/gh-notion-sync/internal/github"
	"github.com/naag/gh-notion-sync/internal/notion"
	"github.com/naag/gh-notion-sync/internal/sync"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "gh-notion-sync",
	Short:        "Mirror GitHub issues and project data into Notion",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Configure logging based on verbose level
		var level slog.Level
		switch verboseLevel {
		case 0:
			level = slog.LevelInfo
		case 1, 2:
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)

		// Local runs keep tokens in a .env file; absence is fine
		if err := godotenv.Load(); err == nil {
			slog.Debug("loaded .env file")
		}
	},
}

var syncCmd = &cobra.Command{
	Use:          "sync",
	Short:        "Run one reconciliation of GitHub issues into the Notion mirror",
	SilenceUsage: true,
	RunE:         runSync,
}

var (
	configPath   string
	verboseLevel int
)

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&configPath, "config", "", "Path to the YAML sync configuration file")
	syncCmd.Flags().CountVarP(&verboseLevel, "verbose", "v", "Verbosity level (-v for debug logs, -vv for debug logs and HTTP traffic)")

	if err := syncCmd.MarkFlagRequired("config"); err != nil {
		panic(fmt.Sprintf("failed to mark flag config as required: %v", err))
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	githubClient, err := github.NewGraphQLClient(cfg.GitHub.ExcludedIssueType, verboseLevel >= 2)
	if err != nil {
		return fmt.Errorf("failed to initialize GitHub client: %w", err)
	}

	notionClient, err := notion.NewAPIClient()
	if err != nil {
		return fmt.Errorf("failed to initialize Notion client: %w", err)
	}

	service := sync.NewService(githubClient, notionClient, cfg)
	if err := service.Run(context.Background()); err != nil {
		return fmt.Errorf("failed to sync: %w", err)
	}

	slog.Info("sync completed successfully")
	return nil
}
