package cmd

import (
	"fmt"
	"sort"

	"github.com/Digital-Shane/clip-tidy/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	Long: `Print the configuration file location and the active settings, including
the category normalization table applied during renames.`,
	RunE: runConfigCommand,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	RunE:  runConfigInitCommand,
}

func runConfigCommand(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("Config file: %s\n\n", path)
	fmt.Printf("Index width:      %d\n", cfg.IndexWidth)
	fmt.Printf("CSV clip column:  %s\n", cfg.CSVClipColumn)
	fmt.Printf("Logging enabled:  %t\n", cfg.EnableLogging)
	fmt.Printf("Log retention:    %d days\n", cfg.LogRetentionDays)
	fmt.Printf("ffprobe enabled:  %t\n", cfg.EnableFFprobe)

	fmt.Println("\nCategories:")
	tokens := make([]string, 0, len(cfg.Categories))
	for token := range cfg.Categories {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)
	for _, token := range tokens {
		fmt.Printf("  %-12s -> %s\n", token, cfg.Categories[token])
	}
	return nil
}

func runConfigInitCommand(cmd *cobra.Command, args []string) error {
	path, err := config.ConfigPath()
	if err != nil {
		return err
	}
	if err := config.DefaultConfig().Save(); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
