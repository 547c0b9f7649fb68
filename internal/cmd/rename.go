package cmd

import (
	"fmt"
	"os"

	"github.com/Digital-Shane/clip-tidy/internal/clip"
	"github.com/Digital-Shane/clip-tidy/internal/config"
	"github.com/Digital-Shane/clip-tidy/internal/log"
	"github.com/Digital-Shane/clip-tidy/internal/tui/prompt"
	"github.com/Digital-Shane/clip-tidy/internal/tui/rename"
	"github.com/Digital-Shane/clip-tidy/internal/tui/theme"
	"github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var renameCmd = &cobra.Command{
	Use:   "rename [directory]",
	Short: "Rename a player's clip exports to the canonical scheme",
	Long: `Scan a directory of exported clips and rename every recognized video and
metadata JSON to "First Last_category_NNN", rewriting metadata fields and the
URL mapping CSV to match. Files whose names match no known pattern are listed
and left untouched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRenameCommand,
}

func runRenameCommand(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log.Initialize(cfg.EnableLogging, cfg.LogRetentionDays)

	player, err := resolvePlayer()
	if err != nil {
		return err
	}
	parser := clip.NewParser(player, cfg.Categories, cfg.IndexWidth)

	t, err := indexFiles(dir, !instant)
	if err != nil {
		return err
	}
	annotateTree(t, parser, cfg)

	model := rename.NewRenameModel(t)
	model.Parser = parser
	model.CSVClipColumn = cfg.CSVClipColumn
	model.Command = "rename"
	model.CommandArgs = os.Args[1:]
	model.WorkDir = dir

	if instant {
		return executeInstantMode(model)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

// resolvePlayer builds the player from flags, prompting interactively for
// anything missing. Instant mode cannot prompt, so both flags are required.
func resolvePlayer() (clip.Player, error) {
	if firstName != "" && lastName != "" {
		return clip.NewPlayer(firstName, lastName)
	}
	if instant {
		return clip.Player{}, fmt.Errorf("--first and --last are required with --instant")
	}

	model := prompt.New(firstName, lastName, theme.Default())
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return clip.Player{}, err
	}
	pm, ok := finalModel.(*prompt.Model)
	if !ok {
		return clip.Player{}, fmt.Errorf("unexpected model type %T after prompt", finalModel)
	}
	player, ok := pm.Player()
	if !ok {
		return clip.Player{}, fmt.Errorf("no player name provided")
	}
	return player, nil
}

func init() {
	rootCmd.AddCommand(renameCmd)
}
