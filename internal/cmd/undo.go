package cmd

import (
	"fmt"

	"github.com/Digital-Shane/clip-tidy/internal/log"
	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the most recent rename session",
	Long: `Reverse the file renames recorded by the most recent session. Metadata
JSON content rewrites cannot be reversed and are reported as skipped.`,
	RunE: runUndoCommand,
}

func runUndoCommand(cmd *cobra.Command, args []string) error {
	session, err := log.FindLatestSession()
	if err != nil {
		return fmt.Errorf("no session to undo: %w", err)
	}

	successful, failed, skipped, errs := log.UndoSession(session)
	fmt.Printf("Undo of session %s: %d reversed, %d failed, %d skipped\n",
		session.Metadata.SessionID, successful, failed, skipped)
	for _, err := range errs {
		fmt.Printf("  %v\n", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d operations could not be reversed", failed)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(undoCmd)
}
