package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clip-tidy",
	Short: "A tool for renaming basketball clip files",
	Long: `clip-tidy standardizes basketball clip exports into a canonical naming scheme.
It renames each video and its metadata JSON from the underscore-joined legacy
form to "First Last_category_NNN", rewrites the metadata fields to match, and
updates the player's URL mapping CSV so every row points at the renamed clip.

The tool supports interactive preview mode and instant application mode, and
every session can be reversed with the undo command.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var (
	instant   bool
	firstName string
	lastName  string
)

func init() {
	// Global flags for all commands
	rootCmd.PersistentFlags().BoolVarP(&instant, "instant", "i", false, "Apply renames immediately without interactive preview")
	rootCmd.PersistentFlags().StringVar(&firstName, "first", "", "Player first name")
	rootCmd.PersistentFlags().StringVar(&lastName, "last", "", "Player last name")
}
