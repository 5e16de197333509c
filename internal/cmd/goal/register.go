// Package goal provides the shared-goal subcommands.
package goal

import "github.com/spf13/cobra"

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage the shared project goal",
}

// Register adds all goal-related commands to the given parent command.
func Register(parent *cobra.Command) {
	goalCmd.AddCommand(showCmd)
	goalCmd.AddCommand(setCmd)
	goalCmd.AddCommand(historyCmd)
	goalCmd.AddCommand(revertCmd)
	parent.AddCommand(goalCmd)
}
