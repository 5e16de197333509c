// Package task provides the task ledger subcommands.
package task

import "github.com/spf13/cobra"

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage the shared task ledger",
}

// Register adds all task-related commands to the given parent command.
func Register(parent *cobra.Command) {
	taskCmd.AddCommand(addCmd)
	taskCmd.AddCommand(completeCmd)
	taskCmd.AddCommand(listCmd)
	parent.AddCommand(taskCmd)
}
