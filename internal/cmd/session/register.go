// Package session provides the session management subcommands.
package session

import "github.com/spf13/cobra"

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage coordination sessions",
	Long: `Commands for registering sessions, locking and releasing files,
and inspecting who is working where.`,
}

// Register adds all session-related commands to the given parent command.
func Register(parent *cobra.Command) {
	sessionCmd.AddCommand(createCmd)
	sessionCmd.AddCommand(listCmd)
	sessionCmd.AddCommand(updateCmd)
	sessionCmd.AddCommand(lockCmd)
	sessionCmd.AddCommand(releaseCmd)
	sessionCmd.AddCommand(closeCmd)
	sessionCmd.AddCommand(cleanupCmd)
	parent.AddCommand(sessionCmd)
}
