package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
	"github.com/Iron-Ham/cohort/internal/conflict"
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Show files held by more than one session",
	RunE:  runConflicts,
}

var conflictsForSession string

func init() {
	conflictsCmd.Flags().StringVar(&conflictsForSession, "session", "", "only show conflicts involving this session")
}

// RegisterConflictsCmd registers the conflicts command with the given parent command.
func RegisterConflictsCmd(parent *cobra.Command) {
	parent.AddCommand(conflictsCmd)
}

func runConflicts(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	sessions, err := ws.Sessions.List()
	if err != nil {
		return err
	}

	conflicts := conflict.Detect(sessions)
	if conflictsForSession != "" {
		conflicts = conflict.ForSession(conflicts, conflictsForSession)
	}

	if len(conflicts) == 0 {
		fmt.Println("No conflicts")
		return nil
	}

	for _, c := range conflicts {
		fmt.Printf("%s  held by %s\n", c.File, strings.Join(c.Sessions, ", "))
	}
	return nil
}
