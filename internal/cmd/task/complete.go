package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
	"github.com/Iron-Ham/cohort/internal/ledger"
)

var completeCmd = &cobra.Command{
	Use:   "complete <id>",
	Short: "Mark a pending task as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runComplete,
}

var (
	completeSession string
	completeNotes   string
)

func init() {
	completeCmd.Flags().StringVar(&completeSession, "session", "", "session completing the task")
	completeCmd.Flags().StringVar(&completeNotes, "notes", "", "notes about what was done")
}

func runComplete(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	t, err := ws.Tasks.Complete(args[0], ledger.CompletionInfo{
		Session: completeSession,
		Notes:   completeNotes,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Task %s completed: %s\n", t.ID, t.Title)
	return nil
}
