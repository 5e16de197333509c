package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
	"github.com/Iron-Ham/cohort/internal/ledger"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a pending task to the ledger",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdd,
}

var (
	addID          string
	addDescription string
	addPriority    string
	addEstimate    string
	addTags        []string
	addSession     string
)

func init() {
	addCmd.Flags().StringVar(&addID, "id", "", "explicit task id (generated when omitted)")
	addCmd.Flags().StringVar(&addDescription, "description", "", "longer task description")
	addCmd.Flags().StringVar(&addPriority, "priority", "", "low, medium, or high (default medium)")
	addCmd.Flags().StringVar(&addEstimate, "estimate", "", "estimated time, free-form")
	addCmd.Flags().StringSliceVar(&addTags, "tag", nil, "task tags")
	addCmd.Flags().StringVar(&addSession, "session", "", "session this task is assigned to")
}

func runAdd(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	t, err := ws.Tasks.Add(ledger.Input{
		ID:              addID,
		Title:           args[0],
		Description:     addDescription,
		Priority:        ledger.Priority(addPriority),
		EstimatedTime:   addEstimate,
		Tags:            addTags,
		AssignedSession: addSession,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Task %s added [%s] %s\n", t.ID, t.Priority, t.Title)
	return nil
}
