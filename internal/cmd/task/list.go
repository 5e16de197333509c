package task

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
	"github.com/Iron-Ham/cohort/internal/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List ledger tasks",
	RunE:  runList,
}

var listAll bool

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include completed tasks")
}

func runList(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	lists, err := ws.Tasks.List()
	if err != nil {
		return err
	}

	if len(lists.Pending) == 0 && (!listAll || len(lists.Completed) == 0) {
		fmt.Println("No tasks")
		return nil
	}

	for _, t := range lists.Pending {
		fmt.Printf("%s  [%s] %s\n", t.ID, t.Priority, t.Title)
		if t.AssignedSession != "" {
			fmt.Printf("  assigned: %s\n", t.AssignedSession)
		}
	}

	if listAll {
		width := cmdutil.TerminalWidth()
		for _, t := range lists.Completed {
			line := fmt.Sprintf("%s  [done] %s", t.ID, t.Title)
			if t.CompletingSession != "" {
				line += fmt.Sprintf(" (by %s)", t.CompletingSession)
			}
			fmt.Println(util.TruncateString(line, width))
		}
	}
	return nil
}
