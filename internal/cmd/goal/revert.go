package goal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
)

var revertCmd = &cobra.Command{
	Use:   "revert <entry-id>",
	Short: "Restore the goal a history entry replaced",
	Long: `Restore the goal recorded as the previous value of a history entry.
The revert is itself a forward change and appears in the history.`,
	Args: cobra.ExactArgs(1),
	RunE: runRevert,
}

func runRevert(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	res, err := ws.Goal.Revert(args[0])
	if err != nil {
		return err
	}
	if !res.Reverted {
		fmt.Printf("Not reverted: %s\n", res.Reason)
		if res.Result != nil {
			for _, issue := range res.Result.Issues {
				fmt.Printf("  - %s\n", issue.Message)
			}
		}
		return nil
	}

	fmt.Println("Goal reverted:")
	fmt.Printf("  %s\n", res.Result.Goal.Text)
	return nil
}
