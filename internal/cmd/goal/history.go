package goal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
	"github.com/Iron-Ham/cohort/internal/util"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show goal change history, newest first",
	RunE:  runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of entries to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	entries, err := ws.Goal.History(historyLimit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No goal history")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %s (via %s)\n", e.ID, util.FormatAge(e.Timestamp), e.Source)
		fmt.Printf("  %s\n", util.TruncateString(e.NewGoal, 90))
		fmt.Printf("  similarity %.0f%%, length %+d\n",
			e.Metrics.Similarity*100, e.Metrics.LengthChange)
	}
	return nil
}
