package goal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
)

var setCmd = &cobra.Command{
	Use:   "set <text>",
	Short: "Set the shared goal",
	Long: `Set the shared project goal. The text must be a complete sentence
within the configured length bounds; validation problems are reported
without changing the current goal.`,
	Args: cobra.ExactArgs(1),
	RunE: runSet,
}

var setSource string

func init() {
	setCmd.Flags().StringVar(&setSource, "source", "cli", "who or what is setting the goal")
}

func runSet(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	res, err := ws.Goal.Update(args[0], setSource, nil)
	if err != nil {
		return err
	}
	if !res.Accepted() {
		fmt.Println("Goal not set:")
		for _, issue := range res.Issues {
			fmt.Printf("  - %s\n", issue.Message)
		}
		return nil
	}

	fmt.Println("Goal updated")
	m := res.Metrics
	if m.Similarity < 1.0 {
		fmt.Printf("  similarity to previous: %.0f%%\n", m.Similarity*100)
	}
	if len(m.AddedWords) > 0 {
		fmt.Printf("  added: %v\n", m.AddedWords)
	}
	if len(m.RemovedWords) > 0 {
		fmt.Printf("  removed: %v\n", m.RemovedWords)
	}
	return nil
}
