package goal

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
	"github.com/Iron-Ham/cohort/internal/util"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current goal",
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	g, err := ws.Goal.Current()
	if err != nil {
		return err
	}
	if g == nil {
		fmt.Println("No goal set")
		return nil
	}

	fmt.Println(g.Text)
	fmt.Printf("(set via %s, %s)\n", g.Source, util.FormatAge(g.UpdatedAt))
	return nil
}
