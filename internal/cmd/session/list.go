package session

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
	"github.com/Iron-Ham/cohort/internal/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List live sessions",
	Long: `List all live sessions with their status, focus, held files, and
current task. With --for, only sessions whose declared directories or
file patterns match the given path are shown.`,
	RunE: runList,
}

var listForPath string

func init() {
	listCmd.Flags().StringVar(&listForPath, "for", "", "only show sessions relevant to this path")
}

func runList(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	sessions, err := ws.Sessions.List()
	if err != nil {
		return err
	}

	width := cmdutil.TerminalWidth()
	shown := 0
	for _, s := range sessions {
		if listForPath != "" && !s.Relevance(listForPath) {
			continue
		}
		shown++

		fmt.Printf("%s  [%s]\n", s.Name, s.Status)
		if s.CurrentTask != "" {
			fmt.Printf("  task: %s\n", util.TruncateString(s.CurrentTask, width-8))
		}
		if len(s.FocusTags) > 0 {
			fmt.Printf("  focus: %s\n", strings.Join(s.FocusTags, ", "))
		}
		if len(s.ActiveFiles) > 0 {
			fmt.Printf("  holding: %s\n", strings.Join(s.ActiveFiles, ", "))
		}
		fmt.Printf("  last active: %s\n", util.FormatAge(s.LastActive))
	}

	if shown == 0 {
		if listForPath != "" {
			fmt.Printf("No sessions relevant to %s\n", listForPath)
		} else {
			fmt.Println("No live sessions")
		}
	}
	return nil
}
