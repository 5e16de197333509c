package session

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Close sessions inactive beyond a threshold",
	Long: `Close sessions whose last activity is older than the given threshold.
Useful for clearing records left behind by crashed or abandoned sessions.`,
	RunE: runCleanup,
}

var cleanupStale time.Duration

func init() {
	cleanupCmd.Flags().DurationVar(&cleanupStale, "stale", 24*time.Hour, "inactivity threshold")
}

func runCleanup(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	pruned, err := ws.Sessions.Prune(cleanupStale)
	if err != nil {
		return err
	}
	if len(pruned) == 0 {
		fmt.Println("No stale sessions")
		return nil
	}
	for _, name := range pruned {
		fmt.Printf("Closed stale session %q\n", name)
	}
	return nil
}
