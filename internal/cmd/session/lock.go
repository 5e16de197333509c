package session

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
)

var lockCmd = &cobra.Command{
	Use:   "lock <name> <file>...",
	Short: "Lock files for a session",
	Long: `Record that a session is working on the given files. If another live
session already holds a file, the conflict is reported and the lock is
not taken; this is advisory, so coordinate and retry.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runLock,
}

func runLock(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	name := args[0]
	for _, file := range args[1:] {
		res, err := ws.Sessions.LockFile(name, file)
		if err != nil {
			return err
		}
		if res.Locked {
			fmt.Printf("%s locked %s\n", name, res.Path)
			continue
		}
		fmt.Printf("%s NOT locked: %s is held by %s\n",
			name, res.Path, strings.Join(res.Conflicts, ", "))
	}
	return nil
}
