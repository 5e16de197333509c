package session

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
)

var releaseCmd = &cobra.Command{
	Use:   "release <name> <file>...",
	Short: "Release files held by a session",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runRelease,
}

func runRelease(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	name := args[0]
	for _, file := range args[1:] {
		if err := ws.Sessions.ReleaseFile(name, file); err != nil {
			return err
		}
		fmt.Printf("%s released %s\n", name, file)
	}
	return nil
}
