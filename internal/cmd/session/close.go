package session

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
)

var closeCmd = &cobra.Command{
	Use:   "close <name>",
	Short: "Close a session and remove its record",
	Long: `Close a session. The record file is deleted, all held files are
implicitly released, and the name becomes immediately reusable.`,
	Args: cobra.ExactArgs(1),
	RunE: runClose,
}

func runClose(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	if err := ws.Sessions.Close(args[0]); err != nil {
		return err
	}
	fmt.Printf("Session %q closed\n", args[0])
	return nil
}
