package session

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
	"github.com/Iron-Ham/cohort/internal/registry"
)

var updateCmd = &cobra.Command{
	Use:   "update <name>",
	Short: "Update a session's task, status, or scope",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

var (
	updateTask     string
	updateStatus   string
	updateFocus    []string
	updateDirs     []string
	updatePatterns []string
)

func init() {
	updateCmd.Flags().StringVar(&updateTask, "task", "", "what the session is working on")
	updateCmd.Flags().StringVar(&updateStatus, "status", "", "session status (active|idle)")
	updateCmd.Flags().StringSliceVar(&updateFocus, "focus", nil, "replace focus tags")
	updateCmd.Flags().StringSliceVar(&updateDirs, "dir", nil, "replace directories")
	updateCmd.Flags().StringSliceVar(&updatePatterns, "pattern", nil, "replace file patterns")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	var patch registry.Patch
	if cmd.Flags().Changed("task") {
		patch.CurrentTask = &updateTask
	}
	if cmd.Flags().Changed("status") {
		status := registry.Status(updateStatus)
		patch.Status = &status
	}
	if cmd.Flags().Changed("focus") {
		patch.FocusTags = &updateFocus
	}
	if cmd.Flags().Changed("dir") {
		patch.Directories = &updateDirs
	}
	if cmd.Flags().Changed("pattern") {
		patch.FilePatterns = &updatePatterns
	}

	s, err := ws.Sessions.Update(args[0], patch)
	if err != nil {
		return err
	}

	fmt.Printf("Session %q updated [%s]\n", s.Name, s.Status)
	return nil
}
