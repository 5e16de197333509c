package session

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
	"github.com/Iron-Ham/cohort/internal/registry"
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Register a new session",
	Long: `Register a new coordination session under the given name. The name is
sanitized for filesystem use; creation fails if a live session already
uses it.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

var (
	createFocusTags    []string
	createDirectories  []string
	createFilePatterns []string
)

func init() {
	createCmd.Flags().StringSliceVar(&createFocusTags, "focus", nil, "focus tags (default: general)")
	createCmd.Flags().StringSliceVar(&createDirectories, "dir", nil, "directories this session works in (default: .)")
	createCmd.Flags().StringSliceVar(&createFilePatterns, "pattern", nil, "glob patterns for files of interest (default: *)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := ws.Sessions.Create(args[0], registry.Options{
		FocusTags:    createFocusTags,
		Directories:  createDirectories,
		FilePatterns: createFilePatterns,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Session %q created (id %s)\n", s.Name, s.ID)
	if s.Name != strings.TrimSpace(args[0]) {
		fmt.Printf("Name was sanitized from %q\n", args[0])
	}
	return nil
}
