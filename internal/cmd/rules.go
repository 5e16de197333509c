package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
	"github.com/Iron-Ham/cohort/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Generate the coordination rules document",
	Long: `Render a markdown document describing the current goal, live sessions,
conflicts, and pending tasks. By default it is written to the configured
output file in the working tree; --stdout prints it instead.`,
	RunE: runRules,
}

var rulesStdout bool

func init() {
	rulesCmd.Flags().BoolVar(&rulesStdout, "stdout", false, "print to stdout instead of writing the output file")
}

// RegisterRulesCmd registers the rules command with the given parent command.
func RegisterRulesCmd(parent *cobra.Command) {
	parent.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	sessions, err := ws.Sessions.List()
	if err != nil {
		return err
	}
	g, err := ws.Goal.Current()
	if err != nil {
		return err
	}
	lists, err := ws.Tasks.List()
	if err != nil {
		return err
	}

	data := rules.Build(sessions, g, lists.Pending)
	out, err := rules.Render(ws.Config.Rules.Template, data)
	if err != nil {
		return err
	}

	if rulesStdout {
		fmt.Print(out)
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := filepath.Join(cwd, ws.Config.Rules.OutputFile)
	if err := os.WriteFile(target, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing rules document: %w", err)
	}
	fmt.Printf("Wrote %s\n", target)
	return nil
}
