package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/cohort/internal/cmd/cmdutil"
	"github.com/Iron-Ham/cohort/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live terminal dashboard of sessions, conflicts, tasks, and goal",
	RunE:  runDashboard,
}

var dashboardNoWatch bool

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardNoWatch, "no-watch", false, "disable the filesystem watcher, poll only")
}

// RegisterDashboardCmd registers the dashboard command with the given parent command.
func RegisterDashboardCmd(parent *cobra.Command) {
	parent.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ws, err := cmdutil.Open()
	if err != nil {
		return err
	}
	defer ws.Close()

	watch := ws.Config.Dashboard.Watch && !dashboardNoWatch
	app := tui.New(ws.Sessions, ws.Goal, ws.Tasks,
		ws.Config.Dashboard.PollInterval(),
		tui.WithWatcher(watch),
		tui.WithLogger(ws.Log))
	return app.Run()
}
