package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/cohort/internal/cmd/goal"
	"github.com/Iron-Ham/cohort/internal/cmd/session"
	"github.com/Iron-Ham/cohort/internal/cmd/task"
	"github.com/Iron-Ham/cohort/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "cohort",
	Short: "Advisory session coordination for a shared file tree",
	Long: `Cohort coordinates multiple work sessions editing the same project.
Sessions register themselves, lock the files they touch, share a task
ledger and a project goal, and see each other's overlaps before they
become merge conflicts. All coordination is advisory: cohort records
and reports, it never blocks.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/cohort/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "coordination data directory (default .cohort in the working tree)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("paths.data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))

	session.Register(rootCmd)
	task.Register(rootCmd)
	goal.Register(rootCmd)
	RegisterConflictsCmd(rootCmd)
	RegisterDashboardCmd(rootCmd)
	RegisterRulesCmd(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/cohort")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("COHORT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., COHORT_GOAL_MAX_LENGTH for goal.max_length
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
