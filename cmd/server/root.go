package main

import (
	"github.com/profeai/profeai-api/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "profeai",
		Short:        "ProfeAI micro-lesson API",
		Long:         "ProfeAI serves short AI-generated lessons with a catalog fallback and tracks feedback and progress.",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "", "Path to a YAML config file (default ./config.yaml when present)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newLessonCmd())
	return root
}

// configPath returns the persistent --config flag.
func configPath(cmd *cobra.Command) string {
	p, _ := cmd.Flags().GetString("config")
	return p
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	return config.LoadFile(configPath(cmd))
}
