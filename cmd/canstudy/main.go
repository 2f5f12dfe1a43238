package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/canstudy/tracker/cmd/canstudy/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "canstudy",
		Short: "Admin tools for CanStudy Tracker",
	}

	rootCmd.AddCommand(cmd.DevCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.TimelineCmd())
	rootCmd.AddCommand(cmd.SchoolsCmd())
	rootCmd.AddCommand(cmd.TokensCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
