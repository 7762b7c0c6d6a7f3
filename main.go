package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhabedank/genchecklist/cmd"
)

var appVersion = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "genchecklist",
		Short: "Generate AI checklists for trips, moves, pets, events and life changes",
		Long: `genchecklist turns a few answers about what you are planning into a
structured checklist you can check off and export as PDF or JSON.`,
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			cmd.Welcome(c)
		},
	}

	rootCmd.AddCommand(cmd.GenerateCmd, cmd.ServeCmd, cmd.SetupCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
