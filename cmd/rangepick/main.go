package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := NewCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	serve := NewServeCommand()

	cmd := &cobra.Command{
		Use:           "rangepick",
		Short:         "Calendar range picking service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	cmd.Flags().AddFlagSet(serve.Flags())

	cmd.AddCommand(
		serve,
		NewPurgeSessionsCommand(),
		NewMonthCommand(),
	)
	return cmd
}
