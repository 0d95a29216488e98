package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exitCode int

// Build the cobra command that handles our command line tool.
func rootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "censuskit COMMAND [args]",
		Short: "Fetch county-level ACS data and mirror remote data folders",
		Run: func(cmd *cobra.Command, args []string) {
			if err := cmd.Help(); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		},
	}

	rootCmd.AddCommand(
		fetchCmd(),
		syncCmd(),
		runCmd(),
	)

	return rootCmd
}

func Execute() int {
	rootCmd := rootCommand()

	if err := rootCmd.Execute(); err != nil {
		exitCode = 1
	}
	return exitCode
}
