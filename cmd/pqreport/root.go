package main

import (
	"github.com/spf13/cobra"
)

// Execute wires up the CLI and runs it.
func Execute() error {
	root := &cobra.Command{
		Use:           "pqreport",
		Short:         "Power-quality risk reports from PDU/UPS current exports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(runCmd())
	return root.Execute()
}
