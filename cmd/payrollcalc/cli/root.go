// Package cli wires the payroll engine to a cobra command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "payrollcalc",
	Short: "Canadian payroll deductions calculator",
	Long: "payrollcalc runs the Canada Pension Plan, Employment Insurance, " +
		"federal, and provincial/territorial withholding calculations for a " +
		"single pay period described in a request file.",
}

// Execute runs the CLI, returning the first error encountered.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(newCalculateCmd())
}
