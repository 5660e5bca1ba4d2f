// Command payrollcalc is a thin CLI wrapper around the payroll deductions
// engine: load a request file, run calculate_payroll, and render the result.
package main

import (
	"fmt"
	"os"

	"github.com/cadpayroll/engine/cmd/payrollcalc/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
