package cli

import (
	"context"
	"fmt"

	"github.com/cadpayroll/engine/internal/calculation"
	"github.com/cadpayroll/engine/internal/engineerr"
	"github.com/cadpayroll/engine/internal/reporting"
	"github.com/cadpayroll/engine/internal/requestconfig"
	"github.com/cadpayroll/engine/internal/tables"
	"github.com/spf13/cobra"
)

func newCalculateCmd() *cobra.Command {
	var requestPath string
	var format string

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run calculate_payroll against a request file and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := reporting.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown output format %q (available: %v)", format, reporting.AvailableFormatterNames())
			}

			req, err := requestconfig.NewLoader().LoadFromFile(requestPath)
			if err != nil {
				return err
			}

			engine := calculation.NewEngine(tables.NewRepository(), calculation.NopLogger{})
			result, err := engine.Calculate(context.Background(), *req)
			if err != nil {
				if ee, ok := err.(*engineerr.Error); ok {
					return fmt.Errorf("%s: %s", ee.Kind, ee.Message)
				}
				return err
			}

			out, err := formatter.Format(result)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&requestPath, "request", "", "path to a calculate_payroll request YAML file (required)")
	cmd.Flags().StringVar(&format, "out", "console", "output format: console or json")
	cmd.MarkFlagRequired("request")

	return cmd
}
