package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCreditCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "credit <customer-id>",
		Short: "Show a customer's credit limit, used amount and available balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid customer id %q: %w", args[0], err)
			}

			info, err := a.svc.Customers.Credit(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("fetching credit: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, info)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderCredit(info))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
