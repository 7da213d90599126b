package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.svc.Health.Health(cmd.Context()); err != nil {
				return fmt.Errorf("backend %s is unhealthy: %w", a.cfg.Service.APIURL, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), severityStyle("success").Render("ok")+" "+a.cfg.Service.APIURL)
			return nil
		},
	}
}
