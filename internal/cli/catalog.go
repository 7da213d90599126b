package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iurnickita/creditorder/internal/model"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newCatalogCmd(a *app) *cobra.Command {
	var (
		jsonOutput bool
		search     string
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List customers and products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var (
				customers model.Page[model.Customer]
				products  model.Page[model.Product]
			)

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() (err error) {
				if search != "" {
					customers, err = a.svc.Customers.Search(gctx, search, 0, a.svc.ListSize)
					return err
				}
				customers, err = a.svc.Customers.List(gctx, 0, a.svc.ListSize)
				return err
			})
			g.Go(func() (err error) {
				if search != "" {
					products, err = a.svc.Products.Search(gctx, search, 0, a.svc.ListSize)
					return err
				}
				products, err = a.svc.Products.List(gctx, 0, a.svc.ListSize)
				return err
			})
			if err := g.Wait(); err != nil {
				return fmt.Errorf("loading catalog: %w", err)
			}

			if jsonOutput {
				return writeJSON(cmd, map[string]any{
					"clientes": customers.Content,
					"produtos": products.Content,
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), renderCatalog(customers.Content, products.Content))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().StringVar(&search, "search", "", "Filter customers and products by name")

	return cmd
}
