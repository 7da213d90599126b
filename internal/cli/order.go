package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iurnickita/creditorder/internal/format"
	"github.com/iurnickita/creditorder/internal/orderform"
	"github.com/iurnickita/creditorder/internal/store"
)

type itemArg struct {
	productID int64
	quantity  int
}

// parseItem разбирает "produto:quantidade"; без количества - 1.
func parseItem(s string) (itemArg, error) {
	idPart, qtyPart, hasQty := strings.Cut(s, ":")
	id, err := strconv.ParseInt(strings.TrimSpace(idPart), 10, 64)
	if err != nil || id <= 0 {
		return itemArg{}, fmt.Errorf("invalid product id in %q", s)
	}
	quantity := 1
	if hasQty {
		quantity, err = strconv.Atoi(strings.TrimSpace(qtyPart))
		if err != nil || quantity <= 0 {
			return itemArg{}, fmt.Errorf("invalid quantity in %q", s)
		}
	}
	return itemArg{productID: id, quantity: quantity}, nil
}

type orderLine struct {
	name     string
	quantity int
	price    decimal.Decimal
	subtotal decimal.Decimal
}

func newOrderCmd(a *app) *cobra.Command {
	var (
		customerID int64
		items      []string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:     "order",
		Short:   "Build an order and submit it for credit approval",
		Long:    "Load the catalog, select the customer, add every --item and submit the order. The backend approves or rejects it against the customer's available credit.",
		Example: "  creditorder order --cliente 1 --item 10:3 --item 11",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if customerID <= 0 {
				return fmt.Errorf("invalid customer id %d", customerID)
			}

			parsed := make([]itemArg, 0, len(items))
			for _, s := range items {
				item, err := parseItem(s)
				if err != nil {
					return err
				}
				parsed = append(parsed, item)
			}

			var journal orderform.Journal
			if a.cfg.Store.DBDsn != "" && !dryRun {
				st, err := store.NewStore(a.cfg.Store)
				if err != nil {
					return fmt.Errorf("opening journal: %w", err)
				}
				defer st.Close()
				journal = st
			}

			controller := orderform.NewController(a.svc, journal, nil, a.zaplog)
			if err := controller.Load(ctx); err != nil {
				return errors.New(controller.State().Message.Text)
			}

			if err := controller.SelectCustomer(ctx, customerID); err != nil {
				if errors.Is(err, orderform.ErrUnknownCustomer) {
					return fmt.Errorf("customer %d not found", customerID)
				}
				return err
			}
			for _, item := range parsed {
				if _, err := controller.Add(item.productID, item.quantity); err != nil {
					return fmt.Errorf("product %d: %w", item.productID, err)
				}
			}

			view := controller.State()
			if view.Customer == nil {
				return fmt.Errorf("customer %d not selected", customerID)
			}
			lines := make([]orderLine, 0, len(view.Items))
			for _, item := range view.Items {
				lines = append(lines, orderLine{
					name:     item.Product.Nome,
					quantity: item.Quantidade,
					price:    item.Product.Preco,
					subtotal: item.Subtotal,
				})
			}
			fmt.Fprintln(out, titleStyle.Render(view.Customer.Nome))
			fmt.Fprint(out, renderDraft(lines, view.Total))
			fmt.Fprintln(out, "Saldo disponível: "+format.FormatCurrency(view.Credit.Available)+
				"  Utilização: "+severityStyle(view.UtilizationLevel).Render(format.FormatPercent(view.Utilization)))
			if !view.CreditCovers {
				fmt.Fprintln(out, severityStyle("warning").Render("Saldo insuficiente para este pedido"))
			}
			if dryRun {
				return nil
			}

			_, err := controller.Submit(ctx)
			fmt.Fprint(out, "\n"+renderMessage(controller.State().Message))
			return err
		},
	}

	cmd.Flags().Int64Var(&customerID, "cliente", 0, "Customer id")
	cmd.Flags().StringArrayVar(&items, "item", nil, "Product and quantity as id:qty (repeatable)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the draft without submitting")
	cmd.MarkFlagRequired("cliente")
	cmd.MarkFlagRequired("item")

	return cmd
}
