package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iurnickita/creditorder/internal/connectivity"
	"github.com/iurnickita/creditorder/internal/handler"
	"github.com/iurnickita/creditorder/internal/orderform"
	"github.com/iurnickita/creditorder/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the order form as a local JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Handler.ServerAddr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var journal orderform.Journal
			if a.cfg.Store.DBDsn != "" {
				st, err := store.NewStore(a.cfg.Store)
				if err != nil {
					return err
				}
				defer st.Close()
				journal = st
			}

			notifications := handler.NewNotifications(0)
			controller := orderform.NewController(a.svc, journal, notifications, a.zaplog)

			watcher, err := connectivity.NewWatcher(a.cfg.Connectivity, a.cfg.Service.APIURL, controller.SetOnline, a.zaplog)
			if err != nil {
				return err
			}

			// первичная загрузка; при ошибке форма доступна, повтор через /api/form/reload
			if err := controller.Load(ctx); err != nil {
				a.zaplog.Warn("initial load failed", zap.Error(err))
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				err := watcher.Run(gctx)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			})
			g.Go(func() error {
				return handler.Serve(gctx, a.cfg.Handler, controller, notifications, a.zaplog)
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides SERVER_ADDRESS)")

	return cmd
}
