package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iurnickita/creditorder/internal/auth"
	"github.com/iurnickita/creditorder/internal/config"
	"github.com/iurnickita/creditorder/internal/logger"
	"github.com/iurnickita/creditorder/internal/service"
	"github.com/iurnickita/creditorder/internal/service/apiclient"
)

// app - зависимости, собираемые из конфигурации перед запуском команды.
type app struct {
	cfg    config.Config
	zaplog *zap.Logger
	auth   auth.Auth
	svc    *service.Service
}

type rootFlags struct {
	apiURL   string
	token    string
	logLevel string
}

func (a *app) setup(flags rootFlags) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}
	if flags.apiURL != "" {
		cfg.Service.APIURL = flags.apiURL
	}
	if flags.token != "" {
		cfg.Auth.Token = flags.token
	}
	if flags.logLevel != "" {
		cfg.Logger.LogLevel = flags.logLevel
	}

	zaplog, err := logger.NewZapLog(cfg.Logger)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.zaplog = zaplog
	a.auth = auth.NewAuth(cfg.Auth)
	api := apiclient.NewAPIClient(cfg.Service.APIURL, cfg.Service.Timeout, a.auth, zaplog)
	a.svc = service.NewService(cfg.Service, api)
	return nil
}

func (a *app) close() {
	if a.zaplog != nil {
		a.zaplog.Sync()
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "creditorder",
		Short:         "Order entry against customer credit limits",
		Long:          "creditorder builds orders for a customer, checks them against the customer's available credit and submits them to the order backend.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(flags)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "Backend API base URL (overrides API_URL)")
	cmd.PersistentFlags().StringVar(&flags.token, "token", "", "Bearer token for the backend (overrides API_TOKEN)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")

	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newCatalogCmd(a))
	cmd.AddCommand(newCreditCmd(a))
	cmd.AddCommand(newOrderCmd(a))
	cmd.AddCommand(newHistoryCmd(a))
	cmd.AddCommand(newHealthCmd(a))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
