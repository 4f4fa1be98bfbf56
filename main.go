package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/api"
	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/notify"
	"storefront/internal/shop"
)

var (
	apiURL  string
	token   string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront shopping client",
	Long: `storefront drives a shopping session against the storefront API:
browse the catalog, manage the cart and wishlist, keep addresses and
place orders. Every command loads the session state first.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()
		if apiURL != "" {
			config.AppEnv.APIURL = apiURL
		}
		if token != "" {
			config.AppEnv.APIToken = token
		}

		level := config.AppEnv.LogLevel
		if verbose {
			level = "debug"
		}
		var err error
		logger, err = logging.New(level)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (or set API_URL)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "bearer token for order lookups (or set API_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		stateCmd,
		productsCmd,
		productCmd,
		cartCmd,
		wishlistCmd,
		addressCmd,
		checkoutCmd,
		orderCmd,
		fakeAPICmd,
	)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newStore builds a store wired to the configured API. Notifications are
// printed to stderr as they are raised.
func newStore() *shop.Store {
	client := api.New(config.AppEnv.APIURL,
		api.WithHTTPClient(&http.Client{Timeout: config.AppEnv.RequestTimeout}),
		api.WithToken(config.AppEnv.APIToken),
		api.WithLogger(logger.Named("api")),
	)
	store := shop.New(client,
		shop.WithLogger(logger.Named("shop")),
		shop.WithAlertTTL(config.AppEnv.AlertTTL),
	)
	store.Alerts().Subscribe(func(n notify.Notification) {
		fmt.Fprintf(os.Stderr, "[%s] %s\n", n.Severity, n.Message)
	})
	return store
}

// withSession loads the session state and then runs fn. A failed initial
// load is already reported through notifications and does not stop fn.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, store *shop.Store) error) error {
	store := newStore()
	defer store.Close()

	ctx := cmd.Context()
	if err := store.LoadInitialState(ctx); err != nil {
		logger.Warn("initial load incomplete", zap.Error(err))
	}
	return fn(ctx, store)
}
