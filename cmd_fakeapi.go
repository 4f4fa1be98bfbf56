package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/fakeapi"
)

var fakeAPICmd = &cobra.Command{
	Use:   "fake-api",
	Short: "Serve an in-memory storefront API with demo data",
	Long: `Serve an in-memory implementation of the storefront API on FAKE_API_ADDR
for local development. State is lost when the process exits. A bearer token
for order lookups is printed on startup.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			gin.SetMode(gin.ReleaseMode)
		}

		srv := fakeapi.New(
			fakeapi.WithLogger(logger.Named("fakeapi")),
			fakeapi.WithSecret(config.AppEnv.JWTSecret),
		)
		srv.Seed()

		token, err := srv.IssueToken(24 * time.Hour)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}

		httpSrv := &http.Server{
			Addr:              config.AppEnv.FakeAPIAddr,
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		logger.Info("fake api listening",
			zap.String("addr", httpSrv.Addr),
			zap.String("base_path", fakeapi.BasePath))
		fmt.Fprintf(cmd.OutOrStdout(), "API_TOKEN=%s\n", token)

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-cmd.Context().Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("fake api shutting down")
		return httpSrv.Shutdown(shutdownCtx)
	},
}
