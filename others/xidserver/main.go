package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lzww0608/gxid"
	"github.com/Lzww0608/gxid/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	var addr string

	cmd := &cobra.Command{
		Use:   "xidserver",
		Short: "Serve gxid identifiers over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromEnv()

			cfg := gxid.DefaultConfig()
			cfg.Logger = logger
			handler := NewHandler(gxid.NewGeneratorWithConfig(cfg), logger)

			gin.SetMode(gin.ReleaseMode)
			engine := gin.New()
			engine.Use(gin.Recovery())
			handler.Setup(engine)

			srv := &http.Server{
				Addr:         addr,
				Handler:      engine,
				ReadTimeout:  10 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", slog.String("addr", addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
			defer stop()
			logger.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}

	defaultAddr := os.Getenv("GXID_HTTP_ADDR")
	if defaultAddr == "" {
		defaultAddr = ":8080"
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "HTTP listen address")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
