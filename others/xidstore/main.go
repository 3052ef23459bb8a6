package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/Lzww0608/gxid"
	"github.com/Lzww0608/gxid/internal/logging"
	"github.com/spf13/cobra"
)

func main() {
	var (
		driver  string
		dsn     string
		workers int
		perWork int
	)

	cmd := &cobra.Command{
		Use:   "xidstore",
		Short: "Insert gxid-keyed events concurrently and read them back in id order",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromEnv()
			ctx := cmd.Context()

			store, err := Open(driver, dsn)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.Init(ctx); err != nil {
				return fmt.Errorf("init schema: %w", err)
			}

			cfg := gxid.DefaultConfig()
			cfg.Logger = logger
			gen := gxid.NewGeneratorWithConfig(cfg)

			start := time.Now()
			var wg sync.WaitGroup
			for i := 0; i < workers; i++ {
				wg.Add(1)
				go func(worker int) {
					defer wg.Done()
					for j := 0; j < perWork; j++ {
						id, err := gen.New()
						if err != nil {
							logger.Error("generate", slog.Any("error", err))
							return
						}
						e := Event{ID: id, Name: "order-created", Payload: fmt.Sprintf("worker=%d seq=%d", worker, j)}
						if err := store.Insert(ctx, e); err != nil {
							logger.Error("insert", slog.String("id", id.String()), slog.Any("error", err))
						}
					}
				}(i)
			}
			wg.Wait()
			logger.Info("inserted events",
				slog.Int("count", workers*perWork), slog.Duration("elapsed", time.Since(start)))

			events, err := store.Since(ctx, start, 10)
			if err != nil {
				return err
			}
			for _, e := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s\n",
					e.ID, e.ID.Time().Format(time.RFC3339), e.Name, e.Payload)
			}
			return nil
		},
	}

	defaultDSN := os.Getenv("GXID_DSN")
	if defaultDSN == "" {
		defaultDSN = "file:xidstore.db"
	}
	cmd.Flags().StringVar(&driver, "driver", "sqlite3", "Database driver: sqlite3|mysql")
	cmd.Flags().StringVar(&dsn, "dsn", defaultDSN, "Data source name, e.g. user:pass@tcp(127.0.0.1:3306)/test_db for mysql")
	cmd.Flags().IntVar(&workers, "workers", 10, "Concurrent writers")
	cmd.Flags().IntVar(&perWork, "per-worker", 500, "Events per writer")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
