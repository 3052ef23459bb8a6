package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Lzww0608/gxid"
	"github.com/Lzww0608/gxid/internal/logging"
	"github.com/spf13/cobra"
)

func main() {
	var (
		dataDir string
		sync    bool
	)

	root := &cobra.Command{
		Use:   "xidlog",
		Short: "Append-only event log keyed by gxid identifiers",
	}
	root.PersistentFlags().StringVar(&dataDir, "data-dir", "xidlog-data", "Pebble data directory")
	root.PersistentFlags().BoolVar(&sync, "sync", true, "Fsync every append")

	open := func() (*Log, *slog.Logger, error) {
		logger := logging.FromEnv()
		cfg := gxid.DefaultConfig()
		cfg.Logger = logger
		l, err := Open(Options{DataDir: dataDir, Sync: sync}, gxid.NewGeneratorWithConfig(cfg))
		return l, logger, err
	}

	appendCmd := &cobra.Command{
		Use:   "append PAYLOAD...",
		Short: "Append one record per argument",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, logger, err := open()
			if err != nil {
				return err
			}
			defer l.Close()
			for _, a := range args {
				id, err := l.Append([]byte(a))
				if err != nil {
					return err
				}
				logger.Debug("appended", slog.String("id", id.String()))
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	var since time.Duration
	var limit int
	tailCmd := &cobra.Command{
		Use:   "tail",
		Short: "Print records created within --since",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := open()
			if err != nil {
				return err
			}
			defer l.Close()
			now := time.Now()
			// the upper bound is exclusive, so include the current second
			records, err := l.Range(now.Add(-since), now.Add(time.Second), limit)
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", r.ID, r.ID.Time().Format(time.RFC3339), r.Payload)
			}
			return nil
		},
	}
	tailCmd.Flags().DurationVar(&since, "since", time.Hour, "How far back to read")
	tailCmd.Flags().IntVar(&limit, "limit", 100, "Maximum records to print")

	root.AddCommand(appendCmd, tailCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
