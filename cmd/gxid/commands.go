package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/Lzww0608/gxid"
	"github.com/Lzww0608/gxid/internal/logging"
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:           "gxid",
		Short:         "Generate and inspect gxid identifiers",
		Long:          "gxid prints new 20 character k-ordered identifiers and decodes existing ones.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", os.Getenv(logging.EnvLevel), "Log level: debug|info|warn|error")
	root.PersistentFlags().StringVar(&logFormat, "log-format", os.Getenv(logging.EnvFormat), "Log format: text|json")

	newLogger := func(cmd *cobra.Command) (*slog.Logger, error) {
		return logging.New(cmd.ErrOrStderr(), logLevel, logFormat)
	}

	root.AddCommand(newNewCommand(newLogger))
	root.AddCommand(newInspectCommand())
	return root
}

func newNewCommand(newLogger func(*cobra.Command) (*slog.Logger, error)) *cobra.Command {
	var (
		count  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Print new identifiers, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			encode, err := encoder(format)
			if err != nil {
				return err
			}
			logger, err := newLogger(cmd)
			if err != nil {
				return err
			}

			cfg := gxid.DefaultConfig()
			cfg.Logger = logger
			gen := gxid.NewGeneratorWithConfig(cfg)
			logger.Debug("generator ready",
				slog.String("machine", hex.EncodeToString(gen.Machine())),
				slog.Uint64("pid", uint64(gen.Pid())))

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				id, err := gen.New()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, encode(id))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of identifiers to print")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text|hex")
	return cmd
}

func encoder(format string) (func(gxid.ID) string, error) {
	switch format {
	case "text":
		return gxid.ID.String, nil
	case "hex":
		return gxid.ID.EncodeToHex, nil
	default:
		return nil, fmt.Errorf("invalid --format %q; use text|hex", format)
	}
}

// details is the inspect output for one identifier
type details struct {
	ID      string `json:"id"`
	Hex     string `json:"hex"`
	Time    string `json:"time"`
	Machine string `json:"machine"`
	Pid     uint16 `json:"pid"`
	Counter uint32 `json:"counter"`
}

func describe(id gxid.ID) details {
	return details{
		ID:      id.String(),
		Hex:     id.EncodeToHex(),
		Time:    id.Time().UTC().Format(time.RFC3339),
		Machine: hex.EncodeToString(id.Machine()),
		Pid:     id.Pid(),
		Counter: id.Counter(),
	}
}

func newInspectCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "inspect ID...",
		Aliases: []string{"decode"},
		Short:   "Decode identifiers and print their fields",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				id, err := gxid.Decode(arg)
				if err != nil {
					return err
				}
				if err := printDetails(out, describe(id), asJSON); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON object per identifier")
	return cmd
}

func printDetails(w io.Writer, d details, asJSON bool) error {
	if asJSON {
		return json.NewEncoder(w).Encode(d)
	}
	_, err := fmt.Fprintf(w, "id:      %s\nhex:     %s\ntime:    %s\nmachine: %s\npid:     %d\ncounter: %d\n",
		d.ID, d.Hex, d.Time, d.Machine, d.Pid, d.Counter)
	return err
}
