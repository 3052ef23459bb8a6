package main

import (
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Lzww0608/gxid"
	"github.com/Lzww0608/gxid/internal/logging"
	"github.com/go-zookeeper/zk"
	"github.com/spf13/cobra"
)

// NOTE: This program requires a ZooKeeper server, e.g.
// docker run --name some-zookeeper -p 2181:2181 -d zookeeper

func main() {
	var (
		servers string
		service string
		node    string
		count   int
	)

	cmd := &cobra.Command{
		Use:   "xidzk",
		Short: "Generate ids with a machine id registered in ZooKeeper",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.FromEnv()

			conn, _, err := zk.Connect(strings.Split(servers, ","), 5*time.Second)
			if err != nil {
				return fmt.Errorf("connect zk failed: %w", err)
			}
			defer conn.Close()

			cacheFile := fmt.Sprintf(".gxid_cache_%s", strings.NewReplacer(":", "_", "/", "_").Replace(node))
			probe := NewZKProbe(conn, service, node, cacheFile)
			probe.Logger = logger

			cfg := gxid.DefaultConfig()
			cfg.Logger = logger
			// the registered token comes first; the host probes remain as fallbacks
			cfg.Probes = append([]gxid.MachineProbe{probe}, cfg.Probes...)
			gen := gxid.NewGeneratorWithConfig(cfg)
			logger.Info("generator initialized",
				slog.String("node", probe.Name()),
				slog.String("machine", hex.EncodeToString(gen.Machine())))

			for i := 0; i < count; i++ {
				id, err := gen.New()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	defaultServers := os.Getenv("GXID_ZK")
	if defaultServers == "" {
		defaultServers = "127.0.0.1:2181"
	}
	host, _ := os.Hostname()
	cmd.Flags().StringVar(&servers, "zk", defaultServers, "Comma separated ZooKeeper servers")
	cmd.Flags().StringVar(&service, "service", "order-service", "Service name")
	cmd.Flags().StringVar(&node, "node", host+":8080", "Node name within the service")
	cmd.Flags().IntVarP(&count, "count", "n", 10, "Number of identifiers to print")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
