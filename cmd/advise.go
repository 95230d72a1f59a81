package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/eirsyl/shardadvisor/cmd/utils"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	runFlags(adviseCmd)
	utils.StringConfig(adviseCmd, "output", "o", "text", "output format (text, json)")
	RootCmd.AddCommand(adviseCmd)
}

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Sample shard activity and suggest shard moves",
	Long: `
Collects shard activity, determines the top shards to move from the busiest
nodes and prints the reroute commands.

  shardadvisor advise
      all defaults, sample activity for a minute and suggest 5 moves.

  shardadvisor advise -g -l 0
      only collect node load and the current shard list, print node
      utilization and do no move calculations.

  shardadvisor advise -m dedup --per-node 1
      report nodes that carry more than one replica of the same index.
`,
	PreRunE: utils.BindFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		output := viper.GetString("output")
		if output != "text" && output != "json" {
			return fmt.Errorf("Unknown output format %q", output)
		}
		if output == "json" {
			// Keep stdout machine readable
			log.SetOutput(os.Stderr)
		}

		r, store, err := newRunner()
		if err != nil {
			return err
		}
		if store != nil {
			defer func() {
				if err := store.Close(); err != nil {
					log.Warnf("Could not close sample cache: %v", err)
				}
			}()
		}

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		report, err := r.Run(ctx)
		if err != nil {
			return err
		}

		if output == "json" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		if len(report.Suggestions) == 0 && len(report.Duplicates) == 0 {
			log.Info("No shard moves suggested")
		}
		return nil
	},
}
