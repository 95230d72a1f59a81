package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tm "github.com/buger/goterm"
	"github.com/eirsyl/shardadvisor/cmd/utils"
	"github.com/eirsyl/shardadvisor/pkg/sampler"
	"github.com/eirsyl/shardadvisor/pkg/usage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	utils.BoolConfig(nodesCmd, "watch", "w", false, "watch nodes")
	utils.DurationConfig(nodesCmd, "refresh", "", 10*time.Second, "refresh interval in watch mode")
	RootCmd.AddCommand(nodesCmd)
}

var nodesCmd = &cobra.Command{
	Use:     "nodes",
	Short:   "Display data node utilization",
	PreRunE: utils.BindFlags,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClusterClient()
		if err != nil {
			return err
		}
		s := sampler.New(client)

		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		nodes := func(clear bool) error {
			inventory, err := s.Inventory(ctx)
			if err != nil {
				return err
			}
			table, err := usage.Aggregate(inventory.Records, inventory.Nodes).Table()
			if err != nil {
				return err
			}

			if !clear {
				fmt.Fprintf(os.Stdout, "%s node utilization\n\n%s", viper.GetString("cluster"), table)
				return nil
			}

			tm.Clear()
			tm.MoveCursor(1, 1)
			if _, err = tm.Printf("%s node utilization, %s\n\n", viper.GetString("cluster"), inventory.TakenAt.Format(time.RFC3339)); err != nil {
				return err
			}
			if _, err = tm.Println(table); err != nil {
				return err
			}
			tm.Flush()
			return nil
		}

		if !viper.GetBool("watch") {
			return nodes(false)
		}

		for {
			if err := nodes(true); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(viper.GetDuration("refresh")):
			}
		}
	},
}
