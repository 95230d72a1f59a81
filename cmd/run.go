package cmd

import (
	"fmt"

	"github.com/eirsyl/shardadvisor/cmd/utils"
	"github.com/eirsyl/shardadvisor/pkg"
	"github.com/eirsyl/shardadvisor/pkg/advisor"
	"github.com/eirsyl/shardadvisor/pkg/cache"
	"github.com/eirsyl/shardadvisor/pkg/cluster"
	"github.com/eirsyl/shardadvisor/pkg/runner"
	pkgutils "github.com/eirsyl/shardadvisor/pkg/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runFlags registers the flags describing an advisor run.
func runFlags(cmd *cobra.Command) {
	utils.DurationConfig(cmd, "interval", "i", pkg.DefaultSampleInterval, "time between the two shard snapshots")
	utils.IntConfig(cmd, "limit", "l", pkg.DefaultMoveLimit, "max number of moves to suggest, 0 means no moves (dedup uses --per-node)")
	utils.StringConfig(cmd, "method", "m", string(advisor.MethodLoad), "move determination method (load, dedup)")
	utils.BoolConfig(cmd, "nogather", "g", false, "do not collect shard activity, use a single snapshot")
	utils.BoolConfig(cmd, "cached", "", false, "reuse the sample stored in the cache by a previous run")
	utils.StringSliceConfig(cmd, "exclude", "x", nil, "node that must never be picked as destination, repeatable")
	utils.IntConfig(cmd, "per-node", "", pkg.DefaultPerNodeLimit, "max replicas of one index allowed per node")
	utils.StringConfig(cmd, "target", "", "", "host addressed by the printed reroute commands, defaults to --host, an explicit empty value addresses the destination node")
}

func clusterAddr() (string, int) {
	return pkgutils.GetHostPort(viper.GetString("host"), viper.GetInt("port"))
}

func newClusterClient() (*cluster.Client, error) {
	host, port := clusterAddr()
	return cluster.NewClient(host, port, viper.GetDuration("timeout"))
}

// targetHost returns the host the reroute commands address. An explicitly empty
// target makes every command address the destination node of its move.
func targetHost(host, target string, explicit bool) string {
	if target == "" && !explicit {
		return host
	}
	return target
}

func runConfig() (runner.Config, error) {
	method, err := advisor.ParseMethod(viper.GetString("method"))
	if err != nil {
		return runner.Config{}, err
	}

	limit := viper.GetInt("limit")
	if limit < 0 {
		return runner.Config{}, fmt.Errorf("The limit cannot be negative: %d", limit)
	}

	host, port := clusterAddr()
	target := targetHost(host, viper.GetString("target"), viper.IsSet("target"))

	return runner.Config{
		Cluster:    viper.GetString("cluster"),
		Interval:   viper.GetDuration("interval"),
		NoGather:   viper.GetBool("nogather"),
		Cached:     viper.GetBool("cached"),
		Limit:      limit,
		Method:     method,
		Options:    advisor.NewOptions(pkgutils.SplitList(viper.GetStringSlice("exclude")), viper.GetInt("per-node")),
		TargetHost: target,
		TargetPort: port,
	}, nil
}

// newRunner builds the runner and the optional cache. The caller closes the
// cache.
func newRunner() (*runner.Runner, cache.Store, error) {
	cfg, err := runConfig()
	if err != nil {
		return nil, nil, err
	}

	client, err := newClusterClient()
	if err != nil {
		return nil, nil, err
	}

	store, err := cache.Open(viper.GetString("cache"))
	if err != nil {
		return nil, nil, fmt.Errorf("Could not open sample cache: %v", err)
	}

	r, err := runner.NewRunner(client, store, cfg)
	if err != nil {
		if store != nil {
			_ = store.Close()
		}
		return nil, nil, err
	}
	return r, store, nil
}
