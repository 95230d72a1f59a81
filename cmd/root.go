package cmd

import (
	"fmt"
	"os"

	"github.com/eirsyl/shardadvisor/cmd/utils"
	"github.com/eirsyl/shardadvisor/pkg"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	utils.PersistentBoolConfig(RootCmd, "debug", "d", false, "enable debug mode")
	utils.PersistentStringConfig(RootCmd, "config", "", "", "optional config file (yaml, json or toml)")
	utils.PersistentStringConfig(RootCmd, "host", "H", "localhost", "cluster host to query, host:port is accepted")
	utils.PersistentIntConfig(RootCmd, "port", "P", pkg.DefaultClusterPort, "cluster HTTP API port")
	utils.PersistentDurationConfig(RootCmd, "timeout", "", pkg.DefaultRequestTimeout, "timeout of every cluster request")
	utils.PersistentStringConfig(RootCmd, "cluster", "c", "Production", "name of the cluster the report is for")
	utils.PersistentStringConfig(RootCmd, "cache", "", "", "sample cache, bolt:///path/file.db or redis://host:port/db")
}

var shortDescription = "Shardadvisor suggests shard relocations that even out load in your search cluster."

// RootCmd is the main entrypoint for the CLI application.
var RootCmd = &cobra.Command{
	Use:          "shardadvisor",
	Short:        shortDescription,
	Version:      fmt.Sprintf("%s %s", pkg.Version, pkg.BuildDate),
	SilenceUsage: true,
	Long: `
Shardadvisor samples shard activity of an Elasticsearch cluster, reports how
documents, shards and disk space are spread over the data nodes and proposes
shard moves from the busiest nodes to the least loaded ones. It never executes
a move, the reroute commands are printed for an operator to review.
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if viper.GetBool("debug") {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.InfoLevel)
		}

		if file := viper.GetString("config"); file != "" {
			viper.SetConfigFile(file)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("Could not read config file: %v", err)
			}
			log.Debugf("Using config file %s", viper.ConfigFileUsed())
		}

		utils.PrintHeader(os.Stderr, shortDescription)
		return nil
	},
}
