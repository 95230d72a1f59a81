package cmd

import (
	"fmt"

	"github.com/eirsyl/shardadvisor/pkg"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the shardadvisor version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("shardadvisor version %s (%s)\n", pkg.Version, pkg.BuildDate)
	},
}
