package utils

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	log "github.com/sirupsen/logrus"
)

// EnvPrefix is prepended to the environment variable of every flag.
const EnvPrefix = "SHARDADVISOR_"

func envName(name string) string {
	return EnvPrefix + strings.ToUpper(strings.Replace(name, "-", "_", -1))
}

func bindEnv(name string) {
	if err := viper.BindEnv(name, envName(name)); err != nil {
		log.Warnf("Could not bind viper value to env: %v", err)
	}
}

func bindFlag(name string, flag *pflag.Flag) {
	if err := viper.BindPFlag(name, flag); err != nil {
		log.Warnf("Could not bind flag to viper: %v", err)
	}
	bindEnv(name)
}

// PersistentStringConfig adds a string flag shared by every sub command.
func PersistentStringConfig(cmd *cobra.Command, name, short, value, description string) {
	cmd.PersistentFlags().StringP(name, short, value, description)
	bindFlag(name, cmd.PersistentFlags().Lookup(name))
}

// PersistentIntConfig adds an int flag shared by every sub command.
func PersistentIntConfig(cmd *cobra.Command, name, short string, value int, description string) {
	cmd.PersistentFlags().IntP(name, short, value, description)
	bindFlag(name, cmd.PersistentFlags().Lookup(name))
}

// PersistentBoolConfig adds a bool flag shared by every sub command.
func PersistentBoolConfig(cmd *cobra.Command, name, short string, value bool, description string) {
	cmd.PersistentFlags().BoolP(name, short, value, description)
	bindFlag(name, cmd.PersistentFlags().Lookup(name))
}

// PersistentDurationConfig adds a duration flag shared by every sub command.
func PersistentDurationConfig(cmd *cobra.Command, name, short string, value time.Duration, description string) {
	cmd.PersistentFlags().DurationP(name, short, value, description)
	bindFlag(name, cmd.PersistentFlags().Lookup(name))
}

/**
 * The local flag helpers only register the flag. Several commands use the
 * same flag names, the flags are bound to viper by BindFlags once cobra has
 * picked the command to execute.
 */

// StringConfig adds a string flag to a cli
func StringConfig(cmd *cobra.Command, name, short, value, description string) {
	cmd.Flags().StringP(name, short, value, description)
}

// BoolConfig adds a bool flag to a cli
func BoolConfig(cmd *cobra.Command, name, short string, value bool, description string) {
	cmd.Flags().BoolP(name, short, value, description)
}

// IntConfig adds an int flag to a cli
func IntConfig(cmd *cobra.Command, name, short string, value int, description string) {
	cmd.Flags().IntP(name, short, value, description)
}

// DurationConfig adds a duration flag to a cli
func DurationConfig(cmd *cobra.Command, name, short string, value time.Duration, description string) {
	cmd.Flags().DurationP(name, short, value, description)
}

// StringSliceConfig adds a repeatable string flag to a cli
func StringSliceConfig(cmd *cobra.Command, name, short string, value []string, description string) {
	cmd.Flags().StringSliceP(name, short, value, description)
}

// BindFlags binds the local flags of the executed command to viper and env.
// It is used as PreRunE.
func BindFlags(cmd *cobra.Command, args []string) error {
	var err error
	cmd.LocalNonPersistentFlags().VisitAll(func(flag *pflag.Flag) {
		if err != nil {
			return
		}
		if err = viper.BindPFlag(flag.Name, flag); err == nil {
			err = viper.BindEnv(flag.Name, envName(flag.Name))
		}
	})
	return err
}
