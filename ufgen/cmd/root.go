// Package cmd implements the commands for the ufgen executable.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	cmdCommon "github.com/ufbench/ufgen/ufgen/cmd/common"
	"github.com/ufbench/ufgen/ufgen/cmd/gen"
	"github.com/ufbench/ufgen/ufgen/cmd/inspect"
)

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:     "ufgen",
		Short:   "Union-Find benchmark workload generator",
		Version: "0.1.0",
	}
)

// Execute spawns the main entry point after handling the config file
// and command line arguments.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cmdCommon.EarlyLogAndExit(err)
	}
}

func initConfig() {
	if cfgFile != "" {
		// Read the config file if one is provided, otherwise it is
		// assumed that the combination of default values, command
		// line flags and env vars is sufficient.
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			cmdCommon.EarlyLogAndExit(err)
		}
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags common across all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().AddFlagSet(cmdCommon.LoggingFlags)

	// Register all of the sub-commands.
	gen.Register(rootCmd)
	inspect.Register(rootCmd)
}
