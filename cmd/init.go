package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gnoswap-labs/formula/engine"
)

var force bool

// initCmd: formula init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile, force)
		if err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			os.Exit(1)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created: %s\n", path)
	},
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
}

func initConfigurationFile(configurationPath string, overwrite bool) (string, error) {
	if configurationPath == "" {
		configurationPath = engine.DefaultConfigFile
	}
	if _, err := os.Stat(configurationPath); err == nil && !overwrite {
		return "", fmt.Errorf("%s already exists, use --force to overwrite it", configurationPath)
	}

	config := engine.DefaultConfig()
	config.Name = "formula"
	if err := engine.WriteConfig(configurationPath, config); err != nil {
		return "", err
	}
	return configurationPath, nil
}
