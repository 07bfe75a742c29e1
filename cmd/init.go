package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gnolang/anthem/internal/verify"
)

// initCmd: anthem init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := initConfigurationFile(cfgFile)
		if err != nil {
			fail("Error initializing config file", err)
		}
		fmt.Printf("Configuration file created/updated: %s\n", path)
	},
}

// initConfigurationFile writes the default configuration to path, or to the
// default location when path is empty, and returns the path written.
func initConfigurationFile(path string) (string, error) {
	if path == "" {
		path = verify.DefaultConfigPath
	}
	if err := verify.WriteDefaultConfig(path); err != nil {
		return path, err
	}
	return path, nil
}
