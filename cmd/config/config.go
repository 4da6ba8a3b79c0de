// Package config wires viper configuration into the CLI and constructs
// the library the commands operate on.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notehaven/notehaven/pkg/library"
)

var (
	cfgFile string
	verbose bool
)

// InitConfig loads the config file and environment. Commands call it
// at the top of their RunE.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "nhv")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("NHV")

	// Set defaults
	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "nhv"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("listen_addr", "127.0.0.1:9115")

	// A missing config file is fine, defaults apply.
	_ = viper.ReadInConfig()
}

// Logger builds the CLI logger. Quiet unless --verbose is set.
func Logger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// OpenLibrary opens the library at the configured data directory.
func OpenLibrary() (*library.Library, error) {
	dataDir := viper.GetString("data_dir")
	lib, err := library.Open(dataDir, Logger())
	if err != nil {
		return nil, fmt.Errorf("open library at %s: %w", dataDir, err)
	}
	return lib, nil
}

// Editor returns the configured editor command, possibly empty.
func Editor() string {
	return viper.GetString("editor")
}

// ListenAddr returns the address the web view listens on.
func ListenAddr() string {
	return viper.GetString("listen_addr")
}

func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/nhv/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
