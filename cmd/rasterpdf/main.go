// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rasterpdf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the rasterpdf CLI.
var rootCmd = &cobra.Command{
	Use:   "rasterpdf",
	Short: "Convert PDF documents into image-only PDFs",
	Long: `rasterpdf rasterizes every page of a PDF document and reassembles the
page images into a new PDF. The output looks identical to the source but
carries no text layer, defeating text and content extraction while
preserving visual appearance.

Rendering fidelity is selected per run with a quality tier (high, medium,
low); the profiles subcommand lists the tiers and their parameters.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rasterpdf.yaml or ~/.config/rasterpdf/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rasterpdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rasterpdf"))
		}
	}

	viper.SetEnvPrefix("RASTERPDF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
