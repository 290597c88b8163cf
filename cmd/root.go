/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package cmd provides CLI commands for mimshak.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mimshak/cmd/convert"
	"bennypowers.dev/mimshak/cmd/lint"
	"bennypowers.dev/mimshak/cmd/list"
	"bennypowers.dev/mimshak/cmd/search"
	"bennypowers.dev/mimshak/cmd/version"
)

var rootCmd = &cobra.Command{
	Use:   "mimshak",
	Short: "Convert BYOND interface files to structured data",
	Long:  `mimshak parses BYOND .dmf interface definition files and converts them to JSON or YAML.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("strict", false, "Treat lint warnings as errors")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress informational output")

	// Flags are also settable as MIMSHAK_STRICT and MIMSHAK_QUIET.
	viper.SetEnvPrefix("MIMSHAK")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("strict", rootCmd.PersistentFlags().Lookup("strict"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	rootCmd.AddCommand(convert.Cmd)
	rootCmd.AddCommand(lint.Cmd)
	rootCmd.AddCommand(list.Cmd)
	rootCmd.AddCommand(search.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
