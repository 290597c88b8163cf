/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lint provides the lint command for mimshak.
package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mimshak/config"
	"bennypowers.dev/mimshak/dmf"
	"bennypowers.dev/mimshak/fs"
	lintlib "bennypowers.dev/mimshak/lint"
)

// Cmd is the lint cobra command.
var Cmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Check interface files for problems",
	Long: `Check BYOND .dmf interface files for problems that parse cleanly but
produce surprising output: unknown category kinds, duplicate or missing
control ids, and illegible or unparseable colors.`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().String("format", "text", "Output format: text, json")
}

func run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	quiet := viper.GetBool("quiet")

	filesystem := fs.NewOSFileSystem()

	// Load config from .config/mimshak.{yaml,yml,json}
	cfg := config.LoadOrDefault(filesystem, ".")
	strict := viper.GetBool("strict") || cfg.Strict

	// Use config files if no args provided
	files := args
	if len(files) == 0 {
		expanded, err := cfg.ExpandFiles(filesystem, ".")
		if err != nil {
			return fmt.Errorf("error expanding config files: %w", err)
		}
		files = expanded
	}

	if len(files) == 0 {
		return fmt.Errorf("no files specified and no files found in config")
	}

	var warnings []lintlib.Warning
	hasErrors := false

	for _, file := range files {
		doc, err := dmf.ParseFile(filesystem, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", file, err)
			hasErrors = true
			continue
		}
		warnings = append(warnings, lintlib.Check(doc, file)...)
	}

	switch format {
	case "json":
		if err := outputJSON(os.Stdout, warnings); err != nil {
			return err
		}
	default:
		outputText(os.Stdout, warnings)
		if !quiet {
			if len(warnings) == 0 {
				fmt.Println("All files clean.")
			} else {
				fmt.Printf("%d warning(s) in %d file(s)\n", len(warnings), len(files))
			}
		}
	}

	if hasErrors {
		return fmt.Errorf("lint failed")
	}
	if strict && len(warnings) > 0 {
		return fmt.Errorf("%d warning(s) treated as errors", len(warnings))
	}
	return nil
}

func outputText(w io.Writer, warnings []lintlib.Warning) {
	for i := range warnings {
		fmt.Fprintln(w, warnings[i].Error())
	}
}

func outputJSON(w io.Writer, warnings []lintlib.Warning) error {
	type warningOutput struct {
		File       string `json:"file"`
		Path       string `json:"path,omitempty"`
		Message    string `json:"message"`
		Suggestion string `json:"suggestion,omitempty"`
	}

	output := make([]warningOutput, 0, len(warnings))
	for _, warning := range warnings {
		output = append(output, warningOutput{
			File:       warning.FilePath,
			Path:       warning.Path,
			Message:    warning.Message,
			Suggestion: warning.Suggestion,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
