/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package convert provides the convert command for mimshak.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"bennypowers.dev/mimshak/config"
	convertlib "bennypowers.dev/mimshak/convert"
	"bennypowers.dev/mimshak/dmf"
	"bennypowers.dev/mimshak/fs"
	"bennypowers.dev/mimshak/internal/logger"
)

// Cmd is the convert cobra command.
var Cmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert interface files to structured data",
	Long: `Convert BYOND .dmf interface definition files to JSON or YAML.

Each input file produces one output file named after the input with the
format's extension, unless the config or --output says otherwise.

Examples:
  # Convert one file to skin.json
  mimshak convert skin.dmf

  # Convert to YAML on stdout
  mimshak convert --format yaml -o - skin.dmf

  # Convert every file named in .config/mimshak.yaml
  mimshak convert

  # Re-convert whenever an input changes
  mimshak convert --watch interface/*.dmf`,
	Args: cobra.ArbitraryArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringP("output", "o", "", "Output file for a single input (default: derived from input; - for stdout)")
	Cmd.Flags().StringP("format", "f", "", "Output format: "+strings.Join(convertlib.ValidFormats(), ", "))
	Cmd.Flags().Int("indent", 0, "Spaces per JSON indentation level (default 4)")
	Cmd.Flags().BoolP("watch", "w", false, "Watch inputs and re-convert on change")
}

func run(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	formatFlag, _ := cmd.Flags().GetString("format")
	indentFlag, _ := cmd.Flags().GetInt("indent")
	watchFlag, _ := cmd.Flags().GetBool("watch")

	if viper.GetBool("quiet") {
		logger.SetOutput(io.Discard)
	}

	filesystem := fs.NewOSFileSystem()

	// Load config from .config/mimshak.{yaml,yml,json}
	cfg := config.LoadOrDefault(filesystem, ".")

	// Flag beats config beats the json default
	format := cfg.OutputFormat()
	if formatFlag != "" {
		var err error
		format, err = convertlib.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
	}

	indent := indentFlag
	if indent <= 0 {
		indent = cfg.Indent
	}
	opts := convertlib.Options{Indent: indent}

	// Use config files if no args provided
	var inputs []config.InputFile
	if len(args) == 0 {
		var err error
		inputs, err = cfg.ResolveInputs(filesystem, ".")
		if err != nil {
			return fmt.Errorf("error resolving config files: %w", err)
		}
	} else {
		for _, arg := range args {
			inputs = append(inputs, config.InputFile{Path: arg, Output: cfg.OutputFor(arg)})
		}
	}

	if len(inputs) == 0 {
		return fmt.Errorf("no files specified and no files found in config")
	}

	if output != "" && len(inputs) > 1 {
		return fmt.Errorf("--output requires exactly one input file, got %d", len(inputs))
	}
	if watchFlag && output == "-" {
		return fmt.Errorf("--watch cannot write to stdout")
	}

	if err := convertAll(filesystem, inputs, output, format, opts); err != nil {
		if !watchFlag {
			return err
		}
		// Watch mode keeps going; the next write may fix the input.
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}

	if watchFlag {
		return watch(filesystem, inputs, output, format, opts)
	}
	return nil
}

// convertAll converts every input, reporting failures as it goes. A failed
// file never aborts the rest of the batch.
func convertAll(filesystem fs.FileSystem, inputs []config.InputFile, output string, format convertlib.Format, opts convertlib.Options) error {
	var failures int
	for _, input := range inputs {
		if err := convertOne(filesystem, input, output, format, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", input.Path, err)
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("failed to convert %d file(s)", failures)
	}
	return nil
}

// convertOne parses, normalizes, serializes, and writes a single input.
func convertOne(filesystem fs.FileSystem, input config.InputFile, output string, format convertlib.Format, opts convertlib.Options) error {
	doc, err := dmf.ParseFile(filesystem, input.Path)
	if err != nil {
		return err
	}
	if err := doc.Normalize(); err != nil {
		return fmt.Errorf("failed to normalize %s: %w", input.Path, err)
	}

	data, err := convertlib.FormatDocument(doc, format, opts)
	if err != nil {
		return fmt.Errorf("failed to format %s: %w", input.Path, err)
	}

	target := resolveOutput(input, output, format)
	if target == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}

	if err := ensureDir(filesystem, target); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", target, err)
	}
	if err := filesystem.WriteFile(target, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	return nil
}

// resolveOutput picks the output path for an input: the --output flag wins,
// then the config's per-file output, then the derived default.
func resolveOutput(input config.InputFile, flagOutput string, format convertlib.Format) string {
	if flagOutput != "" {
		return flagOutput
	}
	if input.Output != "" {
		return input.Output
	}
	return derivedOutput(input.Path, format)
}

// derivedOutput swaps the input's extension for the format's.
func derivedOutput(path string, format convertlib.Format) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + format.Extension()
}

// ensureDir creates the parent directory for a file path if it doesn't exist.
func ensureDir(filesystem fs.FileSystem, path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return filesystem.MkdirAll(dir, 0755)
}

// watch re-converts inputs as they change, until interrupted.
func watch(filesystem fs.FileSystem, inputs []config.InputFile, output string, format convertlib.Format, opts convertlib.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]config.InputFile, len(inputs))
	for _, input := range inputs {
		if err := watcher.Add(input.Path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", input.Path, err)
		}
		watched[input.Path] = input
	}

	logger.Info("Watching %d file(s) for changes", len(inputs))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			input, known := watched[event.Name]
			if !known {
				continue
			}
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				// Editors often replace files on save; re-arm the watch.
				_ = watcher.Add(event.Name)
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := convertOne(filesystem, input, output, format, opts); err != nil {
				fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", input.Path, err)
				continue
			}
			logger.Info("Converted %s", input.Path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}
