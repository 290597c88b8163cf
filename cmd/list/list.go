/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package list provides the list command for mimshak.
package list

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bennypowers.dev/mimshak/config"
	"bennypowers.dev/mimshak/dmf"
	"bennypowers.dev/mimshak/fs"
)

// Cmd is the list cobra command.
var Cmd = &cobra.Command{
	Use:   "list [files...]",
	Short: "List elements from interface files",
	Long:  `List categories and their elements from BYOND .dmf interface files with optional filtering and formatting.`,
	Args:  cobra.ArbitraryArgs,
	RunE:  run,
}

func init() {
	Cmd.Flags().String("kind", "", "Filter by category kind (macro, menu, window)")
	Cmd.Flags().String("type", "", "Filter by element type (LABEL, MAP, OUTPUT, ...)")
	Cmd.Flags().String("format", "table", "Output format: table, json, names")
}

// row is one listed element.
type row struct {
	File     string `json:"file"`
	Kind     string `json:"kind"`
	Category string `json:"category"`
	ID       string `json:"id,omitempty"`
	Type     string `json:"type,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	kindFilter, _ := cmd.Flags().GetString("kind")
	typeFilter, _ := cmd.Flags().GetString("type")
	format, _ := cmd.Flags().GetString("format")

	filesystem := fs.NewOSFileSystem()

	// Load config from .config/mimshak.{yaml,yml,json}
	cfg := config.LoadOrDefault(filesystem, ".")

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

	var rows []row
	for _, file := range files {
		doc, err := dmf.ParseFile(filesystem, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", file, err)
			continue
		}
		rows = append(rows, collectRows(doc, file)...)
	}

	rows = filterRows(rows, kindFilter, typeFilter)

	switch format {
	case "json":
		return outputJSON(os.Stdout, rows)
	case "names":
		outputNames(os.Stdout, rows)
		return nil
	default:
		outputTable(os.Stdout, rows)
		return nil
	}
}

// collectRows flattens a parsed document into listing rows, bucket by
// bucket: macrolists, menubars, windows, then unrecognized categories.
func collectRows(doc *dmf.Document, file string) []row {
	var rows []row
	for _, categories := range [][]*dmf.Record{doc.Macrolists, doc.Menubars, doc.Windows, doc.Unknown} {
		for _, category := range categories {
			for _, element := range category.Children("controls") {
				rows = append(rows, row{
					File:     file,
					Kind:     category.Type(),
					Category: category.ID(),
					ID:       element.ID(),
					Type:     element.Type(),
				})
			}
		}
	}
	return rows
}

// filterRows keeps rows matching the kind and type filters. Empty filters
// match everything; comparisons ignore case so "label" finds LABEL.
func filterRows(rows []row, kind, typ string) []row {
	if kind == "" && typ == "" {
		return rows
	}
	filtered := make([]row, 0, len(rows))
	for _, r := range rows {
		if kind != "" && !strings.EqualFold(r.Kind, kind) {
			continue
		}
		if typ != "" && !strings.EqualFold(r.Type, typ) {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func outputTable(w io.Writer, rows []row) {
	caser := cases.Title(language.English)
	var lastHeading string
	for _, r := range rows {
		heading := fmt.Sprintf("%s %q", caser.String(r.Kind), r.Category)
		if heading != lastHeading {
			if lastHeading != "" {
				fmt.Fprintln(w)
			}
			fmt.Fprintln(w, heading)
			lastHeading = heading
		}
		id := r.ID
		if id == "" {
			id = "-"
		}
		typ := r.Type
		if typ == "" {
			typ = "-"
		}
		fmt.Fprintf(w, "  %-24s %s\n", id, typ)
	}
}

func outputJSON(w io.Writer, rows []row) error {
	output := rows
	if output == nil {
		output = []row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputNames(w io.Writer, rows []row) {
	for _, r := range rows {
		if r.ID != "" {
			fmt.Fprintln(w, r.ID)
		}
	}
}
