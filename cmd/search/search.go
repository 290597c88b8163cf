/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package search provides the search command for mimshak.
package search

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"bennypowers.dev/mimshak/config"
	"bennypowers.dev/mimshak/dmf"
	"bennypowers.dev/mimshak/fs"
)

// Cmd is the search cobra command.
var Cmd = &cobra.Command{
	Use:   "search <query> [files...]",
	Short: "Search elements by id, type, or attribute value",
	Long:  `Search interface file elements by id, type, or attribute value with optional regex support.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func init() {
	Cmd.Flags().Bool("id", false, "Search ids only")
	Cmd.Flags().Bool("value", false, "Search attribute values only")
	Cmd.Flags().String("kind", "", "Filter by category kind (macro, menu, window)")
	Cmd.Flags().Bool("regex", false, "Query is a regex")
	Cmd.Flags().String("format", "table", "Output format: table, json, names")
}

// match is one search hit: a field of one record.
type match struct {
	File  string `json:"file"`
	Path  string `json:"path"`
	Field string `json:"field"`
	Value string `json:"value"`
}

func run(cmd *cobra.Command, args []string) error {
	query := args[0]
	files := args[1:]

	idOnly, _ := cmd.Flags().GetBool("id")
	valueOnly, _ := cmd.Flags().GetBool("value")
	kindFilter, _ := cmd.Flags().GetString("kind")
	useRegex, _ := cmd.Flags().GetBool("regex")
	format, _ := cmd.Flags().GetString("format")

	var pattern *regexp.Regexp
	var err error
	if useRegex {
		pattern, err = regexp.Compile(query)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
	}

	filesystem := fs.NewOSFileSystem()

	// Load config from .config/mimshak.{yaml,yml,json}
	cfg := config.LoadOrDefault(filesystem, ".")

	// Use config files if no files provided
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

	var matches []match
	for _, file := range files {
		doc, err := dmf.ParseFile(filesystem, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing %s: %v\n", file, err)
			continue
		}
		matches = append(matches, searchDoc(doc, file, query, pattern, idOnly, valueOnly, kindFilter)...)
	}

	switch format {
	case "json":
		return outputJSON(os.Stdout, matches)
	case "names":
		outputNames(os.Stdout, matches)
		return nil
	default:
		outputTable(os.Stdout, matches)
		return nil
	}
}

// searchDoc walks every record in document order and collects matching
// fields.
func searchDoc(doc *dmf.Document, file, query string, pattern *regexp.Regexp, idOnly, valueOnly bool, kind string) []match {
	var matches []match
	for _, categories := range [][]*dmf.Record{doc.Macrolists, doc.Menubars, doc.Windows, doc.Unknown} {
		for _, category := range categories {
			if kind != "" && !strings.EqualFold(category.Type(), kind) {
				continue
			}
			categoryPath := fmt.Sprintf("%s %s", category.Type(), describe(category, 0))
			matches = append(matches, searchRecord(file, categoryPath, category, query, pattern, idOnly, valueOnly)...)
			for i, element := range category.Children("controls") {
				path := categoryPath + " > " + describe(element, i)
				matches = append(matches, searchRecord(file, path, element, query, pattern, idOnly, valueOnly)...)
			}
		}
	}
	return matches
}

// searchRecord matches one record's id and scalar fields against the query.
func searchRecord(file, path string, record *dmf.Record, query string, pattern *regexp.Regexp, idOnly, valueOnly bool) []match {
	var matches []match

	if !valueOnly {
		if id := record.ID(); id != "" && matchString(id, query, pattern) {
			matches = append(matches, match{File: file, Path: path, Field: "id", Value: id})
		}
	}
	if idOnly {
		return matches
	}

	for _, field := range record.Keys() {
		if field == "id" {
			continue
		}
		v, _ := record.Get(field)
		s := valueString(v)
		if s == "" {
			continue
		}
		if matchString(s, query, pattern) {
			matches = append(matches, match{File: file, Path: path, Field: field, Value: s})
		}
	}

	return matches
}

func matchString(s, query string, pattern *regexp.Regexp) bool {
	if pattern != nil {
		return pattern.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}

// valueString renders a field value for matching and display. Child record
// lists are not searchable and render empty.
func valueString(v any) string {
	switch value := v.(type) {
	case nil:
		return "null"
	case string:
		return value
	case []*dmf.Record:
		return ""
	default:
		return fmt.Sprintf("%v", value)
	}
}

func describe(r *dmf.Record, index int) string {
	if id := r.ID(); id != "" {
		return id
	}
	return fmt.Sprintf("#%d", index+1)
}

func outputTable(w io.Writer, matches []match) {
	if len(matches) == 0 {
		return
	}

	// Calculate column widths
	pathWidth := 4
	fieldWidth := 5
	for _, m := range matches {
		if len(m.Path) > pathWidth {
			pathWidth = len(m.Path)
		}
		if len(m.Field) > fieldWidth {
			fieldWidth = len(m.Field)
		}
	}

	for _, m := range matches {
		fmt.Fprintf(w, "%-*s  %-*s  %s\n", pathWidth, m.Path, fieldWidth, m.Field, m.Value)
	}
}

func outputJSON(w io.Writer, matches []match) error {
	output := matches
	if output == nil {
		output = []match{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

func outputNames(w io.Writer, matches []match) {
	seen := make(map[string]bool)
	for _, m := range matches {
		if seen[m.Path] {
			continue
		}
		seen[m.Path] = true
		fmt.Fprintln(w, m.Path)
	}
}
