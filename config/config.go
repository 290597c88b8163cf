/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package config provides configuration loading for interface file tooling.
package config

import (
	"encoding/json"

	"gopkg.in/yaml.v3"

	"bennypowers.dev/mimshak/convert"
)

// Config represents the interface conversion configuration.
type Config struct {
	// Files specifies interface files to convert (paths or specs).
	Files []FileSpec `yaml:"files" json:"files"`

	// Format is the default output format.
	// Valid values: "json", "yaml"
	Format string `yaml:"format" json:"format"`

	// Indent is the number of spaces per JSON indentation level.
	Indent int `yaml:"indent" json:"indent"`

	// Strict promotes lint warnings to errors.
	Strict bool `yaml:"strict" json:"strict"`
}

// FileSpec represents an interface file specification.
// It can be specified as a simple string path or as an object with overrides.
type FileSpec struct {
	// Path is the file path (supports globs).
	Path string `yaml:"path" json:"path"`

	// Output overrides the derived output path for this file.
	Output string `yaml:"output" json:"output"`
}

// UnmarshalYAML handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		f.Path = node.Value
		return nil
	}

	type rawFileSpec FileSpec
	return node.Decode((*rawFileSpec)(f))
}

// UnmarshalJSON handles both string and object forms for FileSpec.
func (f *FileSpec) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Path = s
		return nil
	}

	type rawFileSpec FileSpec
	return json.Unmarshal(data, (*rawFileSpec)(f))
}

// Default returns a config with default values.
func Default() *Config {
	return &Config{
		Files:  nil,
		Format: "",
		Indent: 0,
		Strict: false,
	}
}

// OutputFormat returns the parsed output format from the Format field.
// Returns convert.FormatJSON if the field is empty or invalid.
func (c *Config) OutputFormat() convert.Format {
	if c.Format == "" {
		return convert.FormatJSON
	}
	f, err := convert.ParseFormat(c.Format)
	if err != nil {
		return convert.FormatJSON
	}
	return f
}

// OutputFor returns the configured output path for an input path.
// Returns the empty string when no spec names the path.
func (c *Config) OutputFor(path string) string {
	for _, spec := range c.Files {
		if spec.Path == path {
			return spec.Output
		}
	}
	return ""
}
