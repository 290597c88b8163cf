/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package lint provides consistency checks for parsed interface files.
package lint

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"bennypowers.dev/mimshak/dmf"
)

// contrastFloor is the Lab distance below which a text/background color
// pair is reported as indistinguishable.
const contrastFloor = 0.1

// Warning represents a lint finding.
type Warning struct {
	// FilePath is the path to the file containing the finding.
	FilePath string
	// Path locates the record within the file.
	Path string
	// Message describes what's wrong.
	Message string
	// Suggestion provides an actionable fix.
	Suggestion string
}

// Error implements the error interface.
func (w *Warning) Error() string {
	var sb strings.Builder
	if w.FilePath != "" {
		sb.WriteString(w.FilePath)
		sb.WriteString(": ")
	}
	if w.Path != "" {
		sb.WriteString(w.Path)
		sb.WriteString(": ")
	}
	sb.WriteString(w.Message)
	if w.Suggestion != "" {
		sb.WriteString(" (")
		sb.WriteString(w.Suggestion)
		sb.WriteString(")")
	}
	return sb.String()
}

// Check runs all lint rules over a parsed (not normalized) document and
// returns the findings in file order.
func Check(doc *dmf.Document, filePath string) []Warning {
	var warnings []Warning

	warnings = append(warnings, checkUnknownKinds(doc, filePath)...)
	for _, window := range doc.Windows {
		warnings = append(warnings, checkWindow(window, filePath)...)
	}
	for _, category := range append(append([]*dmf.Record{}, doc.Macrolists...), doc.Menubars...) {
		warnings = append(warnings, checkColors(category, filePath)...)
	}

	return warnings
}

// checkUnknownKinds reports categories whose kind maps to no output
// section; they parse but are dropped from converted output.
func checkUnknownKinds(doc *dmf.Document, filePath string) []Warning {
	var warnings []Warning
	for i, category := range doc.Unknown {
		warnings = append(warnings, Warning{
			FilePath:   filePath,
			Path:       describe(category, i),
			Message:    fmt.Sprintf("unknown category kind %q will be dropped from output", category.Type()),
			Suggestion: "expected macro, menu, or window",
		})
	}
	return warnings
}

// checkWindow reports duplicate and missing control ids, plus color
// problems on every element.
func checkWindow(window *dmf.Record, filePath string) []Warning {
	var warnings []Warning

	seen := make(map[string]bool)
	for i, element := range window.Children("controls") {
		path := recordPath(window, element, i)

		id := element.ID()
		switch {
		case id == "" && i > 0:
			warnings = append(warnings, Warning{
				FilePath:   filePath,
				Path:       path,
				Message:    "control has no id",
				Suggestion: "unnamed controls cannot be addressed by winset commands",
			})
		case id != "" && seen[id]:
			warnings = append(warnings, Warning{
				FilePath: filePath,
				Path:     path,
				Message:  fmt.Sprintf("duplicate control id %q", id),
			})
		}
		if id != "" {
			seen[id] = true
		}

		warnings = append(warnings, checkElementColors(element, window, i, filePath)...)
	}

	return warnings
}

// checkColors walks a non-window category's elements for color problems.
func checkColors(category *dmf.Record, filePath string) []Warning {
	var warnings []Warning
	for i, element := range category.Children("controls") {
		warnings = append(warnings, checkElementColors(element, category, i, filePath)...)
	}
	return warnings
}

// checkElementColors validates every color-valued field on an element and
// compares text and background colors for legibility.
func checkElementColors(element, parent *dmf.Record, index int, filePath string) []Warning {
	var warnings []Warning
	path := recordPath(parent, element, index)

	parsed := make(map[string]csscolorparser.Color)
	for _, field := range element.Keys() {
		if !isColorField(field) {
			continue
		}
		v, _ := element.Get(field)
		raw, ok := v.(string)
		if !ok || raw == "" {
			// none coerces to nil; an unset color is not a finding.
			continue
		}
		color, err := csscolorparser.Parse(raw)
		if err != nil {
			warnings = append(warnings, Warning{
				FilePath:   filePath,
				Path:       path,
				Message:    fmt.Sprintf("%s value %q is not a valid color", field, raw),
				Suggestion: "use #rrggbb or a CSS color name",
			})
			continue
		}
		parsed[field] = color
	}

	text, hasText := parsed["text_color"]
	background, hasBackground := parsed["background_color"]
	if hasText && hasBackground {
		distance := labColor(text).DistanceLab(labColor(background))
		if distance < contrastFloor {
			warnings = append(warnings, Warning{
				FilePath:   filePath,
				Path:       path,
				Message:    fmt.Sprintf("text_color %q and background_color %q are nearly identical", text.HexString(), background.HexString()),
				Suggestion: "increase the contrast between text and background",
			})
		}
	}

	return warnings
}

func isColorField(name string) bool {
	return name == "color" || strings.HasSuffix(name, "_color")
}

func labColor(c csscolorparser.Color) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func recordPath(parent, element *dmf.Record, index int) string {
	return fmt.Sprintf("%s %s > %s", parent.Type(), describe(parent, 0), describe(element, index))
}

func describe(r *dmf.Record, index int) string {
	if id := r.ID(); id != "" {
		return id
	}
	return fmt.Sprintf("#%d", index+1)
}
