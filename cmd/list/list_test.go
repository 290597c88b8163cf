/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package list

import (
	"strings"
	"testing"

	"bennypowers.dev/mimshak/dmf"
)

const sample = "macro \"hotkeys\"\n" +
	"\telem\n" +
	"\t\tname = F1\n" +
	"\telem\n" +
	"\t\tname = F2\n" +
	"window \"main\"\n" +
	"\telem \"main\"\n" +
	"\t\ttype = MAIN\n" +
	"\telem \"output\"\n" +
	"\t\ttype = OUTPUT\n" +
	"\telem \"status\"\n" +
	"\t\ttype = LABEL\n"

func parseSample(t *testing.T) *dmf.Document {
	t.Helper()
	doc, err := dmf.Parse([]byte(sample))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	return doc
}

func TestCollectRows(t *testing.T) {
	rows := collectRows(parseSample(t), "skin.dmf")

	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d: %v", len(rows), rows)
	}

	// Macrolist elements come first, in file order.
	if rows[0].Kind != "macro" || rows[0].Category != "hotkeys" {
		t.Errorf("rows[0] = %+v, want macro hotkeys", rows[0])
	}
	if rows[0].ID != "" {
		t.Errorf("expected macro element without id, got %q", rows[0].ID)
	}

	last := rows[4]
	if last.Kind != "window" || last.ID != "status" || last.Type != "LABEL" {
		t.Errorf("rows[4] = %+v, want window status LABEL", last)
	}

	for _, r := range rows {
		if r.File != "skin.dmf" {
			t.Errorf("expected file skin.dmf, got %q", r.File)
		}
	}
}

func TestFilterRows(t *testing.T) {
	rows := collectRows(parseSample(t), "skin.dmf")

	t.Run("no filters", func(t *testing.T) {
		result := filterRows(rows, "", "")
		if len(result) != 5 {
			t.Errorf("expected 5 rows, got %d", len(result))
		}
	})

	t.Run("filter by kind", func(t *testing.T) {
		result := filterRows(rows, "macro", "")
		if len(result) != 2 {
			t.Errorf("expected 2 macro rows, got %d", len(result))
		}
		for _, r := range result {
			if r.Kind != "macro" {
				t.Errorf("expected kind macro, got %s", r.Kind)
			}
		}
	})

	t.Run("filter by type ignores case", func(t *testing.T) {
		result := filterRows(rows, "", "label")
		if len(result) != 1 {
			t.Fatalf("expected 1 LABEL row, got %d", len(result))
		}
		if result[0].ID != "status" {
			t.Errorf("expected status, got %s", result[0].ID)
		}
	})

	t.Run("combined filters", func(t *testing.T) {
		result := filterRows(rows, "window", "OUTPUT")
		if len(result) != 1 {
			t.Fatalf("expected 1 row, got %d", len(result))
		}
		if result[0].ID != "output" {
			t.Errorf("expected output, got %s", result[0].ID)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		result := filterRows(rows, "menu", "")
		if len(result) != 0 {
			t.Errorf("expected 0 rows, got %d", len(result))
		}
	})
}

func TestOutputTable_Headings(t *testing.T) {
	rows := collectRows(parseSample(t), "skin.dmf")

	var sb strings.Builder
	outputTable(&sb, rows)
	got := sb.String()

	if !strings.Contains(got, "Macro \"hotkeys\"") {
		t.Errorf("missing title-cased macro heading:\n%s", got)
	}
	if !strings.Contains(got, "Window \"main\"") {
		t.Errorf("missing title-cased window heading:\n%s", got)
	}
	if strings.Count(got, "Window \"main\"") != 1 {
		t.Errorf("window heading should print once:\n%s", got)
	}
}

func TestOutputNames_SkipsEmptyIDs(t *testing.T) {
	rows := collectRows(parseSample(t), "skin.dmf")

	var sb strings.Builder
	outputNames(&sb, rows)

	expected := "main\noutput\nstatus\n"
	if sb.String() != expected {
		t.Errorf("outputNames() = %q, want %q", sb.String(), expected)
	}
}
