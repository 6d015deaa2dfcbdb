// Copyright (c) 2025, Geowitness Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package file

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGetLines(t *testing.T) {
	path := writeTemp(t, "first\n\n# comment\nsecond\n  third  \n")

	p := NewParser()
	lines, err := p.GetLines(path)
	if err != nil {
		t.Fatalf("GetLines() error = %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line[%d] = %q, want %q", i, lines[i], w)
		}
	}
}

func TestGetLinesHeaderSkip(t *testing.T) {
	// /proc/net/wireless carries two header lines before the data rows.
	path := writeTemp(t, "Inter-| sta-|   Quality\n face | tus | link level noise\nwlan0: 0000   60.  -50.  -256\n")

	p := NewParser(WithHeaderLines(2))
	lines, err := p.GetLines(path)
	if err != nil {
		t.Fatalf("GetLines() error = %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %v", len(lines), lines)
	}
}

func TestGetLinesMissingFile(t *testing.T) {
	p := NewParser()
	if _, err := p.GetLines(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetLinesMaxSize(t *testing.T) {
	path := writeTemp(t, "0123456789")

	p := NewParser(WithMaxSize(5))
	if _, err := p.GetLines(path); err == nil {
		t.Error("expected error for oversized file")
	}
}

func TestGetMap(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    []Option
		want    map[string]string
	}{
		{
			name:    "simple key value",
			content: "ssid=field-ap\nbssid=aa:bb:cc:dd:ee:ff\n",
			want:    map[string]string{"ssid": "field-ap", "bssid": "aa:bb:cc:dd:ee:ff"},
		},
		{
			name:    "quoted values trimmed",
			content: `NAME="Ubuntu"` + "\n" + `ID=ubuntu` + "\n",
			opts:    []Option{WithVTrimChars(`"'`)},
			want:    map[string]string{"NAME": "Ubuntu", "ID": "ubuntu"},
		},
		{
			name:    "lines without delimiter skipped",
			content: "valid=1\nmalformed line\n",
			want:    map[string]string{"valid": "1"},
		},
		{
			name:    "custom delimiter",
			content: "status: connected\nmode: station\n",
			opts:    []Option{WithKVDelimiter(":")},
			want:    map[string]string{"status": "connected", "mode": "station"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, tt.content)
			p := NewParser(tt.opts...)

			got, err := p.GetMap(path)
			if err != nil {
				t.Fatalf("GetMap() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d entries, want %d: %v", len(got), len(tt.want), got)
			}
			for k, w := range tt.want {
				if got[k] != w {
					t.Errorf("map[%q] = %q, want %q", k, got[k], w)
				}
			}
		})
	}
}

func TestGetColumns(t *testing.T) {
	path := writeTemp(t, "wlan0: 0000   60.  -50.  -256\nwlan1: 0000   42.  -70.  -256\n")

	p := NewParser()
	rows, err := p.GetColumns(path)
	if err != nil {
		t.Fatalf("GetColumns() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0] != "wlan0:" {
		t.Errorf("rows[0][0] = %q, want %q", rows[0][0], "wlan0:")
	}
	if len(rows[0]) != 5 {
		t.Errorf("rows[0] has %d columns, want 5", len(rows[0]))
	}
}
