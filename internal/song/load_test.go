package song

import (
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testdataPath returns path to testdata/songs.
func testdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "songs", name)
}

func TestLoadFileYAMLDocument(t *testing.T) {
	s, err := LoadFile(testdataPath("demo.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if s.Title != "Warmup" || s.Artist != "clonebeat" {
		t.Errorf("metadata = %q by %q", s.Title, s.Artist)
	}
	if len(s.Events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(s.Events))
	}
	if s.Events[3] != (Event{Lane: 3, Offset: 2500}) {
		t.Errorf("event 3 = %+v", s.Events[3])
	}
	if err := Validate(s.Events); err != nil {
		t.Errorf("demo song should validate: %v", err)
	}
}

func TestLoadFileJSONWithComments(t *testing.T) {
	s, err := LoadFile(testdataPath("legacy.jsonc"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if s.Title != "legacy" {
		t.Errorf("title should default to the file name, got %q", s.Title)
	}
	expected := []Event{{Lane: 5, Offset: 800}, {Lane: 10, Offset: 1200}, {Lane: 5, Offset: 1600}}
	if len(s.Events) != len(expected) {
		t.Fatalf("expected %d events, got %d", len(expected), len(s.Events))
	}
	for i, e := range expected {
		if s.Events[i] != e {
			t.Errorf("event %d = %+v, expected %+v", i, s.Events[i], e)
		}
	}
}

func TestLoadFileMissingOffset(t *testing.T) {
	if _, err := LoadFile(testdataPath("broken.json")); err == nil {
		t.Error("expected an error for an event without offset")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(testdataPath("nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		ext     string
		events  int
		wantErr bool
	}{
		{"yaml list with id", "- {id: 1, offset: 10}\n- {id: 2, offset: 20}\n", ".yml", 2, false},
		{"id and lane agree", "- {id: 4, lane: 4, offset: 10}\n", ".yaml", 1, false},
		{"id and lane disagree", "- {id: 1, lane: 4, offset: 10}\n", ".yaml", 0, true},
		{"json id and lane disagree", `[{"id": 16, "lane": 3, "offset": 10}]`, ".json", 0, true},
		{"json document", `{"events": [{"lane": 0, "offset": 0}]}`, ".json", 1, false},
		{"scalar document", "42\n", ".yaml", 0, true},
		{"empty document", "", ".yaml", 0, true},
		{"missing lane", "- {offset: 10}\n", ".yaml", 0, true},
		{"bad json", `[{"id": 1,,}]`, ".jsonc", 0, true},
		{"string offset", "- {id: 1, offset: soon}\n", ".yaml", 0, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Parse([]byte(tc.data), tc.ext)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Parse() should fail, got %+v", s)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			if len(s.Events) != tc.events {
				t.Errorf("expected %d events, got %d", tc.events, len(s.Events))
			}
		})
	}
}

func TestParseLaneSpellings(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"id only", "- {id: 4, offset: 10}\n"},
		{"lane only", "- {lane: 4, offset: 10}\n"},
		{"both", "- {id: 4, lane: 4, offset: 10}\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Parse([]byte(tc.data), ".yaml")
			if err != nil {
				t.Fatalf("Parse() failed: %v", err)
			}
			if s.Events[0].Lane != 4 {
				t.Errorf("lane = %d, expected 4", s.Events[0].Lane)
			}
		})
	}
}

func TestParseConflictingLane(t *testing.T) {
	_, err := Parse([]byte(`[{"id": 16, "lane": 3, "offset": 10}]`), ".json")
	if err == nil || !strings.Contains(err.Error(), "disagree") {
		t.Errorf("Parse() = %v, expected a disagreement error", err)
	}
}

func TestParseUnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("x"), ".toml")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Parse() = %v, expected ErrUnsupportedFormat", err)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader(filepath.Dir(testdataPath("demo.yaml")))

	paths, err := loader.Paths()
	if err != nil {
		t.Fatalf("Paths failed: %v", err)
	}
	if len(paths) != 3 {
		t.Errorf("expected 3 song files (txt ignored), got %d: %v", len(paths), paths)
	}

	songs, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	// broken.json is skipped
	if len(songs) != 2 {
		t.Fatalf("expected 2 songs, got %d", len(songs))
	}
	if songs[0].Title != "Warmup" || songs[1].Title != "legacy" {
		t.Errorf("songs not sorted by path: %q, %q", songs[0].Title, songs[1].Title)
	}
}
