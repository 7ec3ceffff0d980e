package song

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files whose extension has no parser.
var ErrUnsupportedFormat = errors.New("song: unsupported format")

// record is one scripted event as written in a song file.
// Older scripts name the lane "id"; both spellings are accepted, and a record
// carrying both must give the same lane.
type record struct {
	ID     *int `yaml:"id"`
	Lane   *int `yaml:"lane"`
	Offset *int `yaml:"offset"`
}

// document is the long form of a song file.
type document struct {
	Title  string   `yaml:"title"`
	Artist string   `yaml:"artist"`
	Events []record `yaml:"events"`
}

// Extensions returns the supported song file extensions.
func Extensions() []string {
	return []string{".yaml", ".yml", ".json", ".jsonc"}
}

// LoadFile reads and parses a song file. The format is chosen by extension.
// The result is parsed but not validated.
func LoadFile(path string) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("song: reading %s: %w", path, err)
	}
	return ParseFile(path, data)
}

// ParseFile parses the already read contents of the song file at path.
// The title falls back to the file name.
func ParseFile(path string, data []byte) (*Song, error) {
	s, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("song: parsing %s: %w", path, err)
	}
	s.Path = path
	if s.Title == "" {
		s.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes a song script. ext selects the comment syntax:
// YAML uses '#', JSON files may carry '//' and '/* */' comments and trailing commas.
// Both the bare list form ([{id, offset}, ...]) and the document form
// ({title, events: [...]}) are accepted.
func Parse(data []byte, ext string) (*Song, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
	case ".json", ".jsonc":
		std, err := hujson.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
		data = std
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	// JSON is valid YAML, so a single decoder handles both once comments are gone.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, errors.New("empty document")
	}

	var doc document
	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&doc.Events); err != nil {
			return nil, fmt.Errorf("decoding events: %w", err)
		}
	case yaml.MappingNode:
		if err := node.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decoding song: %w", err)
		}
	default:
		return nil, fmt.Errorf("expected a list of events or a song document, got %s", kindName(node.Kind))
	}

	events := make([]Event, 0, len(doc.Events))
	for i, r := range doc.Events {
		e, err := r.event()
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, e)
	}

	return &Song{
		Title:  doc.Title,
		Artist: doc.Artist,
		Events: events,
	}, nil
}

func (r record) event() (Event, error) {
	lane := r.Lane
	if lane == nil {
		lane = r.ID
	} else if r.ID != nil && *r.ID != *lane {
		return Event{}, fmt.Errorf("id %d and lane %d disagree", *r.ID, *lane)
	}
	if lane == nil {
		return Event{}, errors.New("missing lane")
	}
	if r.Offset == nil {
		return Event{}, errors.New("missing offset")
	}
	return Event{Lane: *lane, Offset: *r.Offset}, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.ScalarNode:
		return "a scalar"
	case yaml.AliasNode:
		return "an alias"
	case yaml.DocumentNode:
		return "a document"
	default:
		return "an unknown node"
	}
}

// Loader finds song files under a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new song loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// Paths returns every song file under the root, sorted.
func (l *Loader) Paths() ([]string, error) {
	var paths []string

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isSupportedExtension(filepath.Ext(path)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("song: walking directory %s: %w", l.Root, err)
	}

	sort.Strings(paths)
	return paths, nil
}

// LoadAll loads every parseable song under the root, sorted by path.
// Files that fail to parse are skipped.
func (l *Loader) LoadAll() ([]*Song, error) {
	paths, err := l.Paths()
	if err != nil {
		return nil, err
	}

	songs := make([]*Song, 0, len(paths))
	for _, p := range paths {
		s, err := LoadFile(p)
		if err != nil {
			continue
		}
		songs = append(songs, s)
	}
	return songs, nil
}

func isSupportedExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, supported := range Extensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
