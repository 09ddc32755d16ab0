// Package levels provides level loading for Cookie Crunch.
// This package depends on engine but engine does not depend on levels.
package levels

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cookie-crunch/internal/games/crunch/levels/formats"
)

//go:embed data/*
var embedded embed.FS

// Loader handles loading levels from a directory tree.
type Loader struct {
	Root   string
	fsys   fs.FS
	logger *log.Logger
}

// NewLoader creates a loader for the directory at root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// Embedded returns a loader over the built-in campaign.
func Embedded() *Loader {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded data: %v", err))
	}
	return &Loader{Root: "embedded", fsys: sub}
}

// WithLogger makes the loader report skipped files.
func (l *Loader) WithLogger(logger *log.Logger) *Loader {
	l.logger = logger
	return l
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level
	seen := make(map[string]string)

	err := fs.WalkDir(l.fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(name))
		if !isSupportedExtension(ext) {
			return nil
		}

		data, err := fs.ReadFile(l.fsys, name)
		if err != nil {
			return err
		}
		level, err := parseLevel(data, name)
		if err == nil {
			err = level.Validate()
		}
		if err != nil {
			l.debug("skipping level file", "file", name, "err", err)
			return nil
		}
		if prev, dup := seen[level.ID]; dup {
			l.debug("skipping duplicate level id", "id", level.ID, "file", name, "first", prev)
			return nil
		}
		seen[level.ID] = name

		level.FilePath = filepath.Join(l.Root, filepath.FromSlash(name))
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, nil
}

// LoadFile loads and validates a single level file from disk.
func (l *Loader) LoadFile(filePath string) (Level, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", filePath, err)
	}
	level, err := parseLevel(data, filePath)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", filePath, err)
	}
	if err := level.Validate(); err != nil {
		return Level{}, fmt.Errorf("levels: %s: %w", filePath, err)
	}
	level.FilePath = filePath
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func (l *Loader) debug(msg string, keyvals ...interface{}) {
	if l.logger != nil {
		l.logger.Debug(msg, keyvals...)
	}
}

// parseLevel routes to the parser for the file extension. A level without
// an id takes its file name.
func parseLevel(data []byte, name string) (Level, error) {
	ext := strings.ToLower(path.Ext(name))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Level{}, err
	}
	id := parsed.ID
	if id == "" {
		id = strings.TrimSuffix(path.Base(filepath.ToSlash(name)), path.Ext(name))
	}
	return Level{
		ID:          id,
		Name:        parsed.Name,
		TargetScore: parsed.TargetScore,
		Moves:       parsed.Moves,
		Tiles:       parsed.Tiles,
		Metadata:    parsed.Metadata,
	}, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	case ".json":
		return formats.ParseJSON(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
