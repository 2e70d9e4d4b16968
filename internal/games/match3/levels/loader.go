// Package levels loads campaign level definitions for the match-3 game.
// This package depends on engine but engine does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-match3/internal/games/match3/engine"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels/formats"
)

// ErrNotFound is returned by LoadByID for unknown level IDs.
var ErrNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID          string
	Name        string
	Width       int
	Height      int
	TileKinds   int
	TargetScore int
	MoveLimit   int
	Layout      []string // Optional fixed starting board, one string per row
	Metadata    map[string]string
	FilePath    string
}

// Title returns the display name, falling back to the ID.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// Validate checks that the level can be played with the default engine
// settings.
func (l Level) Validate() error {
	return l.ValidateFor(engine.DefaultConfig())
}

// ValidateFor checks the level against base, whose match length decides
// whether a fixed layout starts with a match.
func (l Level) ValidateFor(base engine.Config) error {
	switch {
	case l.ID == "":
		return fmt.Errorf("level: missing id")
	case l.TargetScore <= 0:
		return fmt.Errorf("level %s: goal.score must be positive", l.ID)
	case l.MoveLimit <= 0:
		return fmt.Errorf("level %s: goal.moves must be positive", l.ID)
	}

	cfg := l.EngineConfig(base)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("level %s: %w", l.ID, err)
	}

	if len(l.Layout) > 0 {
		b, err := engine.NewBoardFromLayout(l.Layout)
		if err != nil {
			return fmt.Errorf("level %s: layout: %w", l.ID, err)
		}
		if b.Width() != l.Width || b.Height() != l.Height {
			return fmt.Errorf("level %s: layout is %dx%d, size says %dx%d",
				l.ID, b.Width(), b.Height(), l.Width, l.Height)
		}
		if b.CountEmpty() > 0 {
			return fmt.Errorf("level %s: layout has empty slots", l.ID)
		}
		for y := 0; y < b.Height(); y++ {
			for x := 0; x < b.Width(); x++ {
				if t := b.TypeAt(engine.C(x, y)); int(t) > l.TileKinds {
					return fmt.Errorf("level %s: layout uses %s at (%d,%d) but tile_kinds is %d",
						l.ID, t, x, y, l.TileKinds)
				}
			}
		}
		if engine.HasMatch(b, cfg.MinMatchLength) {
			return fmt.Errorf("level %s: layout starts with a match", l.ID)
		}
	}
	return nil
}

// EngineConfig returns base with the level's board shape applied.
func (l Level) EngineConfig(base engine.Config) engine.Config {
	base.Width = l.Width
	base.Height = l.Height
	base.TileKinds = l.TileKinds
	return base
}

// NewEngine builds an engine for the level: on its fixed layout when it
// has one, on a random stable board otherwise.
func (l Level) NewEngine(base engine.Config, opts ...engine.Option) (*engine.Engine, error) {
	if err := l.ValidateFor(base); err != nil {
		return nil, err
	}
	cfg := l.EngineConfig(base)
	if len(l.Layout) > 0 {
		return engine.NewWithLayout(cfg, l.Layout, opts...)
	}
	return engine.New(cfg, opts...)
}

// Loader handles loading levels from a file tree.
type Loader struct {
	Root string
	fsys fs.FS
}

// NewLoader creates a new level loader reading from a directory.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, fsys: os.DirFS(root)}
}

// NewFSLoader creates a loader over an arbitrary file system.
func NewFSLoader(name string, fsys fs.FS) *Loader {
	return &Loader{Root: name, fsys: fsys}
}

// FileError describes a level file that failed to load.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e FileError) Unwrap() error {
	return e.Err
}

// LoadAll recursively scans and loads all level files.
// Invalid files are skipped. Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.scan()
	return levels, err
}

// Check loads every level file and reports the ones that failed.
func (l *Loader) Check() ([]Level, []FileError, error) {
	return l.scan()
}

func (l *Loader) scan() ([]Level, []FileError, error) {
	var (
		levels   []Level
		problems []FileError
		seen     = make(map[string]string)
	)

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			problems = append(problems, FileError{Path: p, Err: err})
			return nil
		}
		if prev, dup := seen[level.ID]; dup {
			problems = append(problems, FileError{Path: p, Err: fmt.Errorf("duplicate id %q (also in %s)", level.ID, prev)})
			return nil
		}
		seen[level.ID] = p

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, problems, nil
}

// LoadFile loads and validates a single level file. The path is relative
// to the loader root.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	level := Level{
		ID:          parsed.ID,
		Name:        parsed.Name,
		Width:       parsed.Width,
		Height:      parsed.Height,
		TileKinds:   parsed.TileKinds,
		TargetScore: parsed.TargetScore,
		MoveLimit:   parsed.MoveLimit,
		Layout:      parsed.Layout,
		Metadata:    parsed.Metadata,
		FilePath:    path.Join(l.Root, p),
	}
	if err := level.Validate(); err != nil {
		return Level{}, err
	}
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

	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
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
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
