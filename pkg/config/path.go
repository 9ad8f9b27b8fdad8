package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	perrors "github.com/matzehuels/pipegraph/pkg/errors"
)

// DefaultConfigPath is targeted when no path of any kind is given.
const DefaultConfigPath = "/etc/pipegraph/pipegraph.toml"

// Format is a configuration file syntax.
type Format int

const (
	// FormatUnknown asks for detection from the file extension.
	FormatUnknown Format = iota
	FormatTOML
	FormatJSON
	FormatYAML
)

// String returns the lower-case format name.
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

var extFormats = map[string]Format{
	".toml": FormatTOML,
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
}

// FormatFromPath detects the format from the file extension (case-insensitive).
func FormatFromPath(path string) (Format, bool) {
	f, ok := extFormats[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// ConfigPath is a file or directory to read configuration from.
// For files, Format forces a syntax; FormatUnknown detects it from the extension.
type ConfigPath struct {
	Path   string
	Format Format
	Dir    bool
}

// PathList is a group of file paths that share a format hint.
type PathList struct {
	Paths  []string
	Format Format
}

// MergePathLists flattens lists into file paths, dropping repeated paths.
// The first occurrence of a path keeps its position and format hint.
func MergePathLists(lists ...PathList) []ConfigPath {
	seen := make(map[string]bool)
	var out []ConfigPath
	for _, l := range lists {
		for _, p := range l.Paths {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, ConfigPath{Path: p, Format: l.Format})
		}
	}
	return out
}

// Dirs converts directory paths into ConfigPaths.
func Dirs(dirs []string) []ConfigPath {
	out := make([]ConfigPath, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, ConfigPath{Path: d, Dir: true})
	}
	return out
}

// ProcessPaths resolves paths into a de-duplicated list of files with a known
// format.
//
// Globs (doublestar syntax, e.g. "conf.d/**/*.toml") expand to their sorted
// matches and must match at least one file. Directories contribute their
// direct entries with a recognised extension, sorted by name. An empty input
// resolves to [DefaultConfigPath].
func ProcessPaths(paths []ConfigPath) ([]ConfigPath, error) {
	if len(paths) == 0 {
		paths = []ConfigPath{{Path: DefaultConfigPath}}
	}

	var out []ConfigPath
	seen := make(map[string]bool)
	push := func(p ConfigPath) {
		if !seen[p.Path] {
			seen[p.Path] = true
			out = append(out, p)
		}
	}

	for _, p := range paths {
		if p.Dir {
			files, err := listDir(p.Path)
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				push(f)
			}
			continue
		}

		files, err := expandGlob(p.Path)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			format := p.Format
			if format == FormatUnknown {
				detected, ok := FormatFromPath(f)
				if !ok {
					return nil, perrors.New(perrors.ErrCodeInvalidPath,
						"cannot detect config format of %s (use .toml, .json, .yaml or .yml, or a format-specific flag)", f)
				}
				format = detected
			}
			push(ConfigPath{Path: f, Format: format})
		}
	}

	if len(out) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidPath, "no configuration files found")
	}
	return out, nil
}

func expandGlob(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, perrors.Wrap(perrors.ErrCodeInvalidPath, err, "bad glob %s", pattern)
	}
	if len(matches) == 0 {
		return nil, perrors.New(perrors.ErrCodeInvalidPath, "glob %s matched no files", pattern)
	}
	slices.Sort(matches)
	return matches, nil
}

func listDir(dir string) ([]ConfigPath, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perrors.Wrap(perrors.ErrCodeFileNotFound, err, "config directory %s", dir)
		}
		return nil, perrors.Wrap(perrors.ErrCodeInvalidPath, err, "read config directory %s", dir)
	}

	var out []ConfigPath
	for _, e := range entries {
		if !isRegular(dir, e) {
			continue
		}
		format, ok := FormatFromPath(e.Name())
		if !ok {
			continue
		}
		out = append(out, ConfigPath{Path: filepath.Join(dir, e.Name()), Format: format})
	}
	return out, nil
}

// isRegular follows symlinks so linked config files are picked up.
func isRegular(dir string, e fs.DirEntry) bool {
	if e.Type().IsRegular() {
		return true
	}
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, e.Name()))
	return err == nil && info.Mode().IsRegular()
}
