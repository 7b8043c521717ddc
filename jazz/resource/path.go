// Package resource resolves asset names against an ordered list of directories.
package resource

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-jazz/jazz/stream"
)

// ErrNotFound is returned when no directory on the search path holds a readable file.
var ErrNotFound = errors.New("resource not found")

// SearchPath is an ordered list of directories. Earlier entries win.
type SearchPath struct {
	dirs []string
}

// NewSearchPath creates a search path from dirs, in order. Empty entries are ignored.
func NewSearchPath(dirs ...string) *SearchPath {
	p := &SearchPath{}
	for _, d := range dirs {
		p.Append(d)
	}
	return p
}

// Append adds dir to the end of the search order.
func (p *SearchPath) Append(dir string) {
	if dir == "" {
		return
	}
	p.dirs = append(p.dirs, dir)
}

// Prepend makes dir the first directory searched.
func (p *SearchPath) Prepend(dir string) {
	if dir == "" {
		return
	}
	p.dirs = append([]string{dir}, p.dirs...)
}

// Dirs returns a copy of the directories in search order.
func (p *SearchPath) Dirs() []string {
	return append([]string(nil), p.dirs...)
}

// Resolve returns the path of the first readable file called name. Each
// directory is tried with the name as given and then lower-cased, since the
// original data files ship with upper-case names.
func (p *SearchPath) Resolve(name string) (string, error) {
	candidates := []string{name}
	if lower := strings.ToLower(name); lower != name {
		candidates = append(candidates, lower)
	}

	for _, dir := range p.dirs {
		for _, c := range candidates {
			full := filepath.Join(dir, c)
			info, err := os.Stat(full)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			return full, nil
		}
	}

	return "", fmt.Errorf("%w: %q in %v", ErrNotFound, name, p.dirs)
}

// Open reads the named file from the first directory that has it. The file is
// read whole and closed before Open returns.
func (p *SearchPath) Open(name string) (*stream.Stream, error) {
	full, err := p.Resolve(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(full)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return nil, fmt.Errorf("%w: %q: %w", ErrNotFound, full, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", full, err)
	}

	slog.Debug("Opened resource", "name", name, "path", full, "size", len(data))
	return stream.New(name, data), nil
}
