// SPDX-License-Identifier: EPL-2.0

package playlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
)

const (
	keyPlayList = "[PlayList]"
	keyFile     = "[File]"

	// FileName is the store's file name inside the config directory.
	FileName = "alooper.conf"
)

// DefaultPath returns $XDG_CONFIG_HOME/alooper.conf, falling back to
// $HOME/.config/alooper.conf.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, FileName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating playlist store: %w", err)
	}

	return filepath.Join(home, ".config", FileName), nil
}

// line is one parsed store line. Lines with other keys are kept verbatim so
// a rewrite does not lose hand-written content.
type line struct {
	key   string
	value string
	raw   string
}

// parseLine splits a store line into its key, the first whitespace-delimited
// token, and the value after the single separating space.
func parseLine(raw string) line {
	raw = strings.TrimRight(raw, "\r")

	idx := strings.IndexAny(raw, " \t")
	if idx < 0 {
		return line{key: raw, raw: raw}
	}

	return line{key: raw[:idx], value: raw[idx+1:], raw: raw}
}

// Store persists named playlists in a line-oriented text file:
//
//	[PlayList] <name>
//	[File] <path>
//
// File lines belong to the nearest header above them. Unknown keys and
// malformed lines are skipped, and a missing file reads as empty. Every
// access to the file is serialized.
type Store struct {
	path string
	log  *slog.Logger

	mu sync.Mutex
}

// NewStore returns a store backed by the file at path. A nil logger means
// slog.Default().
func NewStore(path string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}

	return &Store{path: filepath.Clean(path), log: log}
}

func (s *Store) Path() string { return s.path }

// readLines returns the parsed file. The caller holds s.mu.
func (s *Store) readLines() ([]line, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading playlist store: %w", err)
	}

	var lines []line
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, parseLine(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading playlist store: %w", err)
	}

	return lines, nil
}

func names(lines []line) []string {
	headers := lo.Filter(lines, func(l line, _ int) bool {
		return l.key == keyPlayList
	})

	return lo.Map(headers, func(l line, _ int) string {
		return l.value
	})
}

// ListNames returns every playlist header in file order. Duplicates are
// kept.
func (s *Store) ListNames() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}

	return names(lines), nil
}

// NameExists reports whether a playlist called name is stored.
func (s *Store) NameExists(name string) (bool, error) {
	all, err := s.ListNames()
	if err != nil {
		return false, err
	}

	return lo.Contains(all, name), nil
}

// Load collects the entries of every section headed by name, in file order.
// An unknown name yields no entries.
func (s *Store) Load(name string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}

	var (
		entries []Entry
		inside  bool
	)
	for _, l := range lines {
		switch l.key {
		case keyPlayList:
			inside = l.value == name
		case keyFile:
			if inside && l.value != "" {
				entries = append(entries, NewEntry(l.value))
			}
		}
	}

	return entries, nil
}

// Save stores entries under name. When name is already present Save fails
// with ErrNameExists unless overwrite is set, in which case every earlier
// section of that name is replaced by the new one at the end of the file.
func (s *Store) Save(name string, entries []Entry, overwrite bool) error {
	if name == "" {
		return ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return err
	}

	exists := lo.Contains(names(lines), name)
	if exists && !overwrite {
		return fmt.Errorf("%q: %w", name, ErrNameExists)
	}

	section := make([]string, 0, len(entries)+1)
	section = append(section, keyPlayList+" "+name)
	for _, e := range entries {
		section = append(section, keyFile+" "+e.Path)
	}

	if !exists {
		if err := s.appendLines(section); err != nil {
			return err
		}
		s.log.Debug("playlist saved", "name", name, "entries", len(entries), "path", s.path)
		return nil
	}

	kept := dropSections(lines, name)
	out := make([]string, 0, len(kept)+len(section))
	for _, l := range kept {
		out = append(out, l.raw)
	}
	out = append(out, section...)

	if err := s.rewrite(out); err != nil {
		return err
	}
	s.log.Debug("playlist replaced", "name", name, "entries", len(entries), "path", s.path)

	return nil
}

// dropSections removes each section headed by name, header included, up to
// the next header.
func dropSections(lines []line, name string) []line {
	var inside bool

	return lo.Filter(lines, func(l line, _ int) bool {
		if l.key == keyPlayList {
			inside = l.value == name
		}
		return !inside
	})
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating playlist store directory: %w", err)
	}
	return nil
}

func (s *Store) appendLines(lines []string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening playlist store: %w", err)
	}

	// Keep the new header on its own line when the file lacks a final newline.
	prefix := ""
	if info, err := f.Stat(); err == nil && info.Size() > 0 {
		if last, err := lastByte(s.path); err == nil && last != '\n' {
			prefix = "\n"
		}
	}

	if _, err := f.WriteString(prefix + strings.Join(lines, "\n") + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing playlist store: %w", err)
	}

	return f.Close()
}

func lastByte(path string) (byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	b := make([]byte, 1)
	if _, err := f.ReadAt(b, info.Size()-1); err != nil {
		return 0, err
	}

	return b[0], nil
}

// rewrite replaces the store through a temporary file and a rename, so a
// crash never leaves a half-written store.
func (s *Store) rewrite(lines []string) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary playlist store: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("creating temporary playlist store: %w", err)
	}

	if _, err := tmp.WriteString(strings.Join(lines, "\n") + "\n"); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing playlist store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing playlist store: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing playlist store: %w", err)
	}

	return nil
}
