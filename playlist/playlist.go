// SPDX-License-Identifier: EPL-2.0

package playlist

import (
	"path/filepath"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// Entry is one playable file. Name is the display name, the base name of
// Path.
type Entry struct {
	Name string
	Path string
}

// NewEntry builds an entry for path.
func NewEntry(path string) Entry {
	return Entry{Name: filepath.Base(path), Path: path}
}

// Playlist is the ordered play list together with the flags that decide what
// happens when a clip ends. Index -1 means "none" for both the current and
// the loading entry.
//
// All methods are safe for concurrent use.
type Playlist struct {
	mu sync.Mutex

	entries     []Entry
	current     int
	loading     int
	usePlaylist bool
	forceReload bool
}

func New() *Playlist {
	return &Playlist{current: -1, loading: -1}
}

func (p *Playlist) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.entries)
}

// Entries returns a copy of the entries in play order.
func (p *Playlist) Entries() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()

	return slices.Clone(p.entries)
}

// Paths returns the entry paths in play order.
func (p *Playlist) Paths() []string {
	return lo.Map(p.Entries(), func(e Entry, _ int) string {
		return e.Path
	})
}

// Entry returns the entry at i.
func (p *Playlist) Entry(i int) (Entry, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.entries) {
		return Entry{}, false
	}
	return p.entries[i], true
}

func (p *Playlist) Current() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.current
}

// SetCurrent makes i the current entry. Out of range values are ignored.
func (p *Playlist) SetCurrent(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < -1 || i >= len(p.entries) {
		return false
	}
	p.current = i
	return true
}

// Append adds path at the end and returns its index. With makeCurrent the
// new entry becomes the current one.
func (p *Playlist) Append(path string, makeCurrent bool) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.entries = append(p.entries, NewEntry(path))
	i := len(p.entries) - 1
	if makeCurrent {
		p.current = i
	}

	return i
}

// Replace swaps in a new list of entries and clears the current marker. An
// entry still loading stays protected: the loading marker moves to the first
// new entry with the same path, or is cleared when there is none.
func (p *Playlist) Replace(entries []Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	loading := -1
	if p.loading >= 0 && p.loading < len(p.entries) {
		path := p.entries[p.loading].Path
		loading = slices.IndexFunc(entries, func(e Entry) bool { return e.Path == path })
	}

	p.entries = slices.Clone(entries)
	p.current = -1
	p.loading = loading
	p.forceReload = false
}

// Remove deletes the entry at i. It does nothing for an out of range index
// or while i is being loaded. The current marker keeps pointing at the same
// entry; if that entry is the one removed, the next Advance lands on the
// entry that followed it. A successful remove forces the next Advance.
func (p *Playlist) Remove(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.entries) || i == p.loading {
		return false
	}

	p.entries = slices.Delete(p.entries, i, i+1)
	if i <= p.current {
		p.current--
	}
	if i < p.loading {
		p.loading--
	}
	p.forceReload = true

	return true
}

// MoveUp swaps the entry at i with the one before it.
func (p *Playlist) MoveUp(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i <= 0 || i >= len(p.entries) {
		return false
	}
	p.swap(i-1, i)

	return true
}

// MoveDown swaps the entry at i with the one after it.
func (p *Playlist) MoveDown(i int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i < 0 || i >= len(p.entries)-1 {
		return false
	}
	p.swap(i, i+1)

	return true
}

// swap exchanges two entries; the markers follow their entries.
func (p *Playlist) swap(a, b int) {
	p.entries[a], p.entries[b] = p.entries[b], p.entries[a]

	follow := func(idx int) int {
		switch idx {
		case a:
			return b
		case b:
			return a
		}
		return idx
	}
	p.current = follow(p.current)
	p.loading = follow(p.loading)
}

// SetUsePlaylist turns advancing at the end of a clip on or off.
func (p *Playlist) SetUsePlaylist(on bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.usePlaylist = on
}

func (p *Playlist) UsePlaylist() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.usePlaylist
}

// ForceReload makes the next Advance move on even when it otherwise would
// not.
func (p *Playlist) ForceReload() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.forceReload = true
}

// Advance moves to the next entry, wrapping past the end to the first one.
// Unless a reload was forced it does nothing when playlist mode is off or
// the list holds fewer than two entries. It reports the new entry and index.
func (p *Playlist) Advance() (Entry, int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if (len(p.entries) < 2 || !p.usePlaylist) && !p.forceReload {
		return Entry{}, p.current, false
	}
	p.forceReload = false

	if len(p.entries) == 0 {
		return Entry{}, p.current, false
	}

	p.current++
	if p.current >= len(p.entries) {
		p.current = 0
	}

	return p.entries[p.current], p.current, true
}

// SetLoading marks i as the entry being loaded, which protects it from
// Remove.
func (p *Playlist) SetLoading(i int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loading = i
}

func (p *Playlist) ClearLoading() {
	p.SetLoading(-1)
}

func (p *Playlist) Loading() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.loading
}
