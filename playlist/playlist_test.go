// SPDX-License-Identifier: EPL-2.0

package playlist

import (
	"slices"
	"sync"
	"testing"
)

func filled(paths ...string) *Playlist {
	p := New()
	for _, path := range paths {
		p.Append(path, false)
	}
	return p
}

func TestNewEntry(t *testing.T) {
	t.Parallel()

	e := NewEntry("/music/loops/kick.wav")
	if e.Name != "kick.wav" || e.Path != "/music/loops/kick.wav" {
		t.Errorf("NewEntry() = %+v, want {kick.wav /music/loops/kick.wav}", e)
	}
}

func TestAppend(t *testing.T) {
	t.Parallel()

	p := New()
	if p.Current() != -1 {
		t.Fatalf("Current() on new list = %d, want -1", p.Current())
	}

	if i := p.Append("a.wav", false); i != 0 {
		t.Errorf("Append() = %d, want 0", i)
	}
	if p.Current() != -1 {
		t.Errorf("Current() = %d, want -1 after Append without makeCurrent", p.Current())
	}

	if i := p.Append("b.wav", true); i != 1 {
		t.Errorf("Append() = %d, want 1", i)
	}
	if p.Current() != 1 {
		t.Errorf("Current() = %d, want 1", p.Current())
	}

	if got, want := p.Paths(), []string{"a.wav", "b.wav"}; !slices.Equal(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestAdvance_Wraps(t *testing.T) {
	t.Parallel()

	p := filled("a", "b", "c")
	p.SetUsePlaylist(true)
	p.SetCurrent(2)

	e, i, ok := p.Advance()
	if !ok || i != 0 || e.Path != "a" {
		t.Errorf("Advance() = %+v, %d, %v, want a, 0, true", e, i, ok)
	}
	if p.Current() != 0 {
		t.Errorf("Current() = %d, want 0", p.Current())
	}
}

func TestAdvance_Guard(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		paths       []string
		usePlaylist bool
		force       bool
		wantOK      bool
		wantIndex   int
	}{
		{"playlist mode off", []string{"a", "b"}, false, false, false, 0},
		{"single entry", []string{"a"}, true, false, false, 0},
		{"empty", nil, true, false, false, -1},
		{"playlist mode on", []string{"a", "b"}, true, false, true, 1},
		{"forced with mode off", []string{"a", "b"}, false, true, true, 1},
		{"forced single entry", []string{"a"}, false, true, true, 0},
		{"forced empty", nil, false, true, false, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := filled(tt.paths...)
			if len(tt.paths) > 0 {
				p.SetCurrent(0)
			}
			p.SetUsePlaylist(tt.usePlaylist)
			if tt.force {
				p.ForceReload()
			}

			_, i, ok := p.Advance()
			if ok != tt.wantOK || i != tt.wantIndex {
				t.Errorf("Advance() = %d, %v, want %d, %v", i, ok, tt.wantIndex, tt.wantOK)
			}
		})
	}
}

func TestAdvance_ForceIsOneShot(t *testing.T) {
	t.Parallel()

	p := filled("a", "b")
	p.SetCurrent(0)
	p.ForceReload()

	if _, _, ok := p.Advance(); !ok {
		t.Fatal("forced Advance() did not advance")
	}
	if _, _, ok := p.Advance(); ok {
		t.Error("second Advance() advanced without playlist mode")
	}
}

func TestRemove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		current     int
		loading     int
		remove      int
		wantOK      bool
		wantPaths   []string
		wantCurrent int
	}{
		{"before current", 2, -1, 0, true, []string{"b", "c"}, 1},
		{"after current", 0, -1, 2, true, []string{"a", "b"}, 0},
		{"the current entry", 1, -1, 1, true, []string{"a", "c"}, 0},
		{"out of range", 0, -1, 3, false, []string{"a", "b", "c"}, 0},
		{"negative", 0, -1, -1, false, []string{"a", "b", "c"}, 0},
		{"while loading", 0, 1, 1, false, []string{"a", "b", "c"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := filled("a", "b", "c")
			p.SetCurrent(tt.current)
			p.SetLoading(tt.loading)

			if ok := p.Remove(tt.remove); ok != tt.wantOK {
				t.Errorf("Remove(%d) = %v, want %v", tt.remove, ok, tt.wantOK)
			}
			if got := p.Paths(); !slices.Equal(got, tt.wantPaths) {
				t.Errorf("Paths() = %v, want %v", got, tt.wantPaths)
			}
			if p.Current() != tt.wantCurrent {
				t.Errorf("Current() = %d, want %d", p.Current(), tt.wantCurrent)
			}
		})
	}
}

func TestRemove_Empty(t *testing.T) {
	t.Parallel()

	if New().Remove(0) {
		t.Error("Remove(0) on empty list = true, want false")
	}
}

func TestRemove_CurrentThenAdvance(t *testing.T) {
	t.Parallel()

	p := filled("a", "b", "c")
	p.SetCurrent(1)
	p.Remove(1)

	e, _, ok := p.Advance()
	if !ok || e.Path != "c" {
		t.Errorf("Advance() after removing current = %q, %v, want c, true", e.Path, ok)
	}
}

func TestRemove_AdjustsLoading(t *testing.T) {
	t.Parallel()

	p := filled("a", "b", "c")
	p.SetLoading(2)
	p.Remove(0)

	if p.Loading() != 1 {
		t.Errorf("Loading() = %d, want 1", p.Loading())
	}
}

func TestMove(t *testing.T) {
	t.Parallel()

	p := filled("a", "b", "c")
	p.SetCurrent(1)

	if !p.MoveUp(1) {
		t.Fatal("MoveUp(1) = false")
	}
	if got, want := p.Paths(), []string{"b", "a", "c"}; !slices.Equal(got, want) {
		t.Errorf("Paths() after MoveUp = %v, want %v", got, want)
	}
	if p.Current() != 0 {
		t.Errorf("Current() after MoveUp = %d, want 0", p.Current())
	}

	if !p.MoveDown(1) {
		t.Fatal("MoveDown(1) = false")
	}
	if got, want := p.Paths(), []string{"b", "c", "a"}; !slices.Equal(got, want) {
		t.Errorf("Paths() after MoveDown = %v, want %v", got, want)
	}
	if p.Current() != 0 {
		t.Errorf("Current() after moving another entry = %d, want 0", p.Current())
	}

	for _, tt := range []struct {
		name string
		move func(int) bool
		idx  int
	}{
		{"MoveUp first", p.MoveUp, 0},
		{"MoveDown last", p.MoveDown, 2},
		{"MoveUp out of range", p.MoveUp, 5},
		{"MoveDown negative", p.MoveDown, -1},
	} {
		if tt.move(tt.idx) {
			t.Errorf("%s: moved, want no-op", tt.name)
		}
	}
	if got, want := p.Paths(), []string{"b", "c", "a"}; !slices.Equal(got, want) {
		t.Errorf("Paths() after no-op moves = %v, want %v", got, want)
	}
}

func TestReplace(t *testing.T) {
	t.Parallel()

	p := filled("a")
	p.SetCurrent(0)
	p.SetLoading(0)
	p.ForceReload()

	p.Replace([]Entry{NewEntry("x"), NewEntry("y")})

	if p.Len() != 2 || p.Current() != -1 || p.Loading() != -1 {
		t.Errorf("after Replace: Len() = %d, Current() = %d, Loading() = %d, want 2, -1, -1",
			p.Len(), p.Current(), p.Loading())
	}
	if _, _, ok := p.Advance(); ok {
		t.Error("Replace did not clear the forced reload")
	}
}

func TestReplace_KeepsLoadingEntry(t *testing.T) {
	t.Parallel()

	p := filled("a", "b", "c")
	p.SetLoading(1)

	p.Replace([]Entry{NewEntry("x"), NewEntry("y"), NewEntry("b")})
	if got := p.Loading(); got != 2 {
		t.Fatalf("Loading() = %d, want 2", got)
	}
	if p.Remove(2) {
		t.Error("Remove() of the loading entry succeeded after Replace")
	}

	p.Replace([]Entry{NewEntry("z")})
	if got := p.Loading(); got != -1 {
		t.Errorf("Loading() = %d, want -1 once the path is gone", got)
	}
}

func TestPlaylist_Concurrent(t *testing.T) {
	t.Parallel()

	p := New()
	p.SetUsePlaylist(true)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				switch (w + i) % 4 {
				case 0:
					p.Append("x.wav", i%2 == 0)
				case 1:
					p.Advance()
				case 2:
					p.MoveUp(i % 5)
				case 3:
					p.Remove(i % 7)
				}
			}
		}()
	}
	wg.Wait()

	if c := p.Current(); c < -1 || c >= p.Len() {
		t.Errorf("Current() = %d outside [-1, %d)", c, p.Len())
	}
}
