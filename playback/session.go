// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/ik5/audloop/playlist"
)

type SessionOptions struct {
	Policy   FailurePolicy
	Observer Observer
	Logger   *slog.Logger
}

// Session ties a Cursor, a Coordinator and a Playlist together. It is the
// single place that holds the player's mode flags, and it turns clip ends
// reported by the real-time consumer into playlist advances off the
// real-time path.
type Session struct {
	cursor   *Cursor
	coord    *Coordinator
	list     *playlist.Playlist
	observer Observer
	log      *slog.Logger

	boundary chan struct{}

	// mu orders SetLoading/RequestLoad against the worker clearing the mark.
	mu         sync.Mutex
	loadingSeq uint64

	runMu   sync.Mutex
	cancel  context.CancelFunc
	running sync.WaitGroup
}

func NewSession(loader Loader, device Device, opts SessionOptions) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	observer := opts.Observer
	if observer == nil {
		observer = ObserverFuncs{}
	}

	s := &Session{
		cursor:   NewCursor(),
		list:     playlist.New(),
		observer: observer,
		log:      log,
		boundary: make(chan struct{}, 1),
	}

	s.coord = NewCoordinator(s.cursor, loader, device, CoordinatorOptions{
		Policy:   opts.Policy,
		Observer: sessionObserver{s},
		Logger:   log,
	})

	return s
}

func (s *Session) Cursor() *Cursor              { return s.cursor }
func (s *Session) Playlist() *playlist.Playlist { return s.list }
func (s *Session) Coordinator() *Coordinator    { return s.coord }

// Streamer returns a beep streamer over the session's cursor whose clip
// ends drive the playlist.
func (s *Session) Streamer() *Streamer { return NewStreamer(s.cursor, s) }

// Run starts the coordinator and the goroutine servicing clip ends. It
// returns immediately; Close stops both.
func (s *Session) Run(ctx context.Context) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if s.cancel != nil {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.coord.Start(ctx)

	s.running.Add(1)
	go func() {
		defer s.running.Done()
		s.serviceBoundaries(ctx)
	}()
}

// Close stops the session and waits for its goroutines, including any load
// in progress.
func (s *Session) Close() error {
	s.runMu.Lock()
	cancel := s.cancel
	s.runMu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.running.Wait()

	return s.coord.Close()
}

// ReachedBoundary records that playback hit the end of the clip. It never
// blocks; repeated calls before the session reacts collapse into one.
func (s *Session) ReachedBoundary() {
	select {
	case s.boundary <- struct{}{}:
	default:
	}
}

func (s *Session) serviceBoundaries(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-s.boundary:
			s.advance()
		}
	}
}

func (s *Session) advance() {
	entry, idx, ok := s.list.Advance()
	if !ok {
		return
	}

	if _, err := s.load(idx); err != nil {
		s.log.Warn("advancing playlist", "index", idx, "path", entry.Path, "error", err)
		return
	}
	s.observer.Advanced(idx, entry)
}

// load requests the entry at idx and marks it as loading until the request
// settles.
func (s *Session) load(idx int) (uint64, error) {
	entry, ok := s.list.Entry(idx)
	if !ok {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.list.SetLoading(idx)
	seq, err := s.coord.RequestLoad(entry.Path)
	if err != nil {
		s.list.ClearLoading()
		return 0, err
	}
	s.loadingSeq = seq

	return seq, nil
}

// Open appends path, makes it current and loads it.
func (s *Session) Open(path string) (uint64, error) {
	return s.load(s.list.Append(path, true))
}

// Append adds path to the playlist, loading it right away when makeCurrent
// is set.
func (s *Session) Append(path string, makeCurrent bool) (uint64, error) {
	if makeCurrent {
		return s.Open(path)
	}
	s.list.Append(path, false)
	return 0, nil
}

// AppendQueued adds a file dropped onto the playlist. Into an empty list it
// loads at once; otherwise the next clip end moves on even when playlist
// mode is off.
func (s *Session) AppendQueued(path string) (uint64, error) {
	if s.list.Len() == 0 {
		return s.Open(path)
	}
	s.list.Append(path, false)
	s.list.ForceReload()
	return 0, nil
}

// Remove deletes entry i unless it is loading.
func (s *Session) Remove(i int) bool   { return s.list.Remove(i) }
func (s *Session) MoveUp(i int) bool   { return s.list.MoveUp(i) }
func (s *Session) MoveDown(i int) bool { return s.list.MoveDown(i) }

// UsePlaylist turns moving to the next entry at the end of a clip on or off.
func (s *Session) UsePlaylist(on bool) { s.list.SetUsePlaylist(on) }

// LoadPlaylist replaces the playlist. If nothing is playing yet the first
// entry loads now; otherwise the current clip keeps playing and the next
// advance starts the new list from its first entry. A load still in flight
// keeps its entry safe from Remove when the new list holds the same path.
func (s *Session) LoadPlaylist(entries []playlist.Entry) (uint64, error) {
	s.list.Replace(entries)
	if len(entries) == 0 {
		return 0, nil
	}

	if s.cursor.Acquire().Buffer().Empty() {
		s.list.SetCurrent(0)
		return s.load(0)
	}

	s.list.SetCurrent(len(entries) - 1)
	return 0, nil
}

// Wait blocks until request seq has settled. See Coordinator.Wait.
func (s *Session) Wait(ctx context.Context, seq uint64) (Result, error) {
	if seq == 0 {
		return Result{}, nil
	}
	return s.coord.Wait(ctx, seq)
}

// sessionObserver clears the loading mark before forwarding coordinator
// events to the caller's observer.
type sessionObserver struct{ s *Session }

func (o sessionObserver) Published(r Result) {
	o.s.mu.Lock()
	if r.Seq == o.s.loadingSeq {
		o.s.list.ClearLoading()
	}
	o.s.mu.Unlock()

	o.s.observer.Published(r)
}

// Superseded runs inside RequestLoad while s.mu is held, so it must not
// take the lock. The mark is moved by the request that replaced this one.
func (o sessionObserver) Superseded(r Result) {
	if errors.Is(r.Err, ErrClosed) {
		o.s.list.ClearLoading()
	}
	o.s.observer.Superseded(r)
}

func (o sessionObserver) Advanced(i int, e playlist.Entry) { o.s.observer.Advanced(i, e) }
