// SPDX-License-Identifier: EPL-2.0

package playlist

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls fn with the current playlist names whenever the store file is
// created, written, renamed or removed, which covers hand edits and editors
// that save through a rename. It blocks until ctx is done.
//
// The store's directory is watched rather than the file itself so the
// watch survives the file being replaced.
func (s *Store) Watch(ctx context.Context, fn func(names []string)) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watching playlist store: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watching playlist store: %w", err)
	}

	const relevant = fsnotify.Create | fsnotify.Write | fsnotify.Rename | fsnotify.Remove

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.path || ev.Op&relevant == 0 {
				continue
			}

			all, err := s.ListNames()
			if err != nil {
				s.log.Warn("re-reading playlist store", "path", s.path, "error", err)
				continue
			}
			fn(all)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("playlist store watcher", "path", s.path, "error", err)
		}
	}
}
