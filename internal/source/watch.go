package source

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchQuiet coalesces the burst of events editors emit on save.
const DefaultWatchQuiet = 150 * time.Millisecond

// Watcher reports changes to a single file. The parent directory is watched
// too so atomic saves (write to temp, rename over) are seen.
type Watcher struct {
	path    string
	quiet   time.Duration
	watcher *fsnotify.Watcher
}

func NewWatcher(path string, quiet time.Duration) (*Watcher, error) {
	if quiet <= 0 {
		quiet = DefaultWatchQuiet
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}
	return &Watcher{path: path, quiet: quiet, watcher: fw}, nil
}

// Run calls onChange after each quiet period following a write, create or
// rename of the file. It blocks until ctx is done and closes the watcher.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	defer w.watcher.Close()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}
	defer stop()

	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.quiet, func() {
				if ctx.Err() != nil {
					return
				}
				log.Printf("source: %s changed", w.path)
				onChange()
			})
			mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("source: watcher error: %v", err)
		}
	}
}
