package settings

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
)

const defaultReloadDelay = 250 * time.Millisecond

// Watcher reloads the settings file after it changes on disk and hands the
// result to onChange. Bursts of writes collapse into one reload.
type Watcher struct {
	store    *Store
	onChange func(autoclicker.SettingsSnapshot)
	watcher  *fsnotify.Watcher
	debounce func(func())

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Watch starts watching the directory holding the store's file. The
// directory is created if needed so an editor can create the file later.
func Watch(store *Store, delay time.Duration, onChange func(autoclicker.SettingsSnapshot)) (*Watcher, error) {
	if store == nil {
		return nil, ErrPathRequired
	}
	if delay <= 0 {
		delay = defaultReloadDelay
	}
	dir := filepath.Dir(store.Path())
	if err := ensureDir(dir); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch settings: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch settings: add %s: %w", dir, err)
	}

	w := &Watcher{
		store:    store,
		onChange: onChange,
		watcher:  fw,
		debounce: debounce.New(delay),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	target := filepath.Base(w.store.Path())
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.debounce(w.reload)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("[WARN-SETTINGS] watcher error", "error", err)
		}
	}
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}
	snap, err := w.store.Load()
	if err != nil {
		slog.Warn("[WARN-SETTINGS] reload failed", "path", w.store.Path(), "error", err)
		return
	}
	if w.onChange != nil {
		w.onChange(snap)
	}
}

func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}
