package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher recarga el archivo de config cuando cambia y publica el snapshot nuevo.
type Watcher struct {
	path  string
	store *Store
	log   *slog.Logger
	fsw   *fsnotify.Watcher
	done  chan struct{}
	once  sync.Once
}

// Watch vigila el directorio del archivo (los editores suelen reemplazarlo con rename).
func Watch(path string, store *Store, log *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}

	w := &Watcher{path: path, store: store, log: log, fsw: fsw, done: make(chan struct{})}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	base := filepath.Base(w.path)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				_ = Reload(w.path, w.store, w.log)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("config watcher error", "error", err)
		}
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

// Reload lee path y publica el resultado. Si falla el parseo se queda el snapshot
// anterior. Token y guild no cambian en caliente.
func Reload(path string, store *Store, log *slog.Logger) error {
	next, err := Load(path)
	if err != nil {
		log.Warn("config reload failed, keeping previous", "path", path, "error", err)
		return err
	}

	prev := store.Snapshot()
	if prev != nil {
		if next.Token != prev.Token || next.Guild != prev.Guild {
			log.Warn("token/guild changed on disk; restart to apply")
			next.Token, next.Guild = prev.Token, prev.Guild
		}
		// el logger ya está armado
		next.Log = prev.Log
	}

	store.Swap(next)
	log.Info("config reloaded", "path", path,
		"icons_min_h", next.Icons.MinDelayHours, "icons_max_h", next.Icons.MaxDelayHours)
	return nil
}
