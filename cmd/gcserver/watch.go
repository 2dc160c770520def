package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const debounce = 500 * time.Millisecond

var watchDirs = []string{"content", "templates", "static"}

// watch calls reload after changes below the watched directories of prefix
// settle. The returned func stops watching.
func watch(prefix string, reload func() error) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "Failed to create file watcher")
	}

	for _, dir := range watchDirs {
		root := filepath.Join(prefix, dir)
		if _, err := os.Stat(root); os.IsNotExist(err) {
			slog.Debug("not watching", "dir", root)
			continue
		}
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			watcher.Close()
			return nil, errors.Wrapf(err, "watch %q", root)
		}
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
					continue
				}
				slog.Debug("change detected", "name", event.Name, "op", event.Op.String())
				if event.Has(fsnotify.Create) {
					if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
						if err := watcher.Add(event.Name); err != nil {
							slog.Warn("cannot watch new directory", "dir", event.Name, "err", err)
						}
					}
				}
				mu.Lock()
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(debounce, func() {
					if err := reload(); err != nil {
						slog.Error("reload failed", "err", err)
					}
				})
				mu.Unlock()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("watcher error", "err", err)
			}
		}
	}()

	return func() {
		watcher.Close()
		<-done
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}, nil
}
