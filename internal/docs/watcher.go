package docs

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates cache entries when their source files change on
// disk, so edits to local documentation take effect before the TTL runs
// out.
type Watcher struct {
	fs     *fsnotify.Watcher
	loader *Loader
	done   chan struct{}
}

// WatchDir starts watching dir and invalidates the loader entry for any
// file written, removed, or renamed under it. fsnotify watches are not
// recursive, so every subdirectory is registered individually, and
// directories created later are picked up from their create events.
func WatchDir(loader *Loader, dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fsw.Add(path)
	})
	if walkErr != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, walkErr)
	}

	w := &Watcher{
		fs:     fsw,
		loader: loader,
		done:   make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.fs.Add(event.Name); err != nil {
						log.Printf("[docs] watch %s: %v", event.Name, err)
					}
					continue
				}
			}
			if event.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if err := w.loader.Invalidate(event.Name); err != nil {
				log.Printf("[docs] invalidate %s: %v", event.Name, err)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("[docs] watch error: %v", err)
		}
	}
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	err := w.fs.Close()
	<-w.done
	return err
}
