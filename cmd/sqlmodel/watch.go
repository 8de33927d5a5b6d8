package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/syssam/sqlmodel/internal/logger"
)

// debounceDelay batches the events of one editor save.
const debounceDelay = 200 * time.Millisecond

var skipDirs = map[string]bool{
	".git":         true,
	"vendor":       true,
	"testdata":     true,
	"node_modules": true,
}

// watchAndRun runs fn once, then again after every batch of source changes,
// until ctx is canceled. Failed runs are logged and do not stop the watch.
func watchAndRun(ctx context.Context, suffix string, args []string, fn func(context.Context) error) error {
	log := logger.FromContext(ctx)
	dirs, err := watchDirs(args)
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			log.Warn("cannot watch directory", "dir", dir, "error", err)
		}
	}
	log.Info("watching for changes", "dirs", len(dirs))

	if err := fn(ctx); err != nil {
		log.Error("generation failed", "error", err)
	}

	var (
		mu      sync.Mutex
		timer   *time.Timer
		trigger = make(chan struct{}, 1)
	)
	fire := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}
	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			mu.Unlock()
			log.Info("stopped watching")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) || !relevant(ev.Name, suffix) {
				continue
			}
			log.Debug("source changed", "file", ev.Name, "op", ev.Op.String())
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, fire)
			mu.Unlock()
		case <-trigger:
			if err := fn(ctx); err != nil {
				log.Error("generation failed", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("watcher error", "error", err)
		}
	}
}

// relevant reports whether a change to name can alter the generated output.
// Generated files are ignored, so a run does not trigger itself.
func relevant(name, suffix string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".go") &&
		!strings.HasSuffix(base, "_test.go") &&
		(suffix == "" || !strings.HasSuffix(base, suffix))
}

// watchDirs resolves the arguments of gen to the directories to watch.
// A "dir/..." pattern watches the whole tree below dir.
func watchDirs(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		dir = filepath.Clean(dir)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	for _, arg := range args {
		if root, ok := strings.CutSuffix(arg, "/..."); ok {
			if root == "" {
				root = "."
			}
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() {
					return nil
				}
				if path != root && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}
				add(path)
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}
		if strings.HasSuffix(arg, ".go") {
			add(filepath.Dir(arg))
			continue
		}
		fi, err := os.Stat(arg)
		if err != nil || !fi.IsDir() {
			return nil, fmt.Errorf("cannot watch %q: only files, directories and dir/... patterns are supported", arg)
		}
		add(arg)
	}
	return dirs, nil
}
