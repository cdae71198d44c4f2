package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/gnana997/tsmeta/pkg/parser"
)

const debounceDelay = 200 * time.Millisecond

// runWatch watches a directory tree and re-extracts changed source files,
// streaming each result as a JSON line on stdout.
func runWatch(args []string) error {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	cfg, err := loadProjectConfig()
	if err != nil {
		return fmt.Errorf("load project config: %w", err)
	}

	st, err := buildStack(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	w, err := newWatcher(st, root, resolveExcludes(cfg))
	if err != nil {
		return err
	}
	defer w.stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}

// watcher re-extracts files on change, debouncing rapid edits per file.
type watcher struct {
	fsw      *fsnotify.Watcher
	st       *stack
	root     string
	excludes []string

	timers   map[string]*time.Timer
	timersMu sync.Mutex

	out   *json.Encoder
	outMu sync.Mutex

	stopOnce sync.Once
	stopChan chan struct{}
}

func newWatcher(st *stack, root string, excludes []string) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &watcher{
		fsw:      fsw,
		st:       st,
		root:     root,
		excludes: excludes,
		timers:   make(map[string]*time.Timer),
		out:      json.NewEncoder(os.Stdout),
		stopChan: make(chan struct{}),
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.excluded(path) {
			return filepath.SkipDir
		}
		if werr := fsw.Add(path); werr != nil {
			st.logger.Warn("failed to watch directory", "path", path, "error", werr)
		}
		return nil
	})
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("setup watches: %w", err)
	}

	st.logger.Info("watching", "root", root)
	go w.eventLoop()
	return w, nil
}

func (w *watcher) stop() {
	w.stopOnce.Do(func() {
		close(w.stopChan)

		w.timersMu.Lock()
		for _, timer := range w.timers {
			timer.Stop()
		}
		w.timers = make(map[string]*time.Timer)
		w.timersMu.Unlock()

		w.fsw.Close()
	})
}

func (w *watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.st.logger.Error("watch error", "error", err)
		}
	}
}

func (w *watcher) handleEvent(event fsnotify.Event) {
	path := event.Name
	if w.excluded(path) {
		return
	}

	// New directories need their own watch.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if werr := w.fsw.Add(path); werr != nil {
				w.st.logger.Warn("failed to watch directory", "path", path, "error", werr)
			}
			return
		}
	}

	if parser.DetectLanguage(path) == parser.LanguageUnknown {
		return
	}

	switch {
	case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
		w.debounce(path)
	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		w.st.loader.Invalidate(path)
	}
}

// debounce schedules re-extraction after a quiet period. Rapid successive
// writes to the same file reset the timer so only the last one runs.
func (w *watcher) debounce(path string) {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()

	if timer, exists := w.timers[path]; exists {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(debounceDelay, func() {
		w.reextract(path)

		w.timersMu.Lock()
		delete(w.timers, path)
		w.timersMu.Unlock()
	})
}

func (w *watcher) reextract(path string) {
	w.st.loader.Invalidate(path)

	meta, err := w.st.extractor.ExtractFile(path)
	if err != nil {
		w.st.logger.Warn("re-extraction failed", "file", path, "error", err)
		return
	}

	w.outMu.Lock()
	defer w.outMu.Unlock()
	if err := w.out.Encode(meta); err != nil {
		w.st.logger.Error("write result", "error", err)
	}
}

func (w *watcher) excluded(path string) bool {
	relPath, err := filepath.Rel(w.root, path)
	if err != nil {
		relPath = path
	}
	relPath = filepath.ToSlash(relPath)
	for _, pattern := range w.excludes {
		if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
			return true
		}
	}
	return false
}
