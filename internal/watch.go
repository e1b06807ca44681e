package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// TemplateExtensions are the file suffixes the watch loop and directory
// walkers treat as templates.
var TemplateExtensions = map[string]bool{
	".ss":  true,
	".tpl": true,
}

// IsTemplateFile reports whether path has a recognized template extension.
func IsTemplateFile(path string) bool {
	return TemplateExtensions[filepath.Ext(path)]
}

// AddWatchDir registers a directory tree to watch. Must be called before
// StartWatching.
func (e *Engine) AddWatchDir(dir string) {
	e.watchDirs = append(e.watchDirs, dir)
}

// StartWatching begins re-analyzing templates under the registered
// directories whenever they change.
func (e *Engine) StartWatching() error {
	if e.isWatching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	e.watcher = watcher

	for _, dir := range e.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return e.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.isWatching = true
	go e.watchLoop()
	return nil
}

// StopWatching shuts the watch loop down.
func (e *Engine) StopWatching() error {
	if !e.isWatching {
		e.logger.Warn("not watching")
		return nil
	}

	e.isWatching = false
	return e.watcher.Close()
}

func (e *Engine) watchLoop() {
	for e.isWatching {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !IsTemplateFile(event.Name) {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(100 * time.Millisecond)

	tree, err := e.Run(event.Name)
	if err != nil {
		e.logger.Error("analysis failed", zap.String("file", event.Name), zap.Error(err))
		return
	}
	e.reportTree(event.Name, tree)
}

func (e *Engine) reportTree(filename string, tree *Tree) {
	root := tree.Root()
	blocks := tree.Blocks()

	names := make([]string, 0, len(blocks))
	for _, b := range blocks {
		names = append(names, fmt.Sprintf("%s(%s)", b.Name(), b.Kind()))
	}

	e.logger.Info("template analyzed",
		zap.String("file", filename),
		zap.Int("variables", len(root.Variables())),
		zap.Int("blocks", len(blocks)),
		zap.String("blockNames", strings.Join(names, ", ")),
	)
}
