package internal

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/templang/tvin/lookup"
)

// Engine coordinates template analysis: it holds the shared lookup context,
// a source-keyed tree cache, and the optional watch state. An Engine is safe
// for concurrent Run/RunSource calls; each call builds (or fetches) a private
// tree.
type Engine struct {
	lookup *lookup.Context
	cache  *Cache
	logger *zap.Logger

	watcher    *fsnotify.Watcher
	watchDirs  []string
	isWatching bool
}

// NewEngine creates an engine over the given lookup context. A nil context
// falls back to the base preset.
func NewEngine(lc *lookup.Context) *Engine {
	if lc == nil {
		lc = lookup.Base()
	}
	return &Engine{
		lookup: lc,
		cache:  NewCache(),
		logger: zap.NewNop(),
	}
}

// SetLogger replaces the engine's logger. Used by the CLI; the core itself
// logs only from the watch loop.
func (e *Engine) SetLogger(logger *zap.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// Lookup returns the engine's shared lookup context.
func (e *Engine) Lookup() *lookup.Context { return e.lookup }

// Cache exposes the engine's tree cache.
func (e *Engine) Cache() *Cache { return e.cache }

// Run analyzes the template file at the given path.
func (e *Engine) Run(filename string) (*Tree, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", filename, err)
	}
	return e.RunSource(content)
}

// RunSource analyzes raw template source. Identical sources share one cached
// tree.
func (e *Engine) RunSource(source []byte) (*Tree, error) {
	normalized := Normalize(string(source))

	if tree, ok := e.cache.Get(normalized); ok {
		return tree, nil
	}

	tree, err := parse(normalized, e.lookup)
	if err != nil {
		return nil, err
	}

	e.cache.Set(normalized, tree)
	return tree, nil
}
