// Package analyze orchestrates template analysis over files and directory
// trees: configuration loading, engine construction, and bounded concurrent
// processing with progress reporting.
package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/templang/tvin/internal"
	"github.com/templang/tvin/lookup"
)

// Engine is the subset of the analysis engine the orchestration needs.
type Engine interface {
	Run(filePath string) (*internal.Tree, error)
	RunSource(source []byte) (*internal.Tree, error)
}

// Result pairs a template path with its report.
type Result struct {
	Path   string
	Report *internal.Report
}

// New builds an engine from a YAML overlay configuration file. An empty path
// uses the default configuration (base preset, no overlays).
func New(configurationPath string) (*internal.Engine, error) {
	config := lookup.DefaultConfig
	if configurationPath != "" {
		var err error
		config, err = lookup.LoadConfig(configurationPath)
		if err != nil {
			return nil, err
		}
	}

	ctx, err := config.Context()
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(ctx), nil
}

// ProcessFile analyzes one template file and builds its report.
func ProcessFile(engine Engine, filePath string) (*internal.Report, error) {
	tree, err := engine.Run(filePath)
	if err != nil {
		return nil, fmt.Errorf("error analyzing %s: %w", filePath, err)
	}
	return tree.Report(filePath), nil
}

// ProcessSource analyzes raw template source.
func ProcessSource(engine Engine, source []byte) (*internal.Report, error) {
	tree, err := engine.RunSource(source)
	if err != nil {
		return nil, err
	}
	return tree.Report(""), nil
}

// ProcessFiles analyzes every given path (file or directory) and returns the
// collected results sorted by path.
func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	paths []string,
	processor func(Engine, string) (*internal.Report, error),
) ([]Result, error) {
	var all []Result
	for _, path := range paths {
		results, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		all = append(all, results...)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Path < all[j].Path })
	return all, nil
}

// ProcessPath analyzes a single file, or walks a directory analyzing every
// template in it with a bounded worker pool and a progress bar.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine Engine,
	path string,
	processor func(Engine, string) (*internal.Report, error),
) ([]Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !internal.IsTemplateFile(path) {
			return nil, nil
		}
		report, err := processor(engine, path)
		if err != nil {
			return nil, err
		}
		return []Result{{Path: path, Report: report}}, nil
	}

	var files []string
	filepath.Walk(path, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil || fileInfo.IsDir() {
			return nil
		}
		if internal.IsTemplateFile(filePath) {
			files = append(files, filePath)
		}
		return nil
	})

	if len(files) == 0 {
		return nil, nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription(path),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
	)

	resultChan := make(chan Result, len(files))
	errorChan := make(chan error, len(files))

	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	var wg sync.WaitGroup
	for _, filePath := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
			sem <- struct{}{}
			wg.Add(1)
			go func(fp string) {
				defer wg.Done()
				defer func() { <-sem }()

				report, err := processor(engine, fp)
				if err != nil {
					if logger != nil {
						logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
					}
					errorChan <- err
				} else {
					resultChan <- Result{Path: fp, Report: report}
				}
				_ = bar.Add(1)
			}(filePath)
		}
	}

	wg.Wait()
	close(resultChan)
	close(errorChan)

	var results []Result
	for result := range resultChan {
		results = append(results, result)
	}

	// A malformed template fails the whole scan; best-effort classification
	// already absorbed everything recoverable.
	for err := range errorChan {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
