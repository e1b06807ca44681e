// Package tvin statically analyzes a template's markup to recover, without
// executing it, the variables and nested loop/with blocks it references,
// together with a best-effort guess at each variable's underlying data type.
package tvin

import (
	"github.com/templang/tvin/analyze"
	"github.com/templang/tvin/internal"
	"github.com/templang/tvin/lookup"
)

// Process analyzes raw template source against the given lookup context and
// returns the queryable block tree. A nil context uses the base preset.
func Process(source string, lc *lookup.Context) (*internal.Tree, error) {
	return internal.Process(source, lc)
}

// New builds a reusable analysis engine from a YAML overlay configuration
// file. An empty path uses the default configuration.
func New(configurationPath string) (*internal.Engine, error) {
	return analyze.New(configurationPath)
}
