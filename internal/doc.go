// Package internal provides the core functionality of the template analyzer.
//
// The core recovers, without executing a template, the set of variables and
// nested loop/with blocks it references, together with a best-effort guess at
// each variable's underlying data type.
//
// Key components:
//
// Engine: coordinates the analysis. It holds the shared lookup context, a
// source-keyed tree cache, and the optional fsnotify watch state.
//
// ScanDelimiters: locates every open (loop/with) and close delimiter in the
// normalized source with byte offsets. A count mismatch is fatal.
//
// Tree: the immutable per-call result. Built by a single stack pass over the
// offset-ordered delimiter stream, it reconstructs arbitrary nesting depth
// and slices each block's own (non-nested) content.
//
// Block: one recognized scope. Owns its slice of source text and lazily
// memoized variable/boolean classifications.
//
// InferDatatype: the pure, ordered substring-rule type guesser.
//
// Usage:
//
//	engine := internal.NewEngine(lookup.Base())
//
//	tree, err := engine.RunSource(src)
//	if err != nil {
//	    // handle error
//	}
//
//	for name, typ := range tree.Root().Variables() {
//	    fmt.Printf("$%s: %s\n", name, typ)
//	}
//
// This package is intended for internal use within the analyzer and should
// not be imported by external packages.
package internal
