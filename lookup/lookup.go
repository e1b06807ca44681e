// Package lookup defines the read-only lookup context consumed by the
// template analysis core: which identifiers are framework-global accessors,
// which method names imply a field type, which method names are valid on any
// iterable value, and the ordered name-pattern rules used to guess a scalar
// variable's type.
//
// A Context is computed once by the caller and reused across many parses. It
// is immutable after construction and safe to share between concurrent
// analyses.
package lookup

import "strings"

// Rule is a single ordered inference rule. If Pattern occurs as a substring
// of a variable name (case-sensitive), the variable is assigned Type. Rules
// are evaluated top to bottom; the first match wins.
type Rule struct {
	Pattern string `yaml:"pattern"`
	Type    string `yaml:"type"`
}

// Options collects the raw tables used to build a Context.
type Options struct {
	// GlobalAccessors are identifiers that are always available in any scope
	// without being user-defined data. Matching is case-insensitive.
	GlobalAccessors []string

	// FieldMethods maps a method name (matched lowercase) to the field type
	// implied by invoking it, e.g. "nice" -> "Date".
	FieldMethods map[string]string

	// CollectionMethods are method names (matched lowercase) valid on any
	// iterable block, e.g. "count" or "first".
	CollectionMethods []string

	// Rules is the ordered substring-pattern inference table.
	Rules []Rule

	// DefaultType is returned when no rule matches a variable name.
	DefaultType string

	// KnownTypes lists names recognized as data-bearing types in the host
	// type catalog. KnownTypeFunc, when non-nil, extends the list with a
	// dynamic predicate.
	KnownTypes    []string
	KnownTypeFunc func(name string) bool
}

// Context is the process-wide, externally supplied set of lookup tables.
type Context struct {
	globals           map[string]bool
	fieldMethods      map[string]string
	collectionMethods map[string]bool
	rules             []Rule
	defaultType       string
	knownTypes        map[string]bool
	knownTypeFunc     func(string) bool
}

// New builds an immutable Context from the given tables.
func New(opts Options) *Context {
	ctx := &Context{
		globals:           make(map[string]bool, len(opts.GlobalAccessors)),
		fieldMethods:      make(map[string]string, len(opts.FieldMethods)),
		collectionMethods: make(map[string]bool, len(opts.CollectionMethods)),
		rules:             make([]Rule, len(opts.Rules)),
		defaultType:       opts.DefaultType,
		knownTypes:        make(map[string]bool, len(opts.KnownTypes)),
		knownTypeFunc:     opts.KnownTypeFunc,
	}

	for _, name := range opts.GlobalAccessors {
		ctx.globals[strings.ToLower(name)] = true
	}
	for method, typ := range opts.FieldMethods {
		ctx.fieldMethods[strings.ToLower(method)] = typ
	}
	for _, method := range opts.CollectionMethods {
		ctx.collectionMethods[strings.ToLower(method)] = true
	}
	copy(ctx.rules, opts.Rules)
	for _, name := range opts.KnownTypes {
		ctx.knownTypes[strings.ToLower(name)] = true
	}

	return ctx
}

// IsGlobal reports whether name is a global accessor. Case-insensitive.
func (c *Context) IsGlobal(name string) bool {
	return c.globals[strings.ToLower(name)]
}

// FieldMethodType looks up the field type implied by a method name.
func (c *Context) FieldMethodType(method string) (string, bool) {
	typ, ok := c.fieldMethods[strings.ToLower(method)]
	return typ, ok
}

// IsCollectionMethod reports whether name is valid on any iterable block.
func (c *Context) IsCollectionMethod(name string) bool {
	return c.collectionMethods[strings.ToLower(name)]
}

// Rules returns the ordered inference rule table.
func (c *Context) Rules() []Rule {
	return c.rules
}

// DefaultType returns the fallback type label.
func (c *Context) DefaultType() string {
	return c.defaultType
}

// IsKnownType reports whether name is a known data-bearing type in the host
// type catalog.
func (c *Context) IsKnownType(name string) bool {
	if c.knownTypes[strings.ToLower(name)] {
		return true
	}
	if c.knownTypeFunc != nil {
		return c.knownTypeFunc(name)
	}
	return false
}

// WithGlobals returns a copy of the context with additional global accessor
// names layered on top. The receiver is not modified.
func (c *Context) WithGlobals(names ...string) *Context {
	next := c.clone()
	for _, name := range names {
		next.globals[strings.ToLower(name)] = true
	}
	return next
}

func (c *Context) clone() *Context {
	next := &Context{
		globals:           make(map[string]bool, len(c.globals)),
		fieldMethods:      make(map[string]string, len(c.fieldMethods)),
		collectionMethods: make(map[string]bool, len(c.collectionMethods)),
		rules:             make([]Rule, len(c.rules)),
		defaultType:       c.defaultType,
		knownTypes:        make(map[string]bool, len(c.knownTypes)),
		knownTypeFunc:     c.knownTypeFunc,
	}
	for k, v := range c.globals {
		next.globals[k] = v
	}
	for k, v := range c.fieldMethods {
		next.fieldMethods[k] = v
	}
	for k, v := range c.collectionMethods {
		next.collectionMethods[k] = v
	}
	copy(next.rules, c.rules)
	for k, v := range c.knownTypes {
		next.knownTypes[k] = v
	}
	return next
}
