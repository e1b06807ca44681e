package internal

import (
	"sync"

	"github.com/templang/tvin/lookup"
)

// Block is a recognized nested scope in the template tree. Blocks are
// immutable after the tree is built, except for the lazily memoized
// variables/booleans fields, which are computed at most once.
type Block struct {
	id         int
	kind       BlockKind
	name       string
	start, end int
	raw        string
	ownContent string
	parent     *Block
	children   []*Block
	lookup     *lookup.Context

	once     sync.Once
	vars     map[string]string
	booleans []string
}

// ID returns the offset of the block's opening delimiter. 0 for the root.
func (b *Block) ID() int { return b.id }

// Kind returns loop, with, or root.
func (b *Block) Kind() BlockKind { return b.kind }

// Name returns the identifier the block was opened with. Empty for the root.
func (b *Block) Name() string { return b.name }

// Span returns the [start, end) offsets of the block's outer content in the
// normalized source. The root spans the whole source.
func (b *Block) Span() (start, end int) { return b.start, b.end }

// Raw returns the block's outer content, opening delimiter through matching
// closing delimiter. For the root it is the residual top-level text.
func (b *Block) Raw() string { return b.raw }

// Parent returns the enclosing block, or nil for the root.
func (b *Block) Parent() *Block { return b.parent }

// Children returns the addressable child blocks in order of first encounter.
func (b *Block) Children() []*Block { return b.children }

// OwnContent returns the block's inner content with every addressable child
// block's outer content masked by equal-length filler, preserving relative
// offsets. Newlines are already absent.
func (b *Block) OwnContent() string { return b.ownContent }

// Variables returns the block's variable name to inferred type mapping.
// Computed on first access and cached for the lifetime of the tree.
func (b *Block) Variables() map[string]string {
	b.compute()
	return b.vars
}

// Booleans returns the block's boolean-condition candidate names in
// first-seen order. Computed together with Variables.
func (b *Block) Booleans() []string {
	b.compute()
	return b.booleans
}

func (b *Block) compute() {
	b.once.Do(func() {
		b.vars, b.booleans = extractBlock(b)
	})
}

func (b *Block) hasChild(name string) bool {
	for _, c := range b.children {
		if c.name == name {
			return true
		}
	}
	return false
}
