package internal

import (
	"strings"

	"github.com/templang/tvin/lookup"
)

const parentNone = -1

// Tree is the immutable result of analyzing one template.
type Tree struct {
	source   string
	root     *Block
	blocks   map[int]*Block
	order    []int
	excluded int
}

// blockRecord is the intermediate (start, end, parent) triple produced by the
// stack pass, before blocks are materialized.
type blockRecord struct {
	start, end int
	openLen    int
	closeLen   int
	kind       BlockKind
	name       string
	parent     int
}

// Process normalizes the source, scans its delimiters, reconstructs the block
// tree and assembles the top-level view. The returned tree is private to the
// call; only the lookup context is shared.
func Process(source string, lc *lookup.Context) (*Tree, error) {
	if lc == nil {
		lc = lookup.Base()
	}
	return parse(Normalize(source), lc)
}

func parse(normalized string, lc *lookup.Context) (*Tree, error) {
	opens, closes, err := ScanDelimiters(normalized)
	if err != nil {
		return nil, err
	}

	records, order, err := buildRecords(opens, closes)
	if err != nil {
		return nil, err
	}

	return materialize(normalized, records, order, lc)
}

// buildRecords merges the open and close occurrence streams by ascending
// offset and runs the single stack pass. The stack enforces
// last-open-first-closed ordering, so arbitrary nesting depth reconstructs
// correctly in O(number of delimiters).
func buildRecords(opens, closes []Occurrence) (map[int]*blockRecord, []int, error) {
	records := make(map[int]*blockRecord, len(opens))
	order := make([]int, 0, len(opens))
	var stack []int

	oi, ci := 0, 0
	for oi < len(opens) || ci < len(closes) {
		// Delimiters cannot share an offset, so strict comparison is enough.
		if oi < len(opens) && (ci >= len(closes) || opens[oi].Offset < closes[ci].Offset) {
			occ := opens[oi]
			oi++

			parent := parentNone
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			records[occ.Offset] = &blockRecord{
				start:   occ.Offset,
				openLen: len(occ.Raw),
				kind:    occ.Block,
				name:    occ.Name,
				parent:  parent,
			}
			order = append(order, occ.Offset)
			stack = append(stack, occ.Offset)
			continue
		}

		occ := closes[ci]
		ci++

		if len(stack) == 0 {
			return nil, nil, &MalformedTemplateError{Opens: len(opens), Closes: len(closes), Offset: occ.Offset}
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		records[top].end = occ.Offset + len(occ.Raw)
		records[top].closeLen = len(occ.Raw)
	}

	return records, order, nil
}

// materialize builds Block values in ascending-start order, excludes
// accessor-named blocks from the addressable set, slices own content, and
// assembles the synthetic root over the residual top-level text.
func materialize(normalized string, records map[int]*blockRecord, order []int, lc *lookup.Context) (*Tree, error) {
	t := &Tree{
		source: normalized,
		blocks: make(map[int]*Block, len(records)),
	}

	excluded := make(map[int]bool)
	for _, id := range order {
		if lc.IsGlobal(records[id].name) {
			excluded[id] = true
			t.excluded++
		}
	}

	root := &Block{id: 0, kind: RootBlock, lookup: lc}
	t.root = root

	for _, id := range order {
		if excluded[id] {
			continue
		}
		rec := records[id]

		var parent *Block
		switch {
		case rec.parent == parentNone:
			parent = root
		case excluded[rec.parent]:
			return nil, &UnresolvedParentError{Offset: id, Parent: rec.parent, Name: rec.name}
		default:
			parent = t.blocks[rec.parent]
		}

		b := &Block{
			id:     id,
			kind:   rec.kind,
			name:   rec.name,
			start:  rec.start,
			end:    rec.end,
			raw:    normalized[rec.start:rec.end],
			parent: parent,
			lookup: lc,
		}
		parent.children = append(parent.children, b)
		t.blocks[id] = b
		t.order = append(t.order, id)
	}

	for _, id := range t.order {
		b := t.blocks[id]
		rec := records[id]
		b.ownContent = sliceOwnContent(normalized, rec, b.children)
	}

	residual := residualText(normalized, root.children)
	root.start = 0
	root.end = len(normalized)
	root.raw = residual
	root.ownContent = residual

	return t, nil
}

// sliceOwnContent takes a block's inner content and masks each addressable
// child's outer span with filler of equal length, so relative offsets stay
// valid for later positional computation.
func sliceOwnContent(normalized string, rec *blockRecord, children []*Block) string {
	innerStart := rec.start + rec.openLen
	innerEnd := rec.end - rec.closeLen
	inner := []byte(normalized[innerStart:innerEnd])

	for _, c := range children {
		for i := c.start - innerStart; i < c.end-innerStart; i++ {
			inner[i] = ' '
		}
	}
	return string(inner)
}

// residualText removes every top-level addressable block's outer span from
// the normalized source. Offsets are not needed afterwards, so spans are
// deleted rather than replaced by filler.
func residualText(normalized string, topLevel []*Block) string {
	var sb strings.Builder
	cur := 0
	for _, b := range topLevel {
		sb.WriteString(normalized[cur:b.start])
		cur = b.end
	}
	sb.WriteString(normalized[cur:])
	return sb.String()
}

// Root returns the synthetic top-level block.
func (t *Tree) Root() *Block { return t.root }

// Block looks up an addressable block by its opening offset.
func (t *Tree) Block(id int) (*Block, bool) {
	b, ok := t.blocks[id]
	return b, ok
}

// Blocks returns every addressable block in ascending-start order.
func (t *Tree) Blocks() []*Block {
	out := make([]*Block, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.blocks[id])
	}
	return out
}

// TopLevel returns the addressable blocks not nested in any other block.
func (t *Tree) TopLevel() []*Block { return t.root.children }

// Source returns the normalized source text the offsets refer to.
func (t *Tree) Source() string { return t.source }

// Excluded returns how many scanned blocks were dropped from the addressable
// set because their name matched a global accessor.
func (t *Tree) Excluded() int { return t.excluded }
