package internal

import (
	"regexp"
	"strings"
)

// OccurrenceKind distinguishes open and close delimiter occurrences.
type OccurrenceKind int

const (
	OpenOccurrence OccurrenceKind = iota
	CloseOccurrence
)

// BlockKind identifies the scope form a block was opened with.
type BlockKind string

const (
	LoopBlock BlockKind = "loop"
	WithBlock BlockKind = "with"
	RootBlock BlockKind = "root"
)

var (
	openPattern  = regexp.MustCompile(`<%\s*(loop|with)(\s+[^%]*?)?\s*%>`)
	closePattern = regexp.MustCompile(`<%\s*end_(loop|with)\s*%>`)
	identPattern = regexp.MustCompile(`^\$?([A-Za-z_][A-Za-z0-9_]*)`)
)

// Occurrence is a single delimiter found in the normalized source text.
type Occurrence struct {
	Kind   OccurrenceKind
	Block  BlockKind
	Offset int
	Raw    string
	// Name is the leading identifier of the open expression with the sigil
	// and any trailing call-argument or modifier text stripped. Empty for
	// close occurrences and expression-less opens.
	Name string
}

// Normalization removes characters that are never significant to the
// delimiter grammar. All offsets produced afterwards refer to the normalized
// text, not original-file coordinates.
var normalizer = strings.NewReplacer("\r", "", "\n", "", "\t", "")

// Normalize strips carriage returns, newlines and tabs from the source.
func Normalize(source string) string {
	return normalizer.Replace(source)
}

// ScanDelimiters finds every open and close delimiter in the normalized
// source and returns both sequences ordered by ascending offset. A count
// mismatch between opens and closes is fatal.
func ScanDelimiters(source string) (opens, closes []Occurrence, err error) {
	for _, m := range openPattern.FindAllStringSubmatchIndex(source, -1) {
		occ := Occurrence{
			Kind:   OpenOccurrence,
			Block:  BlockKind(source[m[2]:m[3]]),
			Offset: m[0],
			Raw:    source[m[0]:m[1]],
		}
		if m[4] >= 0 {
			occ.Name = leadingIdent(strings.TrimSpace(source[m[4]:m[5]]))
		}
		opens = append(opens, occ)
	}

	for _, m := range closePattern.FindAllStringSubmatchIndex(source, -1) {
		closes = append(closes, Occurrence{
			Kind:   CloseOccurrence,
			Block:  BlockKind(source[m[2]:m[3]]),
			Offset: m[0],
			Raw:    source[m[0]:m[1]],
		})
	}

	if len(opens) != len(closes) {
		return nil, nil, &MalformedTemplateError{Opens: len(opens), Closes: len(closes), Offset: -1}
	}
	return opens, closes, nil
}

// leadingIdent extracts the first identifier of an expression, skipping an
// optional $ sigil. Returns "" when the expression does not start with one.
func leadingIdent(expr string) string {
	m := identPattern.FindStringSubmatch(expr)
	if m == nil {
		return ""
	}
	return m[1]
}
