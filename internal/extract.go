package internal

import (
	"regexp"
	"strings"
)

var (
	conditionPattern = regexp.MustCompile(`<%\s*if\s+(not\s+)?([^%]+?)\s*%>`)
	variablePattern  = regexp.MustCompile(`\$[A-Za-z_][A-Za-z0-9_]*(?:\.[A-Za-z_][A-Za-z0-9_]*)*(?:\([^)]*\))?`)
)

// extractBlock classifies the tokens of a block's own content: which are
// boolean-condition candidates, which are variables, and what type each
// variable most likely holds. It never fails; anything unresolvable degrades
// to a generic guess.
func extractBlock(b *Block) (map[string]string, []string) {
	lc := b.lookup
	content := b.ownContent

	// Boolean pass. A conditional guarding a global accessor, a collection
	// method, or a block by name is not itself a free variable.
	var booleans []string
	seen := make(map[string]bool)
	for _, m := range conditionPattern.FindAllStringSubmatch(content, -1) {
		name := leadingIdent(m[2])
		if name == "" || seen[name] {
			continue
		}
		if lc.IsGlobal(name) || lc.IsCollectionMethod(name) || b.hasChild(name) {
			continue
		}
		seen[name] = true
		booleans = append(booleans, name)
	}

	// Variable pass.
	vars := make(map[string]string)
	counts := make(map[string]int)
	for _, tok := range variablePattern.FindAllString(content, -1) {
		tok = strings.TrimPrefix(tok, "$")

		if dot := strings.IndexByte(tok, '.'); dot >= 0 {
			relation := tok[:dot]
			member := stripCallArgs(tok[dot+1:])

			if lc.IsGlobal(relation) {
				// Framework-internal reference, e.g. the enclosing scope.
				continue
			}
			if typ, ok := lc.FieldMethodType(member); ok {
				// The member reads as a method invoked on a field of that type.
				vars[relation] = typ
			} else if lc.IsKnownType(relation) {
				// A to-one relation whose type matches its field name.
				vars[relation] = relation
			} else {
				vars[relation] = RelationType
			}
			continue
		}

		label := stripCallArgs(tok)
		counts[label]++
		if b.hasChild(label) {
			// The block takes precedence; a name cannot be both a block and
			// a scalar variable within the same scope.
			continue
		}
		if _, assigned := vars[label]; assigned {
			continue
		}
		switch b.kind {
		case LoopBlock:
			if !lc.IsCollectionMethod(label) {
				vars[label] = InferDatatype(label, lc)
			}
		default:
			// with blocks and the root both bind a single scope value.
			if !lc.IsGlobal(label) {
				vars[label] = InferDatatype(label, lc)
			}
		}
	}

	// Reconcile: remove the usage already attributed to each conditional. A
	// name referenced only inside an if guard is a boolean-valued flag, not a
	// field of the type otherwise inferred.
	for _, name := range booleans {
		c, ok := counts[name]
		if !ok {
			continue
		}
		c--
		counts[name] = c
		if c == 0 {
			vars[name] = BooleanType
		}
	}

	return vars, booleans
}

// stripCallArgs removes a trailing call-argument list from a token segment.
func stripCallArgs(s string) string {
	if i := strings.IndexByte(s, '('); i >= 0 {
		return s[:i]
	}
	return s
}
