package internal

import (
	"strings"

	"github.com/templang/tvin/lookup"
)

const (
	// RelationType is the fallback label for a dotted-path relation whose
	// target type cannot be resolved from the lookup tables.
	RelationType = "has_one"

	// BooleanType is the label assigned to a name referenced only inside
	// conditional guards.
	BooleanType = "Boolean"
)

// InferDatatype guesses a variable's type from its name using the ordered
// substring rule table. The first matching pattern wins; patterns match
// case-sensitively against common naming idioms. Pure: same name and same
// rule table always yield the same result.
func InferDatatype(name string, lc *lookup.Context) string {
	for _, rule := range lc.Rules() {
		if strings.Contains(name, rule.Pattern) {
			return rule.Type
		}
	}
	return lc.DefaultType()
}
