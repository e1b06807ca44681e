package internal

import "fmt"

// MalformedTemplateError is returned when the template's block delimiters do
// not pair up. The caller receives no partial tree.
type MalformedTemplateError struct {
	// Opens and Closes are the total delimiter counts found in the source.
	Opens  int
	Closes int
	// Offset is the position of an unmatched close delimiter when the counts
	// agree but the ordering is improper. -1 otherwise.
	Offset int
}

func (e *MalformedTemplateError) Error() string {
	if e.Opens != e.Closes {
		return fmt.Sprintf("malformed template: %d open delimiters but %d close delimiters", e.Opens, e.Closes)
	}
	return fmt.Sprintf("malformed template: close delimiter at offset %d has no matching open", e.Offset)
}

// UnresolvedParentError is returned when a block's recorded parent offset
// does not resolve to an addressable block. This happens when a block is
// nested inside a block whose name collides with a global accessor.
type UnresolvedParentError struct {
	// Offset is the opening offset of the orphaned block.
	Offset int
	// Parent is the recorded parent offset that failed to resolve.
	Parent int
	// Name is the orphaned block's declared name.
	Name string
}

func (e *UnresolvedParentError) Error() string {
	return fmt.Sprintf("block %q at offset %d: parent at offset %d is not addressable", e.Name, e.Offset, e.Parent)
}
