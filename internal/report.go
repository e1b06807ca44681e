package internal

// Report is an exported snapshot of a Tree, suitable for JSON output and the
// terminal formatter. Building a report forces extraction on every block.
type Report struct {
	// Template is the file path or logical name of the analyzed template.
	Template string `json:"template,omitempty"`
	// Variables is the top-level variable name to inferred type mapping.
	Variables map[string]string `json:"variables"`
	// Booleans lists the top-level boolean-condition candidates.
	Booleans []string `json:"booleans,omitempty"`
	// Blocks lists the top-level blocks in source order.
	Blocks []BlockReport `json:"blocks,omitempty"`
}

// BlockReport mirrors one addressable block and its descendants.
type BlockReport struct {
	Name      string            `json:"name"`
	Kind      string            `json:"kind"`
	Variables map[string]string `json:"variables"`
	Booleans  []string          `json:"booleans,omitempty"`
	Blocks    []BlockReport     `json:"blocks,omitempty"`
}

// Report builds the exported snapshot of the tree.
func (t *Tree) Report(template string) *Report {
	root := t.Root()
	return &Report{
		Template:  template,
		Variables: root.Variables(),
		Booleans:  root.Booleans(),
		Blocks:    blockReports(root.Children()),
	}
}

func blockReports(blocks []*Block) []BlockReport {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]BlockReport, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, BlockReport{
			Name:      b.Name(),
			Kind:      string(b.Kind()),
			Variables: b.Variables(),
			Booleans:  b.Booleans(),
			Blocks:    blockReports(b.Children()),
		})
	}
	return out
}
