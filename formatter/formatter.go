// Package formatter renders analysis reports for human consumption.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/templang/tvin/internal"
)

const indentWidth = 2

var (
	fileStyle    = color.New(color.FgCyan, color.Bold)
	kindStyle    = color.New(color.FgYellow, color.Bold)
	nameStyle    = color.New(color.FgHiBlue, color.Bold)
	typeStyle    = color.New(color.FgGreen)
	booleanStyle = color.New(color.FgMagenta)
	noStyle      = color.New(color.FgWhite)
)

// Format renders a report as an indented block tree with aligned
// variable/type columns.
func Format(report *internal.Report) string {
	var builder strings.Builder

	if report.Template != "" {
		builder.WriteString(fileStyle.Sprint(report.Template))
		builder.WriteString("\n")
	}

	writeScope(&builder, report.Variables, report.Booleans, 1)
	writeBlocks(&builder, report.Blocks, 1)

	return builder.String()
}

func writeBlocks(builder *strings.Builder, blocks []internal.BlockReport, depth int) {
	pad := strings.Repeat(" ", depth*indentWidth)
	for _, block := range blocks {
		builder.WriteString(pad)
		builder.WriteString(kindStyle.Sprintf("<%% %s ", block.Kind))
		builder.WriteString(nameStyle.Sprintf("$%s", block.Name))
		builder.WriteString(kindStyle.Sprint(" %>"))
		builder.WriteString("\n")

		writeScope(builder, block.Variables, block.Booleans, depth+1)
		writeBlocks(builder, block.Blocks, depth+1)
	}
}

func writeScope(builder *strings.Builder, variables map[string]string, booleans []string, depth int) {
	pad := strings.Repeat(" ", depth*indentWidth)

	names := make([]string, 0, len(variables))
	width := 0
	for name := range variables {
		names = append(names, name)
		if len(name) > width {
			width = len(name)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		builder.WriteString(pad)
		builder.WriteString(nameStyle.Sprintf("$%s", name))
		builder.WriteString(noStyle.Sprint(strings.Repeat(" ", width-len(name)+1)))
		builder.WriteString(typeStyle.Sprint(variables[name]))
		builder.WriteString("\n")
	}

	if len(booleans) > 0 {
		builder.WriteString(pad)
		builder.WriteString(booleanStyle.Sprintf("if: %s", strings.Join(booleans, ", ")))
		builder.WriteString("\n")
	}
}

// FormatAll renders several reports separated by blank lines.
func FormatAll(reports []*internal.Report) string {
	parts := make([]string, 0, len(reports))
	for _, report := range reports {
		parts = append(parts, Format(report))
	}
	return strings.Join(parts, "\n")
}

// Summary produces the one-line footer printed after a scan.
func Summary(templates, blocks, variables int) string {
	return fmt.Sprintf("%d template(s), %d block(s), %d variable(s)", templates, blocks, variables)
}
