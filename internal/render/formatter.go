// Package render turns check results into the Obsidian markdown artifacts:
// checklist lines, note sections, and the Dataview tracking dashboard.
//
// The emitted text is consumed by an existing Russian-language vault and its
// Dataview queries, so the literal strings (state labels, placeholders,
// headings) are an external format and must not drift.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/graph"
)

// NoResultsPlaceholder is rendered for checks that returned no rows.
const NoResultsPlaceholder = "_Нет результатов._"

// FormatRows renders result rows as markdown: a bullet list for
// single-column results, a pipe table otherwise. Only the first limit rows
// are rendered; a trailing note states how many were omitted.
func FormatRows(result graph.Result, limit int) string {
	if result.Count() == 0 {
		return NoResultsPlaceholder
	}

	if len(result.Columns) == 1 {
		return formatBullets(result, limit)
	}
	return formatTable(result, limit)
}

// formatBullets renders a single-column result as one bullet per row.
func formatBullets(result graph.Result, limit int) string {
	key := result.Columns[0]

	var buf bytes.Buffer
	for i, record := range result.Records {
		if i >= limit {
			break
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString("- ")
		buf.WriteString(stringify(record[key]))
	}
	writeOmittedNote(&buf, result.Count(), limit, "\n")
	return buf.String()
}

// formatTable renders a multi-column result as a pipe table. The header
// follows the column order the database returned; missing values render as
// empty cells.
func formatTable(result graph.Result, limit int) string {
	var buf bytes.Buffer

	buf.WriteString("| ")
	buf.WriteString(strings.Join(result.Columns, " | "))
	buf.WriteString(" |\n| ")
	for i := range result.Columns {
		if i > 0 {
			buf.WriteString(" | ")
		}
		buf.WriteString("---")
	}
	buf.WriteString(" |")

	for i, record := range result.Records {
		if i >= limit {
			break
		}
		buf.WriteString("\n| ")
		for j, key := range result.Columns {
			if j > 0 {
				buf.WriteString(" | ")
			}
			buf.WriteString(stringify(record[key]))
		}
		buf.WriteString(" |")
	}
	writeOmittedNote(&buf, result.Count(), limit, "\n\n")
	return buf.String()
}

// writeOmittedNote appends the truncation note when rows were cut off.
func writeOmittedNote(buf *bytes.Buffer, total, limit int, sep string) {
	if total <= limit {
		return
	}
	buf.WriteString(sep)
	fmt.Fprintf(buf, "…и ещё %d строк(и).", total-limit)
}

// stringify renders a cell value as plain text. No type-specific formatting:
// dates, numbers, and nested structures all go through %v. Nil renders empty.
func stringify(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
