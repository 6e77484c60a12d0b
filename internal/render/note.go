package render

import (
	"bytes"
	"fmt"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/graph"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/query"
)

// Note renders the detailed section for one check: heading, full
// description, the literal Cypher text, the record count, and the formatted
// rows. The heading is the anchor the checklist links point at, so it must
// be exactly the check name.
func Note(spec query.Spec, outcome graph.Outcome, limit int) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "## %s\n\n", spec.Name)
	fmt.Fprintf(&buf, "Описание:  %s\n\n", spec.Description)
	fmt.Fprintf(&buf, "Cypher запрос:\n\n```cypher\n%s\n```\n\n", spec.Cypher)
	fmt.Fprintf(&buf, "Всего записей: %d\n\n", outcome.Result.Count())
	buf.WriteString("Результат\n\n")

	if outcome.Failed() {
		fmt.Fprintf(&buf, "Ошибка выполнения: %v", outcome.Err)
	} else {
		buf.WriteString(FormatRows(outcome.Result, limit))
	}

	buf.WriteString("\n\n---\n\n")
	return buf.String()
}
