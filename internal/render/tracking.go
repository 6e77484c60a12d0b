package render

import (
	"bytes"
	"fmt"
)

// Tracking renders the Dataview dashboard document. The three embedded
// query blocks are an external-format artifact aimed at the vault's
// Dataview plugin; only the timestamp is parameterized. The regexreplace
// pattern strips the state:: inline field from the task text so the table
// cell stays clean.
func Tracking(ts string) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# Трекинг задач BloodHound (%s)\n\n", ts)

	buf.WriteString("## Незавершенные задачи\n\n")
	writeTaskTable(&buf, true)

	buf.WriteString("---\n\n")
	buf.WriteString("## Все задачи\n\n")
	writeTaskTable(&buf, false)

	buf.WriteString("---\n\n")
	buf.WriteString("## Статистика\n\n")
	writeStatsTable(&buf)

	return buf.String()
}

// writeTaskTable emits one Dataview task table, optionally filtered to
// incomplete tasks.
func writeTaskTable(buf *bytes.Buffer, onlyIncomplete bool) {
	buf.WriteString("```dataview\n")
	buf.WriteString("TABLE WITHOUT ID\n")
	buf.WriteString("  choice(task.completed, \"🟢\", \"⚪️\") AS \"Статус\",\n")
	buf.WriteString("  regexreplace(task.text, \"\\\\s+state::.*$\", \"\") AS \"Задача\",\n")
	buf.WriteString("  task.comments AS \"Комментарий\"\n")
	buf.WriteString("FROM #checklist\n")
	buf.WriteString("FLATTEN file.tasks AS task\n")
	if onlyIncomplete {
		buf.WriteString("WHERE task.completed = false\n")
	}
	buf.WriteString("```\n\n")
}

// writeStatsTable emits the aggregate completed/incomplete/total block.
func writeStatsTable(buf *bytes.Buffer) {
	buf.WriteString("```dataview\n")
	buf.WriteString("TABLE WITHOUT ID \n")
	buf.WriteString("  (length(filter(file.tasks.completed, (t) => t = true))) AS Завершённых,\n")
	buf.WriteString("  (length(file.tasks.text)) - (length(filter(file.tasks.completed, (t) => t = true))) AS \"Незавершенных\",\n")
	buf.WriteString("  (length(filter(file.tasks.completed, (t) => t = true))) / (length(file.tasks.text)) * 100 AS \"% Завершено\",\n")
	buf.WriteString("  (length(file.tasks.text)) AS Всего\n")
	buf.WriteString("FROM #checklist \n")
	buf.WriteString("```\n")
}
