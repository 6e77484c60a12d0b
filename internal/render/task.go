package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/graph"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/query"
)

// State labels written into the state:: inline field. Part of the vault's
// Dataview contract.
const (
	StateFailure = "провал"
	StateSuccess = "успех"
	StateManual  = "na"
	StateError   = "ошибка"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// TaskState classifies one executed check for the checklist. Pure function
// of the outcome tag, row presence, and the selfcheck flag:
//   - execution errored         -> unchecked, "ошибка" (needs a rerun or a fix)
//   - no rows                   -> checked,   "провал" (nothing to chase)
//   - rows and selfcheck set    -> checked,   "успех"
//   - rows, no selfcheck        -> unchecked, "na"     (manual review)
func TaskState(spec query.Spec, outcome graph.Outcome) (checked bool, state string) {
	switch {
	case outcome.Failed():
		return false, StateError
	case !outcome.HasRows():
		return true, StateFailure
	case spec.SelfCheck:
		return true, StateSuccess
	default:
		return false, StateManual
	}
}

// Task renders one checklist line: a checkbox, a link into the notes
// document, the state and comment inline fields, and the one-line
// description indented below. The comments field is meant to be edited by
// hand in the vault.
func Task(spec query.Spec, outcome graph.Outcome, notesStem string) string {
	checked, state := TaskState(spec, outcome)

	checkbox := " "
	if checked {
		checkbox = "x"
	}

	// The link lives in the task title so Dataview renders it and Obsidian
	// shows the hover preview.
	taskLink := fmt.Sprintf("[[%s#%s|%s]]", notesStem, spec.Name, spec.Name)

	return fmt.Sprintf("- [%s] %s  state:: %s  comments:: -\n  - %s\n",
		checkbox, taskLink, state, oneLine(spec.Description))
}

// oneLine collapses all whitespace runs, including newlines, to single
// spaces so the description fits the checklist line.
func oneLine(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
