// Package query loads the curated Cypher check packs that drive a
// generation run. A pack is a JSON or YAML file holding either a bare list
// of check objects or an object with a "queries" key.
package query

import "strings"

// Spec describes one curated Cypher check: the query itself plus the
// metadata controlling how its result is judged and displayed.
type Spec struct {
	// ID identifies the check; falls back to the positional index.
	ID string
	// Name is the display name, used as heading and link anchor in the
	// generated documents. Names should be unique within a pack so the
	// checklist links resolve, but uniqueness is not enforced.
	Name string
	// Description is free text; the checklist collapses it to one line,
	// the notes document keeps it as-is.
	Description string
	// Cypher is the query text. Specs with blank query text never execute.
	Cypher string
	// Kind labels the expected result shape (default "Nodes").
	// Informational only.
	Kind string
	// SelfCheck marks checks where a non-empty result means the check
	// passed, rather than needing manual review.
	SelfCheck bool
	// Severity and Category are free-text metadata, preserved for
	// filtering in the vault but not used during rendering.
	Severity string
	Category string
	// Tags are ordered labels. The source file may give them as a list
	// or as a comma-separated string.
	Tags []string
}

// Runnable reports whether the spec has query text to execute.
func (s Spec) Runnable() bool {
	return strings.TrimSpace(s.Cypher) != ""
}

// Runnable filters specs down to the ones with non-blank query text,
// preserving order.
func Runnable(specs []Spec) []Spec {
	out := make([]Spec, 0, len(specs))
	for _, s := range specs {
		if s.Runnable() {
			out = append(out, s)
		}
	}
	return out
}
