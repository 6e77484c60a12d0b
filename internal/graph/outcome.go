package graph

// Outcome is the tagged result of executing one check: either a
// materialized Result or the error that stopped it, never both. Callers
// branch on Failed() instead of inferring failure from row counts.
type Outcome struct {
	Result Result
	Err    error
}

// OK wraps a successful execution.
func OK(result Result) Outcome {
	return Outcome{Result: result}
}

// Errored wraps a failed execution.
func Errored(err error) Outcome {
	return Outcome{Err: err}
}

// Failed reports whether the execution errored.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// HasRows reports whether a successful execution returned any rows.
// Always false for failed executions.
func (o Outcome) HasRows() bool {
	return o.Err == nil && o.Result.Count() > 0
}
