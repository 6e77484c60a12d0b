// Package internal holds CLI plumbing shared by the bhp2000 commands:
// exit codes, error-to-exit-code mapping, and the verbose flag state.
package internal

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/types"
)

// Exit code constants for the CLI. Per-check execution errors never reach
// this layer; they are absorbed into the generated documents.
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitError indicates a general error
	ExitError = 1
	// ExitCancelled indicates the operation was cancelled
	ExitCancelled = 4
	// ExitConfigError indicates a configuration error
	ExitConfigError = 10
	// ExitQueryPackError indicates a malformed or unreadable query pack
	ExitQueryPackError = 11
	// ExitGraphError indicates the graph database was unreachable
	ExitGraphError = 12
)

// HandleError prints the error to the command's error output and returns
// the appropriate exit code.
func HandleError(cmd *cobra.Command, err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		cmd.PrintErrln("Operation cancelled")
		return ExitCancelled
	}

	cmd.PrintErrln("Error:", err.Error())

	switch types.ErrorCodeOf(err) {
	case types.CONFIG_LOAD_FAILED, types.CONFIG_VALIDATION_FAILED:
		return ExitConfigError
	case types.QUERIES_READ_FAILED, types.QUERIES_PARSE_FAILED, types.QUERIES_FORMAT_INVALID:
		return ExitQueryPackError
	case types.GRAPH_CONNECTION_FAILED, types.GRAPH_CONNECTION_CLOSED:
		return ExitGraphError
	default:
		return ExitError
	}
}
