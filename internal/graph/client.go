// Package graph provides the Neo4j transport for running curated Cypher
// checks against a BloodHound database.
package graph

import (
	"context"
	"time"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/types"
)

// Client is the narrow database surface the generator needs. The tool only
// ever reads, so there is no write API.
type Client interface {
	// Connect establishes and verifies the connection. Must be called
	// once before Run.
	Connect(ctx context.Context) error

	// Close releases all resources. Safe to call on a client that never
	// connected.
	Close(ctx context.Context) error

	// Health reports the reachability of the database.
	Health(ctx context.Context) types.HealthStatus

	// Run executes a Cypher query in its own session and read
	// transaction, materializing every returned row.
	Run(ctx context.Context, cypher string) (Result, error)
}

// Result is the fully materialized output of one query.
type Result struct {
	// Columns preserves the column order the database returned, taken
	// from the first record. Maps cannot carry that order themselves.
	Columns []string

	// Records holds one map of column name to value per returned row.
	Records []map[string]any
}

// Count returns the number of returned rows.
func (r Result) Count() int {
	return len(r.Records)
}

// ClientConfig holds the connection settings for a graph client.
type ClientConfig struct {
	URI      string
	Username string
	Password string
	// Database selects a named database; empty uses the server default.
	Database string
	// ConnectionTimeout bounds connection acquisition.
	ConnectionTimeout time.Duration
	// MaxConnectionPoolSize caps pooled connections. The tool runs
	// queries strictly in sequence, so a small pool is plenty.
	MaxConnectionPoolSize int
	// Verbose enables driver-level logging to the console.
	Verbose bool
}

// Validate checks that the config is usable.
func (c ClientConfig) Validate() error {
	if c.URI == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "graph client URI is required")
	}
	if c.Username == "" {
		return types.NewError(types.CONFIG_VALIDATION_FAILED, "graph client username is required")
	}
	return nil
}

// DefaultClientConfig returns a ClientConfig with connection defaults
// applied; credentials still have to be filled in.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		ConnectionTimeout:     30 * time.Second,
		MaxConnectionPoolSize: 4,
	}
}
