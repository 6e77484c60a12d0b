package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/types"
)

// Neo4jClient implements Client for Neo4j graph databases.
type Neo4jClient struct {
	config ClientConfig
	driver neo4j.DriverWithContext
}

// NewNeo4jClient creates a new Neo4j client with the given configuration.
// The client must be connected via Connect() before use.
func NewNeo4jClient(config ClientConfig) (*Neo4jClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Neo4jClient{
		config: config,
	}, nil
}

// Connect establishes a connection to the Neo4j database and verifies it.
// A hung server blocks until ctx is done; no retries are attempted.
func (c *Neo4jClient) Connect(ctx context.Context) error {
	auth := neo4j.BasicAuth(c.config.Username, c.config.Password, "")

	driverConfig := func(config *neo4j.Config) {
		config.MaxConnectionPoolSize = c.config.MaxConnectionPoolSize
		config.ConnectionAcquisitionTimeout = c.config.ConnectionTimeout
		// Encryption is controlled by the URI scheme (bolt:// vs bolt+s://).
		if c.config.Verbose {
			config.Log = neo4j.ConsoleLogger(neo4j.INFO)
		}
	}

	driver, err := neo4j.NewDriverWithContext(c.config.URI, auth, driverConfig)
	if err != nil {
		return types.WrapError(types.GRAPH_CONNECTION_FAILED,
			fmt.Sprintf("cannot create driver for %s", c.config.URI), err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return types.WrapError(types.GRAPH_CONNECTION_FAILED,
			fmt.Sprintf("cannot reach %s", c.config.URI), err)
	}

	c.driver = driver
	return nil
}

// Close releases all resources and closes the database connection.
func (c *Neo4jClient) Close(ctx context.Context) error {
	if c.driver == nil {
		return nil
	}

	if err := c.driver.Close(ctx); err != nil {
		return types.WrapError(types.GRAPH_CONNECTION_CLOSED,
			"failed to close driver", err)
	}

	c.driver = nil
	return nil
}

// Health returns the current health status of the Neo4j connection.
func (c *Neo4jClient) Health(ctx context.Context) types.HealthStatus {
	if c.driver == nil {
		return types.Unhealthy("driver not initialized")
	}

	healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := c.driver.VerifyConnectivity(healthCtx); err != nil {
		return types.Unhealthy(fmt.Sprintf("connectivity check failed: %v", err))
	}

	return types.Healthy("connected to Neo4j")
}

// Run executes a Cypher query in its own session and read transaction and
// materializes all returned rows.
func (c *Neo4jClient) Run(ctx context.Context, cypher string) (Result, error) {
	if c.driver == nil {
		return Result{}, types.NewError(types.GRAPH_CONNECTION_CLOSED,
			"driver not connected")
	}

	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.config.Database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		neoResult, err := tx.Run(ctx, cypher, nil)
		if err != nil {
			return nil, err
		}

		records, err := neoResult.Collect(ctx)
		if err != nil {
			return nil, err
		}

		return convertRecords(records), nil
	})

	if err != nil {
		return Result{}, types.WrapError(types.GRAPH_QUERY_FAILED,
			"query execution failed", err)
	}

	return result.(Result), nil
}

// convertRecords converts Neo4j records to the Result format, keeping the
// column order of the first record.
func convertRecords(records []*neo4j.Record) Result {
	result := Result{
		Columns: []string{},
		Records: make([]map[string]any, 0, len(records)),
	}

	if len(records) > 0 {
		result.Columns = records[0].Keys
	}

	for _, record := range records {
		recordMap := make(map[string]any, len(record.Keys))
		for i, key := range record.Keys {
			recordMap[key] = record.Values[i]
		}
		result.Records = append(result.Records, recordMap)
	}

	return result
}

// Ensure Neo4jClient implements the Client interface.
var _ Client = (*Neo4jClient)(nil)
