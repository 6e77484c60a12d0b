package config

import (
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/types"
)

// Config is the root configuration for a generation run.
// It is assembled once from the environment and passed into the generator;
// nothing reads the environment after Load returns.
type Config struct {
	Neo4j   Neo4jConfig   `validate:"required"`
	Queries QueriesConfig `validate:"required"`
	Output  OutputConfig  `validate:"required"`
}

// Neo4jConfig contains the graph database connection settings.
type Neo4jConfig struct {
	// URI is the bolt endpoint, e.g. bolt://127.0.0.1:7687.
	// Encryption is controlled by the URI scheme (bolt:// vs bolt+s://).
	URI      string `validate:"required"`
	Username string `validate:"required"`
	Password string
	// Database selects a named database; empty uses the server default.
	Database string
}

// QueriesConfig locates the two query packs.
type QueriesConfig struct {
	// GeneralFile holds the shared BloodHound checks.
	GeneralFile string `validate:"required"`
	// OwnedFile holds the checks that assume owned principals are marked.
	OwnedFile string `validate:"required"`
}

// OutputConfig controls artifact generation.
type OutputConfig struct {
	// Dir is where the three markdown artifacts are written. Created if absent.
	Dir string `validate:"required"`
	// MaxRows caps how many result rows are rendered per query.
	MaxRows int `validate:"min=1"`
}

// Environment variable names. Defaults match the original tooling so an
// existing .env keeps working.
const (
	EnvNeo4jURI      = "NEO4J_URI"
	EnvNeo4jUser     = "NEO4J_USER"
	EnvNeo4jPass     = "NEO4J_PASS"
	EnvNeo4jDatabase = "NEO4J_DATABASE"
	EnvQueriesFile   = "QUERIES_FILE"
	EnvOwnedFile     = "OWNED_QUERIES_FILE"
	EnvOutputDir     = "OBSIDIAN_OUT"
	EnvMaxRows       = "MAX_ROWS"
)

// DefaultConfig returns a Config with the documented default values.
func DefaultConfig() *Config {
	return &Config{
		Neo4j: Neo4jConfig{
			URI:      "bolt://127.0.0.1:7687",
			Username: "neo4j",
			Password: "neo4j",
			Database: "",
		},
		Queries: QueriesConfig{
			GeneralFile: "./queries.json",
			OwnedFile:   "./ownedqueries.json",
		},
		Output: OutputConfig{
			Dir:     "./output",
			MaxRows: 50,
		},
	}
}

// Load builds a Config from the process environment, layered over defaults.
// A .env file in the working directory is honored when present.
func Load() (*Config, error) {
	// Missing .env is not an error; explicit environment always wins
	// because godotenv never overrides variables that are already set.
	_ = godotenv.Load()

	def := DefaultConfig()

	v := viper.New()
	v.SetDefault(EnvNeo4jURI, def.Neo4j.URI)
	v.SetDefault(EnvNeo4jUser, def.Neo4j.Username)
	v.SetDefault(EnvNeo4jPass, def.Neo4j.Password)
	v.SetDefault(EnvNeo4jDatabase, def.Neo4j.Database)
	v.SetDefault(EnvQueriesFile, def.Queries.GeneralFile)
	v.SetDefault(EnvOwnedFile, def.Queries.OwnedFile)
	v.SetDefault(EnvOutputDir, def.Output.Dir)
	v.SetDefault(EnvMaxRows, def.Output.MaxRows)
	v.AutomaticEnv()

	cfg := &Config{
		Neo4j: Neo4jConfig{
			URI:      v.GetString(EnvNeo4jURI),
			Username: v.GetString(EnvNeo4jUser),
			Password: v.GetString(EnvNeo4jPass),
			Database: v.GetString(EnvNeo4jDatabase),
		},
		Queries: QueriesConfig{
			GeneralFile: v.GetString(EnvQueriesFile),
			OwnedFile:   v.GetString(EnvOwnedFile),
		},
		Output: OutputConfig{
			Dir:     v.GetString(EnvOutputDir),
			MaxRows: v.GetInt(EnvMaxRows),
		},
	}

	if err := Validate(cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED,
			"environment configuration is invalid", err)
	}

	return cfg, nil
}
