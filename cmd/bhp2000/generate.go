package main

import (
	"github.com/spf13/cobra"

	"github.com/veter069/BloodHound-Penetrator-2000/cmd/bhp2000/internal"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/config"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/generate"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/graph"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Run all checks and write the markdown artifacts",
	Long: `Execute every check from the general and owned query packs against the
configured Neo4j database and write the checklist, notes, and tracking
documents into the output directory.`,
	RunE: runGenerate,
}

// runGenerate wires configuration, graph client, and generator together.
// Also serves as the root command's default action.
func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	client, err := newGraphClient(cfg)
	if err != nil {
		return err
	}

	gen := generate.New(cfg, client, newLogger()).
		WithOutput(cmd.OutOrStdout())

	_, err = gen.Run(cmd.Context())
	return err
}

// newGraphClient builds the Neo4j client from the loaded configuration.
func newGraphClient(cfg *config.Config) (graph.Client, error) {
	clientCfg := graph.DefaultClientConfig()
	clientCfg.URI = cfg.Neo4j.URI
	clientCfg.Username = cfg.Neo4j.Username
	clientCfg.Password = cfg.Neo4j.Password
	clientCfg.Database = cfg.Neo4j.Database
	clientCfg.Verbose = internal.IsVerbose()

	return graph.NewNeo4jClient(clientCfg)
}
