package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/config"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/query"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify configuration, query packs, and database reachability",
	Long: `Load the configuration and both query packs, then probe the Neo4j
connection. No checks are executed and nothing is written.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	green := color.New(color.FgGreen)
	out := cmd.OutOrStdout()

	for _, pack := range []struct {
		label string
		path  string
	}{
		{"General pack", cfg.Queries.GeneralFile},
		{"Owned pack", cfg.Queries.OwnedFile},
	} {
		specs, err := query.Load(pack.path)
		if err != nil {
			return err
		}
		runnable := len(query.Runnable(specs))
		green.Fprintf(out, "[+] %s: %d checks, %d runnable (%s)\n",
			pack.label, len(specs), runnable, pack.path)
	}

	client, err := newGraphClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := client.Connect(ctx); err != nil {
		return err
	}
	defer func() {
		_ = client.Close(ctx)
	}()

	status := client.Health(ctx)
	if !status.IsHealthy() {
		return fmt.Errorf("neo4j at %s is unhealthy: %s", cfg.Neo4j.URI, status.Message)
	}

	green.Fprintf(out, "[+] Neo4j: %s (%s)\n", status.Message, cfg.Neo4j.URI)
	return nil
}
