// Package generate runs the full pipeline: load the two query packs,
// execute every check in sequence against the graph database, and write the
// checklist, notes, and tracking artifacts.
package generate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/config"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/graph"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/query"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/render"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/types"
)

// Artifact file name stems. The timestamp and .md extension are appended.
const (
	checklistStem = "BloodHound_Checklist_"
	notesStem     = "BloodHound_Notes_"
	trackingStem  = "BloodHound_Tracking_"
)

// timestampLayout names the run in file names and headings.
const timestampLayout = "2006-01-02_1504"

// Block labels, in execution order. Part of the generated documents.
const (
	generalBlockLabel = "Общие проверки"
	ownedBlockLabel   = "Проверки от owned=TRUE"
)

// Summary reports what a generation run did.
type Summary struct {
	Processed int
	Errors    int
	Timestamp string

	ChecklistPath string
	NotesPath     string
	TrackingPath  string
}

// Generator owns one generation run: two query packs in, three markdown
// artifacts out. Execution is strictly sequential; one failed check is
// counted and rendered, never fatal.
type Generator struct {
	cfg    *config.Config
	client graph.Client
	logger *slog.Logger
	out    io.Writer
	now    func() time.Time
}

// New creates a Generator. Progress lines go to stdout unless redirected
// with WithOutput.
func New(cfg *config.Config, client graph.Client, logger *slog.Logger) *Generator {
	return &Generator{
		cfg:    cfg,
		client: client,
		logger: logger,
		out:    os.Stdout,
		now:    time.Now,
	}
}

// WithOutput redirects progress and summary lines.
func (g *Generator) WithOutput(w io.Writer) *Generator {
	g.out = w
	return g
}

// WithClock overrides the run timestamp source.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// block is one named group of checks.
type block struct {
	label string
	specs []query.Spec
}

// Run executes the pipeline. A malformed query pack or an unreachable
// database aborts the run before any artifact is written; per-check
// execution errors are absorbed into the documents and the summary.
func (g *Generator) Run(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()

	general, err := query.Load(g.cfg.Queries.GeneralFile)
	if err != nil {
		return Summary{}, err
	}
	owned, err := query.Load(g.cfg.Queries.OwnedFile)
	if err != nil {
		return Summary{}, err
	}

	blocks := []block{
		{generalBlockLabel, query.Runnable(general)},
		{ownedBlockLabel, query.Runnable(owned)},
	}
	total := len(blocks[0].specs) + len(blocks[1].specs)

	ts := g.now().Format(timestampLayout)
	summary := Summary{
		Timestamp:     ts,
		ChecklistPath: filepath.Join(g.cfg.Output.Dir, checklistStem+ts+".md"),
		NotesPath:     filepath.Join(g.cfg.Output.Dir, notesStem+ts+".md"),
		TrackingPath:  filepath.Join(g.cfg.Output.Dir, trackingStem+ts+".md"),
	}

	g.logger.Info("starting generation run",
		"run_id", runID,
		"timestamp", ts,
		"general_checks", len(blocks[0].specs),
		"owned_checks", len(blocks[1].specs))

	if err := os.MkdirAll(g.cfg.Output.Dir, 0o755); err != nil {
		return Summary{}, types.WrapError(types.OUTPUT_DIR_FAILED,
			fmt.Sprintf("cannot create output directory %s", g.cfg.Output.Dir), err)
	}

	if err := g.client.Connect(ctx); err != nil {
		return Summary{}, err
	}
	defer func() {
		if cerr := g.client.Close(context.WithoutCancel(ctx)); cerr != nil {
			g.logger.Warn("failed to close graph client", "run_id", runID, "error", cerr)
		}
	}()

	var checklist, notes bytes.Buffer
	fmt.Fprintf(&checklist, "# BloodHound чек-лист (%s)\n", ts)
	checklist.WriteString("#checklist\n\n")
	fmt.Fprintf(&notes, "# BloodHound заметки (%s)\n\n", ts)

	stem := notesStem + ts

	for _, b := range blocks {
		fmt.Fprintf(&checklist, "## %s\n", b.label)
		fmt.Fprintf(&notes, "# %s\n\n", b.label)

		for _, spec := range b.specs {
			summary.Processed++
			g.progress(summary.Processed, total, b.label, spec.Name)

			outcome := g.runOne(ctx, runID, spec)
			if outcome.Failed() {
				summary.Errors++
			}

			checklist.WriteString(render.Task(spec, outcome, stem))
			notes.WriteString(render.Note(spec, outcome, g.cfg.Output.MaxRows))
		}
	}

	if err := g.writeArtifacts(summary, checklist.Bytes(), notes.Bytes()); err != nil {
		return Summary{}, err
	}

	g.printSummary(summary, total)
	g.logger.Info("generation run finished",
		"run_id", runID,
		"processed", summary.Processed,
		"errors", summary.Errors)

	return summary, nil
}

// runOne executes a single check and tags the outcome. Errors are absorbed
// here; the run always continues to the next check.
func (g *Generator) runOne(ctx context.Context, runID string, spec query.Spec) graph.Outcome {
	result, err := g.client.Run(ctx, spec.Cypher)
	if err != nil {
		g.logger.Warn("check execution failed",
			"run_id", runID,
			"check", spec.Name,
			"error", err)
		return graph.Errored(err)
	}

	g.logger.Debug("check executed",
		"run_id", runID,
		"check", spec.Name,
		"rows", result.Count())
	return graph.OK(result)
}

// writeArtifacts writes the three documents to the output directory.
func (g *Generator) writeArtifacts(summary Summary, checklist, notes []byte) error {
	files := []struct {
		path string
		data []byte
	}{
		{summary.ChecklistPath, checklist},
		{summary.NotesPath, notes},
		{summary.TrackingPath, []byte(render.Tracking(summary.Timestamp))},
	}

	for _, f := range files {
		if err := os.WriteFile(f.path, f.data, 0o644); err != nil {
			return types.WrapError(types.OUTPUT_WRITE_FAILED,
				fmt.Sprintf("cannot write %s", f.path), err)
		}
	}
	return nil
}

// progress prints one line per executed check.
func (g *Generator) progress(i, total int, label, name string) {
	color.New(color.FgCyan).Fprintf(g.out, "[#] %d/%d %s: %s\n", i, total, label, name)
}

// printSummary prints the final counters and artifact paths.
func (g *Generator) printSummary(summary Summary, total int) {
	green := color.New(color.FgGreen)
	green.Fprintf(g.out, "[+] Done: %d/%d | Errors: %d\n", summary.Processed, total, summary.Errors)
	green.Fprintf(g.out, "[+] %s\n", summary.ChecklistPath)
	green.Fprintf(g.out, "[+] %s\n", summary.NotesPath)
	green.Fprintf(g.out, "[+] %s\n", summary.TrackingPath)
}
