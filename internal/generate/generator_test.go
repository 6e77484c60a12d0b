package generate

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veter069/BloodHound-Penetrator-2000/internal/config"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/graph"
	"github.com/veter069/BloodHound-Penetrator-2000/internal/types"
)

// fakeClient serves canned results keyed by Cypher text.
type fakeClient struct {
	results    map[string]graph.Result
	errs       map[string]error
	connectErr error

	connected bool
	closed    bool
	executed  []string
}

func (f *fakeClient) Connect(ctx context.Context) error {
	if f.connectErr != nil {
		return f.connectErr
	}
	f.connected = true
	return nil
}

func (f *fakeClient) Close(ctx context.Context) error {
	f.closed = true
	return nil
}

func (f *fakeClient) Health(ctx context.Context) types.HealthStatus {
	if f.connected {
		return types.Healthy("connected")
	}
	return types.Unhealthy("not connected")
}

func (f *fakeClient) Run(ctx context.Context, cypher string) (graph.Result, error) {
	f.executed = append(f.executed, cypher)
	if err, ok := f.errs[cypher]; ok {
		return graph.Result{}, err
	}
	return f.results[cypher], nil
}

var _ graph.Client = (*fakeClient)(nil)

func fixedClock() time.Time {
	return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
}

func testConfig(t *testing.T, generalJSON, ownedJSON string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	generalPath := filepath.Join(dir, "queries.json")
	ownedPath := filepath.Join(dir, "ownedqueries.json")
	require.NoError(t, os.WriteFile(generalPath, []byte(generalJSON), 0o644))
	require.NoError(t, os.WriteFile(ownedPath, []byte(ownedJSON), 0o644))

	cfg := config.DefaultConfig()
	cfg.Queries.GeneralFile = generalPath
	cfg.Queries.OwnedFile = ownedPath
	cfg.Output.Dir = filepath.Join(dir, "output")
	return cfg
}

func newTestGenerator(cfg *config.Config, client graph.Client, out io.Writer) *Generator {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg, client, logger).WithOutput(out).WithClock(fixedClock)
}

func TestRun_EndToEnd(t *testing.T) {
	cfg := testConfig(t,
		`[{"name": "Q1", "query": "RETURN 1", "selfcheck": true}]`,
		`[{"name": "Owned sessions", "query": "MATCH (o) RETURN o", "description": "who is owned"}]`)

	client := &fakeClient{
		results: map[string]graph.Result{
			"RETURN 1":           {Columns: []string{"x"}, Records: []map[string]any{{"x": 1}}},
			"MATCH (o) RETURN o": {},
		},
	}

	var out bytes.Buffer
	summary, err := newTestGenerator(cfg, client, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 0, summary.Errors)
	assert.Equal(t, "2026-08-31_1200", summary.Timestamp)
	assert.True(t, client.connected)
	assert.True(t, client.closed)
	assert.Equal(t, []string{"RETURN 1", "MATCH (o) RETURN o"}, client.executed)

	checklist, err := os.ReadFile(summary.ChecklistPath)
	require.NoError(t, err)
	notes, err := os.ReadFile(summary.NotesPath)
	require.NoError(t, err)
	tracking, err := os.ReadFile(summary.TrackingPath)
	require.NoError(t, err)

	// Checklist: heading, discoverability tag, both blocks, judged lines.
	assert.Contains(t, string(checklist), "# BloodHound чек-лист (2026-08-31_1200)\n")
	assert.Contains(t, string(checklist), "#checklist\n")
	assert.Contains(t, string(checklist), "## Общие проверки\n")
	assert.Contains(t, string(checklist), "## Проверки от owned=TRUE\n")
	assert.Contains(t, string(checklist),
		"- [x] [[BloodHound_Notes_2026-08-31_1200#Q1|Q1]]  state:: успех")
	// Empty result renders as an accomplished "nothing found" check.
	assert.Contains(t, string(checklist), "state:: провал")

	// Notes: heading, block sections, per-check sections with counts.
	assert.Contains(t, string(notes), "# BloodHound заметки (2026-08-31_1200)\n")
	assert.Contains(t, string(notes), "## Q1\n")
	assert.Contains(t, string(notes), "Всего записей: 1")
	assert.Contains(t, string(notes), "## Owned sessions\n")
	assert.Contains(t, string(notes), "_Нет результатов._")

	// Tracking document is the fixed template with this run's timestamp.
	assert.Contains(t, string(tracking), "# Трекинг задач BloodHound (2026-08-31_1200)")

	// Progress and summary lines.
	assert.Contains(t, out.String(), "[#] 1/2 Общие проверки: Q1")
	assert.Contains(t, out.String(), "[#] 2/2 Проверки от owned=TRUE: Owned sessions")
	assert.Contains(t, out.String(), "[+] Done: 2/2 | Errors: 0")
}

func TestRun_LinkAnchorsResolve(t *testing.T) {
	cfg := testConfig(t,
		`[{"name": "Shortest paths to DA", "query": "Q_A"}, {"name": "GPO abuse", "query": "Q_B"}]`,
		`[{"name": "Owned to DA", "query": "Q_C"}]`)

	client := &fakeClient{results: map[string]graph.Result{}}

	summary, err := newTestGenerator(cfg, client, io.Discard).Run(context.Background())
	require.NoError(t, err)

	checklist, err := os.ReadFile(summary.ChecklistPath)
	require.NoError(t, err)
	notes, err := os.ReadFile(summary.NotesPath)
	require.NoError(t, err)

	notesFile := filepath.Base(summary.NotesPath)
	stem := strings.TrimSuffix(notesFile, filepath.Ext(notesFile))

	linkRe := regexp.MustCompile(`\[\[([^#]+)#([^|]+)\|`)
	matches := linkRe.FindAllStringSubmatch(string(checklist), -1)
	require.Len(t, matches, 3)

	for _, m := range matches {
		assert.Equal(t, stem, m[1])
		assert.Contains(t, string(notes), "## "+m[2]+"\n")
	}
}

func TestRun_BlankQueriesDropped(t *testing.T) {
	cfg := testConfig(t,
		`[{"name": "Empty", "query": "  "}, {"name": "Real", "query": "RETURN 1"}]`,
		`[]`)

	client := &fakeClient{results: map[string]graph.Result{}}

	summary, err := newTestGenerator(cfg, client, io.Discard).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Processed)
	assert.Equal(t, []string{"RETURN 1"}, client.executed)
}

func TestRun_PerQueryErrorIsAbsorbed(t *testing.T) {
	cfg := testConfig(t,
		`[{"name": "Broken", "query": "BAD", "selfcheck": true}, {"name": "Fine", "query": "RETURN 1"}]`,
		`[]`)

	client := &fakeClient{
		results: map[string]graph.Result{},
		errs:    map[string]error{"BAD": errors.New("Invalid input 'BAD'")},
	}

	var out bytes.Buffer
	summary, err := newTestGenerator(cfg, client, &out).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Processed)
	assert.Equal(t, 1, summary.Errors)
	// Execution continued past the failure.
	assert.Equal(t, []string{"BAD", "RETURN 1"}, client.executed)
	assert.True(t, client.closed)

	checklist, err := os.ReadFile(summary.ChecklistPath)
	require.NoError(t, err)
	notes, err := os.ReadFile(summary.NotesPath)
	require.NoError(t, err)

	// An errored check is left unchecked for rerun, even with selfcheck set.
	assert.Contains(t, string(checklist), "state:: ошибка")
	assert.Contains(t, string(notes), "Ошибка выполнения: Invalid input 'BAD'")
	assert.Contains(t, out.String(), "[+] Done: 2/2 | Errors: 1")
}

func TestRun_MalformedPackIsFatal(t *testing.T) {
	cfg := testConfig(t, `{"not-queries": []}`, `[]`)

	client := &fakeClient{results: map[string]graph.Result{}}

	_, err := newTestGenerator(cfg, client, io.Discard).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, types.QUERIES_FORMAT_INVALID, types.ErrorCodeOf(err))
	// Nothing ran and no connection was opened.
	assert.Empty(t, client.executed)
	assert.False(t, client.connected)
}

func TestRun_ConnectFailureIsFatal(t *testing.T) {
	cfg := testConfig(t, `[{"name": "Q", "query": "RETURN 1"}]`, `[]`)

	client := &fakeClient{
		connectErr: types.NewError(types.GRAPH_CONNECTION_FAILED, "refused"),
	}

	_, err := newTestGenerator(cfg, client, io.Discard).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, types.GRAPH_CONNECTION_FAILED, types.ErrorCodeOf(err))
	assert.Empty(t, client.executed)
}

func TestRun_CreatesOutputDir(t *testing.T) {
	cfg := testConfig(t, `[{"name": "Q", "query": "RETURN 1"}]`, `[]`)
	cfg.Output.Dir = filepath.Join(cfg.Output.Dir, "nested", "deeper")

	client := &fakeClient{results: map[string]graph.Result{}}

	summary, err := newTestGenerator(cfg, client, io.Discard).Run(context.Background())
	require.NoError(t, err)

	info, err := os.Stat(summary.ChecklistPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
}

func TestRun_RowLimitApplied(t *testing.T) {
	records := make([]map[string]any, 5)
	for i := range records {
		records[i] = map[string]any{"n": i}
	}

	cfg := testConfig(t, `[{"name": "Big", "query": "RETURN n"}]`, `[]`)
	cfg.Output.MaxRows = 3

	client := &fakeClient{results: map[string]graph.Result{
		"RETURN n": {Columns: []string{"n"}, Records: records},
	}}

	summary, err := newTestGenerator(cfg, client, io.Discard).Run(context.Background())
	require.NoError(t, err)

	notes, err := os.ReadFile(summary.NotesPath)
	require.NoError(t, err)
	assert.Contains(t, string(notes), "Всего записей: 5")
	assert.Contains(t, string(notes), "…и ещё 2 строк(и).")
}
