package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/freitagsfoo"
	main "github.com/fwojciec/freitagsfoo/cmd/freitagsfoo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wednesday is a clock in the week of the 2019-10-11 meetup.
func wednesday() time.Time {
	return time.Date(2019, 10, 9, 18, 30, 0, 0, time.UTC)
}

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	return &main.Main{
		DBPath: filepath.Join(t.TempDir(), "freitagsfoo.db"),
		Now:    wednesday,
	}
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "extract", "testdata", name))
	require.NoError(t, err)
	return data
}

// sourceDir lays out the 2019-10-11 fixture as a local page directory.
func sourceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "Freitagsfoo"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Freitagsfoo", "2019-10-11.wikitext"),
		readFixture(t, "2019-10-11.wikitext"), 0644))
	return dir
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "freitagsfoo")
	assert.Contains(t, stdout.String(), "run")
	assert.Contains(t, stdout.String(), "parse")
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_UnknownMode(t *testing.T) {
	t.Parallel()

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"parse", "--mode", "guess", "page.wikitext"}, &stdout, &stderr)

	assert.Error(t, err)
}

func TestMain_Run_Parse(t *testing.T) {
	t.Parallel()

	t.Run("prints record of local page", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "2019-10-11.wikitext")
		require.NoError(t, os.WriteFile(path, readFixture(t, "2019-10-11.wikitext"), 0644))
		m := newTestMain(t)
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"parse", path}, &stdout, &stderr)

		require.NoError(t, err)
		got, err := freitagsfoo.UnmarshalRecord(stdout.Bytes())
		require.NoError(t, err)
		want, err := freitagsfoo.UnmarshalRecord(readFixture(t, "2019-10-11.json"))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("reads settings from YAML config", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := filepath.Join(dir, "scan.wikitext")
		require.NoError(t, os.WriteFile(page, []byte(
			"Heute mit [[User:Alice|Alice]] und {{U|Bob}}.\n== Go ==\n{{U|carol}}\n"), 0644))
		config := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(config, []byte("mode: scan\ndate: 2019-10-11\n"), 0644))
		m := newTestMain(t)
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"--config", config, "parse", page}, &stdout, &stderr)

		require.NoError(t, err, stderr.String())
		got, err := freitagsfoo.UnmarshalRecord(stdout.Bytes())
		require.NoError(t, err)
		assert.Equal(t, "2019-10-11", got.Date)
		assert.Equal(t, []string{"alice", "bob"}, got.Hosts)
		require.Len(t, got.Talks, 1)
		assert.Equal(t, []string{"carol"}, got.Talks[0].Persons)
	})

	t.Run("reports missing file", func(t *testing.T) {
		t.Parallel()

		m := newTestMain(t)
		var stdout, stderr bytes.Buffer

		err := m.Run(context.Background(), []string{"parse", filepath.Join(t.TempDir(), "nope.wikitext")}, &stdout, &stderr)

		require.Error(t, err)
		assert.Equal(t, freitagsfoo.ENOTFOUND, freitagsfoo.ErrorCode(err))
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestMain_Run_RunArchivesAndShows(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, "public", "freitagsfoo.json")
	db := filepath.Join(dir, "archive.db")
	metrics := filepath.Join(dir, "freitagsfoo.prom")
	src := sourceDir(t)

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer
	err := m.Run(context.Background(), []string{
		"run",
		"--source-dir", src,
		"--output", output,
		"--db", db,
		"--metrics-file", metrics,
	}, &stdout, &stderr)

	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "Wrote 2019-10-11 with 3 talks")
	assert.Contains(t, stderr.String(), "fetch page")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	written, err := freitagsfoo.UnmarshalRecord(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob", "carol"}, written.Hosts)

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "freitagsfoo_talks 3")
	assert.Contains(t, string(prom), `freitagsfoo_runs_total{code="ok"} 1`)

	// The archived record is readable by a later invocation.
	m = newTestMain(t)
	stdout.Reset()
	stderr.Reset()
	err = m.Run(context.Background(), []string{"show", "--db", db, "2019-10-11"}, &stdout, &stderr)

	require.NoError(t, err, stderr.String())
	assert.Equal(t, string(data), stdout.String())

	m = newTestMain(t)
	stdout.Reset()
	err = m.Run(context.Background(), []string{"history", "--db", db, "--person", "dave"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "2019-10-11  hosts: alice, bob, carol  talks: 3")
	assert.Contains(t, stdout.String(), "  - Rust für Einsteiger")
}

func TestMain_Run_RunRejectsOtherWeek(t *testing.T) {
	t.Parallel()

	src := sourceDir(t)
	// The page exists under next week's title but is dated 2019-10-11.
	data := readFixture(t, "2019-10-11.wikitext")
	require.NoError(t, os.WriteFile(filepath.Join(src, "Freitagsfoo", "2019-10-18.wikitext"), data, 0644))

	m := newTestMain(t)
	m.Now = func() time.Time { return wednesday().AddDate(0, 0, 7) }
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"run", "--source-dir", src, "--output", "-"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, freitagsfoo.EDATEMISMATCH, freitagsfoo.ErrorCode(err))
	assert.Contains(t, stderr.String(), "error: page \"Freitagsfoo/2019-10-18\" is dated 2019-10-11, expected 2019-10-18")
	assert.Empty(t, stdout.String())
}

func TestMain_Run_RunAgainstWiki(t *testing.T) {
	t.Parallel()

	page := string(readFixture(t, "2019-10-11.wikitext"))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		switch r.Form.Get("action") {
		case "query":
			content := page
			if r.Form.Get("rvsection") == "0" {
				content = "{{Event\n|Host=Alice, bob ,CAROL\n|Date=2019-10-11\n}}\n"
			}
			writeJSON(t, w, map[string]any{
				"query": map[string]any{
					"pages": []any{map[string]any{
						"title":     r.Form.Get("titles"),
						"revisions": []any{map[string]any{"slots": map[string]any{"main": map[string]any{"content": content}}}},
					}},
				},
			})
		case "parse":
			writeJSON(t, w, map[string]any{
				"parse": map[string]any{"text": `<div class="mw-parser-output"><p><b>Rendered</b> talk</p></div>`},
			})
		}
	}))
	t.Cleanup(server.Close)

	m := newTestMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{
		"run",
		"--api-url", server.URL + "/api.php",
		"--rate", "0",
		"--description", "render",
		"--format", "markdown",
		"--output", "-",
	}, &stdout, &stderr)

	require.NoError(t, err, stderr.String())
	record, err := freitagsfoo.UnmarshalRecord(stdout.Bytes())
	require.NoError(t, err)
	require.Len(t, record.Talks, 3)
	assert.Equal(t, "**Rendered** talk", record.Talks[0].Description)
}
