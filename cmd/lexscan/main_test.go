package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	main "github.com/lawcorpus/lexscan/cmd/lexscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCorpusServer serves a one-catalog corpus with two law texts.
func newCorpusServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/catalogs/laws.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"title": "Trusts Law", "url_txt": "./texts/trusts-law.txt"},
			{"title": "Evidence Law", "url_txt": "./texts/evidence-law.txt"}
		]`)
	})
	mux.HandleFunc("/texts/trusts-law.txt", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "A trust arises where the legal and beneficial titles are split.")
	})
	mux.HandleFunc("/texts/evidence-law.txt", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, "Hearsay is inadmissible unless an exception applies.")
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// writeTestConfig writes a config pointing every location at the given
// origin, with the history database inside dir.
func writeTestConfig(t *testing.T, dir, origin string) string {
	t.Helper()

	cfg := fmt.Sprintf(`catalogs:
  - name: laws
    url: %[1]s/catalogs/laws.json
    kind: law
resolve:
  base_origin: %[1]s
sync:
  origin_preference:
    - %[1]s
fetch:
  concurrency: 2
  rps: 1000
  timeout_secs: 5
history:
  path: %[2]s
`, origin, filepath.Join(dir, "history.db"))

	path := filepath.Join(dir, "lexscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return path
}

func TestMain_Run_ScanEndToEnd(t *testing.T) {
	t.Parallel()

	srv := newCorpusServer(t)
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, srv.URL)

	m := main.NewMain()
	m.ConfigPath = cfgPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"scan", "trust"}, stdout, stderr)
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "Scanning 2 documents")
	assert.Contains(t, output, "LAWS")
	assert.Contains(t, output, "Trusts Law")
	assert.Contains(t, output, "[trust]")
	assert.NotContains(t, output, "Evidence Law")
	assert.Contains(t, output, "Scanned 2 documents")
	assert.Contains(t, output, "1 matched")

	// The scan shows up in the history afterwards.
	stdout.Reset()
	m2 := main.NewMain()
	m2.ConfigPath = cfgPath
	err = m2.Run(context.Background(), []string{"history"}, stdout, stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), `"trust"`)
	assert.Contains(t, stdout.String(), "1 matched / 2 scanned")
}

func TestMain_Run_CatalogsEndToEnd(t *testing.T) {
	t.Parallel()

	srv := newCorpusServer(t)
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, srv.URL)

	m := main.NewMain()
	m.ConfigPath = cfgPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"catalogs"}, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "laws")
	assert.Contains(t, stdout.String(), "law")
	assert.Contains(t, stdout.String(), srv.URL+"/catalogs/laws.json")
}

func TestMain_Run_BuildEndToEnd(t *testing.T) {
	t.Parallel()

	srv := newCorpusServer(t)
	dir := t.TempDir()
	cfgPath := writeTestConfig(t, dir, srv.URL)
	outDir := filepath.Join(dir, "out")

	m := main.NewMain()
	m.ConfigPath = cfgPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"build", "--out", outDir}, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Indexed 2 of 2 documents")
	assert.Contains(t, stdout.String(), "Manifest written to")

	// All three artifacts are published.
	assert.DirExists(t, filepath.Join(outDir, "index.bleve"))
	assert.FileExists(t, filepath.Join(outDir, "chunks.jsonl"))
	assert.FileExists(t, filepath.Join(outDir, "manifest.json"))
}

func TestMain_Run_InvalidConfigPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	badPath := filepath.Join(dir, "lexscan.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("catalogs: [unclosed"), 0644))

	m := main.NewMain()
	m.ConfigPath = badPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"catalogs"}, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
