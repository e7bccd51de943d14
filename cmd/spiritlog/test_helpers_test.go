package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
)

type fakeBGG struct {
	mu      sync.Mutex
	pages   map[int]string
	queries []string
	status  int
}

func (f *fakeBGG) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, r.URL.RawQuery)
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	w.Header().Set("Content-Type", "text/xml")
	fmt.Fprintf(w, `<?xml version="1.0" encoding="utf-8"?><plays username="nraw" page="%d">%s</plays>`, page, f.pages[page])
}

func (f *fakeBGG) lastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return ""
	}
	return f.queries[len(f.queries)-1]
}

func xmlPlay(id, date, comment string) string {
	var comments string
	if comment != "" {
		comments = "<comments>" + comment + "</comments>"
	}
	return fmt.Sprintf(`<play id="%s" date="%s"><item name="Spirit Island" objectid="162886"/>%s</play>`, id, date, comments)
}

type cliTestEnv struct {
	bgg        *fakeBGG
	configPath string
	outputPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Chdir(base)

	fake := &fakeBGG{pages: map[int]string{
		1: xmlPlay("11", "2025-02-10", "England L2 close one\nA: River\nE: Lightning\nCoastline") +
			xmlPlay("10", "2025-02-01", ""),
		2: xmlPlay("9", "2025-01-05", "Sweden L4\nA: Stone\nInlands\nLost to fear"),
	}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	spirits := filepath.Join(base, "spirits.json")
	writeFile(t, spirits, `[
		{"spirit": "River Surges in Sunlight", "source": "Base Game"},
		{"spirit": "Lightning's Swift Strike", "source": "Base Game"},
		{"spirit": "Stone's Unyielding Defiance", "source": "Jagged Earth"}
	]`)
	adversaries := filepath.Join(base, "adversaries.json")
	writeFile(t, adversaries, `[{"Adversary": "England"}, {"Adversary": "Sweden"}]`)

	outputPath := filepath.Join(base, "public", "plays.json")
	configPath := filepath.Join(base, "spiritlog.toml")
	writeFile(t, configPath, fmt.Sprintf(`[bgg]
username = "nraw"
base_url = %q
game_ids = [162886]
request_interval_ms = 0

[catalog]
spirits_path = %q
adversaries_path = %q

[output]
path = %q

[logging]
level = "warn"
`, server.URL, spirits, adversaries, outputPath))

	return &cliTestEnv{bgg: fake, configPath: configPath, outputPath: outputPath}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
