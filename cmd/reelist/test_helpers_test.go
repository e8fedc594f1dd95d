package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliConfig struct {
	token   string
	baseURL string
	color   string
	limit   int
}

// writeCLIConfig writes a config file rooted in a temp directory and returns
// its path. The zero value disables lookup and colors.
func writeCLIConfig(t *testing.T, opts cliConfig) string {
	t.Helper()

	// Neutralize ambient credentials so the config file decides.
	t.Setenv("TMDB_TOKEN", "")

	base := t.TempDir()
	if opts.color == "" {
		opts.color = "never"
	}
	if opts.limit <= 0 {
		opts.limit = 200
	}
	if opts.baseURL == "" {
		opts.baseURL = "https://api.themoviedb.org/3"
	}

	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[tmdb]
token = %q
base_url = %q

[ui]
default_limit = %d
color = %q
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		opts.token,
		opts.baseURL,
		opts.limit,
		opts.color,
	)

	configPath := filepath.Join(base, "config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	return runCLIWithInput(t, configPath, "", args...)
}

func runCLIWithInput(t *testing.T, configPath, input string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if input != "" {
		cmd.SetIn(strings.NewReader(input))
	}
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// newTMDBServer serves canned search and detail payloads for the add flow.
func newTMDBServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/search/movie", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, map[string]any{
			"page": 1,
			"results": []map[string]any{
				{
					"id": 603, "title": "The Matrix", "release_date": "1999-03-30",
					"overview": "A hacker learns the truth.", "genre_ids": []int{28, 878},
					"popularity": 90.0, "vote_count": 20000,
				},
				{
					"id": 604, "title": "The Matrix Reloaded", "release_date": "2003-05-15",
					"overview": "The rebellion escalates.", "genre_ids": []int{28, 878},
					"popularity": 70.0, "vote_count": 15000,
				},
			},
		})
	})
	mux.HandleFunc("/search/tv", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, map[string]any{"page": 1, "results": []map[string]any{}})
	})
	mux.HandleFunc("/movie/603", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, map[string]any{
			"id": 603, "title": "The Matrix", "release_date": "1999-03-30", "runtime": 136,
			"genres": []map[string]any{{"id": 28, "name": "Action"}, {"id": 878, "name": "Science Fiction"}},
		})
	})
	mux.HandleFunc("/movie/604", func(w http.ResponseWriter, r *http.Request) {
		writeTestJSON(w, map[string]any{
			"id": 604, "title": "The Matrix Reloaded", "release_date": "2003-05-15", "runtime": 138,
			"genres": []map[string]any{{"id": 28, "name": "Action"}},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeTestJSON(w io.Writer, payload any) {
	_ = json.NewEncoder(w).Encode(payload)
}

// seedWatchlist stores three entries without lookup: The Matrix (#1, movie),
// Alien (#2, movie, seen), The Wire (#3, show).
func seedWatchlist(t *testing.T, configPath string) {
	t.Helper()
	seeds := [][]string{
		{"add", "The Matrix", "--manual", "--type", "movie", "--year", "1999", "--runtime", "136", "--tag", "scifi"},
		{"add", "Alien", "--manual", "--type", "movie", "--year", "1979", "--runtime", "117", "--seen", "--tag", "scifi", "--tag", "horror"},
		{"add", "The Wire", "--manual", "--type", "show", "--tag", "crime"},
	}
	for _, args := range seeds {
		if _, _, err := runCLI(t, configPath, args...); err != nil {
			t.Fatalf("seed %v: %v", args, err)
		}
	}
}

func listEntriesJSON(t *testing.T, configPath string, args ...string) []entryJSON {
	t.Helper()
	stdout, _, err := runCLI(t, configPath, append([]string{"list", "--json"}, args...)...)
	if err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	var entries []entryJSON
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("decode list output: %v\n%s", err, stdout)
	}
	return entries
}

func showEntryJSON(t *testing.T, configPath string, id int64) entryJSON {
	t.Helper()
	stdout, _, err := runCLI(t, configPath, "show", fmt.Sprint(id), "--json")
	if err != nil {
		t.Fatalf("show %d returned error: %v", id, err)
	}
	var entry entryJSON
	if err := json.Unmarshal([]byte(stdout), &entry); err != nil {
		t.Fatalf("decode show output: %v\n%s", err, stdout)
	}
	return entry
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q to not contain %q", output, substr)
	}
}
