package main

import "testing"

func TestGenresListsLookupMetadata(t *testing.T) {
	server := newTMDBServer(t)
	configPath := writeCLIConfig(t, cliConfig{token: "test-token", baseURL: server.URL})

	if _, _, err := runCLI(t, configPath, "add", "The Matrix", "--type", "movie", "--yes"); err != nil {
		t.Fatalf("add returned error: %v", err)
	}

	stdout, _, err := runCLI(t, configPath, "genres")
	if err != nil {
		t.Fatalf("genres returned error: %v", err)
	}
	requireContains(t, stdout, "Action")
	requireContains(t, stdout, "Science Fiction")
	requireContains(t, stdout, "1")
}

func TestListGenreFilterIgnoresCase(t *testing.T) {
	server := newTMDBServer(t)
	configPath := writeCLIConfig(t, cliConfig{token: "test-token", baseURL: server.URL})

	if _, _, err := runCLI(t, configPath, "add", "The Matrix", "--type", "movie", "--yes"); err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if _, _, err := runCLI(t, configPath, "add", "Alien", "--manual", "--type", "movie"); err != nil {
		t.Fatalf("manual add returned error: %v", err)
	}

	entries := listEntriesJSON(t, configPath, "--genre", "science fiction")
	if len(entries) != 1 || entries[0].Title != "The Matrix" {
		t.Fatalf("unexpected genre filter result: %+v", entries)
	}
}

func TestGenresEmpty(t *testing.T) {
	configPath := writeCLIConfig(t, cliConfig{})

	stdout, _, err := runCLI(t, configPath, "genres")
	if err != nil {
		t.Fatalf("genres returned error: %v", err)
	}
	requireContains(t, stdout, "No genres recorded")
}
