package main

import "testing"

func TestRandomPicksFromFilteredPool(t *testing.T) {
	configPath := writeCLIConfig(t, cliConfig{})
	seedWatchlist(t, configPath)

	stdout, _, err := runCLI(t, configPath, "random", "--type", "show")
	if err != nil {
		t.Fatalf("random returned error: %v", err)
	}
	requireContains(t, stdout, "The Wire")
}

func TestRandomSkipsSeenUnlessAll(t *testing.T) {
	configPath := writeCLIConfig(t, cliConfig{})
	seedWatchlist(t, configPath)

	// Alien carries the horror tag but is already seen.
	stdout, _, err := runCLI(t, configPath, "random", "--tag", "horror")
	if err != nil {
		t.Fatalf("random returned error: %v", err)
	}
	requireContains(t, stdout, "Nothing matches; try --all or different filters.")

	stdout, _, err = runCLI(t, configPath, "random", "--tag", "horror", "--all")
	if err != nil {
		t.Fatalf("random --all returned error: %v", err)
	}
	requireContains(t, stdout, "Alien (1979)")
}
