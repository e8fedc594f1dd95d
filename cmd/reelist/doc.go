// Package main hosts the reelist CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into calls on
// the tracker service: adding titles with optional metadata lookup, listing
// and searching the watchlist, random picks, seen flags, notes, tags, and
// configuration scaffolding. It centralizes configuration resolution, store
// lifetime, and structured logging setup so subcommands can focus on user
// experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
