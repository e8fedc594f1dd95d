// Package services defines shared utilities consumed by the tracker service
// and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp entry IDs, component names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (user error vs system fault) uniform across commands.
//
// Use these helpers when wiring new operations so error handling and
// observability stay consistent across the tool.
package services
