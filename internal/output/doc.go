// Package output aggregates recognized codex events and renders the text
// codex-clean prints: the session id and agent messages on stdout, warnings
// and notes on stderr.
package output
