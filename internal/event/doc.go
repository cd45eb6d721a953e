// Package event extracts the events codex-clean cares about from the
// newline-delimited JSON that `codex exec --experimental-json` writes to
// stdout.
//
// Only two shapes are recognized: a "thread.started" event carrying the
// session id, and an "item.completed" event whose item is an agent message.
// Every other line, including malformed JSON, is skipped without error so
// new event types in codex never break the wrapper.
package event
