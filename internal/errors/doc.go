// Package errors defines error types for codex-clean.
//
// Fatal conditions (the child could not be spawned, its stdout could not be
// read, the prompt could not be delivered) are returned as errors from a run.
// Non-fatal conditions such as a failed stderr capture are carried inside the
// run result instead. All error types support error unwrapping and can be
// checked using errors.Is, errors.As, and errors.AsType.
package errors
