// Package subprocess runs `codex exec` as a child process and turns its
// output into a report.
//
// The child's stdout and stderr are drained concurrently: stdout is consumed
// line by line on the calling goroutine while a background goroutine copies
// stderr into a bounded buffer. Both streams are read to EOF before the
// process is waited on, so a chatty child can never block on a full pipe.
package subprocess
