package subprocess

import (
	"fmt"
	"strings"

	"github.com/wagiedev/codex-clean-go/internal/output"
)

const (
	stderrBegin = "--- codex stderr ---\n"
	stderrEnd   = "--- end stderr ---\n"
)

// ComposeReport builds the final stdout/stderr text for a finished run.
//
// For a failed child the captured stderr is echoed between markers, followed
// by a note when no JSON event was recognized. A stderr capture failure is
// reported but never changes the outcome. The aggregator's rendering always
// comes last.
func ComposeReport(exitCode int, agg *output.Aggregator, capture Capture, limit int) output.Rendered {
	var diag strings.Builder

	if exitCode != 0 {
		switch {
		case len(capture.Bytes) > 0 || capture.Truncated:
			diag.WriteString(stderrBegin)
			diag.Write(capture.Bytes)

			if n := len(capture.Bytes); n > 0 && capture.Bytes[n-1] != '\n' {
				diag.WriteByte('\n')
			}

			if capture.Truncated {
				fmt.Fprintf(&diag, "(stderr truncated to %d bytes)\n", limit)
			}

			if capture.Err != nil {
				fmt.Fprintf(&diag, "(failed to capture full stderr: %v)\n", capture.Err.Err)
			}

			diag.WriteString(stderrEnd)

		case capture.Err != nil:
			diag.WriteString(stderrBegin)
			fmt.Fprintf(&diag, "Failed to capture stderr: %v\n", capture.Err.Err)
			diag.WriteString(stderrEnd)
		}

		if agg.Empty() {
			fmt.Fprintf(&diag, "Codex exited with code %d and produced no JSON output\n", exitCode)
		}
	} else if capture.Err != nil {
		fmt.Fprintf(&diag, "Warning: Failed to capture codex stderr: %v\n", capture.Err.Err)
	}

	rendered := agg.Render()

	return output.Rendered{
		Stdout: rendered.Stdout,
		Stderr: diag.String() + rendered.Stderr,
	}
}
