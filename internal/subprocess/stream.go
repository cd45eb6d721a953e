package subprocess

import (
	"bufio"
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/wagiedev/codex-clean-go/internal/errors"
	"github.com/wagiedev/codex-clean-go/internal/event"
	"github.com/wagiedev/codex-clean-go/internal/output"
)

// initialScanBufferSize is the starting scanner buffer; it grows up to the
// configured max line size.
const initialScanBufferSize = 64 * 1024

// ParseStream reads codex's JSON event stream and aggregates the recognized
// events. Unrecognized or malformed lines are skipped.
//
// A line that is not valid UTF-8, a line longer than maxLineSize, or a read
// error aborts parsing with a StdoutReadError.
func ParseStream(r io.Reader, maxLineSize int) (*output.Aggregator, error) {
	agg := output.NewAggregator()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(initialScanBufferSize, maxLineSize)), maxLineSize)

	lineNum := 0

	for scanner.Scan() {
		lineNum++

		line := scanner.Bytes()
		if !utf8.Valid(line) {
			return nil, &errors.StdoutReadError{Line: lineNum, Err: errors.ErrInvalidUTF8}
		}

		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if ev, ok := event.ExtractBytes(line); ok {
			agg.Apply(ev)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, &errors.StdoutReadError{Line: lineNum + 1, Err: err}
	}

	return agg, nil
}
