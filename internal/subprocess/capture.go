package subprocess

import (
	stderrors "errors"
	"io"

	"github.com/wagiedev/codex-clean-go/internal/errors"
)

// captureChunkSize is the read size used when draining stderr.
const captureChunkSize = 32 * 1024

// Capture is the result of draining the child's stderr.
type Capture struct {
	// Bytes holds at most limit bytes: the start of the stream.
	Bytes []byte

	// Truncated is set once any byte past the limit was discarded.
	Truncated bool

	// Err is set when the drain stopped on a read error. Bytes still holds
	// everything captured before the failure.
	Err *errors.StderrCaptureError
}

// CaptureStderr reads r until EOF, keeping the first limit bytes.
//
// Reading continues after the limit is reached so the writer never blocks on
// a full pipe; the extra bytes are discarded. A read error ends the drain and
// is reported in Capture.Err.
func CaptureStderr(r io.Reader, limit int) Capture {
	var c Capture

	limit = max(limit, 0)
	buf := make([]byte, captureChunkSize)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			remaining := limit - len(c.Bytes)

			switch {
			case remaining <= 0:
				c.Truncated = true
			case n > remaining:
				c.Bytes = append(c.Bytes, buf[:remaining]...)
				c.Truncated = true
			default:
				c.Bytes = append(c.Bytes, buf[:n]...)
			}
		}

		if err != nil {
			if !stderrors.Is(err, io.EOF) {
				c.Err = &errors.StderrCaptureError{Err: err}
			}

			return c
		}
	}
}
