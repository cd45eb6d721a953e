package output

import (
	"slices"
	"strings"

	"github.com/wagiedev/codex-clean-go/internal/event"
)

// Aggregator collects the session id and agent messages seen in a codex run.
// The zero value is ready to use. It is not safe for concurrent use.
type Aggregator struct {
	sessionID           *string
	messages            []string
	multipleThreadsSeen bool
}

// Rendered holds the text to print on stdout and stderr.
type Rendered struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
}

// Summary is a snapshot of the aggregated state.
type Summary struct {
	SessionID           string   `json:"session_id,omitempty" jsonschema:"thread id reported by codex, first one wins"`
	Messages            []string `json:"messages" jsonschema:"non-empty agent messages in arrival order"`
	MultipleThreadsSeen bool     `json:"multiple_threads_seen,omitempty" jsonschema:"true when codex reported more than one thread id"`
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// AddThreadID records a thread id. The first id wins; a different id seen
// later only sets the multiple-threads warning.
func (a *Aggregator) AddThreadID(threadID string) {
	if a.sessionID == nil {
		a.sessionID = &threadID

		return
	}

	if *a.sessionID != threadID {
		a.multipleThreadsSeen = true
	}
}

// AddMessage appends an agent message. Empty messages are dropped.
func (a *Aggregator) AddMessage(text string) {
	if text == "" {
		return
	}

	a.messages = append(a.messages, text)
}

// Apply feeds a recognized event into the aggregator.
func (a *Aggregator) Apply(ev event.Event) {
	switch e := ev.(type) {
	case event.ThreadStarted:
		a.AddThreadID(e.ThreadID)
	case event.AgentMessage:
		if e.Text != nil {
			a.AddMessage(*e.Text)
		}
	}
}

// SessionID returns the session id and whether one was received.
func (a *Aggregator) SessionID() (string, bool) {
	if a.sessionID == nil {
		return "", false
	}

	return *a.sessionID, true
}

// Messages returns a copy of the collected messages.
func (a *Aggregator) Messages() []string {
	return slices.Clone(a.messages)
}

// MultipleThreadsSeen reports whether a second, different thread id was seen.
func (a *Aggregator) MultipleThreadsSeen() bool {
	return a.multipleThreadsSeen
}

// Empty reports whether no recognized event contributed any state.
func (a *Aggregator) Empty() bool {
	return a.sessionID == nil && len(a.messages) == 0
}

// AggregatedMessage joins all messages with newlines.
func (a *Aggregator) AggregatedMessage() string {
	return strings.Join(a.messages, "\n")
}

// Summary returns a snapshot of the aggregated state.
func (a *Aggregator) Summary() Summary {
	sessionID, _ := a.SessionID()

	messages := a.Messages()
	if messages == nil {
		messages = []string{}
	}

	return Summary{
		SessionID:           sessionID,
		Messages:            messages,
		MultipleThreadsSeen: a.multipleThreadsSeen,
	}
}

// Render composes the stdout and stderr text for the current state.
// It has no side effects; calling it twice yields identical output.
func (a *Aggregator) Render() Rendered {
	var stdout, stderr strings.Builder

	if a.multipleThreadsSeen {
		stderr.WriteString("Warning: Multiple thread IDs seen, using first\n")
	}

	if a.sessionID != nil {
		stdout.WriteString("Session: " + *a.sessionID + "\n")
	} else {
		stderr.WriteString("Warning: No session ID received\n")
	}

	message := a.AggregatedMessage()

	switch {
	case message != "":
		stdout.WriteString("\n")
		stdout.WriteString(message)
		stdout.WriteString("\n")
	case a.sessionID != nil:
		stderr.WriteString("Note: No response received\n")
	}

	return Rendered{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
}
