package event

// Wire values of the recognized discriminators.
const (
	TypeThreadStarted = "thread.started"
	TypeItemCompleted = "item.completed"
	ItemAgentMessage  = "agent_message"
)

// Event is a recognized codex event.
// Implementations: ThreadStarted, AgentMessage.
type Event interface {
	event() // marker method
}

// ThreadStarted reports the session (thread) id assigned by codex.
type ThreadStarted struct {
	ThreadID string
}

func (ThreadStarted) event() {}

// AgentMessage is a completed message generated by the agent.
// Text is nil when the item carried no string text.
type AgentMessage struct {
	Text *string
}

func (AgentMessage) event() {}
