package event

import "encoding/json"

// Extract parses a single output line and returns the recognized event, if any.
//
// Extraction is all-or-nothing: if any field required by a shape is missing or
// has the wrong JSON type, the line yields no event.
func Extract(line string) (Event, bool) {
	return ExtractBytes([]byte(line))
}

// ExtractBytes is Extract for a raw line.
func ExtractBytes(line []byte) (Event, bool) {
	var data map[string]any
	if err := json.Unmarshal(line, &data); err != nil {
		return nil, false
	}

	eventType, ok := data["type"].(string)
	if !ok {
		return nil, false
	}

	switch eventType {
	case TypeThreadStarted:
		threadID, ok := data["thread_id"].(string)
		if !ok {
			return nil, false
		}

		return ThreadStarted{ThreadID: threadID}, true

	case TypeItemCompleted:
		item, ok := data["item"].(map[string]any)
		if !ok {
			return nil, false
		}

		if itemType, _ := item["type"].(string); itemType != ItemAgentMessage {
			return nil, false
		}

		msg := AgentMessage{}
		if text, ok := item["text"].(string); ok {
			msg.Text = &text
		}

		return msg, true

	default:
		return nil, false
	}
}
