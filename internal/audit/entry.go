package audit

import "github.com/quietharbor/quietharbor/internal/model"

// Event is one line in the hash-chained JSONL safety log: a single
// crisis classification of a user message. All fields are structs and
// scalars (no map[string]any) to guarantee deterministic json.Marshal
// field order for reproducible hashing.
type Event struct {
	Timestamp      string         `json:"ts"`
	SessionID      string         `json:"session_id"`
	ConversationID int64          `json:"conversation_id,omitempty"`
	Level          model.Severity `json:"level"`
	Keywords       []string       `json:"keywords,omitempty"`
	Confidence     float64        `json:"confidence"`
	Model          string         `json:"model,omitempty"`
	PrevHash       string         `json:"prev_hash"`
}
