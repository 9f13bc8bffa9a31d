package model

// Severity classifies how urgent a crisis signal is.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// SeverityRank maps severity to a comparable integer for monotonic escalation.
var SeverityRank = map[Severity]int{
	SeverityNone:     0,
	SeverityMedium:   1,
	SeverityHigh:     2,
	SeverityCritical: 3,
}

// ParseSeverity normalizes a raw severity string. Unknown values map to none.
func ParseSeverity(raw string) Severity {
	switch Severity(raw) {
	case SeverityMedium, SeverityHigh, SeverityCritical:
		return Severity(raw)
	default:
		return SeverityNone
	}
}

// Classification is the result of running the crisis detector over a message.
// Created fresh per call and never mutated after return.
type Classification struct {
	Detected   bool     `json:"detected"`
	Level      Severity `json:"level"`
	Keywords   []string `json:"keywords"`
	Confidence float64  `json:"confidence"`
}

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in a conversation, in the shape the completion
// API expects.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// SentimentLabel buckets a sentiment score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Sentiment is the result of the bag-of-words sentiment scan.
type Sentiment struct {
	Score         float64        `json:"score"`
	Label         SentimentLabel `json:"label"`
	PositiveCount int            `json:"positive_count"`
	NegativeCount int            `json:"negative_count"`
}
