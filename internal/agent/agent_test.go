package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/quietharbor/quietharbor/internal/crisis"
	"github.com/quietharbor/quietharbor/internal/model"
	"github.com/quietharbor/quietharbor/internal/sentiment"
)

type fakeCompleter struct {
	reply        string
	err          error
	instructions string
	turns        []model.Turn
}

func (f *fakeCompleter) Complete(_ context.Context, instructions string, turns []model.Turn) (string, error) {
	f.instructions = instructions
	f.turns = turns
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func newTestAgent(fc *fakeCompleter) *Agent {
	return New(fc, crisis.NewDefault(), sentiment.NewDefault(), "gpt-4", nil)
}

func TestRespondNormalMessage(t *testing.T) {
	fc := &fakeCompleter{reply: "That sounds like a lot to carry. Tell me more?"}
	a := newTestAgent(fc)

	reply, err := a.Respond(context.Background(), "work has been busy lately", nil)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if reply.Response != fc.reply {
		t.Errorf("response = %q", reply.Response)
	}
	if reply.Crisis.Detected {
		t.Error("crisis detected on normal message")
	}
	if reply.Fallback {
		t.Error("fallback set on successful completion")
	}
	if reply.Model != "gpt-4" {
		t.Errorf("model = %q", reply.Model)
	}

	// No crisis turn prepended; the user turn is last.
	if len(fc.turns) != 1 || fc.turns[0].Role != model.RoleUser {
		t.Errorf("turns = %+v", fc.turns)
	}
	if fc.instructions != systemPrompt {
		t.Error("instructions not the system prompt")
	}
}

func TestRespondCrisisInjectsInstruction(t *testing.T) {
	fc := &fakeCompleter{reply: "Please reach out to the 988 lifeline right now."}
	a := newTestAgent(fc)

	reply, err := a.Respond(context.Background(), "I want to kill myself", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reply.Crisis.Detected || reply.Crisis.Level != model.SeverityCritical {
		t.Fatalf("crisis = %+v", reply.Crisis)
	}

	if len(fc.turns) < 2 {
		t.Fatalf("expected crisis system turn, got %d turns", len(fc.turns))
	}
	first := fc.turns[0]
	if first.Role != model.RoleSystem {
		t.Errorf("first turn role = %q, want system", first.Role)
	}
	if !strings.Contains(first.Content, "CRITICAL: Crisis detected (critical)") {
		t.Errorf("crisis instruction = %q", first.Content)
	}
	if !strings.Contains(first.Content, "kill myself") {
		t.Errorf("crisis instruction missing keywords: %q", first.Content)
	}
}

func TestRespondIncludesHistory(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	a := newTestAgent(fc)

	history := []model.Turn{
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleAssistant, Content: "hello, how are you feeling today?"},
	}
	if _, err := a.Respond(context.Background(), "a bit tired", history); err != nil {
		t.Fatal(err)
	}

	if len(fc.turns) != 3 {
		t.Fatalf("turns = %d, want 3", len(fc.turns))
	}
	if fc.turns[0].Content != "hi" || fc.turns[2].Content != "a bit tired" {
		t.Errorf("turn order wrong: %+v", fc.turns)
	}
}

func TestRespondFallbackOnError(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("503 upstream down")}
	a := newTestAgent(fc)

	reply, err := a.Respond(context.Background(), "I feel hopeless and worthless", nil)
	if err != nil {
		t.Fatalf("Respond should not fail on backend error: %v", err)
	}
	if !reply.Fallback {
		t.Error("fallback flag not set")
	}
	if !strings.Contains(reply.Response, "988") {
		t.Errorf("fallback reply missing hotline: %q", reply.Response)
	}
	if reply.Error != "503 upstream down" {
		t.Errorf("error = %q, want the backend error text", reply.Error)
	}
	// Classification still runs even when the backend is down.
	if !reply.Crisis.Detected || reply.Crisis.Level != model.SeverityMedium {
		t.Errorf("crisis = %+v", reply.Crisis)
	}
}

func TestRespondSentiment(t *testing.T) {
	fc := &fakeCompleter{reply: "ok"}
	a := newTestAgent(fc)

	reply, err := a.Respond(context.Background(), "I feel sad and terrible", nil)
	if err != nil {
		t.Fatal(err)
	}
	if reply.Sentiment.Label != model.SentimentNegative {
		t.Errorf("sentiment = %+v", reply.Sentiment)
	}
}

func TestCopingStrategies(t *testing.T) {
	tests := []struct {
		issue string
		first string
	}{
		{"anxiety", "Practice deep breathing: 4-7-8 technique (inhale 4, hold 7, exhale 8)"},
		{"Depression", "Establish a daily routine"},
		{"STRESS", "Practice mindfulness meditation"},
		{"general", "Regular sleep schedule"},
		{"unknown-topic", "Regular sleep schedule"},
		{"", "Regular sleep schedule"},
	}
	for _, tt := range tests {
		got := CopingStrategies(tt.issue)
		if len(got) == 0 {
			t.Fatalf("CopingStrategies(%q) empty", tt.issue)
		}
		if got[0] != tt.first {
			t.Errorf("CopingStrategies(%q)[0] = %q, want %q", tt.issue, got[0], tt.first)
		}
	}
}

func TestIssueTypes(t *testing.T) {
	got := IssueTypes()
	want := []string{"anxiety", "depression", "general", "stress"}
	if len(got) != len(want) {
		t.Fatalf("IssueTypes = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IssueTypes[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
