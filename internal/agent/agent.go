// Package agent orchestrates a single conversational turn: crisis
// classification, sentiment analysis, prompt assembly, and the completion
// call, with a safe fallback when the backend is unavailable.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/quietharbor/quietharbor/internal/crisis"
	"github.com/quietharbor/quietharbor/internal/llm"
	"github.com/quietharbor/quietharbor/internal/model"
	"github.com/quietharbor/quietharbor/internal/sentiment"
)

// Agent generates supportive replies. Construct with New.
type Agent struct {
	completer llm.Completer
	detector  atomic.Pointer[crisis.Detector]
	analyzer  *sentiment.Analyzer
	model     string
	logger    *slog.Logger
}

// Reply is the outcome of one conversational turn.
type Reply struct {
	Response  string               `json:"response"`
	Crisis    model.Classification `json:"crisis"`
	Sentiment model.Sentiment      `json:"sentiment"`
	Model     string               `json:"model_used"`
	Fallback  bool                 `json:"fallback,omitempty"`
	Error     string               `json:"error,omitempty"`
}

// New builds an agent. modelName is recorded on replies for audit trails.
func New(completer llm.Completer, detector *crisis.Detector, analyzer *sentiment.Analyzer, modelName string, logger *slog.Logger) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	a := &Agent{
		completer: completer,
		analyzer:  analyzer,
		model:     modelName,
		logger:    logger,
	}
	a.detector.Store(detector)
	return a
}

// Detector exposes the agent's current classifier.
func (a *Agent) Detector() *crisis.Detector { return a.detector.Load() }

// SetDetector swaps the classifier. Safe to call while requests are in
// flight, used by keyword hot reload.
func (a *Agent) SetDetector(d *crisis.Detector) { a.detector.Store(d) }

// Respond classifies the message, runs sentiment analysis, and asks the
// completion backend for a reply. When a crisis is detected an extra
// system turn directs the model to lead with crisis resources. A backend
// failure never fails the turn: the reply falls back to a fixed message
// that includes the crisis hotline, carrying the error text on the reply.
func (a *Agent) Respond(ctx context.Context, userMessage string, history []model.Turn) (*Reply, error) {
	cls := a.detector.Load().Classify(userMessage)
	sent := a.analyzer.Analyze(userMessage)

	turns := make([]model.Turn, 0, len(history)+2)
	if cls.Detected {
		turns = append(turns, model.Turn{
			Role:    model.RoleSystem,
			Content: crisisInstruction(cls),
		})
	}
	turns = append(turns, history...)
	turns = append(turns, model.Turn{Role: model.RoleUser, Content: userMessage})

	reply := &Reply{
		Crisis:    cls,
		Sentiment: sent,
		Model:     a.model,
	}

	text, err := a.completer.Complete(ctx, systemPrompt, turns)
	if err != nil {
		a.logger.Error("completion failed, using fallback", "error", err, "crisis_level", cls.Level)
		reply.Response = fallbackReply
		reply.Fallback = true
		reply.Error = err.Error()
		return reply, nil
	}

	reply.Response = text
	return reply, nil
}

func crisisInstruction(cls model.Classification) string {
	return fmt.Sprintf("CRITICAL: Crisis detected (%s). "+
		"Immediately provide crisis resources and support. "+
		"Keywords detected: %s", cls.Level, strings.Join(cls.Keywords, ", "))
}
