// Package llm provides the language-model backend used to generate
// supportive replies. The agent depends only on the Completer interface
// so tests can substitute a fake.
package llm

import (
	"context"

	"github.com/quietharbor/quietharbor/internal/model"
)

// Completer produces an assistant reply for a conversation. The system
// instructions are passed separately from the turn history.
type Completer interface {
	Complete(ctx context.Context, instructions string, turns []model.Turn) (string, error)
}
