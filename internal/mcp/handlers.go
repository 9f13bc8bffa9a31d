package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quietharbor/quietharbor/internal/agent"
	"github.com/quietharbor/quietharbor/internal/audit"
	"github.com/quietharbor/quietharbor/internal/crisis"
	"github.com/quietharbor/quietharbor/internal/model"
)

// --- Input/Output types ---

// ClassifyInput defines parameters for the quietharbor_classify tool.
type ClassifyInput struct {
	Message string `json:"message" jsonschema:"message text to screen for crisis indicators"`
}

// ClassifyOutput contains the classification and, when a crisis is
// detected, the resource listing.
type ClassifyOutput struct {
	Detected   bool              `json:"detected"`
	Level      model.Severity    `json:"level"`
	Keywords   []string          `json:"keywords,omitempty"`
	Confidence float64           `json:"confidence"`
	Resources  []crisis.Resource `json:"resources,omitempty"`
}

// ResourcesInput is empty, no parameters needed.
type ResourcesInput struct{}

// ResourcesOutput lists crisis support resources.
type ResourcesOutput struct {
	Resources []crisis.Resource `json:"resources"`
}

// StrategiesInput defines parameters for the quietharbor_strategies tool.
type StrategiesInput struct {
	IssueType string `json:"issue_type,omitempty" jsonschema:"concern type (anxiety/depression/stress/general)"`
}

// StrategiesOutput lists coping strategies for the concern.
type StrategiesOutput struct {
	IssueType  string   `json:"issue_type"`
	Strategies []string `json:"strategies"`
}

// --- Handlers ---

func (s *Server) handleClassify(ctx context.Context, req *mcpsdk.CallToolRequest, input ClassifyInput) (*mcpsdk.CallToolResult, ClassifyOutput, error) {
	cls := s.detector.Classify(input.Message)

	out := ClassifyOutput{
		Detected:   cls.Detected,
		Level:      cls.Level,
		Keywords:   cls.Keywords,
		Confidence: cls.Confidence,
	}
	if cls.Detected {
		out.Resources = crisis.Resources()
		if s.auditLog != nil {
			err := s.auditLog.Record(audit.Event{
				Level:      cls.Level,
				Keywords:   cls.Keywords,
				Confidence: cls.Confidence,
			})
			if err != nil {
				slog.Error("failed to append safety log event", "error", err)
			}
		}
	}
	return nil, out, nil
}

func (s *Server) handleResources(ctx context.Context, req *mcpsdk.CallToolRequest, input ResourcesInput) (*mcpsdk.CallToolResult, ResourcesOutput, error) {
	return nil, ResourcesOutput{Resources: crisis.Resources()}, nil
}

func (s *Server) handleStrategies(ctx context.Context, req *mcpsdk.CallToolRequest, input StrategiesInput) (*mcpsdk.CallToolResult, StrategiesOutput, error) {
	issueType := input.IssueType
	if issueType == "" {
		issueType = "general"
	}
	return nil, StrategiesOutput{
		IssueType:  issueType,
		Strategies: agent.CopingStrategies(issueType),
	}, nil
}
