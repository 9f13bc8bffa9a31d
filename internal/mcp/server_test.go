package mcp

import (
	"context"
	"path/filepath"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quietharbor/quietharbor/internal/audit"
	"github.com/quietharbor/quietharbor/internal/model"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	cfg := Config{
		KeywordsPath: filepath.Join(dir, "keywords.yaml"),
		AuditLogPath: filepath.Join(dir, "safety.jsonl"),
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to create MCP server: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestClassifyCrisis(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleClassify(ctx, &mcpsdk.CallToolRequest{}, ClassifyInput{
		Message: "I want to kill myself",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Detected {
		t.Fatal("expected detection")
	}
	if out.Level != model.SeverityCritical || out.Confidence != 1.0 {
		t.Errorf("level = %q, confidence = %v", out.Level, out.Confidence)
	}
	if len(out.Resources) == 0 {
		t.Error("detected classification missing resources")
	}
}

func TestClassifyNormal(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleClassify(ctx, &mcpsdk.CallToolRequest{}, ClassifyInput{
		Message: "had a pleasant walk today",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Detected {
		t.Fatalf("unexpected detection: %+v", out)
	}
	if out.Level != model.SeverityNone || out.Confidence != 0.0 {
		t.Errorf("level = %q, confidence = %v", out.Level, out.Confidence)
	}
	if len(out.Resources) != 0 {
		t.Error("resources returned without detection")
	}
}

func TestClassifyRecordsAuditEvent(t *testing.T) {
	dir := t.TempDir()
	auditPath := filepath.Join(dir, "safety.jsonl")
	s, err := New(Config{
		KeywordsPath: filepath.Join(dir, "keywords.yaml"),
		AuditLogPath: auditPath,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ctx := context.Background()
	if _, _, err := s.handleClassify(ctx, &mcpsdk.CallToolRequest{}, ClassifyInput{
		Message: "I feel hopeless and worthless",
	}); err != nil {
		t.Fatal(err)
	}
	// Normal messages leave no trace in the safety log.
	if _, _, err := s.handleClassify(ctx, &mcpsdk.CallToolRequest{}, ClassifyInput{
		Message: "doing fine",
	}); err != nil {
		t.Fatal(err)
	}

	events, err := audit.Tail(auditPath, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("safety log events = %d, want 1", len(events))
	}
	if events[0].Level != model.SeverityMedium {
		t.Errorf("event level = %q", events[0].Level)
	}
}

func TestResourcesTool(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.handleResources(context.Background(), &mcpsdk.CallToolRequest{}, ResourcesInput{})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Resources) == 0 {
		t.Error("no resources returned")
	}
}

func TestStrategiesTool(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleStrategies(ctx, &mcpsdk.CallToolRequest{}, StrategiesInput{IssueType: "anxiety"})
	if err != nil {
		t.Fatal(err)
	}
	if out.IssueType != "anxiety" || len(out.Strategies) == 0 {
		t.Errorf("out = %+v", out)
	}

	_, out, err = s.handleStrategies(ctx, &mcpsdk.CallToolRequest{}, StrategiesInput{})
	if err != nil {
		t.Fatal(err)
	}
	if out.IssueType != "general" {
		t.Errorf("default issue type = %q", out.IssueType)
	}
}
