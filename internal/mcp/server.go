// Package mcp exposes the crisis classifier, resource listing, and coping
// strategies as Model Context Protocol tools over stdio, so an MCP client
// can screen messages without running the full HTTP service.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/quietharbor/quietharbor/internal/audit"
	"github.com/quietharbor/quietharbor/internal/crisis"
)

// Config holds MCP server configuration.
type Config struct {
	KeywordsPath string
	AuditLogPath string
}

// Server wraps the MCP SDK server around the classifier.
type Server struct {
	mcpServer *mcpsdk.Server
	detector  *crisis.Detector
	auditLog  *audit.Log
}

// New creates an MCP server with the classifier and tools loaded.
func New(cfg Config) (*Server, error) {
	detector, err := crisis.Load(cfg.KeywordsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load keywords: %w", err)
	}

	var auditLog *audit.Log
	if cfg.AuditLogPath != "" {
		auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open safety log: %w", err)
		}
	}

	s := &Server{
		detector: detector,
		auditLog: auditLog,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "quietharbor",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the safety log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

// registerTools adds all quietharbor tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "quietharbor_classify",
		Description: "Classify a message for crisis indicators. Returns the severity level, matched keywords, and confidence; detected crises include the resource listing.",
	}, s.handleClassify)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "quietharbor_resources",
		Description: "List crisis support resources (hotlines and text lines).",
	}, s.handleResources)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "quietharbor_strategies",
		Description: "Get evidence-based coping strategies for a concern (anxiety, depression, stress, or general).",
	}, s.handleStrategies)
}
