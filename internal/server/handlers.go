package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/quietharbor/quietharbor/internal/agent"
	"github.com/quietharbor/quietharbor/internal/audit"
	"github.com/quietharbor/quietharbor/internal/crisis"
	"github.com/quietharbor/quietharbor/internal/metrics"
	"github.com/quietharbor/quietharbor/internal/model"
	"github.com/quietharbor/quietharbor/internal/store"
)

// historyWindow caps how many prior turns are replayed to the model.
const historyWindow = 20

type messageRequest struct {
	Username       string `json:"username"`
	ConversationID int64  `json:"conversation_id"`
	Message        string `json:"message"`
}

type messageResponse struct {
	ConversationID int64                `json:"conversation_id"`
	Response       string               `json:"response"`
	Crisis         model.Classification `json:"crisis"`
	Sentiment      model.Sentiment      `json:"sentiment"`
	Model          string               `json:"model_used"`
	Fallback       bool                 `json:"fallback,omitempty"`
	Resources      []crisis.Resource    `json:"resources,omitempty"`
}

// postMessage runs one conversational turn: it resolves the user and
// conversation, generates a reply, and persists both sides of the
// exchange. Crisis detections are appended to the safety log and the
// response carries the crisis resource listing.
func (s *Server) postMessage(c fiber.Ctx) error {
	var req messageRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid JSON body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return jsonError(c, fiber.StatusBadRequest, "username is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return jsonError(c, fiber.StatusBadRequest, "message is required")
	}

	ctx := c.Context()
	user, err := s.store.GetOrCreateUser(ctx, req.Username, "")
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to resolve user")
	}

	var conv *store.Conversation
	if req.ConversationID > 0 {
		conv, err = s.store.GetConversation(ctx, req.ConversationID)
		if errors.Is(err, store.ErrConversationNotFound) {
			return jsonError(c, fiber.StatusNotFound, "conversation not found")
		}
		if err == nil && conv.UserID != user.ID {
			return jsonError(c, fiber.StatusForbidden, "conversation belongs to another user")
		}
	} else {
		conv, err = s.store.StartConversation(ctx, user.ID, "")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to resolve conversation")
	}

	history, err := s.store.History(ctx, conv.ID, historyWindow)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to load history")
	}

	start := time.Now()
	reply, err := s.agent.Respond(ctx, req.Message, history)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to generate response")
	}
	metrics.RecordClassification(reply.Crisis.Level)
	metrics.RecordCompletion(reply.Fallback, time.Since(start).Seconds())

	score := reply.Sentiment.Score
	if _, err := s.store.AddMessage(ctx, conv.ID, model.RoleUser, req.Message, &score, reply.Crisis.Level); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to store message")
	}
	if _, err := s.store.AddMessage(ctx, conv.ID, model.RoleAssistant, reply.Response, nil, model.SeverityNone); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to store response")
	}

	if reply.Crisis.Detected {
		s.recordAudit(conv.ID, reply)
	}

	resp := messageResponse{
		ConversationID: conv.ID,
		Response:       reply.Response,
		Crisis:         reply.Crisis,
		Sentiment:      reply.Sentiment,
		Model:          reply.Model,
		Fallback:       reply.Fallback,
	}
	if reply.Crisis.Detected {
		resp.Resources = crisis.Resources()
	}
	return jsonSuccess(c, resp)
}

type classifyRequest struct {
	Message string `json:"message"`
}

type classifyResponse struct {
	Crisis    model.Classification `json:"crisis"`
	Resources []crisis.Resource    `json:"resources,omitempty"`
}

// postClassify classifies a message without generating a reply or
// persisting anything.
func (s *Server) postClassify(c fiber.Ctx) error {
	var req classifyRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid JSON body")
	}

	cls := s.agent.Detector().Classify(req.Message)
	metrics.RecordClassification(cls.Level)

	resp := classifyResponse{Crisis: cls}
	if cls.Detected {
		resp.Resources = crisis.Resources()
	}
	return jsonSuccess(c, resp)
}

func (s *Server) getUserConversations(c fiber.Ctx) error {
	user, err := s.store.GetUserByUsername(c.Context(), c.Params("username"))
	if errors.Is(err, store.ErrUserNotFound) {
		return jsonError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	convs, err := s.store.UserConversations(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch conversations")
	}
	return jsonSuccess(c, convs)
}

func (s *Server) getConversationMessages(c fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid conversation id")
	}

	limit := 0
	if q := c.Query("limit"); q != "" {
		limit, err = strconv.Atoi(q)
		if err != nil || limit < 0 {
			return jsonError(c, fiber.StatusBadRequest, "invalid limit")
		}
	}

	if _, err := s.store.GetConversation(c.Context(), id); errors.Is(err, store.ErrConversationNotFound) {
		return jsonError(c, fiber.StatusNotFound, "conversation not found")
	} else if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch conversation")
	}

	msgs, err := s.store.Messages(c.Context(), id, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch messages")
	}
	return jsonSuccess(c, msgs)
}

func (s *Server) getResources(c fiber.Ctx) error {
	return jsonSuccess(c, crisis.Resources())
}

func (s *Server) getStrategies(c fiber.Ctx) error {
	issueType := c.Query("type", "general")
	return jsonSuccess(c, fiber.Map{
		"type":       issueType,
		"strategies": agent.CopingStrategies(issueType),
	})
}

// liveness handles /healthz. Returns 200 if the process is running.
func (s *Server) liveness(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// readiness handles /readyz. Returns 200 if the database is reachable.
func (s *Server) readiness(c fiber.Ctx) error {
	if err := s.store.Ping(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  "database unavailable",
		})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) recordAudit(conversationID int64, reply *agent.Reply) {
	if s.audit == nil {
		return
	}
	err := s.audit.Record(audit.Event{
		ConversationID: conversationID,
		Level:          reply.Crisis.Level,
		Keywords:       reply.Crisis.Keywords,
		Confidence:     reply.Crisis.Confidence,
		Model:          reply.Model,
	})
	if err != nil {
		slog.Error("failed to append safety log event", "error", err)
	}
}
