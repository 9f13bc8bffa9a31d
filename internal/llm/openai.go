package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/quietharbor/quietharbor/internal/config"
	"github.com/quietharbor/quietharbor/internal/model"
)

// OpenAI is a Completer backed by the OpenAI Responses API.
type OpenAI struct {
	client      *openai.Client
	model       string
	temperature float64
	maxTokens   int
}

// NewOpenAI builds a client from configuration. The API key is required;
// base URL is optional and supports OpenAI-compatible endpoints.
func NewOpenAI(cfg *config.Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("llm: OPENAI_API_KEY is not set")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAI{
		client:      &client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// Complete sends the turn history and returns the assistant's reply text.
func (o *OpenAI) Complete(ctx context.Context, instructions string, turns []model.Turn) (string, error) {
	input := make([]responses.ResponseInputItemUnionParam, 0, len(turns))
	for _, t := range turns {
		role, err := inputRole(t.Role)
		if err != nil {
			return "", err
		}
		input = append(input, responses.ResponseInputItemParamOfMessage(t.Content, role))
	}

	params := responses.ResponseNewParams{
		Model:           o.model,
		Temperature:     openai.Float(o.temperature),
		MaxOutputTokens: openai.Int(int64(o.maxTokens)),
		Instructions:    openai.String(instructions),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: input,
		},
	}

	resp, err := callWithRetry(ctx, o.client, params)
	if err != nil {
		return "", fmt.Errorf("llm: completion: %w", err)
	}

	text := strings.TrimSpace(resp.OutputText())
	if text == "" {
		return "", errors.New("llm: empty completion")
	}
	return text, nil
}

func inputRole(role model.Role) (responses.EasyInputMessageRole, error) {
	switch role {
	case model.RoleUser:
		return responses.EasyInputMessageRoleUser, nil
	case model.RoleAssistant:
		return responses.EasyInputMessageRoleAssistant, nil
	case model.RoleSystem:
		return responses.EasyInputMessageRoleSystem, nil
	}
	return "", fmt.Errorf("llm: unknown role %q", role)
}

func callWithRetry(ctx context.Context, client *openai.Client, params responses.ResponseNewParams) (*responses.Response, error) {
	const maxRetries = 3
	rateLimitWaitTimes := []time.Duration{2 * time.Second, 5 * time.Second, 10 * time.Second}
	serverErrorWaitTimes := []time.Duration{1 * time.Second, 3 * time.Second, 6 * time.Second}

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := client.Responses.New(ctx, params)
		if err != nil {
			if isRateLimitError(err) {
				if attempt < maxRetries-1 {
					if serr := sleepCtx(ctx, rateLimitWaitTimes[attempt]); serr != nil {
						return nil, serr
					}
					continue
				}
			} else if isServerError(err) {
				if attempt < maxRetries-1 {
					if serr := sleepCtx(ctx, serverErrorWaitTimes[attempt]); serr != nil {
						return nil, serr
					}
					continue
				}
			}
			return nil, err
		}
		return resp, nil
	}
	return nil, fmt.Errorf("failed after %d attempts due to OpenAI API issues", maxRetries)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}
