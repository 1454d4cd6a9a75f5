// Package ai wraps an OpenAI-compatible chat-completion API for prompt enhancement.
// Each call is a single attempt; failures are returned to the caller as
// models.ErrExternalService.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"praia-backend/internal/models"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	OperationEnhance   = "enhance"
	OperationFramework = "framework"

	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"
	DefaultModel   = "gemini-2.0-flash"
)

// Style selects how thoroughly Enhance rewrites a prompt.
type Style string

const (
	StyleBasic  Style = "BASIC"
	StyleDetail Style = "DETAIL"
)

// ParseStyle accepts BASIC and DETAIL in any case. DETAIL parses but is not served.
func ParseStyle(raw string) (Style, error) {
	switch s := Style(strings.ToUpper(strings.TrimSpace(raw))); s {
	case StyleBasic, StyleDetail:
		return s, nil
	case "":
		return StyleBasic, nil
	default:
		return "", fmt.Errorf("%w: unknown style %q", models.ErrValidation, raw)
	}
}

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Gateway calls the provider. A Gateway without an API key stays usable but every call
// fails with models.ErrExternalService before reaching the network.
type Gateway struct {
	client *openai.Client
	model  string
	log    *zap.Logger
}

// New builds a Gateway. httpClient carries the timeout and request logging.
func New(cfg Config, httpClient *http.Client, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	g := &Gateway{model: cfg.Model, log: log}
	if g.model == "" {
		g.model = DefaultModel
	}
	if cfg.APIKey == "" {
		log.Warn("AI_API_KEY is not set; AI enhancement is disabled")
		return g
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	if clientCfg.BaseURL == "" {
		clientCfg.BaseURL = DefaultBaseURL
	}
	if httpClient != nil {
		clientCfg.HTTPClient = httpClient
	}
	g.client = openai.NewClientWithConfig(clientCfg)
	log.Info("AI gateway configured", zap.String("base_url", clientCfg.BaseURL), zap.String("model", g.model))
	return g
}

// Configured reports whether an API key was supplied.
func (g *Gateway) Configured() bool {
	return g.client != nil
}

const enhanceTemplate = `You are an expert prompt engineer. Improve the prompt between the triple quotes so it gets better results from %s.
Keep the author's intent and language. Make it clear, specific and well structured.
Return only the improved prompt text, without any preamble, explanation or surrounding quotes.

"""
%s
"""`

const frameworkTemplate = `You are an expert prompt engineer. Restructure the prompt between the triple quotes using the %s (%s) framework.
%s
Keep the author's intent and language.
Return only the restructured prompt text, without any preamble, explanation or surrounding quotes.

"""
%s
"""`

// Enhance rewrites promptText for targetModel. Only StyleBasic is implemented; StyleDetail
// fails with models.ErrUnsupportedMode without any network call.
func (g *Gateway) Enhance(ctx context.Context, promptText, targetModel string, style Style) (string, error) {
	switch style {
	case StyleBasic:
	case StyleDetail:
		aiRequestsTotal.WithLabelValues(OperationEnhance, "unsupported").Inc()
		return "", fmt.Errorf("%w: style %s is not available yet", models.ErrUnsupportedMode, style)
	default:
		aiRequestsTotal.WithLabelValues(OperationEnhance, "invalid").Inc()
		return "", fmt.Errorf("%w: unknown style %q", models.ErrValidation, style)
	}
	text := strings.TrimSpace(promptText)
	if text == "" {
		aiRequestsTotal.WithLabelValues(OperationEnhance, "invalid").Inc()
		return "", fmt.Errorf("%w: prompt text is required", models.ErrValidation)
	}
	target := strings.TrimSpace(targetModel)
	if target == "" {
		target = "a large language model"
	}
	return g.complete(ctx, OperationEnhance, fmt.Sprintf(enhanceTemplate, target, text))
}

// ApplyFramework restructures promptText with the named framework. Unknown keys fail with
// models.ErrValidation without any network call.
func (g *Gateway) ApplyFramework(ctx context.Context, promptText, frameworkKey string) (string, error) {
	spec, err := models.ParseFramework(strings.TrimSpace(frameworkKey))
	if err != nil {
		aiRequestsTotal.WithLabelValues(OperationFramework, "invalid").Inc()
		return "", err
	}
	text := strings.TrimSpace(promptText)
	if text == "" {
		aiRequestsTotal.WithLabelValues(OperationFramework, "invalid").Inc()
		return "", fmt.Errorf("%w: prompt text is required", models.ErrValidation)
	}
	return g.complete(ctx, OperationFramework, fmt.Sprintf(frameworkTemplate, spec.Key, spec.Name, spec.Instruction, text))
}

func (g *Gateway) complete(ctx context.Context, operation, content string) (string, error) {
	if g.client == nil {
		aiRequestsTotal.WithLabelValues(operation, "not_configured").Inc()
		return "", fmt.Errorf("%w: AI provider is not configured", models.ErrExternalService)
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
	})
	duration := time.Since(start)
	aiRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())

	if err != nil {
		aiRequestsTotal.WithLabelValues(operation, "error").Inc()
		g.log.Warn("AI provider call failed",
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w: %w", models.ErrExternalService, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		aiRequestsTotal.WithLabelValues(operation, "error_empty_response").Inc()
		g.log.Warn("AI provider returned an empty response", zap.String("operation", operation))
		return "", fmt.Errorf("%w: empty response from AI provider", models.ErrExternalService)
	}

	aiRequestsTotal.WithLabelValues(operation, "success").Inc()
	aiCompletionTokens.WithLabelValues(operation).Observe(float64(resp.Usage.CompletionTokens))
	g.log.Info("AI provider call succeeded",
		zap.String("operation", operation),
		zap.Duration("duration", duration),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
