package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"praia-backend/internal/models"
	"praia-backend/internal/utils"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	calls   atomic.Int32
	reply   string
	status  int
	lastReq openai.ChatCompletionRequest
}

func (f *fakeProvider) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&f.lastReq))

		w.Header().Set("Content-Type", "application/json")
		if f.status != 0 {
			w.WriteHeader(f.status)
			_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-1",
			Object: "chat.completion",
			Model:  "test-model",
			Choices: []openai.ChatCompletionChoice{{
				Index:        0,
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: f.reply},
				FinishReason: openai.FinishReasonStop,
			}},
			Usage: openai.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		})
	}
}

func newGateway(t *testing.T, provider *fakeProvider) *Gateway {
	server := httptest.NewServer(provider.handler(t))
	t.Cleanup(server.Close)
	return New(Config{APIKey: "test-key", BaseURL: server.URL, Model: "test-model"},
		utils.NewHTTPClient(5*time.Second, zap.NewNop()), zap.NewNop())
}

func TestEnhanceBasic(t *testing.T) {
	provider := &fakeProvider{reply: "\n  Act as a senior Go reviewer.  \n"}
	g := newGateway(t, provider)

	out, err := g.Enhance(context.Background(), "review my code", "Gemini", StyleBasic)
	require.NoError(t, err)
	assert.Equal(t, "Act as a senior Go reviewer.", out)
	assert.EqualValues(t, 1, provider.calls.Load())

	require.Len(t, provider.lastReq.Messages, 1)
	msg := provider.lastReq.Messages[0]
	assert.Equal(t, openai.ChatMessageRoleUser, msg.Role)
	assert.Contains(t, msg.Content, "\"\"\"\nreview my code\n\"\"\"")
	assert.Contains(t, msg.Content, "Gemini")
	assert.Equal(t, "test-model", provider.lastReq.Model)
}

func TestEnhanceDetailIsUnsupported(t *testing.T) {
	provider := &fakeProvider{reply: "unused"}
	g := newGateway(t, provider)

	_, err := g.Enhance(context.Background(), "review my code", "", StyleDetail)
	assert.ErrorIs(t, err, models.ErrUnsupportedMode)
	assert.Zero(t, provider.calls.Load())
}

func TestEnhanceRejectsBadInput(t *testing.T) {
	provider := &fakeProvider{reply: "unused"}
	g := newGateway(t, provider)

	_, err := g.Enhance(context.Background(), "text", "", Style("LOUD"))
	assert.ErrorIs(t, err, models.ErrValidation)
	_, err = g.Enhance(context.Background(), "   ", "", StyleBasic)
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Zero(t, provider.calls.Load())
}

func TestApplyFramework(t *testing.T) {
	provider := &fakeProvider{reply: "Role: teacher\nTask: explain\nFormat: list"}
	g := newGateway(t, provider)

	out, err := g.ApplyFramework(context.Background(), "explain recursion", "R-T-F")
	require.NoError(t, err)
	assert.Equal(t, "Role: teacher\nTask: explain\nFormat: list", out)
	assert.EqualValues(t, 1, provider.calls.Load())
	assert.True(t, strings.Contains(provider.lastReq.Messages[0].Content, "Role, Task, Format"))
}

func TestApplyFrameworkUnknownKeyMakesNoCall(t *testing.T) {
	provider := &fakeProvider{reply: "unused"}
	g := newGateway(t, provider)

	_, err := g.ApplyFramework(context.Background(), "explain recursion", "BOGUS")
	assert.ErrorIs(t, err, models.ErrValidation)
	assert.Zero(t, provider.calls.Load())
}

func TestProviderFailures(t *testing.T) {
	tests := []struct {
		name     string
		provider *fakeProvider
	}{
		{name: "http error", provider: &fakeProvider{status: http.StatusTooManyRequests}},
		{name: "empty reply", provider: &fakeProvider{reply: "   "}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGateway(t, tt.provider)
			_, err := g.Enhance(context.Background(), "text", "", StyleBasic)
			assert.ErrorIs(t, err, models.ErrExternalService)
			assert.EqualValues(t, 1, tt.provider.calls.Load())
		})
	}
}

func TestUnconfiguredGateway(t *testing.T) {
	g := New(Config{}, nil, zap.NewNop())
	assert.False(t, g.Configured())

	_, err := g.Enhance(context.Background(), "text", "", StyleBasic)
	assert.ErrorIs(t, err, models.ErrExternalService)
	_, err = g.ApplyFramework(context.Background(), "text", "T-A-G")
	assert.ErrorIs(t, err, models.ErrExternalService)

	_, err = g.ApplyFramework(context.Background(), "text", "BOGUS")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("basic")
	require.NoError(t, err)
	assert.Equal(t, StyleBasic, s)

	s, err = ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleBasic, s)

	s, err = ParseStyle("DETAIL")
	require.NoError(t, err)
	assert.Equal(t, StyleDetail, s)

	_, err = ParseStyle("fancy")
	assert.ErrorIs(t, err, models.ErrValidation)
}
