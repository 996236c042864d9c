package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quantpulse/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openAIChatClient interface {
	CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

// OpenAIDirectionScorer asks an LLM for a directional sentiment call on a
// symbol. It is an optional sentiment source used when no upstream sentiment
// endpoint is configured; any failure is reported as an error so the caller
// can degrade to the neutral default.
type OpenAIDirectionScorer struct {
	client openAIChatClient
	model  string
}

// NewOpenAIDirectionScorer returns nil when no API key is configured.
func NewOpenAIDirectionScorer(apiKey string, model string) *OpenAIDirectionScorer {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil
	}
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIDirectionScorer{
		client: &openAIClient{client: client},
		model:  model,
	}
}

// FetchSentiment returns a {direction, confidence} payload for the symbol.
func (s *OpenAIDirectionScorer) FetchSentiment(ctx context.Context, symbol string) (*domain.SentimentPayload, error) {
	if s == nil || s.client == nil {
		return nil, fmt.Errorf("sentiment scorer not configured")
	}

	systemPrompt := "You score near-term news sentiment for NSE stocks. Return ONLY JSON. The object requires: direction (UP|DOWN|NEUTRAL), confidence (0..100). No markdown."
	userPrompt := "Symbol: " + strings.ToUpper(strings.TrimSpace(symbol))

	completion, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("empty sentiment completion")
	}

	raw := trimCodeFence(completion.Choices[0].Message.Content)

	var parsed struct {
		Direction  string  `json:"direction"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("parse sentiment json: %w", err)
	}

	direction := strings.ToUpper(strings.TrimSpace(parsed.Direction))
	switch direction {
	case "UP", "DOWN", "NEUTRAL":
	default:
		return nil, fmt.Errorf("unrecognized sentiment direction %q", parsed.Direction)
	}

	return &domain.SentimentPayload{
		Direction:  direction,
		Confidence: clamp(parsed.Confidence, 0, 100),
	}, nil
}

func trimCodeFence(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "```") {
		v = strings.TrimPrefix(v, "```")
		v = strings.TrimSpace(v)
		if strings.HasPrefix(strings.ToLower(v), "json") {
			v = strings.TrimSpace(v[4:])
		}
		v = strings.TrimSuffix(v, "```")
		v = strings.TrimSpace(v)
	}
	return v
}

type openAIClient struct {
	client openai.Client
}

func (c *openAIClient) CreateChatCompletion(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return c.client.Chat.Completions.New(ctx, params)
}
