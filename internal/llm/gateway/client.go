package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/llm"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/telemetry"
)

const upstreamErrorExcerptLen = 200

// Client implements llm.Client against an OpenAI-compatible chat-completions
// gateway.
type Client struct {
	url        string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a gateway client.
func NewClient(url, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, fmt.Errorf("AI_GATEWAY_URL is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("AI_GATEWAY_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("AI_MODEL is required")
	}
	return &Client{
		url:    url,
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// GenerateInsights sends the document and profile context to the gateway and
// returns the generated text. Upstream failures wrap llm.ErrUpstream; the
// full body is logged, the caller only sees a truncated excerpt.
func (c *Client) GenerateInsights(ctx context.Context, input llm.InsightsInput) (string, error) {
	parts := []contentPart{
		{Type: "text", Text: llm.InsightsPrompt(input.ProfileContext)},
	}
	switch {
	case input.PDFBase64 != "":
		parts = append(parts, contentPart{
			Type:     "image_url",
			ImageURL: &imageURL{URL: "data:application/pdf;base64," + input.PDFBase64},
		})
	case input.Transcript != "":
		parts = append(parts, contentPart{
			Type: "text",
			Text: "Conteúdo do currículo:\n\n" + input.Transcript,
		})
	default:
		return "", fmt.Errorf("insights input is empty")
	}

	payload, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: parts}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai gateway request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("ai gateway read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		telemetry.Error("llm.upstream_error", map[string]any{
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return "", fmt.Errorf("ai gateway status %d: %s: %w", resp.StatusCode, excerpt(body), llm.ErrUpstream)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("ai gateway response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("ai gateway error: %s (%s): %w", parsed.Error.Message, parsed.Error.Type, llm.ErrUpstream)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ai gateway response missing choices: %w", llm.ErrUpstream)
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("ai gateway response empty content: %w", llm.ErrUpstream)
	}
	return content, nil
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > upstreamErrorExcerptLen {
		s = s[:upstreamErrorExcerptLen]
	}
	return s
}

var _ llm.Client = (*Client)(nil)
