package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/llm"
)

func newServerClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, "test-key", "google/gemini-2.5-flash")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func okResponse(content string) []byte {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	})
	return body
}

func TestGenerateInsightsSendsPDFAsDataURL(t *testing.T) {
	var captured chatRequest
	var gotAuth string

	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write(okResponse("• insight"))
	})

	out, err := client.GenerateInsights(context.Background(), llm.InsightsInput{
		PDFBase64:      "QUJD",
		ProfileContext: "Informações do usuário:\n- Nome: Maria\n",
	})
	if err != nil {
		t.Fatalf("GenerateInsights: %v", err)
	}
	if out != "• insight" {
		t.Fatalf("unexpected output %q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if captured.Model != "google/gemini-2.5-flash" {
		t.Fatalf("unexpected model %q", captured.Model)
	}

	if len(captured.Messages) != 1 || len(captured.Messages[0].Content) != 2 {
		t.Fatalf("expected one message with prompt and document parts, got %+v", captured.Messages)
	}
	prompt := captured.Messages[0].Content[0]
	if prompt.Type != "text" || !strings.Contains(prompt.Text, "Maria") {
		t.Fatalf("prompt part must embed the profile context, got %+v", prompt)
	}
	doc := captured.Messages[0].Content[1]
	if doc.Type != "image_url" || doc.ImageURL == nil || doc.ImageURL.URL != "data:application/pdf;base64,QUJD" {
		t.Fatalf("document part malformed: %+v", doc)
	}
}

func TestGenerateInsightsSendsTranscriptAsText(t *testing.T) {
	var captured chatRequest
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write(okResponse("ok"))
	})

	if _, err := client.GenerateInsights(context.Background(), llm.InsightsInput{Transcript: "experiência com solda"}); err != nil {
		t.Fatalf("GenerateInsights: %v", err)
	}

	doc := captured.Messages[0].Content[1]
	if doc.Type != "text" || !strings.Contains(doc.Text, "experiência com solda") {
		t.Fatalf("transcript part malformed: %+v", doc)
	}
}

func TestGenerateInsightsTruncatesUpstreamErrors(t *testing.T) {
	long := strings.Repeat("x", 1000)
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(long))
	})

	_, err := client.GenerateInsights(context.Background(), llm.InsightsInput{PDFBase64: "QUJD"})
	if !errors.Is(err, llm.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if strings.Contains(err.Error(), long) {
		t.Fatalf("error must carry a truncated excerpt, not the full body")
	}
	if !strings.Contains(err.Error(), strings.Repeat("x", upstreamErrorExcerptLen)) {
		t.Fatalf("excerpt missing from error: %v", err)
	}
}

func TestGenerateInsightsEmptyChoices(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	})

	if _, err := client.GenerateInsights(context.Background(), llm.InsightsInput{PDFBase64: "QUJD"}); !errors.Is(err, llm.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestGenerateInsightsRejectsEmptyInput(t *testing.T) {
	client := newServerClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("no request should be sent for empty input")
	})

	if _, err := client.GenerateInsights(context.Background(), llm.InsightsInput{}); err == nil {
		t.Fatalf("expected an error for empty input")
	}
}
