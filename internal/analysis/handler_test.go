package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/llm"
)

func newTestRouter(f *fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", f.userID)
	})
	NewHandler(f.svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func postAnalise(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analises", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyzeEndpointReturnsInsights(t *testing.T) {
	f := newFixture(t, []byte("%PDF-1.4 test"))
	r := newTestRouter(f)

	w := postAnalise(r, fmt.Sprintf(`{"filePath":%q}`, f.filePath))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Insights string `json:"insights"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Insights == "" {
		t.Fatalf("expected insights in response")
	}
}

func TestAnalyzeEndpointRejectsMissingFilePath(t *testing.T) {
	f := newFixture(t, []byte("%PDF-1.4 test"))
	r := newTestRouter(f)

	w := postAnalise(r, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("validation_error")) {
		t.Fatalf("expected validation_error envelope, got %s", w.Body.String())
	}
}

func TestAnalyzeEndpointUnknownPathIs404(t *testing.T) {
	f := newFixture(t, []byte("%PDF-1.4 test"))
	r := newTestRouter(f)

	w := postAnalise(r, `{"filePath":"user-1/missing.pdf"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
}

func TestAnalyzeEndpointUpstreamFailureIs502(t *testing.T) {
	f := newFixture(t, []byte("%PDF-1.4 test"))
	f.llm.err = fmt.Errorf("%w: status 500: internal", llm.ErrUpstream)
	r := newTestRouter(f)

	w := postAnalise(r, fmt.Sprintf(`{"filePath":%q}`, f.filePath))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status %d, body %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("upstream_error")) {
		t.Fatalf("expected upstream_error envelope, got %s", w.Body.String())
	}
}
