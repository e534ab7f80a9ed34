package analysis

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/llm"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/middleware"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the analysis route. The route group should carry
// rate limiting: every call here can become a paid model call.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analises", h.analyze)
}

type analyzeRequest struct {
	FilePath string `json:"filePath"`
}

type analyzeResponse struct {
	Insights string `json:"insights"`
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	insights, err := h.Svc.Analyze(c.Request.Context(), userID, req.FilePath)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "curriculo not found", nil)
		case errors.Is(err, ErrTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "file too large to analyze", nil)
		case errors.Is(err, ErrRetrieval):
			respond.Error(c, http.StatusBadGateway, "retrieval_error", "failed to retrieve curriculo file", nil)
		case errors.Is(err, llm.ErrUpstream):
			respond.Error(c, http.StatusBadGateway, "upstream_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "analysis failed", nil)
		}
		return
	}

	respond.OK(c, analyzeResponse{Insights: insights})
}
