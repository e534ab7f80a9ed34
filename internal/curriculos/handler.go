package curriculos

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/middleware"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the curriculos service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches authenticated résumé routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/curriculos", h.submit)
	rg.GET("/curriculos", h.current)
	rg.GET("/curriculos/download", h.download)
	rg.DELETE("/curriculos", h.remove)
}

func (h *Handler) submit(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file form field is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "failed to read file", nil)
		return
	}
	defer file.Close()

	curriculo, err := h.Svc.Submit(c.Request.Context(), userID, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooLarge):
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large",
				fmt.Sprintf("file exceeds the %d MB limit", h.Svc.MaxBytes>>20), nil)
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store curriculo", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, curriculo)
}

func (h *Handler) current(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	curriculo, err := h.Svc.Current(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no curriculo submitted", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch curriculo", nil)
		}
		return
	}

	respond.OK(c, curriculo)
}

func (h *Handler) download(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	curriculo, rc, err := h.Svc.Download(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "no curriculo submitted", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch curriculo", nil)
		}
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", curriculo.FileName))
	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	io.Copy(c.Writer, rc)
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Remove(c.Request.Context(), userID); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to remove curriculo", nil)
		return
	}

	c.Status(http.StatusNoContent)
}
