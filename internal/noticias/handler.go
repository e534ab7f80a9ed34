package noticias

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the noticias service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches read-only routes for published news.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/noticias", h.listPublished)
	rg.GET("/noticias/:id", h.get)
}

// RegisterAdminRoutes attaches management routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/noticias", h.listAll)
	rg.POST("/noticias", h.create)
	rg.PUT("/noticias/:id", h.update)
	rg.DELETE("/noticias/:id", h.remove)
}

func (h *Handler) listPublished(c *gin.Context) {
	items, err := h.Svc.ListPublished(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list noticias", nil)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list noticias", nil)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	noticia, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "noticia not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch noticia", nil)
		}
		return
	}
	if !noticia.Publicada {
		respond.Error(c, http.StatusNotFound, "not_found", "noticia not found", nil)
		return
	}
	respond.OK(c, noticia)
}

func (h *Handler) create(c *gin.Context) {
	var req Noticia
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.ID = uuid.NewString()

	noticia, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create noticia", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, noticia)
}

func (h *Handler) update(c *gin.Context) {
	var req Noticia
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.ID = c.Param("id")

	noticia, err := h.Svc.Update(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "noticia not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update noticia", nil)
		}
		return
	}
	respond.OK(c, noticia)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "noticia not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete noticia", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
