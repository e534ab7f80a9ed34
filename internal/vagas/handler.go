package vagas

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/middleware"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the vagas service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches read-only routes for active openings.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/vagas", h.listActive)
	rg.GET("/vagas/:id", h.get)
}

// RegisterRoutes attaches authenticated application routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/vagas/:id/candidaturas", h.apply)
	rg.GET("/candidaturas", h.applications)
}

// RegisterAdminRoutes attaches management routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/vagas", h.listAll)
	rg.POST("/vagas", h.create)
	rg.PUT("/vagas/:id", h.update)
	rg.DELETE("/vagas/:id", h.remove)
}

func (h *Handler) listActive(c *gin.Context) {
	items, err := h.Svc.ListActive(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list vagas", nil)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list vagas", nil)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	vaga, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "vaga not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch vaga", nil)
		}
		return
	}
	if !vaga.Ativa {
		respond.Error(c, http.StatusNotFound, "not_found", "vaga not found", nil)
		return
	}
	respond.OK(c, vaga)
}

func (h *Handler) create(c *gin.Context) {
	var req Vaga
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.ID = uuid.NewString()

	vaga, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create vaga", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, vaga)
}

func (h *Handler) update(c *gin.Context) {
	var req Vaga
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.ID = c.Param("id")

	vaga, err := h.Svc.Update(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "vaga not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update vaga", nil)
		}
		return
	}
	respond.OK(c, vaga)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "vaga not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete vaga", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) apply(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	candidatura, err := h.Svc.Apply(c.Request.Context(), userID, c.Param("id"), Candidatura{ID: uuid.NewString()})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "vaga not found", nil)
		case errors.Is(err, ErrAlreadyApplied):
			respond.Error(c, http.StatusConflict, "already_applied", "already applied to this vaga", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to apply", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, candidatura)
}

func (h *Handler) applications(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Svc.Applications(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list candidaturas", nil)
		return
	}
	respond.OK(c, items)
}
