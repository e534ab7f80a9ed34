package trilhas

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/middleware"
	"github.com/gabrielqoliveiraa/facilita-pecem-hub/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the trilhas service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches read-only routes for active tracks.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/trilhas", h.listActive)
	rg.GET("/trilhas/:id", h.get)
}

// RegisterRoutes attaches authenticated enrollment routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/trilhas/:id/inscricoes", h.enroll)
	rg.GET("/inscricoes", h.enrollments)
	rg.PUT("/trilhas/:id/progresso", h.setProgresso)
}

// RegisterAdminRoutes attaches management routes.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/trilhas", h.listAll)
	rg.POST("/trilhas", h.create)
	rg.PUT("/trilhas/:id", h.update)
	rg.DELETE("/trilhas/:id", h.remove)
}

func (h *Handler) listActive(c *gin.Context) {
	items, err := h.Svc.ListActive(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list trilhas", nil)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) listAll(c *gin.Context) {
	items, err := h.Svc.ListAll(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list trilhas", nil)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	trilha, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "trilha not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch trilha", nil)
		}
		return
	}
	if !trilha.Ativa {
		respond.Error(c, http.StatusNotFound, "not_found", "trilha not found", nil)
		return
	}
	respond.OK(c, trilha)
}

func (h *Handler) create(c *gin.Context) {
	var req Trilha
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.ID = uuid.NewString()

	trilha, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create trilha", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, trilha)
}

func (h *Handler) update(c *gin.Context) {
	var req Trilha
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	req.ID = c.Param("id")

	trilha, err := h.Svc.Update(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "trilha not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update trilha", nil)
		}
		return
	}
	respond.OK(c, trilha)
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "trilha not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete trilha", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) enroll(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	inscricao, err := h.Svc.Enroll(c.Request.Context(), userID, c.Param("id"), Inscricao{ID: uuid.NewString()})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "trilha not found", nil)
		case errors.Is(err, ErrAlreadyEnrolled):
			respond.Error(c, http.StatusConflict, "already_enrolled", "already enrolled in this trilha", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to enroll", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, inscricao)
}

func (h *Handler) enrollments(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	items, err := h.Svc.Enrollments(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list inscricoes", nil)
		return
	}
	respond.OK(c, items)
}

type progressoRequest struct {
	Progresso int `json:"progresso"`
}

func (h *Handler) setProgresso(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req progressoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	if err := h.Svc.SetProgresso(c.Request.Context(), userID, c.Param("id"), req.Progresso); err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, ErrNotEnrolled):
			respond.Error(c, http.StatusNotFound, "not_found", "not enrolled in this trilha", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update progresso", nil)
		}
		return
	}
	c.Status(http.StatusNoContent)
}
