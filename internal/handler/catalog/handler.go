package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookdesk/booking-api/internal/middleware"
	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/service/catalog"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
	"github.com/bookdesk/booking-api/pkg/httputil"
)

type Handler struct {
	service *catalog.Service
}

func NewHandler(service *catalog.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, services)
}

func (h *Handler) GetService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid service ID"))
		return
	}

	svc, err := h.service.GetService(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, svc)
}

func (h *Handler) CreateService(c *gin.Context) {
	var req model.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusCreated, "service created successfully", svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid service ID"))
		return
	}

	var req model.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "service updated successfully", svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid service ID"))
		return
	}

	if err := h.service.DeleteService(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "service deleted successfully", nil)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	services := r.Group("/services")
	{
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetService)
	}

	admin := services.Group("", auth.Authenticate(), auth.RequireRole(model.RoleAdmin))
	{
		admin.POST("", h.CreateService)
		admin.PUT("/:id", h.UpdateService)
		admin.DELETE("/:id", h.DeleteService)
	}
}
