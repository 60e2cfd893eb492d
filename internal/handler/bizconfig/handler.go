package bizconfig

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookdesk/booking-api/internal/middleware"
	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/service/bizconfig"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
	"github.com/bookdesk/booking-api/pkg/httputil"
)

type Handler struct {
	service *bizconfig.Service
}

func NewHandler(service *bizconfig.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetConfig(c *gin.Context) {
	cfg, err := h.service.GetConfig(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, cfg)
}

func (h *Handler) UpdateConfig(c *gin.Context) {
	var req model.UpdateBusinessConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	cfg, err := h.service.UpdateConfig(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "configuration updated", cfg)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	cfg := r.Group("/config")
	{
		cfg.GET("", h.GetConfig)
		cfg.PUT("", auth.Authenticate(), auth.RequireRole(model.RoleAdmin), h.UpdateConfig)
	}
}
