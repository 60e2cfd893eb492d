package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookdesk/booking-api/internal/middleware"
	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/service/report"
	"github.com/bookdesk/booking-api/pkg/httputil"
)

type Handler struct {
	service *report.Service
}

func NewHandler(service *report.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) WeeklyReport(c *gin.Context) {
	rep, err := h.service.WeeklyReport(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, rep)
}

func (h *Handler) MonthlyReport(c *gin.Context) {
	rep, err := h.service.MonthlyReport(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, rep)
}

func (h *Handler) CustomReport(c *gin.Context) {
	rep, err := h.service.CustomReport(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, rep)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	reports := r.Group("/reports", auth.Authenticate(), auth.RequireRole(model.RoleAdmin))
	{
		reports.GET("/weekly", h.WeeklyReport)
		reports.GET("/monthly", h.MonthlyReport)
		reports.GET("/custom", h.CustomReport)
	}
}
