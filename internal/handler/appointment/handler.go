package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookdesk/booking-api/internal/middleware"
	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/service/appointment"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
	"github.com/bookdesk/booking-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("invalid caller identity", nil))
		return
	}

	apt, err := h.service.CreateAppointment(c.Request.Context(), caller, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusCreated, "appointment created successfully", apt)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID"))
		return
	}

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("invalid caller identity", nil))
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), caller, id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("invalid caller identity", nil))
		return
	}

	var status *model.AppointmentStatus
	if raw := c.Query("status"); raw != "" {
		s := model.AppointmentStatus(raw)
		if !s.Valid() {
			httputil.RespondWithError(c, apperrors.Validation("invalid appointment status"))
			return
		}
		status = &s
	}

	appointments, err := h.service.ListAppointments(c.Request.Context(), caller, status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, appointments)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID"))
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("invalid caller identity", nil))
		return
	}

	apt, err := h.service.UpdateAppointment(c.Request.Context(), caller, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "appointment updated successfully", apt)
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID"))
		return
	}

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("invalid caller identity", nil))
		return
	}

	if _, err := h.service.CancelAppointment(c.Request.Context(), caller, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "appointment cancelled successfully", nil)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	appointments := r.Group("/appointments", auth.Authenticate())
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.CancelAppointment)
	}
}
