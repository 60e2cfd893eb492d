package payment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookdesk/booking-api/internal/middleware"
	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/service/payment"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
	"github.com/bookdesk/booking-api/pkg/httputil"
)

type Handler struct {
	service *payment.Service
}

func NewHandler(service *payment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateIntent(c *gin.Context) {
	var req model.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid service ID"))
		return
	}

	intent, err := h.service.CreateIntent(c.Request.Context(), serviceID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
		"client_secret":     intent.ClientSecret,
		"payment_intent_id": intent.ID,
		"amount":            intent.Amount,
	})
}

func (h *Handler) ConfirmPayment(c *gin.Context) {
	var req model.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	apt, err := h.service.ConfirmPayment(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "payment confirmed successfully", apt)
}

func (h *Handler) GetAppointmentPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID"))
		return
	}

	apt, err := h.service.GetAppointmentPayment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, gin.H{
		"payment_method": apt.PaymentMethod,
		"payment_status": apt.PaymentStatus,
		"amount":         apt.Amount,
		"paid_at":        apt.PaidAt,
		"service":        apt.Service,
	})
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	payments := r.Group("/payments", auth.Authenticate())
	{
		payments.POST("/create-intent", h.CreateIntent)
		payments.POST("/confirm", h.ConfirmPayment)
		payments.GET("/appointment/:id", h.GetAppointmentPayment)
	}
}
