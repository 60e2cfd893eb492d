package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookdesk/booking-api/internal/middleware"
	"github.com/bookdesk/booking-api/internal/model"
	"github.com/bookdesk/booking-api/internal/service/user"
	apperrors "github.com/bookdesk/booking-api/pkg/errors"
	"github.com/bookdesk/booking-api/pkg/httputil"
)

type Handler struct {
	service *user.Service
}

func NewHandler(service *user.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListApprovedStaff(c *gin.Context) {
	staff, err := h.service.ListApprovedStaff(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, staff)
}

func (h *Handler) ListPendingStaff(c *gin.Context) {
	staff, err := h.service.ListPendingStaff(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, staff)
}

func (h *Handler) ListAllStaff(c *gin.Context) {
	staff, err := h.service.ListAllStaff(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, staff)
}

func (h *Handler) ApproveStaff(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid user ID"))
		return
	}

	var req model.ApproveStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("specialization is required for approval"))
		return
	}

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("invalid caller identity", nil))
		return
	}

	approved, err := h.service.ApproveStaff(c.Request.Context(), caller.ID, staffID, req.Specialization)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "staff member approved successfully", approved)
}

func (h *Handler) RejectStaff(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid user ID"))
		return
	}

	if err := h.service.RejectStaff(c.Request.Context(), staffID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "staff member rejected and removed", nil)
}

func (h *Handler) UpdateSpecialization(c *gin.Context) {
	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid user ID"))
		return
	}

	var req model.ApproveStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("specialization is required"))
		return
	}

	updated, err := h.service.UpdateSpecialization(c.Request.Context(), staffID, req.Specialization)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "specialization updated successfully", updated)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid user ID"))
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid user ID"))
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error()))
		return
	}

	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized("invalid caller identity", nil))
		return
	}

	updated, err := h.service.UpdateUser(c.Request.Context(), caller, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, http.StatusOK, "user updated successfully", updated)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	users := r.Group("/users")

	// Approved staff listing is public so the booking flow can render it.
	users.GET("/staff", h.ListApprovedStaff)

	authed := users.Group("", auth.Authenticate())
	{
		authed.GET("/:id", h.GetUser)
		authed.PUT("/:id", h.UpdateUser)
	}

	admin := users.Group("", auth.Authenticate(), auth.RequireRole(model.RoleAdmin))
	{
		admin.GET("", h.ListUsers)
		admin.GET("/staff/pending", h.ListPendingStaff)
		admin.GET("/staff/all", h.ListAllStaff)
		admin.PUT("/staff/:id/approve", h.ApproveStaff)
		admin.PUT("/staff/:id/reject", h.RejectStaff)
		admin.PUT("/staff/:id/specialization", h.UpdateSpecialization)
	}
}
