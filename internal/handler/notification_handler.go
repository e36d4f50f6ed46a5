package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mid "github.com/Tufan17/timhoty-backend-sub004/internal/middleware"
	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"github.com/Tufan17/timhoty-backend-sub004/internal/repository"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/jwtutil"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/logger"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/pagination"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/response"
)

// NotificationHandler serves the in-app notification endpoints.
type NotificationHandler struct {
	notifications *repository.NotificationRepo
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(notifications *repository.NotificationRepo) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// notificationTarget maps the caller's role onto a notification recipient.
func notificationTarget(claims *jwtutil.UserClaims) (string, uint) {
	switch claims.Role {
	case jwtutil.RoleSolutionPartner:
		if claims.PartnerID != nil {
			return model.NotificationTargetSolutionPartner, *claims.PartnerID
		}
	case jwtutil.RoleSalesPartner:
		if claims.PartnerID != nil {
			return model.NotificationTargetSalesPartner, *claims.PartnerID
		}
	case jwtutil.RoleAdmin:
		return model.NotificationTargetAdmin, claims.UserID
	}
	return model.NotificationTargetUser, claims.UserID
}

// List returns a page of the caller's notifications.
func (h *NotificationHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	params := pagination.Parse(c)

	claims, ok := mid.ClaimsFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "authentication required")
	}
	targetType, targetID := notificationTarget(claims)

	notifications, total, err := h.notifications.ListForTarget(c.Request().Context(), targetType, targetID, params.Offset(), params.Limit)
	if err != nil {
		log.Error("Failed to list notifications",
			zap.String("target_type", targetType),
			zap.Uint("target_id", targetID),
			zap.Error(err))
		return response.Internal(c)
	}

	return response.OK(c, "notifications retrieved", response.Page{
		Data:                  notifications,
		Total:                 total,
		TotalPages:            params.TotalPages(total),
		CurrentPage:           params.Page,
		Limit:                 params.Limit,
		RecordsPerPageOptions: pagination.RecordsPerPageOptions,
	})
}

// MarkRead stamps one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := mid.ClaimsFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "authentication required")
	}
	targetType, targetID := notificationTarget(claims)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid notification ID")
	}

	if err := h.notifications.MarkRead(c.Request().Context(), uint(id), targetType, targetID); err != nil {
		return writeRepoError(c, log, err)
	}

	return response.OK(c, "notification marked read", nil)
}
