package handler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mid "github.com/Tufan17/timhoty-backend-sub004/internal/middleware"
	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"github.com/Tufan17/timhoty-backend-sub004/internal/queue"
	"github.com/Tufan17/timhoty-backend-sub004/internal/repository"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/logger"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/metrics"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/pagination"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/response"
)

// ReservationHandler serves booking and reservation lifecycle endpoints.
type ReservationHandler struct {
	reservations  *repository.ReservationRepo
	notifications *repository.NotificationRepo
	publisher     *queue.Publisher
	serviceName   string
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(reservations *repository.ReservationRepo, notifications *repository.NotificationRepo, publisher *queue.Publisher, serviceName string) *ReservationHandler {
	return &ReservationHandler{
		reservations:  reservations,
		notifications: notifications,
		publisher:     publisher,
		serviceName:   serviceName,
	}
}

// BookRequest is the booking payload. The discount code is optional and
// only checked here; it is redeemed at confirmation.
type BookRequest struct {
	ServiceType  string `json:"service_type" validate:"required"`
	ServiceID    uint   `json:"service_id" validate:"required"`
	PackageID    uint   `json:"package_id" validate:"required"`
	Date         string `json:"date" validate:"required"`
	DiscountCode string `json:"discount_code,omitempty"`
}

// Book creates a pending reservation for the authenticated user.
func (h *ReservationHandler) Book(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := mid.ClaimsFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "authentication required")
	}

	var req BookRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	serviceType, err := model.ParseServiceType(req.ServiceType)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return response.BadRequest(c, "invalid date")
	}

	reservation, err := h.reservations.Book(c.Request().Context(), repository.BookingInput{
		UserID:       claims.UserID,
		ServiceType:  serviceType,
		ServiceID:    req.ServiceID,
		PackageID:    req.PackageID,
		Date:         date,
		DiscountCode: req.DiscountCode,
	})
	if err != nil {
		return writeRepoError(c, log, err)
	}

	metrics.ReservationCounter.WithLabelValues(h.serviceName, string(serviceType)).Inc()
	log.Info("Reservation created",
		zap.Uint("reservation_id", reservation.ID),
		zap.String("code", reservation.Code),
		zap.Uint("user_id", claims.UserID),
		zap.Float64("amount", reservation.Amount))
	return response.Created(c, "reservation created", reservation)
}

// Confirm transitions a pending reservation to confirmed after payment.
// The attached discount code, if any, is redeemed in the same transaction
// as the status change. Notification and queue fan-out run afterwards;
// their failures are logged, never surfaced.
func (h *ReservationHandler) Confirm(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid reservation ID")
	}

	reservation, err := h.reservations.Confirm(c.Request().Context(), uint(id))
	if err != nil {
		return writeRepoError(c, log, err)
	}

	h.notifyConfirmed(c.Request().Context(), log, reservation)

	log.Info("Reservation confirmed",
		zap.Uint("reservation_id", reservation.ID),
		zap.String("code", reservation.Code))
	return response.OK(c, "reservation confirmed", reservation)
}

func (h *ReservationHandler) notifyConfirmed(ctx context.Context, log *zap.Logger, reservation *model.Reservation) {
	serviceType := reservation.ServiceType
	notification := model.Notification{
		TargetType:  model.NotificationTargetUser,
		TargetID:    reservation.UserID,
		ServiceType: &serviceType,
		Title:       "Reservation confirmed",
		Body:        fmt.Sprintf("Your reservation %s has been confirmed.", reservation.Code),
	}
	if err := h.notifications.Create(ctx, &notification); err != nil {
		log.Error("Failed to create confirmation notification",
			zap.Uint("reservation_id", reservation.ID),
			zap.Error(err))
	} else if err := h.publisher.PublishNotificationCreated(ctx, queue.NotificationCreatedEvent{
		NotificationID: notification.ID,
		TargetType:     notification.TargetType,
		TargetID:       notification.TargetID,
		Title:          notification.Title,
		Body:           notification.Body,
		CreatedAt:      notification.CreatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		log.Warn("Failed to publish notification event", zap.Error(err))
	}

	if err := h.publisher.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
		ReservationID:   reservation.ID,
		ReservationCode: reservation.Code,
		UserID:          reservation.UserID,
		ServiceType:     string(reservation.ServiceType),
		ServiceID:       reservation.ServiceID,
		PackageID:       reservation.PackageID,
		Amount:          reservation.Amount,
		CurrencyID:      reservation.CurrencyID,
		Date:            reservation.Date.Format(DateLayout),
		ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		log.Warn("Failed to publish reservation event", zap.Error(err))
	}
}

// Cancel transitions one of the caller's pending reservations to
// cancelled.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := mid.ClaimsFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "authentication required")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid reservation ID")
	}

	if err := h.reservations.Cancel(c.Request().Context(), uint(id), claims.UserID); err != nil {
		return writeRepoError(c, log, err)
	}

	log.Info("Reservation cancelled",
		zap.Uint64("reservation_id", id),
		zap.Uint("user_id", claims.UserID))
	return response.OK(c, "reservation cancelled", nil)
}

// Get returns one of the caller's reservations.
func (h *ReservationHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := mid.ClaimsFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "authentication required")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid reservation ID")
	}

	reservation, err := h.reservations.GetByID(c.Request().Context(), uint(id), claims.UserID)
	if err != nil {
		return writeRepoError(c, log, err)
	}

	return response.OK(c, "reservation retrieved", reservation)
}

// List returns a page of the caller's reservations.
func (h *ReservationHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	params := pagination.Parse(c)

	claims, ok := mid.ClaimsFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "authentication required")
	}

	reservations, total, err := h.reservations.ListForUser(c.Request().Context(), claims.UserID, params.Offset(), params.Limit)
	if err != nil {
		log.Error("Failed to list reservations",
			zap.Uint("user_id", claims.UserID),
			zap.Error(err))
		return response.Internal(c)
	}

	return response.OK(c, "reservations retrieved", response.Page{
		Data:                  reservations,
		Total:                 total,
		TotalPages:            params.TotalPages(total),
		CurrentPage:           params.Page,
		Limit:                 params.Limit,
		RecordsPerPageOptions: pagination.RecordsPerPageOptions,
	})
}
