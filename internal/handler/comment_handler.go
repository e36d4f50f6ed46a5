package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	mid "github.com/Tufan17/timhoty-backend-sub004/internal/middleware"
	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"github.com/Tufan17/timhoty-backend-sub004/internal/repository"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/logger"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/pagination"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/response"
)

// CommentHandler serves comment creation and listing.
type CommentHandler struct {
	comments *repository.CommentRepo
}

// NewCommentHandler constructs a CommentHandler.
func NewCommentHandler(comments *repository.CommentRepo) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// CommentRequest is the comment creation payload. One comment per
// reservation per service per user.
type CommentRequest struct {
	ServiceType   string `json:"service_type" validate:"required"`
	ServiceID     uint   `json:"service_id" validate:"required"`
	ReservationID uint   `json:"reservation_id" validate:"required"`
	Comment       string `json:"comment"`
	Rating        int    `json:"rating" validate:"required,min=1,max=5"`
	LanguageCode  string `json:"language_code" validate:"omitempty,len=2"`
}

// Create inserts a comment and refreshes the service's rating aggregate.
func (h *CommentHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := mid.ClaimsFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "authentication required")
	}

	var req CommentRequest
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

	comment := model.Comment{
		ServiceType:   serviceType,
		ServiceID:     req.ServiceID,
		UserID:        claims.UserID,
		ReservationID: req.ReservationID,
		Comment:       req.Comment,
		Rating:        req.Rating,
		LanguageCode:  req.LanguageCode,
	}

	if err := h.comments.Create(c.Request().Context(), &comment); err != nil {
		return writeRepoError(c, log, err)
	}

	log.Info("Comment created",
		zap.Uint("service_id", comment.ServiceID),
		zap.Uint("user_id", comment.UserID),
		zap.Int("rating", comment.Rating))
	return response.Created(c, "comment created", comment)
}

// ListByService returns a page of comments for one service.
func (h *CommentHandler) ListByService(c echo.Context) error {
	log := logger.FromEcho(c)
	params := pagination.Parse(c)

	serviceType, err := model.ParseServiceType(c.QueryParam("service_type"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid service ID")
	}

	comments, total, err := h.comments.ListByService(c.Request().Context(), serviceType, uint(serviceID), params.Offset(), params.Limit)
	if err != nil {
		log.Error("Failed to list comments",
			zap.Uint64("service_id", serviceID),
			zap.Error(err))
		return response.Internal(c)
	}

	return response.OK(c, "comments retrieved", response.Page{
		Data:                  comments,
		Total:                 total,
		TotalPages:            params.TotalPages(total),
		CurrentPage:           params.Page,
		Limit:                 params.Limit,
		RecordsPerPageOptions: pagination.RecordsPerPageOptions,
	})
}
