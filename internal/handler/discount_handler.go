package handler

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"github.com/Tufan17/timhoty-backend-sub004/internal/repository"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/logger"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/metrics"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/pagination"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/response"
)

// DiscountHandler serves discount code administration and the redemption
// check.
type DiscountHandler struct {
	discounts   *repository.DiscountRepo
	serviceName string
}

// NewDiscountHandler constructs a DiscountHandler.
func NewDiscountHandler(discounts *repository.DiscountRepo, serviceName string) *DiscountHandler {
	return &DiscountHandler{discounts: discounts, serviceName: serviceName}
}

// DiscountProductRequest scopes a code to one service+product pair.
type DiscountProductRequest struct {
	ServiceType string `json:"service_type" validate:"required"`
	ProductID   uint   `json:"product_id" validate:"required"`
}

// DiscountCodeRequest is the admin creation payload. Amount caps the
// number of redemptions.
type DiscountCodeRequest struct {
	Code           string                   `json:"code" validate:"required"`
	ServiceType    string                   `json:"service_type" validate:"required"`
	Amount         int                      `json:"amount" validate:"required,gt=0"`
	Percentage     float64                  `json:"percentage" validate:"required,gt=0,lte=100"`
	ValidityPeriod string                   `json:"validity_period,omitempty"`
	Products       []DiscountProductRequest `json:"products" validate:"required,min=1,dive"`
}

// CheckRequest asks whether a code applies to a product.
type CheckRequest struct {
	Code        string `json:"code" validate:"required"`
	ServiceType string `json:"service_type" validate:"required"`
	ServiceID   uint   `json:"service_id" validate:"required"`
}

// Create registers a discount code with its product scope. Admin only.
func (h *DiscountHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	var req DiscountCodeRequest
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

	var validity *time.Time
	if req.ValidityPeriod != "" {
		parsed, err := parseDate(req.ValidityPeriod)
		if err != nil {
			return response.BadRequest(c, "invalid validity_period")
		}
		validity = &parsed
	}

	code := model.DiscountCode{
		Code:           req.Code,
		ServiceType:    serviceType,
		Amount:         req.Amount,
		Percentage:     req.Percentage,
		ValidityPeriod: validity,
	}
	for _, product := range req.Products {
		productType, err := model.ParseServiceType(product.ServiceType)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		code.Products = append(code.Products, model.DiscountProduct{
			ServiceType: productType,
			ProductID:   product.ProductID,
		})
	}

	if err := h.discounts.Create(c.Request().Context(), &code); err != nil {
		log.Error("Failed to create discount code",
			zap.String("code", req.Code),
			zap.Error(err))
		return response.Internal(c)
	}

	log.Info("Discount code created",
		zap.String("code", code.Code),
		zap.Int("amount", code.Amount),
		zap.Float64("percentage", code.Percentage))
	return response.Created(c, "discount code created", code)
}

// List returns a page of discount codes. Admin only.
func (h *DiscountHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	params := pagination.Parse(c)

	codes, total, err := h.discounts.List(c.Request().Context(), params.Search, params.Offset(), params.Limit)
	if err != nil {
		log.Error("Failed to list discount codes", zap.Error(err))
		return response.Internal(c)
	}

	return response.OK(c, "discount codes retrieved", response.Page{
		Data:                  codes,
		Total:                 total,
		TotalPages:            params.TotalPages(total),
		CurrentPage:           params.Page,
		Limit:                 params.Limit,
		RecordsPerPageOptions: pagination.RecordsPerPageOptions,
	})
}

// Check runs the three-step applicability check. Rejections carry the
// specific reason (code not found, not valid for the product, limit
// reached, expired) so the client can show it verbatim.
func (h *DiscountHandler) Check(c echo.Context) error {
	log := logger.FromEcho(c)

	var req CheckRequest
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

	code, err := h.discounts.Check(c.Request().Context(), req.Code, serviceType, req.ServiceID)
	if err != nil {
		if errors.Is(err, repository.ErrDiscountNotFound) ||
			errors.Is(err, repository.ErrDiscountNotApplicable) ||
			errors.Is(err, repository.ErrDiscountLimitReached) ||
			errors.Is(err, repository.ErrDiscountExpired) {
			metrics.DiscountRejectionCounter.WithLabelValues(h.serviceName, err.Error()).Inc()
			log.Info("Discount check rejected",
				zap.String("code", req.Code),
				zap.String("reason", err.Error()))
		}
		return writeRepoError(c, log, err)
	}

	return response.OK(c, "discount code applicable", echo.Map{
		"code":       code.Code,
		"percentage": code.Percentage,
	})
}
