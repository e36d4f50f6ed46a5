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
	"github.com/Tufan17/timhoty-backend-sub004/pkg/response"
)

// CommissionHandler serves the partner self-service commission endpoints.
type CommissionHandler struct {
	commissions *repository.CommissionRepo
}

// NewCommissionHandler constructs a CommissionHandler.
func NewCommissionHandler(commissions *repository.CommissionRepo) *CommissionHandler {
	return &CommissionHandler{commissions: commissions}
}

// CommissionRequest is the partner upsert payload. A service_id scopes
// the record to one service, overriding the partner-wide default.
type CommissionRequest struct {
	ServiceType        string  `json:"service_type" validate:"required"`
	ServiceID          *uint   `json:"service_id,omitempty"`
	CommissionType     string  `json:"commission_type" validate:"required,oneof=percentage fixed"`
	CommissionValue    float64 `json:"commission_value" validate:"required,gt=0"`
	CommissionCurrency string  `json:"commission_currency" validate:"omitempty,len=3"`
}

func partnerScope(claims *jwtutil.UserClaims) (model.PartnerType, uint, bool) {
	if claims.PartnerID == nil {
		return "", 0, false
	}
	switch claims.Role {
	case jwtutil.RoleSolutionPartner:
		return model.PartnerTypeSolution, *claims.PartnerID, true
	case jwtutil.RoleSalesPartner:
		return model.PartnerTypeSales, *claims.PartnerID, true
	}
	return "", 0, false
}

// Upsert creates or updates the calling partner's commission record for a
// service type.
func (h *CommissionHandler) Upsert(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := mid.ClaimsFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "authentication required")
	}
	partnerType, partnerID, ok := partnerScope(claims)
	if !ok {
		log.Warn("Commission upsert without partner scope", zap.String("role", claims.Role))
		return response.Forbidden(c, "partner context required")
	}

	var req CommissionRequest
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

	commission := model.Commission{
		PartnerType:        partnerType,
		PartnerID:          partnerID,
		ServiceType:        serviceType,
		ServiceID:          req.ServiceID,
		CommissionType:     req.CommissionType,
		CommissionValue:    req.CommissionValue,
		CommissionCurrency: req.CommissionCurrency,
	}

	if err := h.commissions.Upsert(c.Request().Context(), &commission); err != nil {
		return writeRepoError(c, log, err)
	}

	log.Info("Commission upserted",
		zap.String("partner_type", string(partnerType)),
		zap.Uint("partner_id", partnerID),
		zap.String("service_type", string(serviceType)))
	return response.OK(c, "commission saved", commission)
}

// Get resolves the applicable commission for the calling partner and a
// service type; a service-scoped record wins over the partner-wide one.
func (h *CommissionHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := mid.ClaimsFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "authentication required")
	}
	partnerType, partnerID, ok := partnerScope(claims)
	if !ok {
		return response.Forbidden(c, "partner context required")
	}

	serviceType, err := model.ParseServiceType(c.QueryParam("service_type"))
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var serviceID *uint
	if serviceIDParam := c.QueryParam("service_id"); serviceIDParam != "" {
		parsed, err := strconv.ParseUint(serviceIDParam, 10, 32)
		if err != nil {
			return response.BadRequest(c, "invalid service_id")
		}
		id := uint(parsed)
		serviceID = &id
	}

	commission, err := h.commissions.ForPartner(c.Request().Context(), partnerType, partnerID, serviceType, serviceID)
	if err != nil {
		return writeRepoError(c, log, err)
	}

	return response.OK(c, "commission resolved", commission)
}

// Delete soft-deletes one of the calling partner's commission records.
func (h *CommissionHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := mid.ClaimsFromEcho(c)
	if !ok {
		return response.Unauthorized(c, "authentication required")
	}
	partnerType, partnerID, ok := partnerScope(claims)
	if !ok {
		return response.Forbidden(c, "partner context required")
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid commission ID")
	}

	if err := h.commissions.Delete(c.Request().Context(), partnerType, partnerID, uint(id)); err != nil {
		return writeRepoError(c, log, err)
	}

	log.Info("Commission deleted",
		zap.Uint("partner_id", partnerID),
		zap.Uint64("commission_id", id))
	return response.OK(c, "commission deleted", nil)
}
