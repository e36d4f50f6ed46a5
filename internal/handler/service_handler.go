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

// ServiceHandler serves the service catalog endpoints.
type ServiceHandler struct {
	services        *repository.ServiceRepo
	content         *repository.ContentRepo
	defaultLanguage string
}

// NewServiceHandler constructs a ServiceHandler.
func NewServiceHandler(services *repository.ServiceRepo, content *repository.ContentRepo, defaultLanguage string) *ServiceHandler {
	return &ServiceHandler{services: services, content: content, defaultLanguage: defaultLanguage}
}

// ServiceRequest is the creation payload. Text fields arrive in the
// source language and are translated into every registry language.
type ServiceRequest struct {
	Type         string `json:"type" validate:"required"`
	SourceLang   string `json:"source_lang" validate:"required,len=2"`
	Title        string `json:"title" validate:"required"`
	GeneralInfo  string `json:"general_info"`
	RefundPolicy string `json:"refund_policy"`
}

// PivotRequest is the manual per-language content edit payload.
type PivotRequest struct {
	LanguageCode string `json:"language_code" validate:"required,len=2"`
	Title        string `json:"title" validate:"required"`
	GeneralInfo  string `json:"general_info"`
	RefundPolicy string `json:"refund_policy"`
}

func (h *ServiceHandler) languageCode(c echo.Context) string {
	if lang := c.QueryParam("lang"); len(lang) == 2 {
		return lang
	}
	return h.defaultLanguage
}

// Create registers a new service for the calling solution partner. The
// service starts unapproved; an admin activates it. The service row and
// all its translated pivots are written in one transaction.
func (h *ServiceHandler) Create(c echo.Context) error {
	log := logger.FromEcho(c)

	claims, ok := mid.ClaimsFromEcho(c)
	if !ok || claims.PartnerID == nil {
		log.Error("Missing partner context on service creation")
		return response.Unauthorized(c, "partner context required")
	}

	var req ServiceRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid service creation request", zap.Error(err))
		return response.BadRequest(c, "invalid request")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	serviceType, err := model.ParseServiceType(req.Type)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	svc := model.Service{
		Type:              serviceType,
		SolutionPartnerID: *claims.PartnerID,
		Status:            true,
		AdminApproval:     false,
	}

	err = h.content.CreateWithTranslations(c.Request().Context(), &svc, req.SourceLang, repository.TranslatedFields{
		Title:        req.Title,
		GeneralInfo:  req.GeneralInfo,
		RefundPolicy: req.RefundPolicy,
	})
	if err != nil {
		log.Error("Failed to create service with translations",
			zap.String("type", string(serviceType)),
			zap.Uint("partner_id", *claims.PartnerID),
			zap.Error(err))
		return response.Internal(c)
	}

	log.Info("Service created pending approval",
		zap.Uint("service_id", svc.ID),
		zap.String("type", string(serviceType)),
		zap.Uint("partner_id", *claims.PartnerID))
	return response.Created(c, "service created, awaiting approval", svc)
}

// Get returns one service localized to the requested language. Content is
// strictly per-language: a missing translation is a 404.
func (h *ServiceHandler) Get(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid service ID")
	}

	localized, err := h.content.Resolve(c.Request().Context(), uint(id), h.languageCode(c))
	if err != nil {
		return writeRepoError(c, log, err)
	}

	return response.OK(c, "service retrieved", localized)
}

// List returns a localized, paginated, searchable catalog page. Only
// approved and active services are listed.
func (h *ServiceHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)
	params := pagination.Parse(c)

	filter := repository.ListFilter{
		LanguageCode: h.languageCode(c),
		Search:       params.Search,
		OnlyApproved: true,
	}
	if typeParam := c.QueryParam("type"); typeParam != "" {
		serviceType, err := model.ParseServiceType(typeParam)
		if err != nil {
			return response.BadRequest(c, err.Error())
		}
		filter.Type = &serviceType
	}
	if highlightParam := c.QueryParam("highlight"); highlightParam != "" {
		highlight, err := strconv.ParseBool(highlightParam)
		if err == nil {
			filter.Highlight = &highlight
		}
	}

	rows, total, err := h.services.ListLocalized(c.Request().Context(), filter, params.Offset(), params.Limit)
	if err != nil {
		log.Error("Failed to list services", zap.Error(err))
		return response.Internal(c)
	}

	return response.OK(c, "services retrieved", response.Page{
		Data:                  rows,
		Total:                 total,
		TotalPages:            params.TotalPages(total),
		CurrentPage:           params.Page,
		Limit:                 params.Limit,
		RecordsPerPageOptions: pagination.RecordsPerPageOptions,
	})
}

// Approve activates a pending service. Admin only.
func (h *ServiceHandler) Approve(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid service ID")
	}

	if err := h.services.Approve(c.Request().Context(), uint(id)); err != nil {
		return writeRepoError(c, log, err)
	}

	log.Info("Service approved", zap.Uint64("service_id", id))
	return response.OK(c, "service approved", nil)
}

// Highlight toggles the highlight flag. Admin only.
func (h *ServiceHandler) Highlight(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid service ID")
	}

	var req struct {
		Highlight bool `json:"highlight"`
	}
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	if err := h.services.SetHighlight(c.Request().Context(), uint(id), req.Highlight); err != nil {
		return writeRepoError(c, log, err)
	}

	return response.OK(c, "service updated", nil)
}

// UpsertPivot edits the content of one language. Admin only.
func (h *ServiceHandler) UpsertPivot(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid service ID")
	}

	var req PivotRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	pivot, err := h.content.UpsertPivot(c.Request().Context(), uint(id), req.LanguageCode, repository.TranslatedFields{
		Title:        req.Title,
		GeneralInfo:  req.GeneralInfo,
		RefundPolicy: req.RefundPolicy,
	})
	if err != nil {
		return writeRepoError(c, log, err)
	}

	log.Info("Service pivot updated",
		zap.Uint64("service_id", id),
		zap.String("language_code", req.LanguageCode))
	return response.OK(c, "content updated", pivot)
}

// Delete soft-deletes a service. Admin only.
func (h *ServiceHandler) Delete(c echo.Context) error {
	log := logger.FromEcho(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid service ID")
	}

	if err := h.services.SoftDelete(c.Request().Context(), uint(id)); err != nil {
		return writeRepoError(c, log, err)
	}

	log.Info("Service deleted", zap.Uint64("service_id", id))
	return response.OK(c, "service deleted", nil)
}
