package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"github.com/Tufan17/timhoty-backend-sub004/internal/repository"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/logger"
	"github.com/Tufan17/timhoty-backend-sub004/pkg/response"
)

// PackageHandler serves package and price endpoints.
type PackageHandler struct {
	services        *repository.ServiceRepo
	prices          *repository.PriceRepo
	defaultLanguage string
}

// NewPackageHandler constructs a PackageHandler.
func NewPackageHandler(services *repository.ServiceRepo, prices *repository.PriceRepo, defaultLanguage string) *PackageHandler {
	return &PackageHandler{services: services, prices: prices, defaultLanguage: defaultLanguage}
}

// PackageRequest is one package in a replace-all payload.
type PackageRequest struct {
	Name                   string   `json:"name" validate:"required"`
	Discount               *float64 `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	TotalTaxAmount         float64  `json:"total_tax_amount" validate:"gte=0"`
	ConstantPrice          bool     `json:"constant_price"`
	ReturnAcceptancePeriod *int     `json:"return_acceptance_period,omitempty"`
	StartDate              string   `json:"start_date,omitempty"`
	EndDate                string   `json:"end_date,omitempty"`
}

// PriceRequest adds one price row to a package.
type PriceRequest struct {
	MainPrice  float64  `json:"main_price" validate:"required,gt=0"`
	ChildPrice *float64 `json:"child_price,omitempty" validate:"omitempty,gte=0"`
	BabyPrice  *float64 `json:"baby_price,omitempty" validate:"omitempty,gte=0"`
	CurrencyID uint     `json:"currency_id" validate:"required"`
	StartDate  string   `json:"start_date,omitempty"`
	EndDate    string   `json:"end_date,omitempty"`
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Replace swaps out every package of a service. The previous packages and
// their prices are soft-deleted in the same transaction.
func (h *PackageHandler) Replace(c echo.Context) error {
	log := logger.FromEcho(c)

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid service ID")
	}

	var reqs []PackageRequest
	if err := c.Bind(&reqs); err != nil {
		log.Error("Invalid package replace request", zap.Error(err))
		return response.BadRequest(c, "invalid request")
	}

	packages := make([]model.Package, 0, len(reqs))
	for _, req := range reqs {
		if err := validate.Struct(&req); err != nil {
			return response.BadRequest(c, err.Error())
		}
		start, err := optionalDate(req.StartDate)
		if err != nil {
			return response.BadRequest(c, "invalid start_date")
		}
		end, err := optionalDate(req.EndDate)
		if err != nil {
			return response.BadRequest(c, "invalid end_date")
		}
		packages = append(packages, model.Package{
			Name:                   req.Name,
			Discount:               req.Discount,
			TotalTaxAmount:         req.TotalTaxAmount,
			ConstantPrice:          req.ConstantPrice,
			ReturnAcceptancePeriod: req.ReturnAcceptancePeriod,
			StartDate:              start,
			EndDate:                end,
		})
	}

	if err := h.services.ReplacePackages(c.Request().Context(), uint(serviceID), packages); err != nil {
		return writeRepoError(c, log, err)
	}

	log.Info("Packages replaced",
		zap.Uint64("service_id", serviceID),
		zap.Int("count", len(packages)))
	return response.OK(c, "packages replaced", nil)
}

// List returns the packages of a service with their price rows.
func (h *PackageHandler) List(c echo.Context) error {
	log := logger.FromEcho(c)

	serviceID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid service ID")
	}

	packages, err := h.services.ListPackages(c.Request().Context(), uint(serviceID))
	if err != nil {
		log.Error("Failed to list packages", zap.Uint64("service_id", serviceID), zap.Error(err))
		return response.Internal(c)
	}

	return response.OK(c, "packages retrieved", packages)
}

// AddPrice adds a price row to a package. Overlapping validity windows on
// calendar-priced packages are rejected.
func (h *PackageHandler) AddPrice(c echo.Context) error {
	log := logger.FromEcho(c)

	packageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid package ID")
	}

	var req PriceRequest
	if err := c.Bind(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	if err := validate.Struct(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	start, err := optionalDate(req.StartDate)
	if err != nil {
		return response.BadRequest(c, "invalid start_date")
	}
	end, err := optionalDate(req.EndDate)
	if err != nil {
		return response.BadRequest(c, "invalid end_date")
	}

	price := model.PackagePrice{
		PackageID:  uint(packageID),
		MainPrice:  req.MainPrice,
		ChildPrice: req.ChildPrice,
		BabyPrice:  req.BabyPrice,
		CurrencyID: req.CurrencyID,
		StartDate:  start,
		EndDate:    end,
	}

	if err := h.prices.AddPrice(c.Request().Context(), &price); err != nil {
		return writeRepoError(c, log, err)
	}

	log.Info("Package price added",
		zap.Uint64("package_id", packageID),
		zap.Float64("main_price", price.MainPrice))
	return response.Created(c, "price added", price)
}

// Quote resolves the bookable price of a package for a date, with the
// package discount/tax applied and the currency localized.
func (h *PackageHandler) Quote(c echo.Context) error {
	log := logger.FromEcho(c)

	packageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "invalid package ID")
	}

	asOf := time.Now()
	if asOfParam := c.QueryParam("as_of"); asOfParam != "" {
		asOf, err = parseDate(asOfParam)
		if err != nil {
			return response.BadRequest(c, "invalid as_of date")
		}
	}

	lang := c.QueryParam("lang")
	if len(lang) != 2 {
		lang = h.defaultLanguage
	}

	quote, err := h.prices.QuoteFor(c.Request().Context(), uint(packageID), asOf, lang)
	if err != nil {
		return writeRepoError(c, log, err)
	}

	return response.OK(c, "price resolved", quote)
}
