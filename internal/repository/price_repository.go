package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"gorm.io/gorm"
)

// PriceRepo resolves the applicable price row for a package and date and
// validates new price rows at write time.
type PriceRepo struct {
	db      *gorm.DB
	content *ContentRepo
}

// NewPriceRepo constructs a PriceRepo. The content repo supplies the
// localized currency lookup used by Quote.
func NewPriceRepo(db *gorm.DB, content *ContentRepo) *PriceRepo {
	return &PriceRepo{db: db, content: content}
}

// CurrentPrice returns the price row applicable to the package on asOf.
//
// Constant-price packages resolve to the earliest-created non-deleted row;
// asOf is ignored. Calendar-priced packages resolve to the row whose
// window contains asOf (open-ended when end_date is null); when several
// windows contain the date the earliest start_date wins deterministically.
// ErrPriceNotFound means no bookable price for that date, not a failure to
// retry.
func (r *PriceRepo) CurrentPrice(ctx context.Context, packageID uint, asOf time.Time) (*model.PackagePrice, error) {
	return r.currentPrice(r.db.WithContext(ctx), packageID, asOf)
}

func (r *PriceRepo) currentPrice(tx *gorm.DB, packageID uint, asOf time.Time) (*model.PackagePrice, error) {
	var pkg model.Package
	if err := tx.First(&pkg, packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	var price model.PackagePrice
	query := tx.Where("package_id = ?", packageID)
	if pkg.ConstantPrice {
		query = query.Order("created_at ASC, id ASC")
	} else {
		query = query.
			Where("start_date <= ? AND (end_date IS NULL OR end_date >= ?)", asOf, asOf).
			Order("start_date ASC, id ASC")
	}

	if err := query.First(&price).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPriceNotFound
		}
		return nil, err
	}

	return &price, nil
}

// AddPrice inserts a price row for a package. For calendar-priced packages
// the new window must not overlap any existing non-deleted window;
// overlapping entries are almost always data-entry mistakes and are
// rejected with ErrPriceWindowOverlap. Constant-price packages skip the
// check since only the earliest row is ever authoritative.
func (r *PriceRepo) AddPrice(ctx context.Context, price *model.PackagePrice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pkg model.Package
		if err := tx.First(&pkg, price.PackageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPackageNotFound
			}
			return err
		}

		if !pkg.ConstantPrice {
			if price.StartDate == nil {
				return errors.New("start_date is required for calendar-priced packages")
			}

			var count int64
			overlap := tx.Model(&model.PackagePrice{}).
				Where("package_id = ?", price.PackageID).
				Where("(end_date IS NULL OR end_date >= ?)", price.StartDate)
			if price.EndDate != nil {
				overlap = overlap.Where("start_date <= ?", price.EndDate)
			}
			if err := overlap.Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrPriceWindowOverlap
			}
		}

		return tx.Create(price).Error
	})
}

// Quote is a display-ready price: the resolved row with the package
// discount and tax applied and the currency localized.
type Quote struct {
	Price        model.PackagePrice `json:"price"`
	FinalAmount  float64            `json:"final_amount"`
	CurrencyName string             `json:"currency_name"`
	CurrencyCode string             `json:"currency_code"`
}

// QuoteFor resolves the current price and applies the package-level
// discount percentage and tax to produce the bookable amount.
func (r *PriceRepo) QuoteFor(ctx context.Context, packageID uint, asOf time.Time, languageCode string) (*Quote, error) {
	var pkg model.Package
	if err := r.db.WithContext(ctx).First(&pkg, packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	price, err := r.CurrentPrice(ctx, packageID, asOf)
	if err != nil {
		return nil, err
	}

	amount := price.MainPrice
	if pkg.Discount != nil {
		amount -= amount * *pkg.Discount / 100
	}
	amount += pkg.TotalTaxAmount

	quote := &Quote{Price: *price, FinalAmount: amount}

	currency, err := r.content.ResolveCurrency(ctx, price.CurrencyID, languageCode)
	if err != nil {
		if !errors.Is(err, ErrCurrencyNotFound) {
			return nil, err
		}
	} else {
		quote.CurrencyName = currency.Name
		quote.CurrencyCode = currency.Currency.Code
	}

	return quote, nil
}
