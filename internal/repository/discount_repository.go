package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DiscountRepo validates and redeems discount codes.
type DiscountRepo struct {
	db *gorm.DB
}

// NewDiscountRepo constructs a DiscountRepo.
func NewDiscountRepo(db *gorm.DB) *DiscountRepo {
	return &DiscountRepo{db: db}
}

// Check runs the three-step applicability check for a code against a
// product: code exists for the service type, the product is in the code's
// scope, and the usage cap is not exhausted. It is read-only; Redeem
// performs the actual redemption at payment-confirmation time.
func (r *DiscountRepo) Check(ctx context.Context, code string, serviceType model.ServiceType, productID uint) (*model.DiscountCode, error) {
	var dc model.DiscountCode
	err := r.db.WithContext(ctx).
		Where("code = ? AND service_type = ?", code, serviceType).
		First(&dc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}

	if dc.ValidityPeriod != nil && dc.ValidityPeriod.Before(time.Now()) {
		return nil, ErrDiscountExpired
	}

	var product model.DiscountProduct
	err = r.db.WithContext(ctx).
		Where("discount_code_id = ? AND service_type = ? AND product_id = ?", dc.ID, serviceType, productID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotApplicable
		}
		return nil, err
	}

	var used int64
	err = r.db.WithContext(ctx).Model(&model.DiscountUser{}).
		Where("discount_code_id = ? AND status = ?", dc.ID, true).
		Count(&used).Error
	if err != nil {
		return nil, err
	}
	if used >= int64(dc.Amount) {
		return nil, ErrDiscountLimitReached
	}

	return &dc, nil
}

// Redeem consumes one use of the code for a user, re-validating the cap
// inside a single transaction so concurrent redemptions cannot overshoot
// the limit.
func (r *DiscountRepo) Redeem(ctx context.Context, codeID, userID, reservationID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.RedeemTx(tx, codeID, userID, reservationID)
	})
}

// RedeemTx is Redeem running inside a caller-owned transaction, for
// composition with the reservation insert.
func (r *DiscountRepo) RedeemTx(tx *gorm.DB, codeID, userID, reservationID uint) error {
	var dc model.DiscountCode
	query := tx.Where("id = ?", codeID)
	// The row lock closes the check-then-insert race between concurrent
	// redemptions. SQLite serializes writers on its own and rejects the
	// clause, so it is applied on postgres only.
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(&dc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDiscountNotFound
		}
		return err
	}

	if dc.ValidityPeriod != nil && dc.ValidityPeriod.Before(time.Now()) {
		return ErrDiscountExpired
	}

	var used int64
	err := tx.Model(&model.DiscountUser{}).
		Where("discount_code_id = ? AND status = ?", dc.ID, true).
		Count(&used).Error
	if err != nil {
		return err
	}
	if used >= int64(dc.Amount) {
		return ErrDiscountLimitReached
	}

	return tx.Create(&model.DiscountUser{
		DiscountCodeID: dc.ID,
		UserID:         userID,
		ReservationID:  reservationID,
		Status:         true,
	}).Error
}

// Create inserts a code together with its product scope rows.
func (r *DiscountRepo) Create(ctx context.Context, code *model.DiscountCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

// List returns codes for the admin screen, newest first.
func (r *DiscountRepo) List(ctx context.Context, search string, offset, limit int) ([]model.DiscountCode, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.DiscountCode{})
	if search != "" {
		query = query.Where("code LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var codes []model.DiscountCode
	err := query.Preload("Products").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&codes).Error
	if err != nil {
		return nil, 0, err
	}

	return codes, total, nil
}
