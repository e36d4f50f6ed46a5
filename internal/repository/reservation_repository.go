package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrReservationNotPending rejects confirmation or cancellation of a
// reservation that already left the pending state.
var ErrReservationNotPending = errors.New("reservation is not pending")

// BookingInput carries everything needed to create a reservation.
type BookingInput struct {
	UserID       uint
	ServiceType  model.ServiceType
	ServiceID    uint
	PackageID    uint
	Date         time.Time
	DiscountCode string
}

// ReservationRepo books and transitions reservations. Booking composes the
// price resolver and the discount calculator; the discount is checked at
// booking time and redeemed at payment confirmation, inside the
// confirmation transaction.
type ReservationRepo struct {
	db        *gorm.DB
	prices    *PriceRepo
	discounts *DiscountRepo
}

// NewReservationRepo constructs a ReservationRepo.
func NewReservationRepo(db *gorm.DB, prices *PriceRepo, discounts *DiscountRepo) *ReservationRepo {
	return &ReservationRepo{db: db, prices: prices, discounts: discounts}
}

// Book resolves the bookable price for the requested date, applies the
// package discount/tax and an optional discount code, and inserts a
// pending reservation. The discount is only checked here; redemption
// happens in Confirm.
func (r *ReservationRepo) Book(ctx context.Context, input BookingInput) (*model.Reservation, error) {
	var svc model.Service
	err := r.db.WithContext(ctx).
		Where("id = ? AND type = ? AND status = ? AND admin_approval = ?",
			input.ServiceID, input.ServiceType, true, true).
		First(&svc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	var pkg model.Package
	err = r.db.WithContext(ctx).
		Where("id = ? AND service_id = ?", input.PackageID, input.ServiceID).
		First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}

	price, err := r.prices.CurrentPrice(ctx, pkg.ID, input.Date)
	if err != nil {
		return nil, err
	}

	amount := price.MainPrice
	if pkg.Discount != nil {
		amount -= amount * *pkg.Discount / 100
	}
	amount += pkg.TotalTaxAmount

	var discountCodeID *uint
	if input.DiscountCode != "" {
		dc, err := r.discounts.Check(ctx, input.DiscountCode, input.ServiceType, input.ServiceID)
		if err != nil {
			return nil, err
		}
		amount = dc.Apply(amount)
		discountCodeID = &dc.ID
	}

	reservation := &model.Reservation{
		Code:           uuid.New().String(),
		UserID:         input.UserID,
		ServiceType:    input.ServiceType,
		ServiceID:      input.ServiceID,
		PackageID:      pkg.ID,
		PackagePriceID: price.ID,
		Date:           input.Date,
		Amount:         amount,
		CurrencyID:     price.CurrencyID,
		DiscountCodeID: discountCodeID,
		Status:         model.ReservationStatusPending,
	}

	if err := r.db.WithContext(ctx).Create(reservation).Error; err != nil {
		return nil, err
	}

	return reservation, nil
}

// Confirm transitions a pending reservation to confirmed. When a discount
// code was attached at booking time it is redeemed here, in the same
// transaction as the status change, so the usage cap holds under
// concurrent confirmations.
func (r *ReservationRepo) Confirm(ctx context.Context, reservationID uint) (*model.Reservation, error) {
	var reservation model.Reservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if reservation.Status != model.ReservationStatusPending {
			return ErrReservationNotPending
		}

		if reservation.DiscountCodeID != nil {
			if err := r.discounts.RedeemTx(tx, *reservation.DiscountCodeID, reservation.UserID, reservation.ID); err != nil {
				return err
			}
		}

		reservation.Status = model.ReservationStatusConfirmed
		return tx.Save(&reservation).Error
	})
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// Cancel transitions a pending reservation to cancelled.
func (r *ReservationRepo) Cancel(ctx context.Context, reservationID, userID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation model.Reservation
		err := tx.Where("id = ? AND user_id = ?", reservationID, userID).
			First(&reservation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrReservationNotFound
			}
			return err
		}
		if reservation.Status != model.ReservationStatusPending {
			return ErrReservationNotPending
		}

		reservation.Status = model.ReservationStatusCancelled
		return tx.Save(&reservation).Error
	})
}

// GetByID returns a reservation owned by the user.
func (r *ReservationRepo) GetByID(ctx context.Context, reservationID, userID uint) (*model.Reservation, error) {
	var reservation model.Reservation
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", reservationID, userID).
		First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// ListForUser returns a page of the user's reservations, newest first.
func (r *ReservationRepo) ListForUser(ctx context.Context, userID uint, offset, limit int) ([]model.Reservation, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reservations []model.Reservation
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&reservations).Error
	if err != nil {
		return nil, 0, err
	}

	return reservations, total, nil
}
