package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
)

type bookingFixture struct {
	repo     *ReservationRepo
	service  *model.Service
	pkg      *model.Package
	price    *model.PackagePrice
	currency *model.Currency
}

func setupBooking(t *testing.T, db *gorm.DB) bookingFixture {
	t.Helper()
	svc := createService(t, db, model.ServiceTypeHotel, true)
	currency := createCurrency(t, db, "USD")

	pkg := &model.Package{
		ServiceID: svc.ID, Name: "Standard", ConstantPrice: false, TotalTaxAmount: 10,
	}
	require.NoError(t, db.Create(pkg).Error)

	price := &model.PackagePrice{
		PackageID: pkg.ID, MainPrice: 200, CurrencyID: currency.ID,
		StartDate: datePtr(2026, time.June, 1), EndDate: datePtr(2026, time.June, 30),
	}
	require.NoError(t, db.Create(price).Error)

	repo := NewReservationRepo(db, newPriceRepo(t, db), NewDiscountRepo(db))
	return bookingFixture{repo: repo, service: svc, pkg: pkg, price: price, currency: currency}
}

func TestBookCreatesPendingReservation(t *testing.T) {
	db := setupTestDB(t)
	f := setupBooking(t, db)

	reservation, err := f.repo.Book(context.Background(), BookingInput{
		UserID: 7, ServiceType: model.ServiceTypeHotel,
		ServiceID: f.service.ID, PackageID: f.pkg.ID,
		Date: date(2026, time.June, 15),
	})
	require.NoError(t, err)

	assert.Equal(t, model.ReservationStatusPending, reservation.Status)
	assert.NotEmpty(t, reservation.Code)
	assert.Equal(t, f.price.ID, reservation.PackagePriceID)
	assert.Equal(t, f.currency.ID, reservation.CurrencyID)
	assert.InDelta(t, 210.0, reservation.Amount, 1e-9)
	assert.Nil(t, reservation.DiscountCodeID)
}

func TestBookAppliesDiscountCode(t *testing.T) {
	db := setupTestDB(t)
	f := setupBooking(t, db)
	dc := createDiscountCode(t, db, "SAVE10", 5, 10, f.service.ID)

	reservation, err := f.repo.Book(context.Background(), BookingInput{
		UserID: 7, ServiceType: model.ServiceTypeHotel,
		ServiceID: f.service.ID, PackageID: f.pkg.ID,
		Date: date(2026, time.June, 15), DiscountCode: "SAVE10",
	})
	require.NoError(t, err)

	// 200 + 10 tax, then 10% off.
	assert.InDelta(t, 189.0, reservation.Amount, 1e-9)
	require.NotNil(t, reservation.DiscountCodeID)
	assert.Equal(t, dc.ID, *reservation.DiscountCodeID)

	// Checked at booking, not yet redeemed.
	var used int64
	require.NoError(t, db.Model(&model.DiscountUser{}).
		Where("discount_code_id = ?", dc.ID).Count(&used).Error)
	assert.Zero(t, used)
}

func TestBookRejectsUnapprovedService(t *testing.T) {
	db := setupTestDB(t)
	f := setupBooking(t, db)
	pending := createService(t, db, model.ServiceTypeHotel, false)

	_, err := f.repo.Book(context.Background(), BookingInput{
		UserID: 7, ServiceType: model.ServiceTypeHotel,
		ServiceID: pending.ID, PackageID: f.pkg.ID,
		Date: date(2026, time.June, 15),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestBookRejectsForeignPackage(t *testing.T) {
	db := setupTestDB(t)
	f := setupBooking(t, db)
	other := createService(t, db, model.ServiceTypeHotel, true)
	foreign := createPackage(t, db, other.ID, true)

	_, err := f.repo.Book(context.Background(), BookingInput{
		UserID: 7, ServiceType: model.ServiceTypeHotel,
		ServiceID: f.service.ID, PackageID: foreign.ID,
		Date: date(2026, time.June, 15),
	})
	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestBookRejectsDateWithoutPrice(t *testing.T) {
	db := setupTestDB(t)
	f := setupBooking(t, db)

	_, err := f.repo.Book(context.Background(), BookingInput{
		UserID: 7, ServiceType: model.ServiceTypeHotel,
		ServiceID: f.service.ID, PackageID: f.pkg.ID,
		Date: date(2026, time.August, 15),
	})
	assert.ErrorIs(t, err, ErrPriceNotFound)
}

func TestConfirmRedeemsDiscount(t *testing.T) {
	db := setupTestDB(t)
	f := setupBooking(t, db)
	dc := createDiscountCode(t, db, "SAVE10", 5, 10, f.service.ID)

	reservation, err := f.repo.Book(context.Background(), BookingInput{
		UserID: 7, ServiceType: model.ServiceTypeHotel,
		ServiceID: f.service.ID, PackageID: f.pkg.ID,
		Date: date(2026, time.June, 15), DiscountCode: "SAVE10",
	})
	require.NoError(t, err)

	confirmed, err := f.repo.Confirm(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusConfirmed, confirmed.Status)

	var usage model.DiscountUser
	require.NoError(t, db.Where("discount_code_id = ?", dc.ID).First(&usage).Error)
	assert.Equal(t, reservation.ID, usage.ReservationID)
	assert.Equal(t, uint(7), usage.UserID)
	assert.True(t, usage.Status)

	_, err = f.repo.Confirm(context.Background(), reservation.ID)
	assert.ErrorIs(t, err, ErrReservationNotPending)
}

func TestConfirmRollsBackWhenCapExhausted(t *testing.T) {
	db := setupTestDB(t)
	f := setupBooking(t, db)
	dc := createDiscountCode(t, db, "ONCE", 1, 10, f.service.ID)

	reservation, err := f.repo.Book(context.Background(), BookingInput{
		UserID: 7, ServiceType: model.ServiceTypeHotel,
		ServiceID: f.service.ID, PackageID: f.pkg.ID,
		Date: date(2026, time.June, 15), DiscountCode: "ONCE",
	})
	require.NoError(t, err)

	// Another redemption exhausts the single use between check and confirm.
	require.NoError(t, NewDiscountRepo(db).Redeem(context.Background(), dc.ID, 99, 500))

	_, err = f.repo.Confirm(context.Background(), reservation.ID)
	assert.ErrorIs(t, err, ErrDiscountLimitReached)

	var stored model.Reservation
	require.NoError(t, db.First(&stored, reservation.ID).Error)
	assert.Equal(t, model.ReservationStatusPending, stored.Status)
}

func TestCancelPendingOnly(t *testing.T) {
	db := setupTestDB(t)
	f := setupBooking(t, db)

	reservation, err := f.repo.Book(context.Background(), BookingInput{
		UserID: 7, ServiceType: model.ServiceTypeHotel,
		ServiceID: f.service.ID, PackageID: f.pkg.ID,
		Date: date(2026, time.June, 15),
	})
	require.NoError(t, err)

	// Only the owner can cancel.
	err = f.repo.Cancel(context.Background(), reservation.ID, 99)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	require.NoError(t, f.repo.Cancel(context.Background(), reservation.ID, 7))

	err = f.repo.Cancel(context.Background(), reservation.ID, 7)
	assert.ErrorIs(t, err, ErrReservationNotPending)
}

func TestListForUser(t *testing.T) {
	db := setupTestDB(t)
	f := setupBooking(t, db)

	for _, userID := range []uint{7, 7, 8} {
		_, err := f.repo.Book(context.Background(), BookingInput{
			UserID: userID, ServiceType: model.ServiceTypeHotel,
			ServiceID: f.service.ID, PackageID: f.pkg.ID,
			Date: date(2026, time.June, 15),
		})
		require.NoError(t, err)
	}

	reservations, total, err := f.repo.ListForUser(context.Background(), 7, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, reservations, 2)
}
