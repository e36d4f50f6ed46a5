package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
)

func TestForPartnerPrefersServiceScopedRow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommissionRepo(db)

	require.NoError(t, db.Create(&model.Commission{
		PartnerType: model.PartnerTypeSolution, PartnerID: 5,
		ServiceType:    model.ServiceTypeHotel,
		CommissionType: model.CommissionTypePercentage, CommissionValue: 10,
	}).Error)
	serviceID := uint(42)
	require.NoError(t, db.Create(&model.Commission{
		PartnerType: model.PartnerTypeSolution, PartnerID: 5,
		ServiceType: model.ServiceTypeHotel, ServiceID: &serviceID,
		CommissionType: model.CommissionTypePercentage, CommissionValue: 7,
	}).Error)

	commission, err := repo.ForPartner(context.Background(), model.PartnerTypeSolution, 5, model.ServiceTypeHotel, &serviceID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, commission.CommissionValue)
}

func TestForPartnerFallsBackToDefault(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommissionRepo(db)

	require.NoError(t, db.Create(&model.Commission{
		PartnerType: model.PartnerTypeSolution, PartnerID: 5,
		ServiceType:    model.ServiceTypeHotel,
		CommissionType: model.CommissionTypePercentage, CommissionValue: 10,
	}).Error)

	otherService := uint(99)
	commission, err := repo.ForPartner(context.Background(), model.PartnerTypeSolution, 5, model.ServiceTypeHotel, &otherService)
	require.NoError(t, err)
	assert.Equal(t, 10.0, commission.CommissionValue)

	commission, err = repo.ForPartner(context.Background(), model.PartnerTypeSolution, 5, model.ServiceTypeHotel, nil)
	require.NoError(t, err)
	assert.Equal(t, 10.0, commission.CommissionValue)
}

func TestForPartnerNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommissionRepo(db)

	_, err := repo.ForPartner(context.Background(), model.PartnerTypeSales, 5, model.ServiceTypeVisa, nil)
	assert.ErrorIs(t, err, ErrCommissionNotFound)
}

func TestUpsertUpdatesSameScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommissionRepo(db)

	first := &model.Commission{
		PartnerType: model.PartnerTypeSales, PartnerID: 3,
		ServiceType:    model.ServiceTypeTour,
		CommissionType: model.CommissionTypePercentage, CommissionValue: 8,
	}
	require.NoError(t, repo.Upsert(context.Background(), first))

	second := &model.Commission{
		PartnerType: model.PartnerTypeSales, PartnerID: 3,
		ServiceType:    model.ServiceTypeTour,
		CommissionType: model.CommissionTypeFixed, CommissionValue: 25, CommissionCurrency: "USD",
	}
	require.NoError(t, repo.Upsert(context.Background(), second))
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.Commission{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored model.Commission
	require.NoError(t, db.First(&stored, first.ID).Error)
	assert.Equal(t, model.CommissionTypeFixed, stored.CommissionType)
	assert.Equal(t, 25.0, stored.CommissionValue)
}

func TestUpsertScopedAndDefaultCoexist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommissionRepo(db)

	serviceID := uint(42)
	require.NoError(t, repo.Upsert(context.Background(), &model.Commission{
		PartnerType: model.PartnerTypeSolution, PartnerID: 5,
		ServiceType:    model.ServiceTypeHotel,
		CommissionType: model.CommissionTypePercentage, CommissionValue: 10,
	}))
	require.NoError(t, repo.Upsert(context.Background(), &model.Commission{
		PartnerType: model.PartnerTypeSolution, PartnerID: 5,
		ServiceType: model.ServiceTypeHotel, ServiceID: &serviceID,
		CommissionType: model.CommissionTypePercentage, CommissionValue: 7,
	}))

	var count int64
	require.NoError(t, db.Model(&model.Commission{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestDeleteChecksOwnership(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommissionRepo(db)

	commission := &model.Commission{
		PartnerType: model.PartnerTypeSolution, PartnerID: 5,
		ServiceType:    model.ServiceTypeHotel,
		CommissionType: model.CommissionTypePercentage, CommissionValue: 10,
	}
	require.NoError(t, db.Create(commission).Error)

	err := repo.Delete(context.Background(), model.PartnerTypeSolution, 99, commission.ID)
	assert.ErrorIs(t, err, ErrCommissionNotFound)

	require.NoError(t, repo.Delete(context.Background(), model.PartnerTypeSolution, 5, commission.ID))

	_, err = repo.ForPartner(context.Background(), model.PartnerTypeSolution, 5, model.ServiceTypeHotel, nil)
	assert.ErrorIs(t, err, ErrCommissionNotFound)
}
