package repository

import (
	"context"
	"errors"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"gorm.io/gorm"
)

// CommissionRepo looks up and maintains partner commission records.
type CommissionRepo struct {
	db *gorm.DB
}

// NewCommissionRepo constructs a CommissionRepo.
func NewCommissionRepo(db *gorm.DB) *CommissionRepo {
	return &CommissionRepo{db: db}
}

// ForPartner resolves the applicable commission for a partner and service
// type. When serviceID is non-nil and a row scoped to that exact service
// exists, it overrides the partner-wide default; the preference is
// implemented explicitly here since storage allows both rows to coexist.
func (r *CommissionRepo) ForPartner(ctx context.Context, partnerType model.PartnerType, partnerID uint, serviceType model.ServiceType, serviceID *uint) (*model.Commission, error) {
	base := r.db.WithContext(ctx).
		Where("partner_type = ? AND partner_id = ? AND service_type = ?", partnerType, partnerID, serviceType)

	if serviceID != nil {
		var scoped model.Commission
		err := base.Session(&gorm.Session{}).
			Where("service_id = ?", *serviceID).
			First(&scoped).Error
		if err == nil {
			return &scoped, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	var def model.Commission
	err := base.Session(&gorm.Session{}).
		Where("service_id IS NULL").
		First(&def).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommissionNotFound
		}
		return nil, err
	}

	return &def, nil
}

// Upsert is the partner self-service write: it updates the existing row for
// the same (partner, service_type, service_id) scope or creates one.
func (r *CommissionRepo) Upsert(ctx context.Context, commission *model.Commission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.
			Where("partner_type = ? AND partner_id = ? AND service_type = ?",
				commission.PartnerType, commission.PartnerID, commission.ServiceType)
		if commission.ServiceID != nil {
			query = query.Where("service_id = ?", *commission.ServiceID)
		} else {
			query = query.Where("service_id IS NULL")
		}

		var existing model.Commission
		err := query.First(&existing).Error
		switch {
		case err == nil:
			existing.CommissionType = commission.CommissionType
			existing.CommissionValue = commission.CommissionValue
			existing.CommissionCurrency = commission.CommissionCurrency
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			*commission = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(commission).Error
		default:
			return err
		}
	})
}

// Delete soft-deletes a commission row owned by the partner.
func (r *CommissionRepo) Delete(ctx context.Context, partnerType model.PartnerType, partnerID, commissionID uint) error {
	result := r.db.WithContext(ctx).
		Where("partner_type = ? AND partner_id = ?", partnerType, partnerID).
		Delete(&model.Commission{}, commissionID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCommissionNotFound
	}
	return nil
}
