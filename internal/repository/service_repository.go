package repository

import (
	"context"
	"errors"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"gorm.io/gorm"
)

// ServiceRepo maintains service rows, their lifecycle flags and their
// packages.
type ServiceRepo struct {
	db *gorm.DB
}

// NewServiceRepo constructs a ServiceRepo.
func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

// GetByID returns a non-deleted service.
func (r *ServiceRepo) GetByID(ctx context.Context, id uint) (*model.Service, error) {
	var svc model.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &svc, nil
}

// SaveDetail inserts a per-variant detail row (hotel, car rental, ...).
func (r *ServiceRepo) SaveDetail(ctx context.Context, detail interface{}) error {
	return r.db.WithContext(ctx).Create(detail).Error
}

// ListFilter narrows the localized listing.
type ListFilter struct {
	Type         *model.ServiceType
	LanguageCode string
	Search       string
	OnlyApproved bool
	Highlight    *bool
}

// LocalizedServiceRow is one row of the localized listing: service columns
// joined to the pivot for the requested language.
type LocalizedServiceRow struct {
	ID                uint              `json:"id"`
	Type              model.ServiceType `json:"type"`
	SolutionPartnerID uint              `json:"solution_partner_id"`
	Status            bool              `json:"status"`
	Highlight         bool              `json:"highlight"`
	AdminApproval     bool              `json:"admin_approval"`
	CommentCount      int               `json:"comment_count"`
	AverageRating     float64           `json:"average_rating"`
	LanguageCode      string            `json:"language_code"`
	Title             string            `json:"title"`
	GeneralInfo       string            `json:"general_info"`
	RefundPolicy      string            `json:"refund_policy"`
}

// ListLocalized returns a page of services joined to their pivots for one
// language. Services without a pivot in that language do not appear,
// consistent with the strict per-language resolve contract.
func (r *ServiceRepo) ListLocalized(ctx context.Context, filter ListFilter, offset, limit int) ([]LocalizedServiceRow, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Service{}).
		Joins("JOIN service_pivots sp ON sp.service_id = services.id AND sp.language_code = ? AND sp.deleted_at IS NULL",
			filter.LanguageCode)

	if filter.Type != nil {
		query = query.Where("services.type = ?", *filter.Type)
	}
	if filter.OnlyApproved {
		query = query.Where("services.admin_approval = ? AND services.status = ?", true, true)
	}
	if filter.Highlight != nil {
		query = query.Where("services.highlight = ?", *filter.Highlight)
	}
	if filter.Search != "" {
		query = query.Where("sp.title LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []LocalizedServiceRow
	err := query.
		Select(`services.id, services.type, services.solution_partner_id, services.status,
			services.highlight, services.admin_approval, services.comment_count, services.average_rating,
			sp.language_code, sp.title, sp.general_info, sp.refund_policy`).
		Order("services.created_at DESC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// Approve marks a pending service as approved by the admin.
func (r *ServiceRepo) Approve(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&model.Service{}).
		Where("id = ?", id).
		Update("admin_approval", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// SetHighlight toggles the highlight flag.
func (r *ServiceRepo) SetHighlight(ctx context.Context, id uint, highlight bool) error {
	result := r.db.WithContext(ctx).Model(&model.Service{}).
		Where("id = ?", id).
		Update("highlight", highlight)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// SoftDelete marks the service removed. Rows are never hard-deleted.
func (r *ServiceRepo) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Service{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrServiceNotFound
	}
	return nil
}

// GetPackage returns a non-deleted package.
func (r *ServiceRepo) GetPackage(ctx context.Context, packageID uint) (*model.Package, error) {
	var pkg model.Package
	if err := r.db.WithContext(ctx).First(&pkg, packageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

// ListPackages returns the non-deleted packages of a service with their
// price rows.
func (r *ServiceRepo) ListPackages(ctx context.Context, serviceID uint) ([]model.Package, error) {
	var packages []model.Package
	err := r.db.WithContext(ctx).
		Preload("Prices").
		Where("service_id = ?", serviceID).
		Order("id ASC").
		Find(&packages).Error
	if err != nil {
		return nil, err
	}
	return packages, nil
}

// ReplacePackages soft-deletes the service's current packages (and their
// price rows) and inserts the replacements, all in one transaction.
func (r *ServiceRepo) ReplacePackages(ctx context.Context, serviceID uint, packages []model.Package) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var svc model.Service
		if err := tx.First(&svc, serviceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrServiceNotFound
			}
			return err
		}

		var oldIDs []uint
		if err := tx.Model(&model.Package{}).
			Where("service_id = ?", serviceID).
			Pluck("id", &oldIDs).Error; err != nil {
			return err
		}

		if len(oldIDs) > 0 {
			if err := tx.Where("package_id IN ?", oldIDs).Delete(&model.PackagePrice{}).Error; err != nil {
				return err
			}
			if err := tx.Where("service_id = ?", serviceID).Delete(&model.Package{}).Error; err != nil {
				return err
			}
		}

		for i := range packages {
			packages[i].ID = 0
			packages[i].ServiceID = serviceID
			if err := tx.Create(&packages[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
