package repository

import (
	"context"
	"math"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
	"gorm.io/gorm"
)

// CommentRepo creates comments and keeps the per-service rating aggregate
// consistent with them.
type CommentRepo struct {
	db *gorm.DB
}

// NewCommentRepo constructs a CommentRepo.
func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// Create inserts a comment and recomputes the parent service's
// average_rating and comment_count in the same transaction. A second
// comment for the same (reservation, service_type, service_id, user)
// tuple is rejected with ErrDuplicateComment before insertion.
func (r *CommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&model.Comment{}).
			Where("reservation_id = ? AND service_type = ? AND service_id = ? AND user_id = ?",
				comment.ReservationID, comment.ServiceType, comment.ServiceID, comment.UserID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateComment
		}

		if err := tx.Create(comment).Error; err != nil {
			return err
		}

		return recomputeRating(tx, comment.ServiceType, comment.ServiceID)
	})
}

// Recompute recalculates the rating aggregate for a service from its
// non-deleted comments. It exists for the standalone path (moderation,
// backfills); Create already recomputes inline.
func (r *CommentRepo) Recompute(ctx context.Context, serviceType model.ServiceType, serviceID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return recomputeRating(tx, serviceType, serviceID)
	})
}

// recomputeRating writes average_rating = round(mean, 2) * 2 and
// comment_count onto the service row. Ratings come in on a 5-point scale
// and are stored doubled, on a 10-point scale.
func recomputeRating(tx *gorm.DB, serviceType model.ServiceType, serviceID uint) error {
	var ratings []int
	err := tx.Model(&model.Comment{}).
		Where("service_type = ? AND service_id = ?", serviceType, serviceID).
		Pluck("rating", &ratings).Error
	if err != nil {
		return err
	}

	average := 0.0
	if len(ratings) > 0 {
		sum := 0
		for _, rating := range ratings {
			sum += rating
		}
		mean := float64(sum) / float64(len(ratings))
		average = math.Round(mean*100) / 100 * 2
	}

	return tx.Model(&model.Service{}).
		Where("id = ?", serviceID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"comment_count":  len(ratings),
		}).Error
}

// ListByService returns a page of comments for one service, newest first.
func (r *CommentRepo) ListByService(ctx context.Context, serviceType model.ServiceType, serviceID uint, offset, limit int) ([]model.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("service_type = ? AND service_id = ?", serviceType, serviceID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}
