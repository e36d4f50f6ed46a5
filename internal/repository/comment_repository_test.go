package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
)

func serviceRating(t *testing.T, db *gorm.DB, serviceID uint) (float64, int) {
	t.Helper()
	var svc model.Service
	require.NoError(t, db.First(&svc, serviceID).Error)
	return svc.AverageRating, svc.CommentCount
}

func TestCreateCommentRecomputesRating(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepo(db)
	svc := createService(t, db, model.ServiceTypeHotel, true)

	require.NoError(t, repo.Create(context.Background(), &model.Comment{
		ServiceType: model.ServiceTypeHotel, ServiceID: svc.ID,
		UserID: 1, ReservationID: 10, Rating: 4, Comment: "Nice stay",
	}))
	require.NoError(t, repo.Create(context.Background(), &model.Comment{
		ServiceType: model.ServiceTypeHotel, ServiceID: svc.ID,
		UserID: 2, ReservationID: 11, Rating: 5, Comment: "Great stay",
	}))

	// Mean 4.5 on the five-point input scale, stored doubled.
	average, count := serviceRating(t, db, svc.ID)
	assert.InDelta(t, 9.0, average, 1e-9)
	assert.Equal(t, 2, count)
}

func TestAverageRoundsBeforeDoubling(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepo(db)
	svc := createService(t, db, model.ServiceTypeTour, true)

	for i, rating := range []int{4, 4, 5} {
		require.NoError(t, repo.Create(context.Background(), &model.Comment{
			ServiceType: model.ServiceTypeTour, ServiceID: svc.ID,
			UserID: uint(i + 1), ReservationID: uint(20 + i), Rating: rating,
		}))
	}

	// Mean 4.333..., rounded to 4.33, doubled to 8.66.
	average, count := serviceRating(t, db, svc.ID)
	assert.InDelta(t, 8.66, average, 1e-9)
	assert.Equal(t, 3, count)
}

func TestDuplicateCommentRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepo(db)
	svc := createService(t, db, model.ServiceTypeHotel, true)

	comment := model.Comment{
		ServiceType: model.ServiceTypeHotel, ServiceID: svc.ID,
		UserID: 1, ReservationID: 10, Rating: 4,
	}
	require.NoError(t, repo.Create(context.Background(), &comment))

	duplicate := model.Comment{
		ServiceType: model.ServiceTypeHotel, ServiceID: svc.ID,
		UserID: 1, ReservationID: 10, Rating: 1,
	}
	err := repo.Create(context.Background(), &duplicate)
	assert.ErrorIs(t, err, ErrDuplicateComment)

	// The rejected comment must not move the aggregate.
	average, count := serviceRating(t, db, svc.ID)
	assert.InDelta(t, 8.0, average, 1e-9)
	assert.Equal(t, 1, count)
}

func TestRecomputeWithoutComments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepo(db)
	svc := createService(t, db, model.ServiceTypeActivity, true)
	require.NoError(t, db.Model(svc).Updates(map[string]interface{}{
		"average_rating": 7.5, "comment_count": 3,
	}).Error)

	require.NoError(t, repo.Recompute(context.Background(), model.ServiceTypeActivity, svc.ID))

	average, count := serviceRating(t, db, svc.ID)
	assert.Zero(t, average)
	assert.Zero(t, count)
}

func TestListByServiceScopesToTarget(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCommentRepo(db)
	hotel := createService(t, db, model.ServiceTypeHotel, true)
	tour := createService(t, db, model.ServiceTypeTour, true)

	require.NoError(t, repo.Create(context.Background(), &model.Comment{
		ServiceType: model.ServiceTypeHotel, ServiceID: hotel.ID,
		UserID: 1, ReservationID: 10, Rating: 4,
	}))
	require.NoError(t, repo.Create(context.Background(), &model.Comment{
		ServiceType: model.ServiceTypeTour, ServiceID: tour.ID,
		UserID: 1, ReservationID: 11, Rating: 5,
	}))

	comments, total, err := repo.ListByService(context.Background(), model.ServiceTypeHotel, hotel.ID, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, comments, 1)
	assert.Equal(t, hotel.ID, comments[0].ServiceID)
}
