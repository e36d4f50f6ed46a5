package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tufan17/timhoty-backend-sub004/internal/model"
)

func TestNotificationListScopesToRecipient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepo(db)

	require.NoError(t, repo.Create(context.Background(), &model.Notification{
		TargetType: model.NotificationTargetUser, TargetID: 7,
		Title: "Reservation confirmed",
	}))
	require.NoError(t, repo.Create(context.Background(), &model.Notification{
		TargetType: model.NotificationTargetUser, TargetID: 8,
		Title: "Reservation confirmed",
	}))
	require.NoError(t, repo.Create(context.Background(), &model.Notification{
		TargetType: model.NotificationTargetSolutionPartner, TargetID: 7,
		Title: "New booking",
	}))

	notifications, total, err := repo.ListForTarget(context.Background(), model.NotificationTargetUser, 7, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Reservation confirmed", notifications[0].Title)
}

func TestMarkReadChecksRecipient(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNotificationRepo(db)

	notification := &model.Notification{
		TargetType: model.NotificationTargetUser, TargetID: 7,
		Title: "Reservation confirmed",
	}
	require.NoError(t, repo.Create(context.Background(), notification))

	err := repo.MarkRead(context.Background(), notification.ID, model.NotificationTargetUser, 99)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, repo.MarkRead(context.Background(), notification.ID, model.NotificationTargetUser, 7))

	notifications, _, err := repo.ListForTarget(context.Background(), model.NotificationTargetUser, 7, 0, 10)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.NotNil(t, notifications[0].ReadAt)
}
