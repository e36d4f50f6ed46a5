package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilPublisherIsNoOp(t *testing.T) {
	var p *Publisher

	assert.NoError(t, p.PublishReservationConfirmed(context.Background(), ReservationConfirmedEvent{
		ReservationID:   1,
		ReservationCode: "abc",
		Amount:          100,
	}))
	assert.NoError(t, p.PublishNotificationCreated(context.Background(), NotificationCreatedEvent{
		NotificationID: 1,
	}))
	p.Close()
}
