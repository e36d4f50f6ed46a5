// Package queue defines the message payloads and the publisher for
// outbound domain events. Delivery channels (email, WhatsApp, push) are
// separate consumers of these queues.
package queue

// ReservationConfirmedEvent is published when a reservation reaches the
// confirmed state. It carries enough for downstream notifiers without a
// database round trip.
type ReservationConfirmedEvent struct {
	ReservationID   uint    `json:"reservation_id"`
	ReservationCode string  `json:"reservation_code"`
	UserID          uint    `json:"user_id"`
	ServiceType     string  `json:"service_type"`
	ServiceID       uint    `json:"service_id"`
	PackageID       uint    `json:"package_id"`
	Amount          float64 `json:"amount"`
	CurrencyID      uint    `json:"currency_id"`
	Date            string  `json:"date"`
	ConfirmedAt     string  `json:"confirmed_at"`
}

// NotificationCreatedEvent is published when an in-app notification row is
// created, so delivery channels can fan it out.
type NotificationCreatedEvent struct {
	NotificationID uint   `json:"notification_id"`
	TargetType     string `json:"target_type"`
	TargetID       uint   `json:"target_id"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	CreatedAt      string `json:"created_at"`
}
