package model

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses.
const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

// Reservation is a booking of one package by one user. Amount is the final
// figure handed to the payment gateway: resolved price, package
// discount/tax and any redeemed discount code already applied.
type Reservation struct {
	ID             uint           `json:"id" gorm:"primarykey"`
	Code           string         `json:"code" gorm:"type:varchar(36);uniqueIndex;not null"`
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	ServiceType    ServiceType    `json:"service_type" gorm:"type:varchar(20);not null"`
	ServiceID      uint           `json:"service_id" gorm:"index;not null"`
	PackageID      uint           `json:"package_id" gorm:"index;not null"`
	PackagePriceID uint           `json:"package_price_id" gorm:"not null"`
	Date           time.Time      `json:"date" gorm:"not null"`
	Amount         float64        `json:"amount" gorm:"not null"`
	CurrencyID     uint           `json:"currency_id" gorm:"not null"`
	DiscountCodeID *uint          `json:"discount_code_id,omitempty"`
	Status         string         `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
