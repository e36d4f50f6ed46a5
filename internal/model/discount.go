package model

import (
	"time"

	"gorm.io/gorm"
)

// DiscountCode is a redeemable code scoped to a service type. Amount caps
// the number of redemptions; there is no stored remaining-uses field, the
// remainder is Amount minus the count of successful DiscountUser rows.
type DiscountCode struct {
	ID             uint           `json:"id" gorm:"primarykey"`
	Code           string         `json:"code" gorm:"type:varchar(50);index;not null"`
	ServiceType    ServiceType    `json:"service_type" gorm:"type:varchar(20);index;not null"`
	Amount         int            `json:"amount" gorm:"not null"`
	Percentage     float64        `json:"percentage" gorm:"not null"`
	ValidityPeriod *time.Time     `json:"validity_period,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	Products []DiscountProduct `json:"products,omitempty" gorm:"foreignKey:DiscountCodeID"`
}

// Apply returns the base price after the percentage discount.
func (m *DiscountCode) Apply(base float64) float64 {
	discounted := base - base*m.Percentage/100
	if discounted < 0 {
		return 0
	}
	return discounted
}

// DiscountProduct scopes a discount code to one service+product pair. A
// code with no product rows is not redeemable anywhere.
type DiscountProduct struct {
	ID             uint           `json:"id" gorm:"primarykey"`
	DiscountCodeID uint           `json:"discount_code_id" gorm:"index;not null"`
	ServiceType    ServiceType    `json:"service_type" gorm:"type:varchar(20);not null"`
	ProductID      uint           `json:"product_id" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// DiscountUser records one successful redemption. It serves as the usage
// counter and audit trail for the code's cap.
type DiscountUser struct {
	ID             uint           `json:"id" gorm:"primarykey"`
	DiscountCodeID uint           `json:"discount_code_id" gorm:"index;not null"`
	UserID         uint           `json:"user_id" gorm:"index;not null"`
	ReservationID  uint           `json:"reservation_id" gorm:"index"`
	Status         bool           `json:"status" gorm:"default:true"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
