package model

import (
	"time"

	"gorm.io/gorm"
)

// Commission types.
const (
	CommissionTypePercentage = "percentage"
	CommissionTypeFixed      = "fixed"
)

// Commission is a partner's commission record for a service type. A row
// with ServiceID set is scoped to that single service and overrides the
// partner-wide default (ServiceID null) for it. Rows are only ever
// soft-deleted.
type Commission struct {
	ID                 uint           `json:"id" gorm:"primarykey"`
	PartnerType        PartnerType    `json:"partner_type" gorm:"type:varchar(20);index:idx_commission_owner;not null"`
	PartnerID          uint           `json:"partner_id" gorm:"index:idx_commission_owner;not null"`
	ServiceType        ServiceType    `json:"service_type" gorm:"type:varchar(20);index:idx_commission_owner;not null"`
	ServiceID          *uint          `json:"service_id,omitempty" gorm:"index"`
	CommissionType     string         `json:"commission_type" gorm:"type:varchar(20);not null"`
	CommissionValue    float64        `json:"commission_value" gorm:"not null"`
	CommissionCurrency string         `json:"commission_currency" gorm:"type:varchar(3)"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Amount computes the commission owed on a base price: a percentage cut or
// a fixed figure in the commission currency.
func (m *Commission) Amount(base float64) float64 {
	if m.CommissionType == CommissionTypePercentage {
		return base * m.CommissionValue / 100
	}
	return m.CommissionValue
}
