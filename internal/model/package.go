package model

import (
	"time"

	"gorm.io/gorm"
)

// Package is a sellable sub-unit of a service: a room type, car class,
// tour slot, activity slot or visa variant. When ConstantPrice is true a
// single price row applies regardless of date; otherwise prices carry
// validity windows. StartDate/EndDate bound package availability itself
// (used by tours and activities).
type Package struct {
	ID                     uint           `json:"id" gorm:"primarykey"`
	ServiceID              uint           `json:"service_id" gorm:"index;not null"`
	Name                   string         `json:"name" gorm:"type:varchar(255)"`
	Discount               *float64       `json:"discount,omitempty"`
	TotalTaxAmount         float64        `json:"total_tax_amount" gorm:"default:0"`
	ConstantPrice          bool           `json:"constant_price" gorm:"default:false"`
	ReturnAcceptancePeriod *int           `json:"return_acceptance_period,omitempty"`
	StartDate              *time.Time     `json:"start_date,omitempty"`
	EndDate                *time.Time     `json:"end_date,omitempty"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`

	Prices []PackagePrice `json:"prices,omitempty" gorm:"foreignKey:PackageID"`
}

// PackagePrice is a priced instance of a package. For calendar-priced
// packages StartDate/EndDate delimit the validity window; for
// constant-price packages the earliest-created row is authoritative and
// the window is ignored.
type PackagePrice struct {
	ID         uint           `json:"id" gorm:"primarykey"`
	PackageID  uint           `json:"package_id" gorm:"index;not null"`
	MainPrice  float64        `json:"main_price" gorm:"not null"`
	ChildPrice *float64       `json:"child_price,omitempty"`
	BabyPrice  *float64       `json:"baby_price,omitempty"`
	CurrencyID uint           `json:"currency_id" gorm:"index;not null"`
	StartDate  *time.Time     `json:"start_date,omitempty"`
	EndDate    *time.Time     `json:"end_date,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
