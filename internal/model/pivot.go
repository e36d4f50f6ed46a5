package model

import (
	"time"

	"gorm.io/gorm"
)

// ServicePivot holds the translated text fields for one service in one
// language. At most one non-deleted row exists per (service_id,
// language_code); the content repository enforces this on every write.
type ServicePivot struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	ServiceID    uint           `json:"service_id" gorm:"index:idx_service_pivot_lang;not null"`
	LanguageCode string         `json:"language_code" gorm:"type:varchar(2);index:idx_service_pivot_lang;not null"`
	Title        string         `json:"title" gorm:"type:varchar(255);not null"`
	GeneralInfo  string         `json:"general_info" gorm:"type:text"`
	RefundPolicy string         `json:"refund_policy" gorm:"type:text"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Language is the registry of supported content languages. The
// translate-and-create protocol iterates every active row.
type Language struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Code      string         `json:"code" gorm:"type:varchar(2);uniqueIndex;not null"`
	Name      string         `json:"name" gorm:"type:varchar(50);not null"`
	Status    bool           `json:"status" gorm:"default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// Currency is the display currency registry. Prices reference one currency
// per row; no conversion is done server-side.
type Currency struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Code      string         `json:"code" gorm:"type:varchar(3);uniqueIndex;not null"`
	Symbol    string         `json:"symbol" gorm:"type:varchar(5)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// CurrencyPivot holds the localized display name of a currency.
type CurrencyPivot struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	CurrencyID   uint           `json:"currency_id" gorm:"index:idx_currency_pivot_lang;not null"`
	LanguageCode string         `json:"language_code" gorm:"type:varchar(2);index:idx_currency_pivot_lang;not null"`
	Name         string         `json:"name" gorm:"type:varchar(100);not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
