package model

import (
	"time"

	"gorm.io/gorm"
)

// Comment is an end-user review left after a reservation. A user may
// comment once per reservation per service; creating one triggers the
// recomputation of the parent service's rating aggregate.
type Comment struct {
	ID            uint           `json:"id" gorm:"primarykey"`
	ServiceType   ServiceType    `json:"service_type" gorm:"type:varchar(20);index:idx_comment_target;not null"`
	ServiceID     uint           `json:"service_id" gorm:"index:idx_comment_target;not null"`
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	ReservationID uint           `json:"reservation_id" gorm:"index;not null"`
	Comment       string         `json:"comment" gorm:"type:text"`
	Rating        int            `json:"rating" gorm:"not null"`
	LanguageCode  string         `json:"language_code" gorm:"type:varchar(2)"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
