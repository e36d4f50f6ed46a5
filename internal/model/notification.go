package model

import (
	"time"

	"gorm.io/gorm"
)

// Notification targets.
const (
	NotificationTargetUser            = "user"
	NotificationTargetSolutionPartner = "solution_partner"
	NotificationTargetSalesPartner    = "sales_partner"
	NotificationTargetAdmin           = "admin"
)

// Notification is an in-app notification row. Outbound delivery channels
// (email, WhatsApp, push) consume these via the queue events.
type Notification struct {
	ID          uint           `json:"id" gorm:"primarykey"`
	TargetType  string         `json:"target_type" gorm:"type:varchar(20);index:idx_notification_target;not null"`
	TargetID    uint           `json:"target_id" gorm:"index:idx_notification_target;not null"`
	ServiceType *ServiceType   `json:"service_type,omitempty" gorm:"type:varchar(20)"`
	Title       string         `json:"title" gorm:"type:varchar(255);not null"`
	Body        string         `json:"body" gorm:"type:text"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
