package model

import (
	"time"

	"gorm.io/gorm"
)

// Service is a bookable offering owned by exactly one solution partner.
// Type-specific attributes live in the per-variant detail rows below.
// Services are created pending approval and never hard-deleted.
type Service struct {
	ID                uint           `json:"id" gorm:"primarykey"`
	Type              ServiceType    `json:"type" gorm:"type:varchar(20);index;not null"`
	SolutionPartnerID uint           `json:"solution_partner_id" gorm:"index;not null"`
	Status            bool           `json:"status" gorm:"default:true"`
	Highlight         bool           `json:"highlight" gorm:"default:false"`
	AdminApproval     bool           `json:"admin_approval" gorm:"default:false"`
	CommentCount      int            `json:"comment_count" gorm:"default:0"`
	AverageRating     float64        `json:"average_rating" gorm:"default:0"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// HotelDetail holds hotel-specific attributes.
type HotelDetail struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	ServiceID    uint           `json:"service_id" gorm:"uniqueIndex;not null"`
	StarRating   int            `json:"star_rating"`
	Pool         bool           `json:"pool" gorm:"default:false"`
	PrivateBeach bool           `json:"private_beach" gorm:"default:false"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// CarRentalDetail holds car-rental-specific attributes.
type CarRentalDetail struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	ServiceID uint           `json:"service_id" gorm:"uniqueIndex;not null"`
	CarType   string         `json:"car_type" gorm:"type:varchar(50)"`
	GearType  string         `json:"gear_type" gorm:"type:varchar(20)"`
	DoorCount int            `json:"door_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TourDetail holds tour-specific attributes.
type TourDetail struct {
	ID           uint           `json:"id" gorm:"primarykey"`
	ServiceID    uint           `json:"service_id" gorm:"uniqueIndex;not null"`
	DurationDays int            `json:"duration_days"`
	MaxGuests    int            `json:"max_guests"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// ActivityDetail holds activity-specific attributes.
type ActivityDetail struct {
	ID              uint           `json:"id" gorm:"primarykey"`
	ServiceID       uint           `json:"service_id" gorm:"uniqueIndex;not null"`
	DurationMinutes int            `json:"duration_minutes"`
	MaxParticipants int            `json:"max_participants"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// VisaDetail holds visa-specific attributes.
type VisaDetail struct {
	ID             uint           `json:"id" gorm:"primarykey"`
	ServiceID      uint           `json:"service_id" gorm:"uniqueIndex;not null"`
	Country        string         `json:"country" gorm:"type:varchar(100)"`
	ProcessingDays int            `json:"processing_days"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
