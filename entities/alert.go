package entities

import (
	"time"

	"github.com/google/uuid"
)

type Alert struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	FoodItemID    uuid.UUID `json:"food_item_id"`
	ItemName      string    `json:"item_name"`
	ExpiryDate    time.Time `json:"expiry_date"`
	Type          string    `json:"type"` // "expired", "expiring_soon", "low_freshness"
	DaysRemaining int       `json:"days_remaining"`
	IsRead        bool      `gorm:"default:false" json:"is_read"`
	IsEmailSent   bool      `gorm:"default:false" json:"is_email_sent"`
	IsCritical    bool      `gorm:"default:false" json:"is_critical"`
	Freshness     int       `gorm:"default:100" json:"freshness"`
	FoodCategory  string    `gorm:"default:other" json:"food_category"`
	AlertReason   string    `json:"alert_reason"`
	CreatedAt     time.Time `gorm:"type:timestamp" json:"created_at"`

	User     *User     `gorm:"foreignKey:UserID"`
	FoodItem *FoodItem `gorm:"foreignKey:FoodItemID"`
}
