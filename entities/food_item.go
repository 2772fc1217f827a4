package entities

import (
	"time"

	"github.com/google/uuid"
)

type FoodItem struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID              uuid.UUID  `json:"user_id"`
	Name                string     `json:"name"`
	ExpiryDate          time.Time  `json:"expiry_date"`
	Storage             string     `json:"storage"`   // "Fridge", "Freezer", "Pantry"
	Condition           string     `json:"condition"` // "Freshly bought", "Near expiry", "Already opened"
	AddedDate           time.Time  `json:"added_date"`
	ShelfLife           int        `json:"shelf_life"`
	Freshness           int        `gorm:"default:100" json:"freshness"`
	FreshnessReason     string     `json:"freshness_reason"`
	LastFreshnessUpdate *time.Time `json:"last_freshness_update,omitempty"`
	Status              string     `gorm:"default:active" json:"status"` // "active", "consumed", "wasted", "deleted"
	RemovedDate         *time.Time `json:"removed_date,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
