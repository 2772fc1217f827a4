package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name          string    `json:"name"`
	Email         string    `gorm:"uniqueIndex" json:"email"`
	AlertsEnabled bool      `gorm:"default:true" json:"alerts_enabled"`

	FoodItems []*FoodItem `gorm:"foreignKey:UserID"`
	Timestamp
}
