package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	Title              string    `json:"title"`
	Ingredients        string    `json:"ingredients" gorm:"type:text"`
	Instructions       string    `json:"instructions" gorm:"type:text"`
	PrepTime           string    `json:"prep_time"`
	CookTime           string    `json:"cook_time"`
	MatchedIngredients string    `json:"matched_ingredients" gorm:"type:text"`
	IsGenerated        bool      `json:"is_generated"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
