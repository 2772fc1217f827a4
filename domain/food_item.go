package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessAddFoodItem        = "food item added successfully"
	MessageSuccessUpdateFoodItem     = "food item updated successfully"
	MessageSuccessDeleteFoodItem     = "food item deleted successfully"
	MessageSuccessGetFoodItems       = "food items retrieved successfully"
	MessageSuccessUpdateStatus       = "food item status updated successfully"
	MessageSuccessRestoreFoodItem    = "food item restored successfully"
	MessageSuccessComputeFreshness   = "freshness computed successfully"
	MessageFailedAddFoodItem         = "failed to add food item"
	MessageFailedUpdateFoodItem      = "failed to update food item"
	MessageFailedDeleteFoodItem      = "failed to delete food item"
	MessageFailedGetFoodItems        = "failed to retrieve food items"
	MessageFailedUpdateStatus        = "failed to update food item status"
	MessageFailedRestoreFoodItem     = "failed to restore food item"
	MessageFailedComputeFreshness    = "failed to compute freshness"
	MessageFailedPermanentlyDeleting = "failed to permanently delete food item"

	ErrFoodItemNotFound      = errors.New("food item not found")
	ErrInvalidExpiryDate     = errors.New("invalid expiry date")
	ErrInvalidShelfLife      = errors.New("shelf life must be at least 1 day")
	ErrInvalidStorage        = errors.New("invalid storage location")
	ErrInvalidCondition      = errors.New("invalid condition")
	ErrInvalidItemStatus     = errors.New("invalid status value")
	ErrItemNotDeleted        = errors.New("only items in the deleted list can be permanently removed")
	ErrItemNotRemoved        = errors.New("food item is not in a removed state")
	ErrUnauthorizedAccess    = errors.New("unauthorized access to food item")
	ErrFreshnessOutOfRange   = errors.New("freshness must be between 0 and 100")
	ErrOracleProcessingError = errors.New("completion service processing failed")
)

// Storage locations and conditions accepted on food items.
const (
	StorageFridge  = "Fridge"
	StorageFreezer = "Freezer"
	StoragePantry  = "Pantry"

	ConditionFresh      = "Freshly bought"
	ConditionNearExpiry = "Near expiry"
	ConditionOpened     = "Already opened"

	StatusActive   = "active"
	StatusConsumed = "consumed"
	StatusWasted   = "wasted"
	StatusDeleted  = "deleted"
)

type (
	AddFoodItemRequest struct {
		Name       string `json:"name" validate:"required"`
		ExpiryDate string `json:"expiry_date" validate:"required"`
		Storage    string `json:"storage" validate:"required,oneof=Fridge Freezer Pantry"`
		Condition  string `json:"condition" validate:"required,oneof='Freshly bought' 'Near expiry' 'Already opened'"`
		ShelfLife  int    `json:"shelf_life" validate:"required,min=1"`
		Freshness  *int   `json:"freshness" validate:"omitempty,min=0,max=100"`
	}

	UpdateFoodItemRequest struct {
		Name       string `json:"name" validate:"omitempty"`
		ExpiryDate string `json:"expiry_date" validate:"omitempty"`
		Storage    string `json:"storage" validate:"omitempty,oneof=Fridge Freezer Pantry"`
		Condition  string `json:"condition" validate:"omitempty,oneof='Freshly bought' 'Near expiry' 'Already opened'"`
		ShelfLife  int    `json:"shelf_life" validate:"omitempty,min=1"`
	}

	UpdateFoodItemStatusRequest struct {
		Status      string `json:"status" validate:"required,oneof=consumed wasted deleted"`
		RemovedDate string `json:"removed_date" validate:"omitempty"`
	}

	FoodItemResponse struct {
		ID                  string     `json:"id"`
		Name                string     `json:"name"`
		ExpiryDate          time.Time  `json:"expiry_date"`
		Storage             string     `json:"storage"`
		Condition           string     `json:"condition"`
		AddedDate           time.Time  `json:"added_date"`
		ShelfLife           int        `json:"shelf_life"`
		Freshness           int        `json:"freshness"`
		FreshnessReason     string     `json:"freshness_reason"`
		LastFreshnessUpdate *time.Time `json:"last_freshness_update,omitempty"`
		Status              string     `json:"status"`
		RemovedDate         *time.Time `json:"removed_date,omitempty"`
	}

	ComputeFreshnessResponse struct {
		Freshness   int    `json:"freshness"`
		NeedsAlert  bool   `json:"needs_alert"`
		Explanation string `json:"explanation"`
	}
)
