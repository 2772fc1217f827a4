package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGenerateAlerts = "alerts generated successfully"
	MessageSuccessGetAlerts      = "alerts retrieved successfully"
	MessageSuccessMarkAlertRead  = "alert marked as read"
	MessageSuccessClearAlerts    = "all alerts cleared"
	MessageFailedGenerateAlerts  = "failed to generate alerts"
	MessageFailedGetAlerts       = "failed to retrieve alerts"
	MessageFailedMarkAlertRead   = "failed to mark alert as read"
	MessageFailedClearAlerts     = "failed to clear alerts"

	ErrAlertNotFound = errors.New("alert not found")
)

const (
	AlertTypeExpired      = "expired"
	AlertTypeExpiringSoon = "expiring_soon"
	AlertTypeLowFreshness = "low_freshness"
)

type (
	// AlertRunSummary reports one pass of the alert lifecycle.
	AlertRunSummary struct {
		AlertsCreated             int `json:"alerts_created"`
		EmailsSent                int `json:"emails_sent"`
		CriticalItemsCount        int `json:"critical_items_count"`
		ItemsExpiringTomorrowCount int `json:"items_expiring_tomorrow_count"`
		TotalItemsProcessed       int `json:"total_items_processed"`
	}

	AlertResponse struct {
		ID            string    `json:"id"`
		FoodItemID    string    `json:"food_item_id"`
		ItemName      string    `json:"item_name"`
		ExpiryDate    time.Time `json:"expiry_date"`
		Type          string    `json:"type"`
		DaysRemaining int       `json:"days_remaining"`
		IsRead        bool      `json:"is_read"`
		IsCritical    bool      `json:"is_critical"`
		Freshness     int       `json:"freshness"`
		FoodCategory  string    `json:"food_category"`
		AlertReason   string    `json:"alert_reason"`
		CreatedAt     time.Time `json:"created_at"`
	}

	// ConsolidatedNotice is one outbound message covering every item a
	// recipient has expiring on the same calendar date.
	ConsolidatedNotice struct {
		RecipientEmail   string
		RecipientName    string
		Items            []NoticeItem
		ExpiryDate       time.Time
		DaysRemaining    int
		AlertType        string
		HasCriticalItems bool
	}

	NoticeItem struct {
		Name         string
		FoodCategory string
		Freshness    int
		Storage      string
		Condition    string
		IsCritical   bool
	}
)
