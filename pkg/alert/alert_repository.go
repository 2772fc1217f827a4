package alert

import (
	"context"
	"errors"

	"WasteNot-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AlertRepository interface {
		// RefreshForItem applies one item's alert decision atomically:
		// optionally delete the unread alert of the same (item, type),
		// then create the candidate if no unread alert remains, update
		// it in place when allowed, or leave it untouched. Returns
		// whether a new alert row was created.
		RefreshForItem(ctx context.Context, candidate *entities.Alert, forceRecreate, allowUpdate bool) (bool, error)
		GetUnsentAlertsForActiveItems(ctx context.Context) ([]*entities.Alert, error)
		MarkEmailSent(ctx context.Context, alertIDs []uuid.UUID) error
		GetAlertsByUser(ctx context.Context, userID string) ([]*entities.Alert, error)
		GetAlertByID(ctx context.Context, id string) (*entities.Alert, error)
		UpdateAlert(ctx context.Context, alert *entities.Alert) error
		DeleteAlertsByUser(ctx context.Context, userID string) error
	}

	alertRepository struct {
		db *gorm.DB
	}
)

func NewAlertRepository(db *gorm.DB) AlertRepository {
	return &alertRepository{db: db}
}

func (r *alertRepository) RefreshForItem(ctx context.Context, candidate *entities.Alert, forceRecreate, allowUpdate bool) (bool, error) {
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if forceRecreate {
			if err := tx.
				Where("food_item_id = ? AND type = ? AND is_read = ?", candidate.FoodItemID, candidate.Type, false).
				Delete(&entities.Alert{}).Error; err != nil {
				return err
			}
		}

		var existing entities.Alert
		err := tx.
			Where("food_item_id = ? AND type = ? AND is_read = ?", candidate.FoodItemID, candidate.Type, false).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			return tx.Create(candidate).Error
		}
		if err != nil {
			return err
		}

		if !allowUpdate {
			return nil
		}

		existing.DaysRemaining = candidate.DaysRemaining
		existing.Freshness = candidate.Freshness
		existing.IsCritical = candidate.IsCritical
		existing.AlertReason = candidate.AlertReason
		existing.IsEmailSent = false
		return tx.Save(&existing).Error
	})

	return created, err
}

func (r *alertRepository) GetUnsentAlertsForActiveItems(ctx context.Context) ([]*entities.Alert, error) {
	var alerts []*entities.Alert

	if err := r.db.WithContext(ctx).
		Joins("JOIN food_items ON food_items.id = alerts.food_item_id").
		Where("alerts.is_email_sent = ? AND food_items.status = ?", false, "active").
		Preload("User").
		Preload("FoodItem").
		Find(&alerts).Error; err != nil {
		return nil, err
	}

	return alerts, nil
}

func (r *alertRepository) MarkEmailSent(ctx context.Context, alertIDs []uuid.UUID) error {
	if len(alertIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&entities.Alert{}).
		Where("id IN ?", alertIDs).
		Update("is_email_sent", true).Error
}

func (r *alertRepository) GetAlertsByUser(ctx context.Context, userID string) ([]*entities.Alert, error) {
	var alerts []*entities.Alert

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&alerts).Error; err != nil {
		return nil, err
	}

	return alerts, nil
}

func (r *alertRepository) GetAlertByID(ctx context.Context, id string) (*entities.Alert, error) {
	var alert entities.Alert
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&alert).Error; err != nil {
		return nil, err
	}
	return &alert, nil
}

func (r *alertRepository) UpdateAlert(ctx context.Context, alert *entities.Alert) error {
	return r.db.WithContext(ctx).Save(alert).Error
}

func (r *alertRepository) DeleteAlertsByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.Alert{}).Error
}
