package food

import (
	"context"

	"WasteNot-Backend/entities"

	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error)
		UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error
		DeleteFoodItem(ctx context.Context, id string) error
		GetFoodItemsByStatus(ctx context.Context, userID string, status string) ([]*entities.FoodItem, error)
		GetItemsNeedingAttention(ctx context.Context) ([]*entities.FoodItem, error)
		GetSoonestExpiring(ctx context.Context, userID string, limit int) ([]*entities.FoodItem, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Create(foodItem).Error
}

func (r *foodRepository) GetFoodItemByID(ctx context.Context, id string) (*entities.FoodItem, error) {
	var foodItem entities.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&foodItem).Error; err != nil {
		return nil, err
	}
	return &foodItem, nil
}

func (r *foodRepository) UpdateFoodItem(ctx context.Context, foodItem *entities.FoodItem) error {
	return r.db.WithContext(ctx).Save(foodItem).Error
}

func (r *foodRepository) DeleteFoodItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.FoodItem{}).Error
}

func (r *foodRepository) GetFoodItemsByStatus(ctx context.Context, userID string, status string) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem

	query := r.db.WithContext(ctx).Where("user_id = ? AND status = ?", userID, status)
	if status == "active" {
		query = query.Order("added_date desc")
	} else {
		query = query.Order("removed_date desc")
	}

	if err := query.Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}

// GetItemsNeedingAttention loads every active item that may need an alert:
// expiring within three days (or already expired), low freshness, or marked
// near expiry by the user.
func (r *foodRepository) GetItemsNeedingAttention(ctx context.Context) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem

	if err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Where(
			r.db.Where("expiry_date <= (CURRENT_DATE + INTERVAL '3 days')").
				Or("freshness < ?", 40).
				Or("condition = ?", "Near expiry"),
		).
		Preload("User").
		Find(&foodItems).Error; err != nil {
		return nil, err
	}

	return foodItems, nil
}

func (r *foodRepository) GetSoonestExpiring(ctx context.Context, userID string, limit int) ([]*entities.FoodItem, error) {
	var foodItems []*entities.FoodItem

	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, "active").
		Order("expiry_date asc").
		Limit(limit).
		Find(&foodItems).Error; err != nil {
		return nil, err
	}
	return foodItems, nil
}
