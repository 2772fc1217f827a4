package food

import (
	"context"
	"testing"
	"time"

	"WasteNot-Backend/domain"
	"WasteNot-Backend/entities"
	"WasteNot-Backend/pkg/freshness"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFoodRepository struct {
	items map[string]*entities.FoodItem
}

func newFakeFoodRepository() *fakeFoodRepository {
	return &fakeFoodRepository{items: make(map[string]*entities.FoodItem)}
}

func (f *fakeFoodRepository) AddFoodItem(_ context.Context, foodItem *entities.FoodItem) error {
	clone := *foodItem
	f.items[foodItem.ID.String()] = &clone
	return nil
}

func (f *fakeFoodRepository) GetFoodItemByID(_ context.Context, id string) (*entities.FoodItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *item
	return &clone, nil
}

func (f *fakeFoodRepository) UpdateFoodItem(_ context.Context, foodItem *entities.FoodItem) error {
	clone := *foodItem
	f.items[foodItem.ID.String()] = &clone
	return nil
}

func (f *fakeFoodRepository) DeleteFoodItem(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeFoodRepository) GetFoodItemsByStatus(_ context.Context, userID string, status string) ([]*entities.FoodItem, error) {
	var out []*entities.FoodItem
	for _, item := range f.items {
		if item.UserID.String() == userID && item.Status == status {
			clone := *item
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeFoodRepository) GetItemsNeedingAttention(_ context.Context) ([]*entities.FoodItem, error) {
	return nil, nil
}

func (f *fakeFoodRepository) GetSoonestExpiring(_ context.Context, userID string, limit int) ([]*entities.FoodItem, error) {
	return nil, nil
}

func newTestFoodService(repo FoodRepository) FoodService {
	classifier := freshness.NewClassifier(freshness.DefaultKeywords())
	estimator := freshness.NewEstimator(nil, freshness.NewCalculator(classifier), freshness.NewGuardrail(classifier), classifier)
	return NewFoodService(repo, estimator)
}

func TestAddFoodItem(t *testing.T) {
	repo := newFakeFoodRepository()
	service := newTestFoodService(repo)
	userID := uuid.New().String()

	resp, err := service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:       "Whole Milk",
		ExpiryDate: time.Now().AddDate(0, 0, 5).Format("2006-01-02"),
		Storage:    domain.StorageFridge,
		Condition:  domain.ConditionFresh,
		ShelfLife:  7,
	}, userID)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, resp.Status)
	assert.Equal(t, 100, resp.Freshness)
	assert.Len(t, repo.items, 1)
}

func TestAddFoodItemRejectsBadInput(t *testing.T) {
	service := newTestFoodService(newFakeFoodRepository())
	userID := uuid.New().String()

	_, err := service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:       "Whole Milk",
		ExpiryDate: "not-a-date",
		Storage:    domain.StorageFridge,
		Condition:  domain.ConditionFresh,
		ShelfLife:  7,
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidExpiryDate)

	_, err = service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:       "Whole Milk",
		ExpiryDate: "2025-06-20",
		Storage:    domain.StorageFridge,
		Condition:  domain.ConditionFresh,
		ShelfLife:  0,
	}, userID)
	assert.ErrorIs(t, err, domain.ErrInvalidShelfLife)

	bad := 140
	_, err = service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:       "Whole Milk",
		ExpiryDate: "2025-06-20",
		Storage:    domain.StorageFridge,
		Condition:  domain.ConditionFresh,
		ShelfLife:  7,
		Freshness:  &bad,
	}, userID)
	assert.ErrorIs(t, err, domain.ErrFreshnessOutOfRange)
}

func TestUpdateFoodItemChecksOwnership(t *testing.T) {
	repo := newFakeFoodRepository()
	service := newTestFoodService(repo)
	owner := uuid.New().String()

	resp, err := service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:       "Sourdough Bread",
		ExpiryDate: time.Now().AddDate(0, 0, 3).Format("2006-01-02"),
		Storage:    domain.StoragePantry,
		Condition:  domain.ConditionFresh,
		ShelfLife:  4,
	}, owner)
	require.NoError(t, err)

	_, err = service.UpdateFoodItem(context.Background(), resp.ID, domain.UpdateFoodItemRequest{Name: "Rye Bread"}, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	updated, err := service.UpdateFoodItem(context.Background(), resp.ID, domain.UpdateFoodItemRequest{Name: "Rye Bread"}, owner)
	require.NoError(t, err)
	assert.Equal(t, "Rye Bread", updated.Name)
	assert.Equal(t, 4, updated.ShelfLife)
}

func TestUpdateFoodItemStatusSetsRemovedDate(t *testing.T) {
	repo := newFakeFoodRepository()
	service := newTestFoodService(repo)
	owner := uuid.New().String()

	resp, err := service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:       "Greek Yogurt",
		ExpiryDate: time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
		Storage:    domain.StorageFridge,
		Condition:  domain.ConditionFresh,
		ShelfLife:  10,
	}, owner)
	require.NoError(t, err)

	updated, err := service.UpdateFoodItemStatus(context.Background(), resp.ID, domain.UpdateFoodItemStatusRequest{Status: domain.StatusConsumed}, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConsumed, updated.Status)
	require.NotNil(t, updated.RemovedDate)

	_, err = service.UpdateFoodItemStatus(context.Background(), resp.ID, domain.UpdateFoodItemStatusRequest{Status: "eaten"}, owner)
	assert.ErrorIs(t, err, domain.ErrInvalidItemStatus)
}

func TestRestoreFoodItem(t *testing.T) {
	repo := newFakeFoodRepository()
	service := newTestFoodService(repo)
	owner := uuid.New().String()

	resp, err := service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:       "Hummus",
		ExpiryDate: time.Now().AddDate(0, 0, 2).Format("2006-01-02"),
		Storage:    domain.StorageFridge,
		Condition:  domain.ConditionOpened,
		ShelfLife:  5,
	}, owner)
	require.NoError(t, err)

	_, err = service.RestoreFoodItem(context.Background(), resp.ID, owner)
	assert.ErrorIs(t, err, domain.ErrItemNotRemoved)

	_, err = service.UpdateFoodItemStatus(context.Background(), resp.ID, domain.UpdateFoodItemStatusRequest{Status: domain.StatusWasted}, owner)
	require.NoError(t, err)

	restored, err := service.RestoreFoodItem(context.Background(), resp.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, restored.Status)
	assert.Nil(t, restored.RemovedDate)
}

func TestPermanentlyDeleteFoodItem(t *testing.T) {
	repo := newFakeFoodRepository()
	service := newTestFoodService(repo)
	owner := uuid.New().String()

	resp, err := service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:       "Leftover Curry",
		ExpiryDate: time.Now().AddDate(0, 0, 1).Format("2006-01-02"),
		Storage:    domain.StorageFridge,
		Condition:  domain.ConditionFresh,
		ShelfLife:  3,
	}, owner)
	require.NoError(t, err)

	err = service.PermanentlyDeleteFoodItem(context.Background(), resp.ID, owner)
	assert.ErrorIs(t, err, domain.ErrItemNotDeleted)

	_, err = service.UpdateFoodItemStatus(context.Background(), resp.ID, domain.UpdateFoodItemStatusRequest{Status: domain.StatusDeleted}, owner)
	require.NoError(t, err)

	require.NoError(t, service.PermanentlyDeleteFoodItem(context.Background(), resp.ID, owner))
	assert.Empty(t, repo.items)
}

func TestComputeFreshnessPersistsScore(t *testing.T) {
	repo := newFakeFoodRepository()
	service := newTestFoodService(repo)
	owner := uuid.New().String()

	resp, err := service.AddFoodItem(context.Background(), domain.AddFoodItemRequest{
		Name:       "Whole Milk",
		ExpiryDate: time.Now().AddDate(0, 0, -1).Format("2006-01-02"),
		Storage:    domain.StorageFridge,
		Condition:  domain.ConditionFresh,
		ShelfLife:  7,
	}, owner)
	require.NoError(t, err)

	result, err := service.ComputeFreshness(context.Background(), resp.ID, owner)
	require.NoError(t, err)
	assert.LessOrEqual(t, result.Freshness, 20)
	assert.True(t, result.NeedsAlert)

	stored, err := service.GetFoodItemByID(context.Background(), resp.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, result.Freshness, stored.Freshness)
	assert.Equal(t, result.Explanation, stored.FreshnessReason)
	require.NotNil(t, stored.LastFreshnessUpdate)
}

func TestGetFoodItemsValidatesStatus(t *testing.T) {
	service := newTestFoodService(newFakeFoodRepository())

	_, err := service.GetFoodItems(context.Background(), uuid.New().String(), "archived")
	assert.ErrorIs(t, err, domain.ErrInvalidItemStatus)

	items, err := service.GetFoodItems(context.Background(), uuid.New().String(), "")
	require.NoError(t, err)
	assert.Empty(t, items)
}
