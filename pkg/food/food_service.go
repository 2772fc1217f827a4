package food

import (
	"context"
	"errors"
	"time"

	"WasteNot-Backend/domain"
	"WasteNot-Backend/entities"
	"WasteNot-Backend/pkg/freshness"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error)
		UpdateFoodItemStatus(ctx context.Context, id string, req domain.UpdateFoodItemStatusRequest, userID string) (domain.FoodItemResponse, error)
		RestoreFoodItem(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error)
		GetFoodItems(ctx context.Context, userID string, status string) ([]domain.FoodItemResponse, error)
		GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error)
		PermanentlyDeleteFoodItem(ctx context.Context, id string, userID string) error
		ComputeFreshness(ctx context.Context, id string, userID string) (domain.ComputeFreshnessResponse, error)
	}

	foodService struct {
		foodRepository FoodRepository
		estimator      *freshness.Estimator
	}
)

func NewFoodService(foodRepository FoodRepository, estimator *freshness.Estimator) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		estimator:      estimator,
	}
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
	}

	if req.ShelfLife < 1 {
		return domain.FoodItemResponse{}, domain.ErrInvalidShelfLife
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FoodItemResponse{}, domain.ErrParseUUID
	}

	freshnessScore := 100
	if req.Freshness != nil {
		if *req.Freshness < 0 || *req.Freshness > 100 {
			return domain.FoodItemResponse{}, domain.ErrFreshnessOutOfRange
		}
		freshnessScore = *req.Freshness
	}

	foodItem := &entities.FoodItem{
		ID:         uuid.New(),
		UserID:     userUUID,
		Name:       req.Name,
		ExpiryDate: expiryDate,
		Storage:    req.Storage,
		Condition:  req.Condition,
		AddedDate:  time.Now(),
		ShelfLife:  req.ShelfLife,
		Freshness:  freshnessScore,
		Status:     domain.StatusActive,
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(foodItem), nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	if req.Name != "" {
		foodItem.Name = req.Name
	}

	if req.ExpiryDate != "" {
		expiryDate, err := time.Parse("2006-01-02", req.ExpiryDate)
		if err != nil {
			return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
		}
		foodItem.ExpiryDate = expiryDate
	}

	if req.Storage != "" {
		foodItem.Storage = req.Storage
	}

	if req.Condition != "" {
		foodItem.Condition = req.Condition
	}

	if req.ShelfLife > 0 {
		foodItem.ShelfLife = req.ShelfLife
	}

	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(foodItem), nil
}

func (s *foodService) UpdateFoodItemStatus(ctx context.Context, id string, req domain.UpdateFoodItemStatusRequest, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	switch req.Status {
	case domain.StatusConsumed, domain.StatusWasted, domain.StatusDeleted:
	default:
		return domain.FoodItemResponse{}, domain.ErrInvalidItemStatus
	}

	removedDate := time.Now()
	if req.RemovedDate != "" {
		parsed, err := time.Parse("2006-01-02", req.RemovedDate)
		if err != nil {
			return domain.FoodItemResponse{}, domain.ErrInvalidExpiryDate
		}
		removedDate = parsed
	}

	foodItem.Status = req.Status
	foodItem.RemovedDate = &removedDate

	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(foodItem), nil
}

func (s *foodService) RestoreFoodItem(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	if foodItem.Status == domain.StatusActive {
		return domain.FoodItemResponse{}, domain.ErrItemNotRemoved
	}

	foodItem.Status = domain.StatusActive
	foodItem.RemovedDate = nil

	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(foodItem), nil
}

func (s *foodService) GetFoodItems(ctx context.Context, userID string, status string) ([]domain.FoodItemResponse, error) {
	if status == "" {
		status = domain.StatusActive
	}

	switch status {
	case domain.StatusActive, domain.StatusConsumed, domain.StatusWasted, domain.StatusDeleted:
	default:
		return nil, domain.ErrInvalidItemStatus
	}

	foodItems, err := s.foodRepository.GetFoodItemsByStatus(ctx, userID, status)
	if err != nil {
		return nil, err
	}

	response := make([]domain.FoodItemResponse, 0, len(foodItems))
	for _, item := range foodItems {
		response = append(response, toFoodItemResponse(item))
	}

	return response, nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string, userID string) (domain.FoodItemResponse, error) {
	foodItem, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	return toFoodItemResponse(foodItem), nil
}

func (s *foodService) PermanentlyDeleteFoodItem(ctx context.Context, id string, userID string) error {
	foodItem, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return err
	}

	if foodItem.Status != domain.StatusDeleted {
		return domain.ErrItemNotDeleted
	}

	return s.foodRepository.DeleteFoodItem(ctx, id)
}

// ComputeFreshness re-scores a single item and persists the result so list
// views and the alert generator can read it without re-asking the model.
func (s *foodService) ComputeFreshness(ctx context.Context, id string, userID string) (domain.ComputeFreshnessResponse, error) {
	foodItem, err := s.ownedItem(ctx, id, userID)
	if err != nil {
		return domain.ComputeFreshnessResponse{}, err
	}

	est := s.estimator.Estimate(ctx, freshness.ItemFacts{
		Name:       foodItem.Name,
		ExpiryDate: foodItem.ExpiryDate,
		AddedDate:  foodItem.AddedDate,
		ShelfLife:  foodItem.ShelfLife,
		Condition:  foodItem.Condition,
		Storage:    foodItem.Storage,
	}, time.Now())

	now := time.Now()
	foodItem.Freshness = est.Freshness
	foodItem.FreshnessReason = est.Explanation
	foodItem.LastFreshnessUpdate = &now

	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.ComputeFreshnessResponse{}, err
	}

	return domain.ComputeFreshnessResponse{
		Freshness:   est.Freshness,
		NeedsAlert:  est.NeedsAlert,
		Explanation: est.Explanation,
	}, nil
}

func (s *foodService) ownedItem(ctx context.Context, id string, userID string) (*entities.FoodItem, error) {
	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodItemNotFound
		}
		return nil, err
	}

	if foodItem.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedAccess
	}

	return foodItem, nil
}

func toFoodItemResponse(item *entities.FoodItem) domain.FoodItemResponse {
	return domain.FoodItemResponse{
		ID:                  item.ID.String(),
		Name:                item.Name,
		ExpiryDate:          item.ExpiryDate,
		Storage:             item.Storage,
		Condition:           item.Condition,
		AddedDate:           item.AddedDate,
		ShelfLife:           item.ShelfLife,
		Freshness:           item.Freshness,
		FreshnessReason:     item.FreshnessReason,
		LastFreshnessUpdate: item.LastFreshnessUpdate,
		Status:              item.Status,
		RemovedDate:         item.RemovedDate,
	}
}
