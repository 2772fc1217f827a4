package alert

import (
	"context"
	"errors"
	"log"
	"math"
	"sync"
	"time"

	"WasteNot-Backend/domain"
	"WasteNot-Backend/entities"
	"WasteNot-Backend/pkg/food"
	"WasteNot-Backend/pkg/freshness"
	"WasteNot-Backend/pkg/user"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	AlertService interface {
		GenerateAlerts(ctx context.Context) (domain.AlertRunSummary, error)
		EnsureFresh(ctx context.Context)
		GetAlerts(ctx context.Context, userID string) ([]domain.AlertResponse, error)
		MarkAlertRead(ctx context.Context, alertID string, userID string) error
		ClearAllAlerts(ctx context.Context, userID string) error
	}

	alertService struct {
		alertRepository AlertRepository
		foodRepository  food.FoodRepository
		userRepository  user.UserRepository
		notifier        Notifier
		classifier      *freshness.Classifier

		refreshInterval time.Duration
		mu              sync.Mutex
		lastRun         time.Time
	}
)

func NewAlertService(
	alertRepository AlertRepository,
	foodRepository food.FoodRepository,
	userRepository user.UserRepository,
	notifier Notifier,
	classifier *freshness.Classifier,
	refreshInterval time.Duration,
) AlertService {
	return &alertService{
		alertRepository: alertRepository,
		foodRepository:  foodRepository,
		userRepository:  userRepository,
		notifier:        notifier,
		classifier:      classifier,
		refreshInterval: refreshInterval,
	}
}

// GenerateAlerts runs one pass of the alert lifecycle: scan items needing
// attention, create or refresh their alerts, then dispatch one consolidated
// notice per (recipient, expiry date) group. Only the initial scan aborts
// the run; per-item and per-group failures are logged and skipped.
func (s *alertService) GenerateAlerts(ctx context.Context) (domain.AlertRunSummary, error) {
	now := time.Now()

	items, err := s.foodRepository.GetItemsNeedingAttention(ctx)
	if err != nil {
		return domain.AlertRunSummary{}, err
	}

	summary := domain.AlertRunSummary{TotalItemsProcessed: len(items)}

	for _, item := range items {
		daysRemaining := calendarDaysRemaining(item.ExpiryDate, now)

		alertType := domain.AlertTypeExpiringSoon
		if daysRemaining <= 0 {
			alertType = domain.AlertTypeExpired
		}

		isCritical := (daysRemaining == 0 && item.Condition == domain.ConditionNearExpiry) ||
			daysRemaining < 0 ||
			item.Freshness < 30 ||
			((s.classifier.IsDairy(item.Name) || s.classifier.IsMeat(item.Name)) && item.Freshness < 40)

		expiringTomorrow := daysRemaining == 1

		// Critical or expiring-tomorrow items get a fresh unread alert even
		// if one already exists; otherwise an existing unread alert is only
		// refreshed while the item still looks urgent.
		forceRecreate := isCritical || expiringTomorrow
		allowUpdate := isCritical || expiringTomorrow || item.Freshness < 40 ||
			(item.Condition == domain.ConditionNearExpiry && daysRemaining <= 3)

		candidate := &entities.Alert{
			ID:            uuid.New(),
			UserID:        item.UserID,
			FoodItemID:    item.ID,
			ItemName:      item.Name,
			ExpiryDate:    item.ExpiryDate,
			Type:          alertType,
			DaysRemaining: daysRemaining,
			IsCritical:    isCritical,
			Freshness:     item.Freshness,
			FoodCategory:  string(s.classifier.Categorize(item.Name)),
			AlertReason:   item.FreshnessReason,
			CreatedAt:     now,
		}

		created, err := s.alertRepository.RefreshForItem(ctx, candidate, forceRecreate, allowUpdate)
		if err != nil {
			log.Printf("failed to refresh alert for item %s: %v", item.ID, err)
			continue
		}

		if created {
			summary.AlertsCreated++
		}
		if isCritical {
			summary.CriticalItemsCount++
		}
		if expiringTomorrow {
			summary.ItemsExpiringTomorrowCount++
		}
	}

	emailsSent, err := s.dispatchUnsent(ctx, now)
	if err != nil {
		log.Printf("failed to collect unsent alerts: %v", err)
	}
	summary.EmailsSent = emailsSent

	return summary, nil
}

// EnsureFresh runs GenerateAlerts at most once per refresh interval. Callers
// that read alerts use it to bound staleness without triggering a full run
// on every request.
func (s *alertService) EnsureFresh(ctx context.Context) {
	s.mu.Lock()
	if !s.lastRun.IsZero() && time.Since(s.lastRun) < s.refreshInterval {
		s.mu.Unlock()
		return
	}
	s.lastRun = time.Now()
	s.mu.Unlock()

	if _, err := s.GenerateAlerts(ctx); err != nil {
		log.Printf("alert refresh failed: %v", err)
	}
}

func (s *alertService) GetAlerts(ctx context.Context, userID string) ([]domain.AlertResponse, error) {
	s.EnsureFresh(ctx)

	alerts, err := s.alertRepository.GetAlertsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.AlertResponse, 0, len(alerts))
	for _, a := range alerts {
		response = append(response, domain.AlertResponse{
			ID:            a.ID.String(),
			FoodItemID:    a.FoodItemID.String(),
			ItemName:      a.ItemName,
			ExpiryDate:    a.ExpiryDate,
			Type:          a.Type,
			DaysRemaining: a.DaysRemaining,
			IsRead:        a.IsRead,
			IsCritical:    a.IsCritical,
			Freshness:     a.Freshness,
			FoodCategory:  a.FoodCategory,
			AlertReason:   a.AlertReason,
			CreatedAt:     a.CreatedAt,
		})
	}

	return response, nil
}

func (s *alertService) MarkAlertRead(ctx context.Context, alertID string, userID string) error {
	a, err := s.alertRepository.GetAlertByID(ctx, alertID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAlertNotFound
		}
		return err
	}

	if a.UserID.String() != userID {
		return domain.ErrUnauthorizedAccess
	}

	a.IsRead = true
	return s.alertRepository.UpdateAlert(ctx, a)
}

func (s *alertService) ClearAllAlerts(ctx context.Context, userID string) error {
	return s.alertRepository.DeleteAlertsByUser(ctx, userID)
}

type noticeGroup struct {
	userID    uuid.UUID
	expiryDay time.Time
	alerts    []*entities.Alert
}

func (s *alertService) dispatchUnsent(ctx context.Context, now time.Time) (int, error) {
	unsent, err := s.alertRepository.GetUnsentAlertsForActiveItems(ctx)
	if err != nil {
		return 0, err
	}

	groups := make(map[string]*noticeGroup)
	var order []string
	for _, a := range unsent {
		day := truncateToDay(a.ExpiryDate)
		key := a.UserID.String() + "|" + day.Format("2006-01-02")
		g, ok := groups[key]
		if !ok {
			g = &noticeGroup{userID: a.UserID, expiryDay: day}
			groups[key] = g
			order = append(order, key)
		}
		g.alerts = append(g.alerts, a)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		sent int
	)

	for _, key := range order {
		group := groups[key]
		wg.Add(1)
		go func(group *noticeGroup) {
			defer wg.Done()
			if !s.dispatchGroup(ctx, group, now) {
				return
			}
			mu.Lock()
			sent++
			mu.Unlock()
		}(group)
	}
	wg.Wait()

	return sent, nil
}

func (s *alertService) dispatchGroup(ctx context.Context, group *noticeGroup, now time.Time) bool {
	recipient := group.alerts[0].User
	if recipient == nil {
		u, err := s.userRepository.GetUserByID(ctx, group.userID.String())
		if err != nil {
			log.Printf("failed to load recipient %s: %v", group.userID, err)
			return false
		}
		recipient = u
	}

	if !recipient.AlertsEnabled {
		return false
	}

	daysRemaining := calendarDaysRemaining(group.expiryDay, now)
	alertType := domain.AlertTypeExpiringSoon
	if daysRemaining <= 0 {
		alertType = domain.AlertTypeExpired
	}

	notice := domain.ConsolidatedNotice{
		RecipientEmail: recipient.Email,
		RecipientName:  recipient.Name,
		ExpiryDate:     group.expiryDay,
		DaysRemaining:  daysRemaining,
		AlertType:      alertType,
	}

	for _, a := range group.alerts {
		item := domain.NoticeItem{
			Name:         a.ItemName,
			FoodCategory: a.FoodCategory,
			Freshness:    a.Freshness,
			IsCritical:   a.IsCritical,
		}
		if a.FoodItem != nil {
			item.Storage = a.FoodItem.Storage
			item.Condition = a.FoodItem.Condition
		}
		notice.Items = append(notice.Items, item)
		notice.HasCriticalItems = notice.HasCriticalItems || a.IsCritical
	}

	if !s.notifier.SendConsolidatedExpiryNotice(notice) {
		return false
	}

	ids := make([]uuid.UUID, 0, len(group.alerts))
	for _, a := range group.alerts {
		ids = append(ids, a.ID)
	}
	if err := s.alertRepository.MarkEmailSent(ctx, ids); err != nil {
		log.Printf("failed to mark alerts sent for %s: %v", recipient.Email, err)
	}

	return true
}

// calendarDaysRemaining compares calendar dates, not elapsed duration, so an
// item expiring later today counts as 0 days and tomorrow as 1.
func calendarDaysRemaining(expiry, now time.Time) int {
	today := truncateToDay(now)
	expiryDay := truncateToDay(expiry)

	switch {
	case expiryDay.Equal(today):
		return 0
	case expiryDay.Equal(today.AddDate(0, 0, 1)):
		return 1
	default:
		return int(math.Round(expiryDay.Sub(today).Hours() / 24))
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
