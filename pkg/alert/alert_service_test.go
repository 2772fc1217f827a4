package alert

import (
	"context"
	"sync"
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

type fixture struct {
	mu     sync.Mutex
	items  []*entities.FoodItem
	users  map[uuid.UUID]*entities.User
	alerts []*entities.Alert

	scanCount int
}

func newFixture() *fixture {
	return &fixture{users: make(map[uuid.UUID]*entities.User)}
}

func (f *fixture) addUser(name, email string, alertsEnabled bool) uuid.UUID {
	id := uuid.New()
	f.users[id] = &entities.User{ID: id, Name: name, Email: email, AlertsEnabled: alertsEnabled}
	return id
}

func (f *fixture) addItem(userID uuid.UUID, name string, expiry time.Time, condition string, freshnessScore int) *entities.FoodItem {
	item := &entities.FoodItem{
		ID:         uuid.New(),
		UserID:     userID,
		Name:       name,
		ExpiryDate: expiry,
		Storage:    domain.StorageFridge,
		Condition:  condition,
		ShelfLife:  7,
		Freshness:  freshnessScore,
		Status:     domain.StatusActive,
	}
	f.items = append(f.items, item)
	return item
}

func (f *fixture) unreadAlerts(foodItemID uuid.UUID, alertType string) []*entities.Alert {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Alert
	for _, a := range f.alerts {
		if a.FoodItemID == foodItemID && a.Type == alertType && !a.IsRead {
			out = append(out, a)
		}
	}
	return out
}

type fixtureFoodRepository struct{ f *fixture }

func (r *fixtureFoodRepository) AddFoodItem(context.Context, *entities.FoodItem) error { return nil }
func (r *fixtureFoodRepository) GetFoodItemByID(context.Context, string) (*entities.FoodItem, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *fixtureFoodRepository) UpdateFoodItem(context.Context, *entities.FoodItem) error { return nil }
func (r *fixtureFoodRepository) DeleteFoodItem(context.Context, string) error            { return nil }
func (r *fixtureFoodRepository) GetFoodItemsByStatus(context.Context, string, string) ([]*entities.FoodItem, error) {
	return nil, nil
}
func (r *fixtureFoodRepository) GetSoonestExpiring(context.Context, string, int) ([]*entities.FoodItem, error) {
	return nil, nil
}

func (r *fixtureFoodRepository) GetItemsNeedingAttention(context.Context) ([]*entities.FoodItem, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	r.f.scanCount++
	var out []*entities.FoodItem
	for _, item := range r.f.items {
		if item.Status == domain.StatusActive {
			out = append(out, item)
		}
	}
	return out, nil
}

type fixtureUserRepository struct{ f *fixture }

func (r *fixtureUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	for _, u := range r.f.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fixtureUserRepository) GetUserByEmail(context.Context, string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

type fixtureAlertRepository struct{ f *fixture }

func (r *fixtureAlertRepository) RefreshForItem(_ context.Context, candidate *entities.Alert, forceRecreate, allowUpdate bool) (bool, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	if forceRecreate {
		kept := r.f.alerts[:0]
		for _, a := range r.f.alerts {
			if a.FoodItemID == candidate.FoodItemID && a.Type == candidate.Type && !a.IsRead {
				continue
			}
			kept = append(kept, a)
		}
		r.f.alerts = kept
	}

	for _, a := range r.f.alerts {
		if a.FoodItemID == candidate.FoodItemID && a.Type == candidate.Type && !a.IsRead {
			if allowUpdate {
				a.DaysRemaining = candidate.DaysRemaining
				a.Freshness = candidate.Freshness
				a.IsCritical = candidate.IsCritical
				a.AlertReason = candidate.AlertReason
				a.IsEmailSent = false
			}
			return false, nil
		}
	}

	clone := *candidate
	r.f.alerts = append(r.f.alerts, &clone)
	return true, nil
}

func (r *fixtureAlertRepository) GetUnsentAlertsForActiveItems(context.Context) ([]*entities.Alert, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	var out []*entities.Alert
	for _, a := range r.f.alerts {
		if a.IsEmailSent {
			continue
		}
		for _, item := range r.f.items {
			if item.ID == a.FoodItemID && item.Status == domain.StatusActive {
				clone := *a
				clone.User = r.f.users[a.UserID]
				clone.FoodItem = item
				out = append(out, &clone)
				break
			}
		}
	}
	return out, nil
}

func (r *fixtureAlertRepository) MarkEmailSent(_ context.Context, alertIDs []uuid.UUID) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	for _, id := range alertIDs {
		for _, a := range r.f.alerts {
			if a.ID == id {
				a.IsEmailSent = true
			}
		}
	}
	return nil
}

func (r *fixtureAlertRepository) GetAlertsByUser(_ context.Context, userID string) ([]*entities.Alert, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	var out []*entities.Alert
	for _, a := range r.f.alerts {
		if a.UserID.String() == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fixtureAlertRepository) GetAlertByID(_ context.Context, id string) (*entities.Alert, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	for _, a := range r.f.alerts {
		if a.ID.String() == id {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fixtureAlertRepository) UpdateAlert(_ context.Context, alert *entities.Alert) error {
	return nil
}

func (r *fixtureAlertRepository) DeleteAlertsByUser(_ context.Context, userID string) error {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()

	kept := r.f.alerts[:0]
	for _, a := range r.f.alerts {
		if a.UserID.String() != userID {
			kept = append(kept, a)
		}
	}
	r.f.alerts = kept
	return nil
}

type recordingNotifier struct {
	mu      sync.Mutex
	notices []domain.ConsolidatedNotice
	failFor map[string]bool
}

func (n *recordingNotifier) SendConsolidatedExpiryNotice(notice domain.ConsolidatedNotice) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.failFor[notice.RecipientEmail] {
		return false
	}
	n.notices = append(n.notices, notice)
	return true
}

func newTestAlertService(f *fixture, notifier Notifier) AlertService {
	return NewAlertService(
		&fixtureAlertRepository{f: f},
		&fixtureFoodRepository{f: f},
		&fixtureUserRepository{f: f},
		notifier,
		freshness.NewClassifier(freshness.DefaultKeywords()),
		10*time.Minute,
	)
}

func TestGenerateAlertsConsolidatesByRecipientAndDate(t *testing.T) {
	f := newFixture()
	owner := f.addUser("Dina", "dina@example.com", true)
	tomorrow := time.Now().AddDate(0, 0, 1)
	f.addItem(owner, "Whole Milk", tomorrow, domain.ConditionFresh, 55)
	f.addItem(owner, "Baby Spinach", tomorrow, domain.ConditionFresh, 50)

	notifier := &recordingNotifier{}
	service := newTestAlertService(f, notifier)

	summary, err := service.GenerateAlerts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.AlertsCreated)
	assert.Equal(t, 1, summary.EmailsSent)
	assert.Equal(t, 2, summary.ItemsExpiringTomorrowCount)
	assert.Equal(t, 2, summary.TotalItemsProcessed)

	require.Len(t, notifier.notices, 1)
	notice := notifier.notices[0]
	assert.Equal(t, "dina@example.com", notice.RecipientEmail)
	assert.Len(t, notice.Items, 2)
	assert.Equal(t, 1, notice.DaysRemaining)
	assert.Equal(t, domain.AlertTypeExpiringSoon, notice.AlertType)

	for _, a := range f.alerts {
		assert.True(t, a.IsEmailSent)
	}
}

func TestGenerateAlertsSecondRunCreatesNothingForStableItems(t *testing.T) {
	f := newFixture()
	owner := f.addUser("Dina", "dina@example.com", true)
	// Three days out, decent freshness: neither critical nor expiring
	// tomorrow, so the second run must not touch the existing alert.
	f.addItem(owner, "Canned Soup", time.Now().AddDate(0, 0, 3), domain.ConditionFresh, 70)

	notifier := &recordingNotifier{}
	service := newTestAlertService(f, notifier)

	first, err := service.GenerateAlerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.AlertsCreated)
	assert.Equal(t, 1, first.EmailsSent)

	second, err := service.GenerateAlerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.AlertsCreated)
	assert.Equal(t, 0, second.EmailsSent)

	assert.Len(t, f.unreadAlerts(f.items[0].ID, domain.AlertTypeExpiringSoon), 1)
}

func TestGenerateAlertsCriticalItemGetsFreshAlert(t *testing.T) {
	f := newFixture()
	owner := f.addUser("Dina", "dina@example.com", true)
	item := f.addItem(owner, "Chicken Breast", time.Now().AddDate(0, 0, -2), domain.ConditionFresh, 10)

	notifier := &recordingNotifier{}
	service := newTestAlertService(f, notifier)

	first, err := service.GenerateAlerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.AlertsCreated)
	assert.Equal(t, 1, first.CriticalItemsCount)

	// A critical item is re-alerted on every run, but never accumulates
	// duplicate unread alerts.
	second, err := service.GenerateAlerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, second.AlertsCreated)
	assert.Len(t, f.unreadAlerts(item.ID, domain.AlertTypeExpired), 1)
	assert.True(t, f.unreadAlerts(item.ID, domain.AlertTypeExpired)[0].IsCritical)
}

func TestGenerateAlertsDispatchFailureIsIsolated(t *testing.T) {
	f := newFixture()
	ok := f.addUser("Dina", "dina@example.com", true)
	broken := f.addUser("Rafi", "rafi@example.com", true)
	tomorrow := time.Now().AddDate(0, 0, 1)
	f.addItem(ok, "Whole Milk", tomorrow, domain.ConditionFresh, 55)
	f.addItem(broken, "Greek Yogurt", tomorrow, domain.ConditionFresh, 55)

	notifier := &recordingNotifier{failFor: map[string]bool{"rafi@example.com": true}}
	service := newTestAlertService(f, notifier)

	summary, err := service.GenerateAlerts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.EmailsSent)
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, "dina@example.com", notifier.notices[0].RecipientEmail)

	for _, a := range f.alerts {
		if a.UserID == broken {
			assert.False(t, a.IsEmailSent)
		} else {
			assert.True(t, a.IsEmailSent)
		}
	}
}

func TestGenerateAlertsSeparateDatesGetSeparateNotices(t *testing.T) {
	f := newFixture()
	owner := f.addUser("Dina", "dina@example.com", true)
	f.addItem(owner, "Whole Milk", time.Now().AddDate(0, 0, 1), domain.ConditionFresh, 55)
	f.addItem(owner, "Sourdough Bread", time.Now().AddDate(0, 0, 2), domain.ConditionNearExpiry, 45)

	notifier := &recordingNotifier{}
	service := newTestAlertService(f, notifier)

	summary, err := service.GenerateAlerts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.EmailsSent)
	assert.Len(t, notifier.notices, 2)
}

func TestGenerateAlertsSkipsRecipientsWithAlertsDisabled(t *testing.T) {
	f := newFixture()
	owner := f.addUser("Dina", "dina@example.com", false)
	f.addItem(owner, "Whole Milk", time.Now().AddDate(0, 0, 1), domain.ConditionFresh, 55)

	notifier := &recordingNotifier{}
	service := newTestAlertService(f, notifier)

	summary, err := service.GenerateAlerts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.AlertsCreated)
	assert.Equal(t, 0, summary.EmailsSent)
	assert.Empty(t, notifier.notices)
}

func TestGenerateAlertsExpiredTyping(t *testing.T) {
	f := newFixture()
	owner := f.addUser("Dina", "dina@example.com", true)
	f.addItem(owner, "Hummus", time.Now(), domain.ConditionNearExpiry, 25)

	notifier := &recordingNotifier{}
	service := newTestAlertService(f, notifier)

	summary, err := service.GenerateAlerts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.CriticalItemsCount)
	require.Len(t, notifier.notices, 1)
	assert.Equal(t, domain.AlertTypeExpired, notifier.notices[0].AlertType)
	assert.True(t, notifier.notices[0].HasCriticalItems)
	assert.Equal(t, 0, notifier.notices[0].DaysRemaining)
}

func TestEnsureFreshThrottlesRuns(t *testing.T) {
	f := newFixture()
	owner := f.addUser("Dina", "dina@example.com", true)
	f.addItem(owner, "Whole Milk", time.Now().AddDate(0, 0, 1), domain.ConditionFresh, 55)

	service := newTestAlertService(f, &recordingNotifier{})

	service.EnsureFresh(context.Background())
	service.EnsureFresh(context.Background())
	service.EnsureFresh(context.Background())

	assert.Equal(t, 1, f.scanCount)
}

func TestGetAlertsRefreshesFirst(t *testing.T) {
	f := newFixture()
	owner := f.addUser("Dina", "dina@example.com", true)
	f.addItem(owner, "Whole Milk", time.Now().AddDate(0, 0, 1), domain.ConditionFresh, 55)

	service := newTestAlertService(f, &recordingNotifier{})

	alerts, err := service.GetAlerts(context.Background(), owner.String())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Whole Milk", alerts[0].ItemName)
	assert.Equal(t, 1, f.scanCount)
}

func TestMarkAlertReadChecksOwnership(t *testing.T) {
	f := newFixture()
	owner := f.addUser("Dina", "dina@example.com", true)
	f.addItem(owner, "Whole Milk", time.Now().AddDate(0, 0, 1), domain.ConditionFresh, 55)

	service := newTestAlertService(f, &recordingNotifier{})
	_, err := service.GenerateAlerts(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, f.alerts)

	alertID := f.alerts[0].ID.String()

	err = service.MarkAlertRead(context.Background(), alertID, uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedAccess)

	err = service.MarkAlertRead(context.Background(), alertID, owner.String())
	require.NoError(t, err)

	err = service.MarkAlertRead(context.Background(), uuid.New().String(), owner.String())
	assert.ErrorIs(t, err, domain.ErrAlertNotFound)
}

func TestCalendarDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 15, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, calendarDaysRemaining(time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 1, calendarDaysRemaining(time.Date(2025, 6, 16, 0, 30, 0, 0, time.UTC), now))
	assert.Equal(t, 3, calendarDaysRemaining(time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC), now))
	assert.Equal(t, -2, calendarDaysRemaining(time.Date(2025, 6, 13, 23, 0, 0, 0, time.UTC), now))
}
