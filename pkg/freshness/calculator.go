package freshness

import (
	"math"
	"time"

	"WasteNot-Backend/domain"
)

// ItemFacts are the item attributes the freshness engine reads. They are a
// detached snapshot so the engine never touches persistence.
type ItemFacts struct {
	Name       string
	ExpiryDate time.Time
	AddedDate  time.Time
	ShelfLife  int
	Condition  string
	Storage    string
}

// Assessment is the engine's verdict on one item.
type Assessment struct {
	Freshness    int
	NeedsAlert   bool
	Explanation  string
	FoodCategory Category
	DecayPattern DecayPattern
}

const explanationLimit = 100

type Calculator struct {
	classifier *Classifier
}

func NewCalculator(classifier *Classifier) *Calculator {
	return &Calculator{classifier: classifier}
}

// DaysUntilExpiry is the whole-day distance from today to expiry with both
// dates truncated to midnight. Negative once the item has expired.
func DaysUntilExpiry(expiry, today time.Time) int {
	e := truncateToDay(expiry)
	t := truncateToDay(today)
	return int(math.Floor(e.Sub(t).Hours() / 24))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Calculate computes a 0-100 freshness score and alert flag from shelf-life
// ratios, the category decay model and a layered set of modifiers and hard
// caps. Total over well-formed input; it is also the fallback when the AI
// oracle is unavailable.
func (c *Calculator) Calculate(facts ItemFacts, today time.Time) Assessment {
	daysUntilExpiry := DaysUntilExpiry(facts.ExpiryDate, today)

	shelfLife := facts.ShelfLife
	if shelfLife <= 0 {
		shelfLife = 7
	}

	category := c.classifier.Categorize(facts.Name)
	params := ResolveDecay(category, facts.Condition, facts.Storage)

	var freshness float64
	var explanation string
	var needsAlert bool

	switch {
	case daysUntilExpiry == 0 && facts.Condition == domain.ConditionNearExpiry:
		freshness = 30
		explanation = "Near expiry item expiring today"
		needsAlert = true
	case daysUntilExpiry == 0 && c.classifier.IsDairy(facts.Name):
		freshness = 40
		explanation = "Dairy product expiring today"
		needsAlert = true
	case daysUntilExpiry < 0:
		freshness = clampFloat(20+float64(daysUntilExpiry*params.DecayRate), 0, 20)
		explanation = "Expired food"
		needsAlert = true
	case daysUntilExpiry == 0:
		freshness = math.Min(50, 50+float64(shelfLife)*0.2)
		explanation = "Expiring today"
		needsAlert = true
	case daysUntilExpiry >= shelfLife:
		freshness = float64(params.MaxFreshness)
		explanation = "Very fresh"
	default:
		remaining := float64(daysUntilExpiry) / float64(shelfLife)
		switch params.Pattern {
		case DecayExponential:
			freshness = math.Round(float64(params.MaxFreshness) * math.Pow(remaining, 1.5))
			explanation = "Rapid decay pattern"
		case DecaySlow:
			freshness = math.Round(float64(params.MaxFreshness) * math.Pow(remaining, 0.7))
			explanation = "Slow decay pattern"
		default:
			freshness = math.Round(float64(params.MaxFreshness) * remaining)
			explanation = "Standard decay pattern"
		}
		needsAlert = daysUntilExpiry <= 3 && freshness < 60
	}

	switch facts.Condition {
	case domain.ConditionFresh:
		freshness += 10
	case domain.ConditionNearExpiry:
		freshness -= 30
	case domain.ConditionOpened:
		freshness -= 25
	}

	switch facts.Storage {
	case domain.StorageFreezer:
		freshness += 10
	case domain.StoragePantry:
		freshness -= 15
	}

	switch category {
	case CategoryDairy:
		if facts.Condition == domain.ConditionOpened {
			freshness -= 15
			explanation = "Opened dairy decays faster"
			needsAlert = needsAlert || freshness < 50
		}
		if facts.Storage == domain.StoragePantry {
			freshness -= 40
			explanation = "Dairy needs refrigeration"
			needsAlert = true
		}
	case CategoryMeat:
		if facts.Condition == domain.ConditionOpened && facts.Storage != domain.StorageFreezer {
			freshness -= 35
			explanation = "Opened meat decays quickly"
			needsAlert = true
		}
		if facts.Storage == domain.StoragePantry {
			freshness -= 50
			explanation = "Meat requires refrigeration"
			needsAlert = true
		}
	case CategoryProduce:
		if facts.Condition == domain.ConditionOpened {
			freshness -= 20
			explanation = "Cut produce spoils faster"
			needsAlert = needsAlert || daysUntilExpiry <= 2
		}
	}

	// Hard safety caps, applied last so no modifier can raise freshness
	// past them. Order matters.
	if daysUntilExpiry == 0 {
		freshness = math.Min(freshness, 50)
		explanation = "Expiring today"
		needsAlert = true
	}
	if facts.Condition == domain.ConditionNearExpiry {
		freshness = math.Min(freshness, 60)
		explanation = "Item marked as near expiry"
		needsAlert = needsAlert || daysUntilExpiry <= 3
	}
	if facts.Condition == domain.ConditionOpened && daysUntilExpiry >= 0 && daysUntilExpiry <= 2 {
		freshness = math.Min(freshness, 40)
		explanation = "Opened and expiring soon"
		needsAlert = true
	}
	if daysUntilExpiry < 0 {
		freshness = math.Min(freshness, 20)
		explanation = "Expired food"
		needsAlert = true
	}

	final := int(math.Round(clampFloat(freshness, 0, 100)))

	needsAlert = needsAlert ||
		daysUntilExpiry <= 0 ||
		final < 30 ||
		(daysUntilExpiry <= 3 && final < 60)

	return Assessment{
		Freshness:    final,
		NeedsAlert:   needsAlert,
		Explanation:  truncate(explanation, explanationLimit),
		FoodCategory: category,
		DecayPattern: params.Pattern,
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
