package freshness

import (
	"time"

	"WasteNot-Backend/domain"
)

// Guardrail re-applies the hard safety ceilings to any freshness value,
// whatever produced it. The AI oracle's output passes through here so it can
// never report a score the deterministic rules forbid.
type Guardrail struct {
	classifier *Classifier
}

func NewGuardrail(classifier *Classifier) *Guardrail {
	return &Guardrail{classifier: classifier}
}

// Apply enforces the ceilings in priority order; the first matching rule
// wins. Freshness only ever moves down.
func (g *Guardrail) Apply(a Assessment, facts ItemFacts, today time.Time) Assessment {
	daysUntilExpiry := DaysUntilExpiry(facts.ExpiryDate, today)
	expiringToday := daysUntilExpiry == 0

	switch {
	case expiringToday && facts.Condition == domain.ConditionNearExpiry && a.Freshness > 30:
		a.Freshness = 30
		a.NeedsAlert = true
		if a.Explanation == "" {
			a.Explanation = "Near expiry item expiring today"
		}
	case expiringToday && g.classifier.IsDairy(facts.Name) && a.Freshness > 40:
		a.Freshness = 40
		a.NeedsAlert = true
		if a.Explanation == "" {
			a.Explanation = "Dairy product expiring today"
		}
	case daysUntilExpiry < 0 && a.Freshness > 20:
		a.Freshness = 20
		a.NeedsAlert = true
		if a.Explanation == "" {
			a.Explanation = "Expired food"
		}
	case expiringToday && a.Freshness > 50:
		a.Freshness = 50
		a.NeedsAlert = true
		if a.Explanation == "" {
			a.Explanation = "Expiring today"
		}
	case facts.Condition == domain.ConditionNearExpiry && a.Freshness > 60:
		a.Freshness = 60
		a.NeedsAlert = a.NeedsAlert || daysUntilExpiry <= 3
	}

	return a
}
