package freshness

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"WasteNot-Backend/domain"
	"WasteNot-Backend/internal/utils/jsonx"
	"WasteNot-Backend/pkg/llm"
)

// Source records which path produced an estimate so callers and tests can
// tell "oracle succeeded" from "oracle failed, deterministic fallback used"
// without parsing logs.
type Source string

const (
	SourceOracle   Source = "oracle"
	SourceFallback Source = "fallback"
)

// Estimate is an Assessment tagged with its provenance.
type Estimate struct {
	Assessment
	Source         Source
	FallbackReason string
}

type Estimator struct {
	completion llm.CompletionService
	calculator *Calculator
	guardrail  *Guardrail
	classifier *Classifier
}

func NewEstimator(completion llm.CompletionService, calculator *Calculator, guardrail *Guardrail, classifier *Classifier) *Estimator {
	return &Estimator{
		completion: completion,
		calculator: calculator,
		guardrail:  guardrail,
		classifier: classifier,
	}
}

type oracleResponse struct {
	Freshness    *float64 `json:"freshness"`
	NeedsAlert   *bool    `json:"needs_alert"`
	Explanation  string   `json:"explanation"`
	FoodCategory string   `json:"food_category"`
	DecayPattern string   `json:"decay_pattern"`
}

// Estimate asks the completion oracle for a freshness assessment and clamps
// the result through the guardrails. Any transport or parse failure falls
// back to the deterministic calculator; the caller never sees an error.
func (e *Estimator) Estimate(ctx context.Context, facts ItemFacts, today time.Time) Estimate {
	if e.completion == nil {
		return e.fallback(facts, today, "no completion service configured")
	}

	prompt := e.buildPrompt(facts, today)

	raw, err := e.completion.Complete(ctx, prompt, llm.CompletionOptions{
		Temperature:     0.2,
		MaxOutputTokens: 512,
	})
	if err != nil {
		log.Printf("freshness oracle failed for %q: %v, using deterministic fallback", facts.Name, err)
		return e.fallback(facts, today, err.Error())
	}

	var parsed oracleResponse
	if err := jsonx.Extract(raw, &parsed); err != nil {
		log.Printf("freshness oracle returned unparseable JSON for %q: %v", facts.Name, err)
		return e.fallback(facts, today, "unparseable oracle response")
	}
	if parsed.Freshness == nil || parsed.NeedsAlert == nil {
		return e.fallback(facts, today, "oracle response missing required fields")
	}

	category := e.classifier.Categorize(facts.Name)
	assessment := Assessment{
		Freshness:    int(math.Max(0, math.Min(100, math.Round(*parsed.Freshness)))),
		NeedsAlert:   *parsed.NeedsAlert,
		Explanation:  truncate(parsed.Explanation, explanationLimit),
		FoodCategory: category,
		DecayPattern: DecayStandard,
	}
	if parsed.FoodCategory != "" {
		assessment.FoodCategory = Category(parsed.FoodCategory)
	}
	if parsed.DecayPattern != "" {
		assessment.DecayPattern = DecayPattern(parsed.DecayPattern)
	}

	assessment = e.guardrail.Apply(assessment, facts, today)

	return Estimate{Assessment: assessment, Source: SourceOracle}
}

func (e *Estimator) fallback(facts ItemFacts, today time.Time, reason string) Estimate {
	return Estimate{
		Assessment:     e.calculator.Calculate(facts, today),
		Source:         SourceFallback,
		FallbackReason: reason,
	}
}

func (e *Estimator) buildPrompt(facts ItemFacts, today time.Time) string {
	daysUntilExpiry := DaysUntilExpiry(facts.ExpiryDate, today)
	daysOwned := DaysUntilExpiry(today, facts.AddedDate)
	expiringToday := daysUntilExpiry == 0
	category := e.classifier.Categorize(facts.Name)

	elapsed := 100
	if facts.ShelfLife > 0 {
		elapsed = int(math.Min(100, math.Round(float64(daysOwned)/float64(facts.ShelfLife)*100)))
	}

	promptData := map[string]interface{}{
		"food_name":                         facts.Name,
		"food_category":                     category,
		"storage_location":                  facts.Storage,
		"condition":                         facts.Condition,
		"shelf_life_days":                   facts.ShelfLife,
		"days_owned":                        daysOwned,
		"days_until_expiry":                 daysUntilExpiry,
		"is_expiring_today":                 expiringToday,
		"is_critical_combination":           (expiringToday && facts.Condition == domain.ConditionNearExpiry) || (expiringToday && e.classifier.IsDairy(facts.Name)),
		"percentage_of_shelf_life_elapsed":  elapsed,
	}

	dataJSON, err := json.MarshalIndent(promptData, "", "  ")
	if err != nil {
		dataJSON = []byte("{}")
	}

	return fmt.Sprintf(`You are a professional food science expert specializing in food freshness assessment.

Analyze the following food item and return ONLY a valid JSON object with no additional text, explanations, or markdown formatting.

CRITICAL: Return ONLY valid JSON in this exact format:
{
  "freshness": <number 0-100>,
  "needs_alert": <boolean>,
  "explanation": "<string, max 100 characters>",
  "food_category": "<string>",
  "decay_pattern": "<'exponential' | 'standard' | 'slow'>"
}

Food Item Data:
%s

Assessment Rules (MUST ENFORCE):
- Items marked "Near expiry" AND expiring today: freshness MUST BE 30 OR LOWER
- Dairy products expiring today: freshness MUST BE 40 OR LOWER
- Any item expired (negative days until expiry): freshness MUST BE 20 OR LOWER
- Items expiring today: freshness MAXIMUM 50
- Items marked "Near expiry": freshness MAXIMUM 60

Alert Rules (needs_alert = true if ANY apply):
- Item expiring today or already expired
- Freshness below 30
- Dairy or meat item with freshness below 40
- Item expiring within 3 days AND freshness below 60

Return ONLY the JSON object. Do not include any text before or after the JSON.`, string(dataJSON))
}
