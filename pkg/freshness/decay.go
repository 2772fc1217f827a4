package freshness

import "WasteNot-Backend/domain"

// DecayPattern is the shape of freshness decline over remaining shelf life.
type DecayPattern string

const (
	DecayStandard    DecayPattern = "standard"
	DecayExponential DecayPattern = "exponential"
	DecaySlow        DecayPattern = "slow"
)

// DecayParams drive the deterministic calculator for one item.
type DecayParams struct {
	DecayRate    int
	Pattern      DecayPattern
	MaxFreshness int
}

// ResolveDecay returns the decay parameters for a category adjusted for the
// item's condition and storage. Opened items decay one pattern faster; a
// freezer slows dairy, meat and baked goods by one pattern and reduces the
// decay rate (minimum 1).
func ResolveDecay(category Category, condition, storage string) DecayParams {
	params := DecayParams{DecayRate: 5, Pattern: DecayStandard, MaxFreshness: 100}

	switch category {
	case CategoryDairy:
		params.DecayRate = 8
		params.Pattern = DecayExponential
		if condition == domain.ConditionOpened {
			params.MaxFreshness = 85
		}
	case CategoryMeat:
		params.DecayRate = 10
		params.Pattern = DecayExponential
		if condition == domain.ConditionOpened {
			params.MaxFreshness = 80
		}
	case CategoryProduce:
		params.DecayRate = 7
	case CategoryBaked:
		params.DecayRate = 6
		if storage == domain.StorageFreezer {
			params.MaxFreshness = 95
		}
	case CategoryPantry:
		params.DecayRate = 3
		params.Pattern = DecaySlow
	}

	if condition == domain.ConditionOpened {
		switch params.Pattern {
		case DecaySlow:
			params.Pattern = DecayStandard
		case DecayStandard:
			params.Pattern = DecayExponential
		}
	}

	if storage == domain.StorageFreezer &&
		(category == CategoryDairy || category == CategoryMeat || category == CategoryBaked) {
		switch params.Pattern {
		case DecayExponential:
			params.Pattern = DecayStandard
		case DecayStandard:
			params.Pattern = DecaySlow
		}
		params.DecayRate -= 3
		if params.DecayRate < 1 {
			params.DecayRate = 1
		}
	}

	return params
}
