package freshness

import "strings"

// Category is the coarse food grouping driving decay parameters.
type Category string

const (
	CategoryDairy   Category = "dairy"
	CategoryMeat    Category = "meat"
	CategoryProduce Category = "produce"
	CategoryBaked   Category = "baked"
	CategoryPantry  Category = "pantry"
	CategoryOther   Category = "other"
)

// Keywords holds the substring tables used to classify a food name.
// Instances are treated as immutable after construction.
type Keywords struct {
	Dairy   []string
	Meat    []string
	Produce []string
	Baked   []string
	Pantry  []string
}

func DefaultKeywords() Keywords {
	return Keywords{
		Dairy: []string{"milk", "yogurt", "curd", "cheese", "cream", "butter", "dairy"},
		Meat:  []string{"meat", "beef", "chicken", "pork", "fish", "lamb", "turkey", "seafood"},
		Produce: []string{
			"apple", "banana", "orange", "tomato", "cucumber", "lettuce",
			"spinach", "kale", "carrot", "potato", "fruit", "vegetable",
			"salad", "greens", "broccoli", "cauliflower", "pepper", "onion",
			"berry", "berries", "grapes",
		},
		Baked: []string{
			"bread", "cake", "pastry", "pie", "cookie", "muffin", "bun",
			"roll", "dough", "baked", "croissant", "bagel",
		},
		Pantry: []string{
			"rice", "pasta", "flour", "sugar", "cereal", "grain",
			"can", "canned", "dry", "dried", "packaged", "preserved",
		},
	}
}

type Classifier struct {
	keywords Keywords
}

func NewClassifier(keywords Keywords) *Classifier {
	return &Classifier{keywords: keywords}
}

// Categorize maps a free-text food name to a category. Dairy and meat are
// checked before the remaining sets because names can contain overlapping
// substrings; first match wins, no match is "other".
func (c *Classifier) Categorize(name string) Category {
	if name == "" {
		return CategoryOther
	}

	lowered := strings.ToLower(name)

	switch {
	case containsAny(lowered, c.keywords.Dairy):
		return CategoryDairy
	case containsAny(lowered, c.keywords.Meat):
		return CategoryMeat
	case containsAny(lowered, c.keywords.Produce):
		return CategoryProduce
	case containsAny(lowered, c.keywords.Baked):
		return CategoryBaked
	case containsAny(lowered, c.keywords.Pantry):
		return CategoryPantry
	default:
		return CategoryOther
	}
}

func (c *Classifier) IsDairy(name string) bool {
	return name != "" && containsAny(strings.ToLower(name), c.keywords.Dairy)
}

func (c *Classifier) IsMeat(name string) bool {
	return name != "" && containsAny(strings.ToLower(name), c.keywords.Meat)
}

func containsAny(lowered string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
