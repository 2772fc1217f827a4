package freshness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	c := NewClassifier(DefaultKeywords())

	cases := map[string]Category{
		"Whole Milk":      CategoryDairy,
		"Cheddar Cheese":  CategoryDairy,
		"Chicken Breast":  CategoryMeat,
		"Smoked Salmon":   CategoryOther, // "salmon" is not in the meat table
		"Baby Spinach":    CategoryProduce,
		"Sourdough Bread": CategoryBaked,
		"Basmati Rice":    CategoryPantry,
		"Leftover Curry":  CategoryOther,
		"":                CategoryOther,
	}

	for name, want := range cases {
		assert.Equal(t, want, c.Categorize(name), "name %q", name)
	}
}

func TestCategorizePrecedence(t *testing.T) {
	c := NewClassifier(DefaultKeywords())

	// "cream" (dairy) beats "pie" (baked); "chicken" (meat) beats "salad"
	// (produce). Dairy and meat are always checked first.
	assert.Equal(t, CategoryDairy, c.Categorize("Cream Pie"))
	assert.Equal(t, CategoryMeat, c.Categorize("Chicken Salad"))
	assert.Equal(t, CategoryDairy, c.Categorize("Buttermilk Bread"))
}

func TestIsDairyIsMeat(t *testing.T) {
	c := NewClassifier(DefaultKeywords())

	assert.True(t, c.IsDairy("skim MILK"))
	assert.False(t, c.IsDairy("orange juice"))
	assert.True(t, c.IsMeat("Turkey Slices"))
	assert.False(t, c.IsMeat(""))
}
