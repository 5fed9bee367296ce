package category_test

import (
	"testing"

	"github.com/jonesrussell/product-curator/internal/category"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain word unchanged", "Tablecloths", "Tablecloths"},
		{"spaces removed", "Table cloths", "Tablecloths"},
		{"ampersand removed", "Home & Kitchen", "HomeKitchen"},
		{"apostrophe removed", "Men's Shoes", "MensShoes"},
		{"comma removed", "Bedding, Bath", "BeddingBath"},
		{"all four classes", "Kids' Toys, Games & Puzzles", "KidsToysGamesPuzzles"},
		{"no case folding", "TABLE cloths", "TABLEcloths"},
		{"unicode untouched", "家居用品", "家居用品"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, category.Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Table cloths",
		"Home & Kitchen",
		"Men's Shoes, Boots & Sandals",
		"",
		"already-normal",
	}
	for _, in := range inputs {
		once := category.Normalize(in)
		assert.Equal(t, once, category.Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestNormalizeCollapsesVariants(t *testing.T) {
	assert.Equal(t, category.Normalize("Tablecloths"), category.Normalize("Table cloths"))
}
