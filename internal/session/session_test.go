package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/product-curator/internal/models"
	"github.com/jonesrussell/product-curator/internal/session"
	"github.com/jonesrussell/product-curator/internal/testhelpers"
)

func sampleProducts() []models.ProductRecord {
	return []models.ProductRecord{
		{ASIN: "B0A", Title: "Garlic Press", Price: 19.99, SubCategory: "Kitchen Utensils & Gadgets", MonthlySales: 250, Rating: 4.5},
		{ASIN: "B0B", Title: "Throw Pillow", Price: 39.99, SubCategory: "Decorative Pillows", MonthlySales: 80, Rating: 3.9},
		{ASIN: "B0C", Title: "Desk Lamp", Price: 55.00, SubCategory: "Lamps & Shades", MonthlySales: 400, Rating: 4.8},
	}
}

func newStore(t *testing.T) *session.Store {
	t.Helper()
	store := session.NewStore(time.Hour, testhelpers.NewTestLogger())
	t.Cleanup(store.Close)
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := newStore(t)

	created := store.Create(sampleProducts())
	require.NotEmpty(t, created.ID)

	got, ok := store.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, 3, got.Count())
	assert.Len(t, got.View(), 3, "view starts as the full collection")
}

func TestGetUnknownID(t *testing.T) {
	store := newStore(t)

	_, ok := store.Get("no-such-session")
	assert.False(t, ok)
}

func TestCreateDerivesDefaults(t *testing.T) {
	store := newStore(t)

	s := store.Create(sampleProducts())

	ranges := s.Ranges()
	assert.InDelta(t, 0, ranges.Price.Min, 0.0001)
	assert.GreaterOrEqual(t, ranges.Price.Max, 55.00)

	criteria := s.Criteria()
	assert.True(t, criteria.PriceRange.Contains(19.99))
	assert.True(t, criteria.PriceRange.Contains(55.00))
}

func TestApplyFilterUpdatesView(t *testing.T) {
	store := newStore(t)
	s := store.Create(sampleProducts())

	criteria := s.Ranges().Criteria()
	criteria.PriceRange = models.Range{Min: 0, Max: 40}

	filtered, stats := s.ApplyFilter(criteria, nil)
	require.Len(t, filtered, 2)
	assert.Equal(t, 2, stats.Total)
	assert.Len(t, s.View(), 2)
	assert.Equal(t, 3, s.Count(), "full collection unchanged")
}

func TestApplyFilterWithBlacklist(t *testing.T) {
	store := newStore(t)
	s := store.Create(sampleProducts())

	blacklist := map[string]bool{"DecorativePillows": true}
	filtered, _ := s.ApplyFilter(s.Ranges().Criteria(), blacklist)

	require.Len(t, filtered, 2)
	for _, p := range filtered {
		assert.NotEqual(t, "Decorative Pillows", p.SubCategory)
	}
}

func TestSubCategories(t *testing.T) {
	store := newStore(t)
	products := sampleProducts()
	products = append(products, models.ProductRecord{ASIN: "B0D", Title: "No category"})

	s := store.Create(products)

	categories := s.SubCategories()
	assert.Equal(t, []string{
		"Kitchen Utensils & Gadgets",
		"Decorative Pillows",
		"Lamps & Shades",
	}, categories, "empty sub-categories are skipped, order preserved")
}

func TestDelete(t *testing.T) {
	store := newStore(t)
	s := store.Create(sampleProducts())

	store.Delete(s.ID)

	_, ok := store.Get(s.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}
