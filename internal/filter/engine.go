// Package filter applies the multi-predicate product filter and derives
// default criteria from a product collection.
package filter

import (
	"math"
	"time"

	"github.com/jonesrussell/product-curator/internal/category"
	"github.com/jonesrussell/product-curator/internal/models"
)

// Stats summarizes a filtered view.
type Stats struct {
	Total      int `json:"total"`
	HighRating int `json:"highRating"` // rating >= 4.0
	HighSales  int `json:"highSales"`  // monthly sales >= 100
}

const (
	highRatingThreshold = 4.0
	highSalesThreshold  = 100
)

// launchDateLayouts are tried in order when parsing a launch date cell.
var launchDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// Apply returns the subsequence of products matching every predicate in
// criteria, in input order. The blacklist map is consulted by both the
// raw sub-category spelling and its normalized form. Days since launch
// is computed against the moment of this call, so results for the same
// record can differ between passes made at different times.
func Apply(
	products []models.ProductRecord,
	criteria models.FilterCriteria,
	blacklist map[string]bool,
) []models.ProductRecord {
	now := time.Now()

	filtered := make([]models.ProductRecord, 0, len(products))
	for _, p := range products {
		if matches(p, criteria, blacklist, now) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matches(
	p models.ProductRecord,
	c models.FilterCriteria,
	blacklist map[string]bool,
	now time.Time,
) bool {
	if !c.PriceRange.Contains(p.Price) {
		return false
	}
	if !c.MonthlySalesRange.Contains(float64(p.MonthlySales)) {
		return false
	}
	if !c.MonthlyRevenueRange.Contains(p.MonthlyRevenue) {
		return false
	}
	if !c.ReviewCountRange.Contains(float64(p.ReviewCount)) {
		return false
	}
	if !c.RatingRange.Contains(p.Rating) {
		return false
	}
	if !c.DaysSinceLaunchRange.Contains(float64(daysSinceLaunchAt(p.LaunchDate, now))) {
		return false
	}
	if !memberOf(p.ShippingMethod, c.ShippingMethods) {
		return false
	}
	if !memberOf(p.SellerLocation, c.SellerLocations) {
		return false
	}
	return !isBlacklisted(p.SubCategory, blacklist)
}

// memberOf reports set membership; an empty set means no constraint.
func memberOf(value string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}

// isBlacklisted checks the blacklist snapshot by the raw sub-category
// spelling and its normalized store key. Absence means not blacklisted.
func isBlacklisted(subCategory string, blacklist map[string]bool) bool {
	if subCategory == "" || len(blacklist) == 0 {
		return false
	}
	return blacklist[subCategory] || blacklist[category.Normalize(subCategory)]
}

// DaysSinceLaunch returns the whole days between the launch date and
// now, rounded up. An absent or unparsable date yields 0.
func DaysSinceLaunch(launchDate string) int {
	return daysSinceLaunchAt(launchDate, time.Now())
}

func daysSinceLaunchAt(launchDate string, now time.Time) int {
	if launchDate == "" {
		return 0
	}

	var launch time.Time
	var err error
	for _, layout := range launchDateLayouts {
		launch, err = time.Parse(layout, launchDate)
		if err == nil {
			break
		}
	}
	if err != nil {
		return 0
	}

	diff := now.Sub(launch)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// ComputeStats derives summary counts for a product collection.
func ComputeStats(products []models.ProductRecord) Stats {
	stats := Stats{Total: len(products)}
	for _, p := range products {
		if p.Rating >= highRatingThreshold {
			stats.HighRating++
		}
		if p.MonthlySales >= highSalesThreshold {
			stats.HighSales++
		}
	}
	return stats
}
