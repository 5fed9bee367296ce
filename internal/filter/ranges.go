package filter

import (
	"sort"
	"time"

	"github.com/jonesrussell/product-curator/internal/models"
)

// Fallback ceilings keep derived ranges usable when a collection is
// empty or degenerate: an empty input yields e.g. price [0, 1000],
// never an inverted or empty range.
const (
	fallbackPriceMax   = 1000
	fallbackSalesMax   = 10000
	fallbackRevenueMax = 100000
	fallbackReviewsMax = 5000
	fallbackRatingMax  = 5
	fallbackDaysMax    = 365
)

// Ranges holds the derived per-dimension bounds used to seed filter
// defaults.
type Ranges struct {
	Price           models.Range `json:"price"`
	MonthlySales    models.Range `json:"monthlySales"`
	MonthlyRevenue  models.Range `json:"monthlyRevenue"`
	ReviewCount     models.Range `json:"reviewCount"`
	Rating          models.Range `json:"rating"`
	DaysSinceLaunch models.Range `json:"daysSinceLaunch"`
}

// Options holds the distinct categorical values present in a
// collection, sorted, for use as multi-select options.
type Options struct {
	ShippingMethods []string `json:"shippingMethods"`
	SellerLocations []string `json:"sellerLocations"`
}

// Criteria converts the derived ranges into default-wide filter
// criteria with no set-membership constraints.
func (r Ranges) Criteria() models.FilterCriteria {
	return models.FilterCriteria{
		PriceRange:           r.Price,
		MonthlySalesRange:    r.MonthlySales,
		MonthlyRevenueRange:  r.MonthlyRevenue,
		ReviewCountRange:     r.ReviewCount,
		RatingRange:          r.Rating,
		DaysSinceLaunchRange: r.DaysSinceLaunch,
		ShippingMethods:      []string{},
		SellerLocations:      []string{},
	}
}

// DeriveDefaults computes per-dimension bounds and categorical options
// from a product collection. Only "valid" values participate: price and
// rating must be positive, the counting dimensions non-negative.
func DeriveDefaults(products []models.ProductRecord) (Ranges, Options) {
	now := time.Now()

	var prices, sales, revenues, reviews, ratings, days []float64
	shipping := make(map[string]struct{})
	locations := make(map[string]struct{})

	for _, p := range products {
		if p.Price > 0 {
			prices = append(prices, p.Price)
		}
		if p.MonthlySales >= 0 {
			sales = append(sales, float64(p.MonthlySales))
		}
		if p.MonthlyRevenue >= 0 {
			revenues = append(revenues, p.MonthlyRevenue)
		}
		if p.ReviewCount >= 0 {
			reviews = append(reviews, float64(p.ReviewCount))
		}
		if p.Rating > 0 {
			ratings = append(ratings, p.Rating)
		}
		if d := daysSinceLaunchAt(p.LaunchDate, now); d >= 0 {
			days = append(days, float64(d))
		}
		if p.ShippingMethod != "" {
			shipping[p.ShippingMethod] = struct{}{}
		}
		if p.SellerLocation != "" {
			locations[p.SellerLocation] = struct{}{}
		}
	}

	ranges := Ranges{
		Price:           boundedRange(prices, fallbackPriceMax),
		MonthlySales:    boundedRange(sales, fallbackSalesMax),
		MonthlyRevenue:  boundedRange(revenues, fallbackRevenueMax),
		ReviewCount:     boundedRange(reviews, fallbackReviewsMax),
		Rating:          boundedRange(ratings, fallbackRatingMax),
		DaysSinceLaunch: boundedRange(days, fallbackDaysMax),
	}

	options := Options{
		ShippingMethods: sortedKeys(shipping),
		SellerLocations: sortedKeys(locations),
	}

	return ranges, options
}

// boundedRange computes [min, max] over values, widened to always
// include the floor 0 and the fallback ceiling.
func boundedRange(values []float64, fallbackMax float64) models.Range {
	r := models.Range{Min: 0, Max: fallbackMax}
	for _, v := range values {
		if v < r.Min {
			r.Min = v
		}
		if v > r.Max {
			r.Max = v
		}
	}
	return r
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
