// Package models defines the product record and filter types shared by
// the importer, filter engine, and HTTP handlers.
package models

// ProductRecord is one row of an ingested seller export. Records are
// built once at parse time and never mutated afterwards. A record
// exists only if its source row carried a non-empty ASIN.
type ProductRecord struct {
	ASIN           string  `json:"asin"`
	Title          string  `json:"title"`
	Price          float64 `json:"price"`
	MainCategory   string  `json:"mainCategory"`
	SubCategory    string  `json:"subCategory"`
	MonthlySales   int     `json:"monthlySales"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	ReviewCount    int     `json:"reviewCount"`
	Rating         float64 `json:"rating"`
	LaunchDate     string  `json:"launchDate"`
	ShippingMethod string  `json:"shippingMethod"`
	SellerLocation string  `json:"sellerLocation"`
	MainImage      string  `json:"mainImage"`
	ProductURL     string  `json:"productUrl"`

	// Raw keeps the original header-to-cell mapping, including columns
	// the typed fields do not cover.
	Raw map[string]string `json:"raw,omitempty"`
}

// Range is an inclusive [Min, Max] bound on one numeric dimension.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether v falls inside the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// FilterCriteria holds the active predicate configuration. An empty
// ShippingMethods or SellerLocations slice means no constraint on that
// dimension.
type FilterCriteria struct {
	PriceRange           Range    `json:"priceRange"`
	MonthlySalesRange    Range    `json:"monthlySalesRange"`
	MonthlyRevenueRange  Range    `json:"monthlyRevenueRange"`
	ReviewCountRange     Range    `json:"reviewCountRange"`
	RatingRange          Range    `json:"ratingRange"`
	DaysSinceLaunchRange Range    `json:"daysSinceLaunchRange"`
	ShippingMethods      []string `json:"shippingMethods"`
	SellerLocations      []string `json:"sellerLocations"`
}

// CategoryStatus is one category document from the blacklist store.
type CategoryStatus struct {
	ID            string `json:"id"`
	IsBlacklisted bool   `json:"isBlacklisted"`
}

// CategoryUpdate is one entry of a batch blacklist update.
type CategoryUpdate struct {
	ID            string `json:"id" binding:"required"`
	IsBlacklisted bool   `json:"isBlacklisted"`
}

// BatchUpdateResult reports how many entries of a batch update were
// written and how many failed.
type BatchUpdateResult struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
}
