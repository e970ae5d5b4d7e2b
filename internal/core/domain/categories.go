package domain

// Fixed category names assigned by the upstream pipeline.
const (
	CategoryIndustry      = "Industry & Market Updates"
	CategoryRegulatory    = "Regulatory & Policy Updates"
	CategoryCompetitor    = "Competitor Activity"
	CategoryTechnology    = "Technology & Innovation"
	CategoryManufacturing = "Manufacturing & Operations"
	CategorySupplyChain   = "Supply Chain & Logistics"
	CategoryCorporate     = "Corporate & Business News"
	CategoryExternal      = "External Events"

	// AllCategories is the feed filter value that disables category filtering.
	AllCategories = "All Categories"

	// DefaultCategoryColor is used for names outside the fixed set.
	DefaultCategoryColor = "#2563eb"
)

// CategoryNames lists the fixed categories in display order.
var CategoryNames = []string{
	CategoryIndustry,
	CategoryRegulatory,
	CategoryCompetitor,
	CategoryTechnology,
	CategoryManufacturing,
	CategorySupplyChain,
	CategoryCorporate,
	CategoryExternal,
}

var categoryColors = map[string]string{
	CategoryIndustry:      "#2563eb",
	CategoryRegulatory:    "#7c3aed",
	CategoryCompetitor:    "#db2777",
	CategoryTechnology:    "#0891b2",
	CategoryManufacturing: "#d97706",
	CategorySupplyChain:   "#16a34a",
	CategoryCorporate:     "#dc2626",
	CategoryExternal:      "#6b7280",
}

// CategoryColor returns the display color for a category name.
func CategoryColor(name string) string {
	if c, ok := categoryColors[name]; ok {
		return c
	}

	return DefaultCategoryColor
}

// IsKnownCategory reports whether name is one of the fixed categories.
func IsKnownCategory(name string) bool {
	_, ok := categoryColors[name]
	return ok
}
