package catalog

import "github.com/aquamart/aquamart-backend/pkg/pagination"

// ProductListFilters describe the supported filter knobs for browse endpoints.
type ProductListFilters struct {
	CategorySlug string `json:"categorySlug,omitempty"`
	Query        string `json:"q,omitempty"`
	Featured     *bool  `json:"featured,omitempty"`
	InStock      *bool  `json:"inStock,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate and filter products.
type ListProductsInput struct {
	Filters    ProductListFilters
	Pagination pagination.Params
	// IncludeAll lifts the active-only filter for admin listings.
	IncludeAll bool
}
