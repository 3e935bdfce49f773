package service

import (
	"sort"

	"github.com/clothera/catalog-api/internal/cache"
	"github.com/clothera/catalog-api/internal/utils"
)

// Sort order wire values. The price keys carry their historical, inverted
// meaning: "price" sorts descending and "price_desc" ascending. Deployed
// storefront clients depend on this mapping, so it must not be corrected
// server-side.
const (
	SortAlphabetical = "abc"
	SortPriceHigh    = "price"      // descending by price
	SortPriceLow     = "price_desc" // ascending by price
)

// FilterRequest is the raw listing request. Set and range fields are
// optional; absent fields are resolved to store-wide values during
// normalization. JSON tags match the legacy wire contract.
type FilterRequest struct {
	Brands     []string `json:"included_brands"`
	Categories []string `json:"included_categories"`
	Sizes      []string `json:"included_sizes"`
	PriceMin   *int     `json:"price_min"`
	PriceMax   *int     `json:"price_max"`
	SortOrder  string   `json:"sort_order"`
	Page       int      `json:"page"`
	PageSize   int      `json:"size"`
}

// CatalogService answers filtered, sorted, paginated listing queries and
// single-item lookups against the catalog store. It holds no mutable state
// and is safe for concurrent use.
type CatalogService struct {
	store  Store
	facets *cache.FacetCache // optional; nil disables caching
}

// NewCatalogService constructs a CatalogService. facets may be nil, in which
// case every normalization lookup goes to the store.
func NewCatalogService(store Store, facets *cache.FacetCache) *CatalogService {
	return &CatalogService{store: store, facets: facets}
}

// normalize resolves absent filter fields to concrete store-wide values:
// omitted sets become the full distinct-value sets, omitted price bounds
// become the store-wide minimum/maximum, and an omitted or unrecognized sort
// order falls back to alphabetical. Pure with respect to the request; reads
// only distinct-value lookups.
func (s *CatalogService) normalize(req FilterRequest) (FilterRequest, error) {
	var err error

	if len(req.Brands) == 0 {
		if req.Brands, err = s.facetList(cache.FacetBrands, s.store.DistinctBrands); err != nil {
			return FilterRequest{}, err
		}
	}
	if len(req.Categories) == 0 {
		if req.Categories, err = s.facetList(cache.FacetCategories, s.store.DistinctCategories); err != nil {
			return FilterRequest{}, err
		}
	}
	if len(req.Sizes) == 0 {
		if req.Sizes, err = s.facetList(cache.FacetSizes, s.store.DistinctSizeNames); err != nil {
			return FilterRequest{}, err
		}
	}
	if req.PriceMin == nil || req.PriceMax == nil {
		min, max, err := s.priceRange()
		if err != nil {
			return FilterRequest{}, err
		}
		if req.PriceMin == nil {
			req.PriceMin = &min
		}
		if req.PriceMax == nil {
			req.PriceMax = &max
		}
	}
	switch req.SortOrder {
	case SortAlphabetical, SortPriceHigh, SortPriceLow:
	default:
		req.SortOrder = SortAlphabetical
	}
	return req, nil
}

// List returns the total number of products matching the filter and the
// requested page of serialized products. The total is counted after stock
// gating and before pagination.
func (s *CatalogService) List(req FilterRequest) (int, []SerializedProduct, error) {
	if req.Page < 1 || req.PageSize < 1 {
		return 0, nil, utils.ErrInvalidPagination
	}

	f, err := s.normalize(req)
	if err != nil {
		return 0, nil, err
	}

	candidates, err := s.store.FindProducts(f.Brands, f.Categories, f.Sizes, *f.PriceMin, *f.PriceMax)
	if err != nil {
		return 0, nil, err
	}

	// Stock gating: a candidate survives only if at least one of the
	// requested sizes has remaining stock. Having the size row at all is not
	// enough.
	survivors := candidates[:0]
	for _, p := range candidates {
		sizes, err := s.store.SizesFor(p.ID, f.Sizes)
		if err != nil {
			return 0, nil, err
		}
		for _, size := range sizes {
			if size.InStock() {
				survivors = append(survivors, p)
				break
			}
		}
	}

	// Stable sort keeps retrieval order for ties; no secondary key.
	switch f.SortOrder {
	case SortPriceHigh:
		sort.SliceStable(survivors, func(i, j int) bool { return survivors[i].Price > survivors[j].Price })
	case SortPriceLow:
		sort.SliceStable(survivors, func(i, j int) bool { return survivors[i].Price < survivors[j].Price })
	default:
		sort.SliceStable(survivors, func(i, j int) bool { return survivors[i].Name < survivors[j].Name })
	}

	total := len(survivors)

	// Paginate in memory after the full filter+sort. Pushing the offset into
	// storage would count products before stock gating and change results.
	skip := (req.Page - 1) * req.PageSize
	if skip > total {
		skip = total
	}
	end := skip + req.PageSize
	if end > total {
		end = total
	}
	page := survivors[skip:end]

	products := make([]SerializedProduct, 0, len(page))
	for _, p := range page {
		sp, err := serializeProduct(s.store, p)
		if err != nil {
			return 0, nil, err
		}
		products = append(products, sp)
	}
	return total, products, nil
}

// GetProduct returns a single serialized product by id. A missing product
// surfaces as sql.ErrNoRows from the store.
func (s *CatalogService) GetProduct(id int) (*SerializedProduct, error) {
	p, err := s.store.ProductByID(id)
	if err != nil {
		return nil, err
	}
	sp, err := serializeProduct(s.store, *p)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

// facetList serves a distinct-value lookup through the facet cache when one
// is configured, falling back to the store.
func (s *CatalogService) facetList(key string, fetch func() ([]string, error)) ([]string, error) {
	if s.facets != nil {
		if vals, ok := s.facets.GetStrings(key); ok {
			return vals, nil
		}
	}
	vals, err := fetch()
	if err != nil {
		return nil, err
	}
	if s.facets != nil {
		s.facets.SetStrings(key, vals)
	}
	return vals, nil
}

// priceRange serves the store-wide price range through the facet cache when
// one is configured.
func (s *CatalogService) priceRange() (int, int, error) {
	if s.facets != nil {
		if min, max, ok := s.facets.GetPriceRange(); ok {
			return min, max, nil
		}
	}
	min, max, err := s.store.PriceRange()
	if err != nil {
		return 0, 0, err
	}
	if s.facets != nil {
		s.facets.SetPriceRange(min, max)
	}
	return min, max, nil
}
