package domain

import (
	"strings"
)

// Default price range bounds used when no explicit range is selected.
const (
	DefaultPriceMin int64 = 0
	DefaultPriceMax int64 = 200000
)

// PriceRange is a closed numeric interval. Both bounds are inclusive.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// FilterState holds the current catalog filter selections. Within a facet the
// selected values combine with OR; across facets they combine with AND. An
// empty facet means "no restriction", not "exclude all".
type FilterState struct {
	Search     string     `json:"search"`
	Categories []string   `json:"categories"`
	Brands     []string   `json:"brands"`
	Materials  []string   `json:"materials"`
	Colors     []string   `json:"colors"`
	PriceRange PriceRange `json:"price_range"`
}

// NewFilterState returns an empty filter state with the default price range.
func NewFilterState() FilterState {
	return FilterState{
		PriceRange: PriceRange{Min: DefaultPriceMin, Max: DefaultPriceMax},
	}
}

// Reset clears every selection back to its default.
func (f *FilterState) Reset() {
	*f = NewFilterState()
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// ApplyFilters returns the subset of products matching every active predicate,
// preserving the original relative order. A product passes when:
//
//   - Search is empty or the title contains it as a case-insensitive substring.
//   - No categories are selected or the product's category is selected.
//   - No brands are selected or the product has a brand and it is selected.
//   - No materials are selected or the product has a material and it is selected.
//   - The price falls inside the inclusive price range.
//
// Color selections are carried in FilterState but intentionally not applied.
// The color facet is a reserved hook that has never narrowed results.
func ApplyFilters(products []Product, f FilterState) []Product {
	search := strings.ToLower(f.Search)
	categories := toSet(f.Categories)
	brands := toSet(f.Brands)
	materials := toSet(f.Materials)

	visible := make([]Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if categories != nil {
			if _, ok := categories[p.Category]; !ok {
				continue
			}
		}
		if brands != nil {
			if p.Brand == nil {
				continue
			}
			if _, ok := brands[*p.Brand]; !ok {
				continue
			}
		}
		if materials != nil {
			if p.Material == nil {
				continue
			}
			if _, ok := materials[*p.Material]; !ok {
				continue
			}
		}
		if p.Price < f.PriceRange.Min || p.Price > f.PriceRange.Max {
			continue
		}
		visible = append(visible, p)
	}
	return visible
}

// Facets holds the selectable values for each filter dimension of a section.
type Facets struct {
	Categories []string `json:"categories"`
	Brands     []string `json:"brands"`
	Materials  []string `json:"materials"`
	Colors     []string `json:"colors"`
}

// CollectFacets projects the unfiltered product list onto its facet
// dimensions. Values are deduplicated in first-seen order. Facets never
// narrow based on the current selection; they always reflect the full list.
func CollectFacets(products []Product) Facets {
	facets := Facets{
		Categories: []string{},
		Brands:     []string{},
		Materials:  []string{},
		Colors:     []string{},
	}

	seenCategory := make(map[string]struct{})
	seenBrand := make(map[string]struct{})
	seenMaterial := make(map[string]struct{})
	seenColor := make(map[string]struct{})

	appendUnique := func(dst []string, seen map[string]struct{}, v string) []string {
		if v == "" {
			return dst
		}
		if _, ok := seen[v]; ok {
			return dst
		}
		seen[v] = struct{}{}
		return append(dst, v)
	}

	for _, p := range products {
		facets.Categories = appendUnique(facets.Categories, seenCategory, p.Category)
		if p.Brand != nil {
			facets.Brands = appendUnique(facets.Brands, seenBrand, *p.Brand)
		}
		if p.Material != nil {
			facets.Materials = appendUnique(facets.Materials, seenMaterial, *p.Material)
		}
		if p.Color != nil {
			facets.Colors = appendUnique(facets.Colors, seenColor, *p.Color)
		}
	}

	return facets
}
