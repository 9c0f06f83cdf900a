package tracker

import (
	"sort"

	"github.com/mrivarola/ofertas/internal/models"
)

// SortMode selects the ordering applied to a product view.
type SortMode string

const (
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
	SortBestDeal  SortMode = "best_deal"

	// SortNone preserves the input order.
	SortNone SortMode = ""
)

// FilterByPriceRange keeps products whose price falls within [min, max],
// bounds inclusive. A nil bound means no constraint on that side; with both
// bounds nil the input is returned as-is.
func FilterByPriceRange(products []models.Product, min, max *float64) []models.Product {
	if min == nil && max == nil {
		return products
	}

	kept := make([]models.Product, 0, len(products))
	for _, p := range products {
		if min != nil && p.Price < *min {
			continue
		}
		if max != nil && p.Price > *max {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}

// SortProducts returns a new slice ordered by mode. The input is never
// mutated. best_deal is a two-key sort: products carrying a discount label
// come first, then ascending price within each group. Unknown modes preserve
// the input order.
func SortProducts(products []models.Product, mode SortMode) []models.Product {
	list := append([]models.Product(nil), products...)

	switch mode {
	case SortPriceAsc:
		sortByPriceAsc(list)
	case SortPriceDesc:
		sort.SliceStable(list, func(i, j int) bool {
			return priceOrZero(list[i]) > priceOrZero(list[j])
		})
	case SortBestDeal:
		sort.SliceStable(list, func(i, j int) bool {
			discI := list[i].DiscountLabel != ""
			discJ := list[j].DiscountLabel != ""
			if discI != discJ {
				return discI
			}
			return priceOrZero(list[i]) < priceOrZero(list[j])
		})
	}

	return list
}
