package tracker

import (
	"sort"

	"github.com/mrivarola/ofertas/internal/models"
)

// MergeProviderRefresh reconciles a fresh preciosgamer result list with the
// last full envelope, without re-querying hardgamers.
//
// When current is nil the refreshed list becomes the whole result set. When
// current exists, only the preciosgamer slot is replaced; hardgamers entries
// are carried over untouched, and the merged view is rebuilt as the
// concatenation of both slots, stable-sorted ascending by price. Calling this
// again with the same refreshed list yields an identical envelope.
func MergeProviderRefresh(current *models.Envelope, query string, refreshed []models.Product) *models.Envelope {
	out := &models.Envelope{
		Query:        query,
		PreciosGamer: refreshed,
	}

	if current == nil {
		out.Merged = append([]models.Product(nil), refreshed...)
		out.Total = len(out.Merged)
		return out
	}

	out.HardGamers = current.HardGamers
	out.Capture = current.Capture

	merged := make([]models.Product, 0, len(refreshed)+len(current.HardGamers))
	merged = append(merged, refreshed...)
	merged = append(merged, current.HardGamers...)
	sortByPriceAsc(merged)

	out.Merged = merged
	out.Total = len(merged)
	return out
}

// sortByPriceAsc stable-sorts in place, ascending by price. A missing price
// counts as zero and sorts first.
func sortByPriceAsc(products []models.Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return priceOrZero(products[i]) < priceOrZero(products[j])
	})
}

func priceOrZero(p models.Product) float64 {
	if p.Price > 0 {
		return p.Price
	}
	return 0
}
