package tracker

import (
	"fmt"
	"hash/fnv"
	"io"

	"github.com/mrivarola/ofertas/internal/models"
	"github.com/mrivarola/ofertas/internal/store"
)

const (
	// maxTrackedDeals bounds detection to the cheapest offers a user would
	// actually see first.
	maxTrackedDeals = 15

	// maxStoredAlerts caps the persisted alert log, newest first.
	maxStoredAlerts = 100

	// noCaptureToken stands in for a missing backend capture timestamp when
	// building alert identity.
	noCaptureToken = "sin-fecha"
)

// Detector scans search envelopes for price drops on watched queries and
// appends new, deduplicated alert records to the store.
type Detector struct {
	store *store.Store
	watch *WatchSet
	now   func() int64
}

func NewDetector(s *store.Store, w *WatchSet) *Detector {
	return &Detector{store: s, watch: w, now: nowMillis}
}

// Process scans env for price drops and returns the number of newly recorded
// alerts. It is a no-op when the query is not currently watched, and is safe
// to call unconditionally: it never returns an error, and malformed products
// or storage failures degrade to "nothing detected".
func (d *Detector) Process(query string, env *models.Envelope) int {
	if env == nil || query == "" || !d.watch.IsWatched(query) {
		return 0
	}

	capturedAt := noCaptureToken
	if env.Capture != nil && env.Capture.CapturedAt != "" {
		capturedAt = env.Capture.CapturedAt
	}

	candidates := cheapestOffers(env.Merged, maxTrackedDeals)

	var fresh []models.AlertRecord
	for _, p := range candidates {
		change := p.PriceChange
		if change == nil || change.PreviousPrice == nil {
			continue // no baseline to compare against
		}
		if change.Delta >= 0 {
			continue // zero or increase is not a drop
		}

		offer := p.Link
		if offer == "" {
			offer = p.Name
		}

		currentPrice := change.CurrentPrice
		if currentPrice == 0 {
			currentPrice = p.Price
		}

		fresh = append(fresh, models.AlertRecord{
			ID:            alertID(query, offer, capturedAt),
			Timestamp:     d.now(),
			Query:         query,
			Name:          p.Name,
			Store:         p.Store,
			Source:        p.Source,
			PreviousPrice: *change.PreviousPrice,
			CurrentPrice:  currentPrice,
			Delta:         change.Delta,
			DeltaPct:      change.DeltaPct,
			Link:          p.Link,
		})
	}
	if len(fresh) == 0 {
		return 0
	}

	existing := d.store.Alerts()
	seen := make(map[string]struct{}, len(existing))
	for _, a := range existing {
		seen[a.ID] = struct{}{}
	}

	added := make([]models.AlertRecord, 0, len(fresh))
	for _, a := range fresh {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		added = append(added, a)
	}
	if len(added) == 0 {
		return 0
	}

	merged := append(added, existing...)
	if len(merged) > maxStoredAlerts {
		merged = merged[:maxStoredAlerts]
	}
	_ = d.store.SetAlerts(merged)

	return len(added)
}

// RemoveAlert deletes one stored alert by id.
func (d *Detector) RemoveAlert(id string) error {
	current := d.store.Alerts()
	kept := make([]models.AlertRecord, 0, len(current))
	for _, a := range current {
		if a.ID == id {
			continue
		}
		kept = append(kept, a)
	}
	if len(kept) == len(current) {
		return nil
	}
	return d.store.SetAlerts(kept)
}

// cheapestOffers returns up to limit products with a strictly positive price,
// ascending by price. The input slice is not modified.
func cheapestOffers(products []models.Product, limit int) []models.Product {
	priced := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Price > 0 {
			priced = append(priced, p)
		}
	}
	sortByPriceAsc(priced)
	if len(priced) > limit {
		priced = priced[:limit]
	}
	return priced
}

// alertID derives the deduplication identity of one observed drop from the
// tuple (query, offer identity, capture token). Offer identity is the offer
// link, falling back to the product name. Any stable hash works here; FNV-32a
// keeps ids deterministic across runs without cryptographic cost.
func alertID(query, offer, capturedAt string) string {
	h := fnv.New32a()
	io.WriteString(h, query)
	io.WriteString(h, "|")
	io.WriteString(h, offer)
	io.WriteString(h, "|")
	io.WriteString(h, capturedAt)
	return fmt.Sprintf("a%d", h.Sum32())
}
