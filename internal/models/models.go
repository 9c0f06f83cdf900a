package models

// PriceChange carries the backend's historical comparison for one product.
// PreviousPrice is nil when no earlier observation exists; the delta fields
// are meaningless in that case and must not be used for detection.
type PriceChange struct {
	PreviousPrice *float64 `json:"previous_price"`
	CurrentPrice  float64  `json:"current_price"`
	Delta         float64  `json:"delta"`
	DeltaPct      float64  `json:"delta_pct"`
}

// Product is one offer returned by the aggregation backend.
// Wire field names follow the backend contract (Spanish).
type Product struct {
	Name          string       `json:"nombre"`
	Price         float64      `json:"precio"`
	DiscountLabel string       `json:"descuento,omitempty"`
	Source        string       `json:"fuente"`
	Store         string       `json:"tienda,omitempty"`
	ImageURL      string       `json:"imagen,omitempty"`
	Link          string       `json:"link"`
	PriceChange   *PriceChange `json:"price_change,omitempty"`
}

// CaptureInfo describes the backend's price-history snapshot for a search.
// CapturedAt is an opaque token; it is never parsed, only used as part of
// alert identity.
type CaptureInfo struct {
	Saved      bool   `json:"guardado,omitempty"`
	Backend    string `json:"backend,omitempty"`
	CapturedAt string `json:"capturado_en,omitempty"`
}

// Envelope is one full search response: per-provider lists plus the merged
// view. Merged is always the union of both providers sorted ascending by
// price, and Total == len(Merged).
type Envelope struct {
	Query        string       `json:"query"`
	PreciosGamer []Product    `json:"preciosgamer"`
	HardGamers   []Product    `json:"hardgamers"`
	Merged       []Product    `json:"todos"`
	Total        int          `json:"total"`
	Capture      *CaptureInfo `json:"historial,omitempty"`

	// Error is set when the backend reports a logical failure instead of
	// results.
	Error string `json:"error,omitempty"`
}

// HistoryEntry is one recorded search. Timestamp is epoch milliseconds.
type HistoryEntry struct {
	Query     string `json:"query"`
	Timestamp int64  `json:"timestamp"`
}

// WatchedQuery is a search term monitored for price drops.
type WatchedQuery struct {
	Query     string `json:"query"`
	CreatedAt int64  `json:"createdAt"`
}

// AlertRecord is one persisted, deduplicated price-drop notification.
// ID is a deterministic content hash; two observations of the same drop
// (same query, same offer, same capture token) share an ID.
type AlertRecord struct {
	ID            string  `json:"id"`
	Timestamp     int64   `json:"timestamp"`
	Query         string  `json:"query"`
	Name          string  `json:"nombre"`
	Store         string  `json:"tienda"`
	Source        string  `json:"fuente"`
	PreviousPrice float64 `json:"precioAnterior"`
	CurrentPrice  float64 `json:"precioActual"`
	Delta         float64 `json:"delta"`
	DeltaPct      float64 `json:"deltaPct"`
	Link          string  `json:"link"`
}
