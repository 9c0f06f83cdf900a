package cmd

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mrivarola/ofertas/internal/models"
)

// printProductsTable prints products in a human-friendly card layout.
func printProductsTable(products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(os.Stdout, "No products found.")
		return
	}

	for i, p := range products {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintf(os.Stdout, " %d. %s\n", i+1, p.Name)

		priceLine := "    Price: " + formatPrice(p.Price)
		if p.DiscountLabel != "" {
			priceLine += fmt.Sprintf("  [%s]", p.DiscountLabel)
		}
		priceLine += "  |  " + p.Source
		if p.Store != "" {
			priceLine += fmt.Sprintf(" (%s)", p.Store)
		}
		fmt.Fprintln(os.Stdout, priceLine)

		if line := formatPriceChange(p.PriceChange); line != "" {
			fmt.Fprintf(os.Stdout, "    %s\n", line)
		}
		if p.Link != "" {
			fmt.Fprintf(os.Stdout, "    %s\n", p.Link)
		}
	}
}

// printAlertsTable prints stored alerts, newest first.
func printAlertsTable(alerts []models.AlertRecord) {
	for i, a := range alerts {
		if i > 0 {
			fmt.Fprintln(os.Stdout)
		}
		fmt.Fprintf(os.Stdout, " %s  %s\n", a.ID, a.Name)
		fmt.Fprintf(os.Stdout, "    %s -> %s  (down %s, %.2f%%)\n",
			formatPrice(a.PreviousPrice), formatPrice(a.CurrentPrice),
			formatPrice(math.Abs(a.Delta)), math.Abs(a.DeltaPct))

		meta := "    query: " + a.Query
		if a.Store != "" {
			meta += "  |  " + a.Store
		} else if a.Source != "" {
			meta += "  |  " + a.Source
		}
		meta += "  |  " + formatRelativeTime(a.Timestamp)
		fmt.Fprintln(os.Stdout, meta)

		if a.Link != "" {
			fmt.Fprintf(os.Stdout, "    %s\n", a.Link)
		}
	}
}

// formatPriceChange renders a product's historical delta, or "" when no
// baseline exists.
func formatPriceChange(change *models.PriceChange) string {
	if change == nil || change.PreviousPrice == nil {
		return ""
	}
	switch {
	case change.Delta < 0:
		return fmt.Sprintf("Down %s (%.2f%%)", formatPrice(math.Abs(change.Delta)), math.Abs(change.DeltaPct))
	case change.Delta > 0:
		return fmt.Sprintf("Up %s (%.2f%%)", formatPrice(change.Delta), math.Abs(change.DeltaPct))
	default:
		return "No change"
	}
}

// formatPrice formats a price as "$1.234,56" (es-AR grouping).
// Zero or unknown prices render as "N/A".
func formatPrice(v float64) string {
	if v == 0 || math.IsNaN(v) {
		return "N/A"
	}

	s := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var parts []string
	for len(intPart) > 3 {
		parts = append([]string{intPart[len(intPart)-3:]}, parts...)
		intPart = intPart[:len(intPart)-3]
	}
	parts = append([]string{intPart}, parts...)

	return "$" + strings.Join(parts, ".") + "," + frac
}

// formatRelativeTime renders an epoch-ms timestamp as a short age ("5m", "3h", "2d").
func formatRelativeTime(ms int64) string {
	d := time.Since(time.UnixMilli(ms))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
