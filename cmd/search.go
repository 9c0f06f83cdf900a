package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mrivarola/ofertas/internal/models"
	"github.com/mrivarola/ofertas/internal/tracker"
	"github.com/mrivarola/ofertas/internal/ui"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search products across all providers",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Float64("min-price", 0, "Minimum price (inclusive)")
	searchCmd.Flags().Float64("max-price", 0, "Maximum price (inclusive)")
	searchCmd.Flags().String("sort", "", "Sort order: price_asc, price_desc, best_deal")
	searchCmd.Flags().String("source", "all", "Result view: all, preciosgamer, hardgamers")
	searchCmd.Flags().String("format", "table", "Output format: json, table")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return errors.New("search query cannot be empty")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	history := tracker.NewHistoryManager(st)
	if _, err := history.Record(query); err != nil {
		return fmt.Errorf("record history: %w", err)
	}

	client := buildClient()

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Searching %q...", query))
	ctx := tracker.WithProgress(context.Background(), spin.Update)
	env, err := client.Search(ctx, query)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if err := st.SetLastSearch(env); err != nil {
		return fmt.Errorf("save results: %w", err)
	}

	watch := tracker.NewWatchSet(st)
	newAlerts := tracker.NewDetector(st, watch).Process(query, env)

	view := providerView(env, mustString(cmd, "source"))
	total := len(view)

	minPrice := optionalFloat(cmd, "min-price")
	maxPrice := optionalFloat(cmd, "max-price")
	view = tracker.FilterByPriceRange(view, minPrice, maxPrice)
	view = tracker.SortProducts(view, tracker.SortMode(mustString(cmd, "sort")))

	if minPrice != nil || maxPrice != nil {
		fmt.Fprintf(os.Stdout, "Showing %d of %d results for %q\n\n", len(view), total, query)
	} else {
		fmt.Fprintf(os.Stdout, "Found %d results for %q\n\n", total, query)
	}

	switch mustString(cmd, "format") {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(view)
	default:
		printProductsTable(view)
	}

	if newAlerts > 0 {
		fmt.Fprintf(os.Stderr, "\n%d new price drop(s) detected for %q. See 'ofertas alerts'.\n", newAlerts, query)
	}

	return nil
}

// providerView selects which product list of the envelope to display.
func providerView(env *models.Envelope, source string) []models.Product {
	switch source {
	case "preciosgamer":
		return env.PreciosGamer
	case "hardgamers":
		return env.HardGamers
	default:
		return env.Merged
	}
}

// optionalFloat returns the flag value, or nil when the flag was not set.
func optionalFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func mustString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
