package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mrivarola/ofertas/internal/tracker"
	"github.com/mrivarola/ofertas/internal/ui"
	"github.com/spf13/cobra"
)

var retryCmd = &cobra.Command{
	Use:   "retry [query]",
	Short: "Re-fetch only the preciosgamer provider and merge into the last results",
	Long: "Refreshes the preciosgamer slot of the most recent search without re-querying " +
		"hardgamers. Without an argument the last searched query is reused.",
	Args: cobra.ArbitraryArgs,
	RunE: runRetry,
}

func init() {
	rootCmd.AddCommand(retryCmd)
}

func runRetry(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	current := st.LastSearch()

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" && current != nil {
		query = current.Query
	}
	if query == "" {
		return errors.New("run a search first so there is something to retry")
	}

	client := buildClient()

	spin := ui.NewSpinner()
	spin.Start("Retrying preciosgamer...")
	products, err := client.RetryPreciosGamer(context.Background(), query)
	spin.Stop()
	if err != nil {
		return fmt.Errorf("retry failed: %w", err)
	}

	env := tracker.MergeProviderRefresh(current, query, products)
	if err := st.SetLastSearch(env); err != nil {
		return fmt.Errorf("save results: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Refreshed preciosgamer for %q: %d offers, %d total\n\n", query, len(products), env.Total)
	printProductsTable(env.Merged)
	return nil
}
