package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrivarola/ofertas/config"
	"github.com/mrivarola/ofertas/internal/backend"
	"github.com/mrivarola/ofertas/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "ofertas",
	Short: "Ofertas - multi-provider price search, watch lists and drop alerts",
	Long:  "A CLI tool and MCP server that aggregates product-price search results, tracks watched queries and keeps a local log of detected price drops.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("backend-url", "", "Aggregation backend base URL")
	rootCmd.PersistentFlags().String("store", "", "Path to the local state database")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("backend-url"); v != "" {
		cfg.BackendURL = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("store"); v != "" {
		cfg.StorePath = v
	}
}

// buildClient creates the rate-limited backend client from config.
func buildClient() *backend.Client {
	limiter := rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst)
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return backend.New(cfg.BackendURL, limiter, timeout)
}

// openStore opens the local state database, creating its directory if needed.
func openStore() (*store.Store, error) {
	if dir := filepath.Dir(cfg.StorePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}
	return st, nil
}
