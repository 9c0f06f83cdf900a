package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mrivarola/ofertas/internal/models"
	"github.com/mrivarola/ofertas/internal/tracker"
)

func registerTools(s *server.MCPServer, deps Deps) {
	// search_products
	searchTool := mcp.NewTool("search_products",
		mcp.WithDescription("Search products across all price providers; records history and scans watched queries for drops"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search query"),
		),
		mcp.WithNumber("min_price",
			mcp.Description("Minimum price filter (inclusive)"),
		),
		mcp.WithNumber("max_price",
			mcp.Description("Maximum price filter (inclusive)"),
		),
		mcp.WithString("sort",
			mcp.Description("Sort order: price_asc, price_desc, best_deal"),
		),
	)
	s.AddTool(searchTool, handleSearch(deps))

	// retry_provider
	retryTool := mcp.NewTool("retry_provider",
		mcp.WithDescription("Re-fetch only the preciosgamer provider and merge it into the last search results"),
		mcp.WithString("query",
			mcp.Description("Query to retry (default: last searched query)"),
		),
	)
	s.AddTool(retryTool, handleRetry(deps))

	// toggle_watch
	toggleTool := mcp.NewTool("toggle_watch",
		mcp.WithDescription("Flip the price-drop watch state of a query"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Query to watch or unwatch"),
		),
	)
	s.AddTool(toggleTool, handleToggleWatch(deps))

	// list_watched
	listWatchedTool := mcp.NewTool("list_watched",
		mcp.WithDescription("List all queries watched for price drops"),
	)
	s.AddTool(listWatchedTool, handleListWatched(deps))

	// list_alerts
	listAlertsTool := mcp.NewTool("list_alerts",
		mcp.WithDescription("List detected price-drop alerts, newest first"),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of alerts to return"),
		),
	)
	s.AddTool(listAlertsTool, handleListAlerts(deps))

	// check_alerts
	checkTool := mcp.NewTool("check_alerts",
		mcp.WithDescription("Re-run every watched query against the backend and report new price drops"),
	)
	s.AddTool(checkTool, handleCheckAlerts(deps))

	// search_history
	historyTool := mcp.NewTool("search_history",
		mcp.WithDescription("List recent searches, most recent first"),
	)
	s.AddTool(historyTool, handleSearchHistory(deps))
}

type searchResult struct {
	Query     string           `json:"query"`
	Total     int              `json:"total"`
	NewAlerts int              `json:"new_alerts"`
	Products  []models.Product `json:"products"`
}

func handleSearch(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := request.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		history := tracker.NewHistoryManager(deps.Store)
		if _, err := history.Record(query); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("history error: %v", err)), nil
		}

		env, err := deps.Client.Search(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search error: %v", err)), nil
		}
		_ = deps.Store.SetLastSearch(env)

		watch := tracker.NewWatchSet(deps.Store)
		newAlerts := tracker.NewDetector(deps.Store, watch).Process(query, env)

		view := env.Merged
		total := len(view)
		view = tracker.FilterByPriceRange(view, optionalNumber(request, "min_price"), optionalNumber(request, "max_price"))
		view = tracker.SortProducts(view, tracker.SortMode(request.GetString("sort", "")))

		return jsonResult(searchResult{
			Query:     query,
			Total:     total,
			NewAlerts: newAlerts,
			Products:  view,
		})
	}
}

func handleRetry(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		current := deps.Store.LastSearch()

		query := request.GetString("query", "")
		if query == "" && current != nil {
			query = current.Query
		}
		if query == "" {
			return mcp.NewToolResultError("no previous search; pass a query"), nil
		}

		products, err := deps.Client.RetryPreciosGamer(ctx, query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("retry error: %v", err)), nil
		}

		env := tracker.MergeProviderRefresh(current, query, products)
		_ = deps.Store.SetLastSearch(env)

		return jsonResult(env)
	}
}

func handleToggleWatch(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := request.GetString("query", "")
		if query == "" {
			return mcp.NewToolResultError("query is required"), nil
		}

		watched, err := tracker.NewWatchSet(deps.Store).Toggle(query)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("toggle error: %v", err)), nil
		}

		return jsonResult(map[string]any{"query": query, "watched": watched})
	}
}

func handleListWatched(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(tracker.NewWatchSet(deps.Store).List())
	}
}

func handleListAlerts(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		alerts := deps.Store.Alerts()
		if limit := request.GetInt("limit", 0); limit > 0 && limit < len(alerts) {
			alerts = alerts[:limit]
		}
		return jsonResult(alerts)
	}
}

func handleCheckAlerts(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		watch := tracker.NewWatchSet(deps.Store)
		detector := tracker.NewDetector(deps.Store, watch)
		checker := tracker.NewChecker(deps.Client, watch, detector, deps.Store)

		added, err := checker.CheckAll(ctx)
		if errors.Is(err, tracker.ErrNoWatchedQueries) {
			return jsonResult(map[string]any{"new_alerts": 0, "watched": 0})
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("check error: %v", err)), nil
		}

		return jsonResult(map[string]any{
			"new_alerts": added,
			"watched":    len(watch.List()),
		})
	}
}

func handleSearchHistory(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(tracker.NewHistoryManager(deps.Store).List())
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

// optionalNumber returns the argument as a float pointer, or nil when absent.
func optionalNumber(request mcp.CallToolRequest, name string) *float64 {
	args := request.GetArguments()
	raw, ok := args[name]
	if !ok {
		return nil
	}
	f, ok := raw.(float64)
	if !ok {
		return nil
	}
	return &f
}
