package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mrivarola/ofertas/internal/tracker"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	RunE:  runHistoryList,
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove [index]",
	Short: "Remove one history entry by its position",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryRemove,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the whole search history",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	entries := tracker.NewHistoryManager(st).List()
	if len(entries) == 0 {
		fmt.Fprintln(os.Stdout, "No recent searches.")
		return nil
	}

	for i, e := range entries {
		fmt.Fprintf(os.Stdout, " %d. %s  (%s)\n", i+1, e.Query, formatRelativeTime(e.Timestamp))
	}
	return nil
}

func runHistoryRemove(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[0])
	if err != nil || index < 1 {
		return fmt.Errorf("invalid index %q", args[0])
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	// Positions are 1-based as printed by the list.
	return tracker.NewHistoryManager(st).Remove(index - 1)
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := tracker.NewHistoryManager(st).Clear(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Search history cleared.")
	return nil
}
