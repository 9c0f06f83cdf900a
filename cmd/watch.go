package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mrivarola/ofertas/internal/tracker"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Manage queries watched for price drops",
	RunE:  runWatchList,
}

var watchToggleCmd = &cobra.Command{
	Use:   "toggle [query]",
	Short: "Flip the watch state of a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatchToggle,
}

var watchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List watched queries",
	RunE:  runWatchList,
}

var watchRemoveCmd = &cobra.Command{
	Use:   "remove [query]",
	Short: "Stop watching a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runWatchRemove,
}

func init() {
	watchCmd.AddCommand(watchToggleCmd)
	watchCmd.AddCommand(watchListCmd)
	watchCmd.AddCommand(watchRemoveCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatchToggle(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return errors.New("query cannot be empty")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	watch := tracker.NewWatchSet(st)
	watched, err := watch.Toggle(query)
	if err != nil {
		return err
	}

	if !watched {
		fmt.Fprintf(os.Stdout, "Stopped watching %q.\n", query)
		return nil
	}
	fmt.Fprintf(os.Stdout, "Now watching %q for price drops.\n", query)

	// If the last search covers this query, scan it right away.
	if env := st.LastSearch(); env != nil && strings.EqualFold(env.Query, query) {
		if n := tracker.NewDetector(st, watch).Process(query, env); n > 0 {
			fmt.Fprintf(os.Stdout, "%d price drop(s) found in the last results. See 'ofertas alerts'.\n", n)
		}
	}
	return nil
}

func runWatchList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	queries := tracker.NewWatchSet(st).List()
	if len(queries) == 0 {
		fmt.Fprintln(os.Stdout, "No watched queries. Add one with 'ofertas watch toggle <query>'.")
		return nil
	}

	for _, q := range queries {
		fmt.Fprintf(os.Stdout, " * %s  (since %s)\n", q.Query, formatRelativeTime(q.CreatedAt))
	}
	return nil
}

func runWatchRemove(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return errors.New("query cannot be empty")
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := tracker.NewWatchSet(st).Remove(query); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Stopped watching %q.\n", query)
	return nil
}
