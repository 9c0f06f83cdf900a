package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mrivarola/ofertas/internal/tracker"
	"github.com/mrivarola/ofertas/internal/ui"
	"github.com/spf13/cobra"
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show detected price drops",
	RunE:  runAlertsList,
}

var alertsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Re-run every watched query and detect new drops",
	RunE:  runAlertsCheck,
}

var alertsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored alerts",
	RunE:  runAlertsClear,
}

var alertsRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Delete one stored alert by id",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlertsRemove,
}

func init() {
	alertsCmd.AddCommand(alertsCheckCmd)
	alertsCmd.AddCommand(alertsClearCmd)
	alertsCmd.AddCommand(alertsRemoveCmd)
	rootCmd.AddCommand(alertsCmd)
}

func runAlertsList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	alerts := st.Alerts()
	watched := len(tracker.NewWatchSet(st).List())

	fmt.Fprintf(os.Stdout, "%d stored alert(s), %d watched", len(alerts), watched)
	if last, ok := st.LastCheck(); ok {
		fmt.Fprintf(os.Stdout, ", last check %s", formatRelativeTime(last))
	}
	fmt.Fprintln(os.Stdout)

	if len(alerts) == 0 {
		fmt.Fprintln(os.Stdout, "No price drops detected yet.")
		return nil
	}

	fmt.Fprintln(os.Stdout)
	printAlertsTable(alerts)
	return nil
}

func runAlertsCheck(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	watch := tracker.NewWatchSet(st)
	detector := tracker.NewDetector(st, watch)
	checker := tracker.NewChecker(buildClient(), watch, detector, st)

	spin := ui.NewSpinner()
	spin.Start("Checking watched queries...")
	ctx := tracker.WithProgress(context.Background(), spin.Update)
	added, err := checker.CheckAll(ctx)
	spin.Stop()

	if errors.Is(err, tracker.ErrNoWatchedQueries) {
		return errors.New("no watched queries. Add one with 'ofertas watch toggle <query>'")
	}
	if err != nil {
		return err
	}

	if added == 0 {
		fmt.Fprintln(os.Stdout, "No new price drops.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%d new price drop(s) detected.\n", added)
	return nil
}

func runAlertsClear(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SetAlerts(nil); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Alerts cleared.")
	return nil
}

func runAlertsRemove(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	watch := tracker.NewWatchSet(st)
	return tracker.NewDetector(st, watch).RemoveAlert(args[0])
}
