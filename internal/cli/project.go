package cli

import (
	"fmt"
	"strconv"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/engine"
	"github.com/spf13/cobra"
)

func newProjectCommand(opts *options) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Projected daily savings for a month",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}

			key := domain.MonthKeyOf(s.now)
			if month != "" {
				key, err = domain.ParseMonthParam(month)
				if err != nil {
					return fmt.Errorf("--month must be YYYY-MM: %w", err)
				}
			}
			return runProject(opts, s, key)
		},
	}
	cmd.Flags().StringVar(&month, "month", "", "Month YYYY-MM (default: month of --today)")
	return cmd
}

func runProject(opts *options, s *state, key domain.MonthKey) error {
	overview, err := engine.MonthOverview(s.filtered, key, s.snapshot.Budgets)
	if err != nil {
		return err
	}
	points, err := engine.ProjectSavings(s.filtered, key, s.snapshot.Budgets, s.criteria.Window, s.now)
	if err != nil {
		return err
	}

	opts.println(RenderTitle("PROJECTION  " + key.String() + "  " + s.filterLabel()))
	s.notes(opts)

	opts.println(RenderTable(Table{
		Title:   "Overview",
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Income", formatMoney(overview.Income)},
			{"Savings goal", formatMoney(overview.SavingsGoal)},
			{separatorRow},
			{"Month expenses", formatMoney(overview.MonthExpenses)},
			{"Projected savings", formatMoney(overview.ProjectedSavings)},
			{"Baseline daily savings", formatMoney(overview.BaselineDailySavings)},
			{"Days in month", strconv.Itoa(overview.DaysInMonth)},
		},
	}))

	if len(points) == 0 {
		opts.println(RenderNote("The window starts after this month; nothing to project.", false))
		return nil
	}

	table := Table{
		Title:   "Daily projection",
		Headers: []string{"Date", "Spent", "Cumulative", "Remaining", "Per day", "Days left"},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			engine.DayKey(p.Date),
			formatMoney(p.DailyExpense),
			formatMoney(p.CumulativeExpenses),
			formatMoney(p.RemainingSavings),
			formatMoney(p.ProjectedSavings),
			strconv.Itoa(p.DaysLeft),
		})
	}
	opts.println(RenderTable(table))
	return nil
}
