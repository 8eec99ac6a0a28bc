package cli

import (
	"github.com/dafibh/fortuna/tracker-backend/internal/engine"
	"github.com/spf13/cobra"
)

func newMonthsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "months",
		Short: "Monthly income and savings goals, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}

			opts.println(RenderTitle("MONTHS"))
			if len(s.snapshot.Budgets) == 0 {
				opts.println(RenderNote("No monthly budgets recorded.", false))
				return nil
			}

			table := Table{Headers: []string{"Month", "Income", "Savings goal", "Available"}}
			for _, b := range engine.SortBudgetsNewestFirst(s.snapshot.Budgets) {
				table.Rows = append(table.Rows, []string{
					b.Key().String(),
					formatMoney(b.Income),
					formatMoney(b.SavingsGoal),
					formatMoney(b.Income - b.SavingsGoal),
				})
			}
			opts.println(RenderTable(table))
			return nil
		},
	}
}
