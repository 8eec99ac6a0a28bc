package cli

import (
	"strconv"

	"github.com/dafibh/fortuna/tracker-backend/internal/engine"
	"github.com/spf13/cobra"
)

func newSummaryCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Total, per-category and per-day spending under the filters",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := opts.load()
			if err != nil {
				return err
			}
			runSummary(opts, s)
			return nil
		},
	}
}

func runSummary(opts *options, s *state) {
	opts.println(RenderTitle("EXPENSES  " + s.filterLabel()))
	s.notes(opts)

	if len(s.filtered) == 0 {
		opts.println(RenderNote("No expenses match the filters.", false))
		return
	}

	opts.println(RenderTable(Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Expenses", strconv.Itoa(len(s.filtered))},
			{"Total", formatMoney(engine.TotalAmount(s.filtered))},
		},
	}))

	byCategory := Table{Title: "By category", Headers: []string{"Category", "Total"}}
	for _, g := range engine.CategoryGroups(engine.GroupByCategory(s.filtered)) {
		byCategory.Rows = append(byCategory.Rows, []string{g.Key, formatMoney(g.Total)})
	}
	opts.println(RenderTable(byCategory))

	byDay := Table{Title: "By day", Headers: []string{"Date", "Total"}}
	for _, g := range engine.DayGroups(engine.GroupByDay(s.filtered)) {
		byDay.Rows = append(byDay.Rows, []string{g.Key, formatMoney(g.Total)})
	}
	opts.println(RenderTable(byDay))
}
