// Package cli implements budgetctl, which computes the dashboard figures
// from a snapshot file.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dafibh/fortuna/tracker-backend/internal/domain"
	"github.com/dafibh/fortuna/tracker-backend/internal/engine"
	"github.com/dafibh/fortuna/tracker-backend/internal/snapshot"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const todayLayout = "2006-01-02"

// options holds the persistent flags shared by every command
type options struct {
	file        string
	category    string
	window      string
	today       string
	strictDates bool

	out io.Writer
}

// state is what a command computes over: the loaded records, the parsed
// filters and the reference time
type state struct {
	snapshot *snapshot.Snapshot
	criteria engine.Criteria
	now      time.Time
	filtered []domain.Expense
	// substituted counts expenses whose unreadable date was replaced by now
	substituted int
}

// NewRootCommand builds the command tree writing to out
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &options{out: out}

	root := &cobra.Command{
		Use:           "budgetctl",
		Short:         "Expense dashboard figures from a snapshot file",
		Long:          "Filter, group and project expenses against monthly income and savings goals.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "snapshot.toml", "Snapshot file (TOML)")
	flags.StringVarP(&opts.category, "category", "c", string(domain.CategoryFilterAll), "Category filter: All, Food, Transport, Entertainment, Bills, Other")
	flags.StringVarP(&opts.window, "window", "w", "30", "Trailing window in days, or All")
	flags.StringVar(&opts.today, "today", "", "Reference day YYYY-MM-DD (default: today)")
	flags.BoolVar(&opts.strictDates, "strict-dates", false, "Fail on expenses with unreadable dates instead of counting them as today")

	root.AddCommand(
		newSummaryCommand(opts),
		newProjectCommand(opts),
		newMonthsCommand(opts),
	)
	return root
}

// Execute runs budgetctl against os.Args and exits non-zero on failure
func Execute() {
	root := NewRootCommand(os.Stdout)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, RenderNote("Error: "+err.Error(), true))
		os.Exit(1)
	}
}

// load reads the snapshot and applies the filter flags
func (o *options) load() (*state, error) {
	criteria, err := o.criteria()
	if err != nil {
		return nil, err
	}

	now, err := o.now()
	if err != nil {
		return nil, err
	}

	snap, err := snapshot.Load(o.file)
	if err != nil {
		return nil, err
	}

	normalized, substituted, err := engine.NormalizeDates(snap.Expenses, now, criteria.DatePolicy)
	if err != nil {
		return nil, err
	}

	filtered, err := engine.FilterExpenses(normalized, criteria, now)
	if err != nil {
		return nil, err
	}

	return &state{
		snapshot:    snap,
		criteria:    criteria,
		now:         now,
		filtered:    filtered,
		substituted: substituted,
	}, nil
}

func (o *options) criteria() (engine.Criteria, error) {
	category, err := domain.ParseCategoryFilter(o.category)
	if err != nil {
		return engine.Criteria{}, fmt.Errorf("--category: %w", err)
	}
	window, err := domain.ParseWindow(o.window)
	if err != nil {
		return engine.Criteria{}, fmt.Errorf("--window: %w", err)
	}

	policy := engine.DateFallbackNow
	if o.strictDates {
		policy = engine.DateStrict
	}
	return engine.Criteria{Category: category, Window: window, DatePolicy: policy}, nil
}

func (o *options) now() (time.Time, error) {
	if o.today == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(todayLayout, o.today)
	if err != nil {
		return time.Time{}, fmt.Errorf("--today must be YYYY-MM-DD: %w", err)
	}
	return t, nil
}

func (o *options) println(s string) {
	fmt.Fprintln(o.out, s)
}

func (s *state) filterLabel() string {
	return fmt.Sprintf("category %s  window %s", s.criteria.Category, windowLabel(s.criteria.Window))
}

func (s *state) notes(o *options) {
	if s.substituted > 0 {
		o.println(RenderNote(fmt.Sprintf("%d expense(s) had unreadable dates and were counted as today", s.substituted), true))
	}
}

func windowLabel(w domain.Window) string {
	if w.IsAll() {
		return "all time"
	}
	return fmt.Sprintf("last %dd", w.Days())
}

// formatMoney renders an amount with two decimals
func formatMoney(f float64) string {
	return decimal.NewFromFloat(f).StringFixed(2)
}
