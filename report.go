package bankfeed

import (
	"fmt"
	"sort"
	"time"

	"github.com/etnz/bankfeed/date"
)

// CategoryAmount is one row of a per-currency category breakdown.
type CategoryAmount struct {
	Category string
	Amount   Money
	Percent  float64 // share of the currency's expense total, 0 when the total is zero
}

// Report holds every value a spending report is made of: the full sorted
// transaction list, the aggregate view, and the recurring payment candidates.
// It is a pure function of its inputs, the single place where the downstream
// math has to reconcile.
type Report struct {
	Window      date.Range
	Days        int
	GeneratedAt time.Time

	Transactions []Transaction
	View         *AggregateView
	Recurring    []RecurringGroup
}

// NewReport computes the full report values for transactions over the window.
// The transaction list is expected in canonical timestamp-descending order.
func NewReport(txs []Transaction, window date.Range, now time.Time) *Report {
	return &Report{
		Window:       window,
		Days:         window.Len(),
		GeneratedAt:  now,
		Transactions: txs,
		View:         Aggregate(txs, window),
		Recurring:    DetectRecurring(txs),
	}
}

// Breakdown returns the category breakdown for one currency, largest amount
// first. Percentages guard against a zero total.
func (r *Report) Breakdown(currency string) []CategoryAmount {
	cats := r.View.ByCategory[currency]
	total := r.View.ExpenseTotals[currency]

	rows := make([]CategoryAmount, 0, len(cats))
	for category, amount := range cats {
		var pct float64
		if !total.IsZero() {
			pct, _ = amount.Amount().Div(total.Amount()).Mul(hundred).Float64()
		}
		rows = append(rows, CategoryAmount{Category: category, Amount: amount, Percent: pct})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Category < rows[j].Category
		}
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})
	return rows
}

var hundred = M(100, "").Amount()

// ExpenseCount returns how many of the report's transactions are expenses.
func (r *Report) ExpenseCount() int {
	n := 0
	for _, tx := range r.Transactions {
		if tx.IsExpense {
			n++
		}
	}
	return n
}

// ReportFilename names a persisted report artifact deterministically from the
// generation date and the day-count parameter.
func ReportFilename(on date.Date, days int) string {
	return fmt.Sprintf("spending-report-%s-%dd.md", on, days)
}
