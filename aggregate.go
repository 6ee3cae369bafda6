package bankfeed

import (
	"sort"

	"github.com/etnz/bankfeed/date"
)

// TopExpenseCount is the number of largest expenses reported in a view.
const TopExpenseCount = 10

// DayExpenses holds the summed expense per currency for one calendar day.
// Days with no activity are present with an empty Totals map.
type DayExpenses struct {
	Date   date.Date
	Totals map[string]Money // currency -> absolute expense sum
}

// AggregateView is a pure derived view over a transaction list and a window.
// All maps are keyed by the exact currency and category strings already
// present on the transactions; no re-categorization happens here. Sums stay
// exact decimals, rounding is a presentation concern.
type AggregateView struct {
	Window date.Range

	// Absolute totals per currency, expenses and income summed independently,
	// never netted against each other.
	ExpenseTotals map[string]Money
	IncomeTotals  map[string]Money

	// ByCategory maps currency -> category -> summed absolute expense amount.
	ByCategory map[string]map[string]Money

	// TopExpenses holds the transactions with the largest absolute amounts
	// among expenses, at most TopExpenseCount of them. Ties keep the order of
	// the input list (stable on timestamp-descending input).
	TopExpenses []Transaction

	// Daily has one entry for every calendar day in the window, inclusive,
	// in ascending order. Zero-activity days are explicit, never omitted.
	Daily []DayExpenses
}

// Aggregate computes the derived view of the given transactions over the
// window. The input is expected in the canonical timestamp-descending order.
func Aggregate(txs []Transaction, window date.Range) *AggregateView {
	v := &AggregateView{
		Window:        window,
		ExpenseTotals: make(map[string]Money),
		IncomeTotals:  make(map[string]Money),
		ByCategory:    make(map[string]map[string]Money),
	}

	dayIndex := make(map[date.Date]int, window.Len())
	for d := range window.Days() {
		dayIndex[d] = len(v.Daily)
		v.Daily = append(v.Daily, DayExpenses{Date: d, Totals: make(map[string]Money)})
	}

	var expenses []Transaction
	for _, tx := range txs {
		c := tx.Amount.Currency()
		abs := tx.Amount.Abs()
		if !tx.IsExpense {
			v.IncomeTotals[c] = v.IncomeTotals[c].Add(abs)
			continue
		}
		v.ExpenseTotals[c] = v.ExpenseTotals[c].Add(abs)

		cats := v.ByCategory[c]
		if cats == nil {
			cats = make(map[string]Money)
			v.ByCategory[c] = cats
		}
		cats[tx.Category] = cats[tx.Category].Add(abs)

		if i, ok := dayIndex[date.Of(tx.Time)]; ok {
			v.Daily[i].Totals[c] = v.Daily[i].Totals[c].Add(abs)
		}

		expenses = append(expenses, tx)
	}

	// Largest absolute amounts first, stable so ties follow the input order.
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.Abs().GreaterThan(expenses[j].Amount.Abs())
	})
	if len(expenses) > TopExpenseCount {
		expenses = expenses[:TopExpenseCount]
	}
	v.TopExpenses = expenses

	return v
}

// Currencies returns every currency observed in the view, sorted for
// deterministic rendering.
func (v *AggregateView) Currencies() []string {
	seen := make(map[string]bool)
	for c := range v.ExpenseTotals {
		seen[c] = true
	}
	for c := range v.IncomeTotals {
		seen[c] = true
	}
	currencies := make([]string, 0, len(seen))
	for c := range seen {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	return currencies
}

// ExpenseCurrencies returns the currencies with at least one expense, sorted.
func (v *AggregateView) ExpenseCurrencies() []string {
	currencies := make([]string, 0, len(v.ExpenseTotals))
	for c := range v.ExpenseTotals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)
	return currencies
}
