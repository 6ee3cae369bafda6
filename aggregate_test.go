package bankfeed

import (
	"testing"
	"time"

	"github.com/etnz/bankfeed/date"
)

func day(d string, hour int) time.Time {
	return date.MustParse(d).Time().Add(time.Duration(hour) * time.Hour)
}

func expense(at time.Time, desc string, amount float64, currency, category string) Transaction {
	return NewTransaction(at, desc, M(-amount, currency), category, "Monobank", "black", "")
}

func income(at time.Time, desc string, amount float64, currency string) Transaction {
	return NewTransaction(at, desc, M(amount, currency), "Income", "Monobank", "black", "")
}

func TestAggregateTotals(t *testing.T) {
	window := date.LastDays(date.MustParse("2025-06-14"), 14)
	txs := []Transaction{
		expense(day("2025-06-14", 10), "ATB Market", 250.50, "UAH", "Groceries"),
		expense(day("2025-06-13", 9), "Uber", 120, "UAH", "Transport"),
		expense(day("2025-06-13", 20), "Netflix", 4.99, "EUR", "Subscriptions"),
		income(day("2025-06-10", 12), "Salary", 1000, "UAH"),
	}
	SortByTimeDesc(txs)

	v := Aggregate(txs, window)

	if got, want := v.ExpenseTotals["UAH"].StringFixed(), "370.50"; got != want {
		t.Errorf("ExpenseTotals[UAH] = %s, want %s", got, want)
	}
	if got, want := v.ExpenseTotals["EUR"].StringFixed(), "4.99"; got != want {
		t.Errorf("ExpenseTotals[EUR] = %s, want %s", got, want)
	}
	if got, want := v.IncomeTotals["UAH"].StringFixed(), "1000.00"; got != want {
		t.Errorf("IncomeTotals[UAH] = %s, want %s", got, want)
	}
	// Income must never be netted against expenses.
	if _, ok := v.IncomeTotals["EUR"]; ok {
		t.Errorf("IncomeTotals[EUR] should be absent")
	}

	if got, want := v.ByCategory["UAH"]["Groceries"].StringFixed(), "250.50"; got != want {
		t.Errorf("ByCategory[UAH][Groceries] = %s, want %s", got, want)
	}
	if got, want := v.ByCategory["UAH"]["Transport"].StringFixed(), "120.00"; got != want {
		t.Errorf("ByCategory[UAH][Transport] = %s, want %s", got, want)
	}
}

func TestAggregateCategorySumsReconcile(t *testing.T) {
	window := date.LastDays(date.MustParse("2025-06-14"), 14)
	txs := []Transaction{
		expense(day("2025-06-12", 8), "a", 10.10, "UAH", "Groceries"),
		expense(day("2025-06-12", 9), "b", 20.20, "UAH", "Transport"),
		expense(day("2025-06-13", 10), "c", 30.35, "UAH", "Groceries"),
	}
	v := Aggregate(txs, window)

	var sum Money
	for _, amount := range v.ByCategory["UAH"] {
		sum = sum.Add(amount)
	}
	if !sum.Equal(v.ExpenseTotals["UAH"]) {
		t.Errorf("category sums %s do not reconcile with total %s", sum, v.ExpenseTotals["UAH"])
	}
}

func TestAggregateDailyGrid(t *testing.T) {
	window := date.LastDays(date.MustParse("2025-06-14"), 14)
	txs := []Transaction{
		expense(day("2025-06-14", 10), "a", 50, "UAH", "Groceries"),
		// Outside the window, must not land in the grid.
		expense(day("2025-05-01", 10), "old", 99, "UAH", "Groceries"),
	}
	v := Aggregate(txs, window)

	if len(v.Daily) != 14 {
		t.Fatalf("daily grid has %d rows, want 14", len(v.Daily))
	}
	if got, want := v.Daily[0].Date, date.MustParse("2025-06-01"); got != want {
		t.Errorf("first day = %s, want %s", got, want)
	}
	if got, want := v.Daily[13].Date, date.MustParse("2025-06-14"); got != want {
		t.Errorf("last day = %s, want %s", got, want)
	}
	// Zero-activity days are explicit with empty totals.
	if len(v.Daily[3].Totals) != 0 {
		t.Errorf("quiet day has totals %v", v.Daily[3].Totals)
	}
	if got, want := v.Daily[13].Totals["UAH"].StringFixed(), "50.00"; got != want {
		t.Errorf("last day total = %s, want %s", got, want)
	}
	// The out-of-window total is in ExpenseTotals but not in the grid.
	var inGrid Money
	for _, d := range v.Daily {
		inGrid = inGrid.Add(d.Totals["UAH"])
	}
	if got, want := inGrid.StringFixed(), "50.00"; got != want {
		t.Errorf("grid total = %s, want %s", got, want)
	}
}

func TestAggregateTopExpenses(t *testing.T) {
	window := date.LastDays(date.MustParse("2025-06-14"), 14)
	var txs []Transaction
	for i := 1; i <= 12; i++ {
		txs = append(txs, expense(day("2025-06-10", i), "tx", float64(i), "UAH", "Shopping"))
	}
	v := Aggregate(txs, window)

	if len(v.TopExpenses) != TopExpenseCount {
		t.Fatalf("top expenses has %d entries, want %d", len(v.TopExpenses), TopExpenseCount)
	}
	for i := 1; i < len(v.TopExpenses); i++ {
		a := v.TopExpenses[i-1].Amount.Abs()
		b := v.TopExpenses[i].Amount.Abs()
		if a.LessThan(b) {
			t.Errorf("top expenses not sorted at %d: %s < %s", i, a, b)
		}
	}
	if got, want := v.TopExpenses[0].Amount.Abs().StringFixed(), "12.00"; got != want {
		t.Errorf("largest expense = %s, want %s", got, want)
	}
}

func TestAggregateEmpty(t *testing.T) {
	window := date.LastDays(date.MustParse("2025-06-14"), 7)
	v := Aggregate(nil, window)

	if len(v.Daily) != 7 {
		t.Errorf("daily grid has %d rows, want 7", len(v.Daily))
	}
	if len(v.TopExpenses) != 0 {
		t.Errorf("top expenses should be empty")
	}
	if len(v.Currencies()) != 0 {
		t.Errorf("currencies should be empty")
	}
}
