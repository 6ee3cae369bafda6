package bankfeed

import (
	"math"
	"testing"
	"time"

	"github.com/etnz/bankfeed/date"
)

func TestReportBreakdown(t *testing.T) {
	window := date.LastDays(date.MustParse("2025-06-14"), 14)
	txs := []Transaction{
		expense(day("2025-06-10", 9), "a", 75, "UAH", "Groceries"),
		expense(day("2025-06-11", 9), "b", 25, "UAH", "Transport"),
	}
	r := NewReport(txs, window, time.Now())

	rows := r.Breakdown("UAH")
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Category != "Groceries" || rows[1].Category != "Transport" {
		t.Errorf("rows not sorted by amount: %q, %q", rows[0].Category, rows[1].Category)
	}
	if math.Abs(rows[0].Percent-75) > 0.001 || math.Abs(rows[1].Percent-25) > 0.001 {
		t.Errorf("percents = %f, %f", rows[0].Percent, rows[1].Percent)
	}

	total := 0.0
	for _, row := range rows {
		total += row.Percent
	}
	if math.Abs(total-100) > 0.001 {
		t.Errorf("percents sum to %f", total)
	}
}

func TestReportBreakdownZeroTotal(t *testing.T) {
	window := date.LastDays(date.MustParse("2025-06-14"), 14)
	r := NewReport(nil, window, time.Now())
	if rows := r.Breakdown("UAH"); len(rows) != 0 {
		t.Errorf("got %d rows from empty report", len(rows))
	}
}

func TestReportExpenseCount(t *testing.T) {
	window := date.LastDays(date.MustParse("2025-06-14"), 14)
	txs := []Transaction{
		expense(day("2025-06-10", 9), "a", 75, "UAH", "Groceries"),
		income(day("2025-06-11", 9), "salary", 1000, "UAH"),
		expense(day("2025-06-12", 9), "b", 25, "UAH", "Transport"),
	}
	r := NewReport(txs, window, time.Now())
	if got := r.ExpenseCount(); got != 2 {
		t.Errorf("ExpenseCount() = %d, want 2", got)
	}
	if r.Days != 14 {
		t.Errorf("Days = %d, want 14", r.Days)
	}
}

func TestReportFilename(t *testing.T) {
	got := ReportFilename(date.MustParse("2025-06-14"), 14)
	want := "spending-report-2025-06-14-14d.md"
	if got != want {
		t.Errorf("ReportFilename = %q, want %q", got, want)
	}
}
