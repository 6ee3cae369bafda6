// Package renderer turns report values into markdown documents. Layout only:
// every number comes from the bankfeed package.
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/bankfeed"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders the full spending report with its deterministic
// section ordering: header and period, transaction table, summary totals,
// per-currency category breakdown, top expenses, daily grid, footer.
func ReportMarkdown(r *bankfeed.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	period := fmt.Sprintf("%d-Day", r.Days)
	if r.Days <= 7 {
		period = "Weekly"
	}
	doc.H1(fmt.Sprintf("📊 %s Spending Report", period))
	doc.PlainText(fmt.Sprintf("**Period:** %s – %s",
		r.Window.From.Time().Format("January 2"),
		r.Window.To.Time().Format("January 2, 2006")))
	doc.HorizontalRule()

	transactionsSection(doc, r)
	summarySection(doc, r)
	categorySections(doc, r)
	topExpensesSection(doc, r)
	dailySection(doc, r)

	doc.HorizontalRule()
	doc.PlainText(fmt.Sprintf("*Generated on %s*", r.GeneratedAt.Format("2006-01-02 15:04:05")))

	return doc.String()
}

func transactionsSection(doc *md.Markdown, r *bankfeed.Report) {
	doc.H2("📋 All Transactions")

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"Date", "Description", "Amount", "Category", "Source"},
	}
	for _, tx := range r.Transactions {
		table.Rows = append(table.Rows, []string{
			tx.Time.Format("Jan 02 15:04"),
			truncate(tx.Description, 40),
			signedAmount(tx),
			tx.Category,
			sourceLabel(tx),
		})
	}
	doc.Table(table)

	expenses := r.ExpenseCount()
	doc.PlainText(fmt.Sprintf("*Total: %d transactions (%d expenses, %d income)*",
		len(r.Transactions), expenses, len(r.Transactions)-expenses))
}

func summarySection(doc *md.Markdown, r *bankfeed.Report) {
	doc.HorizontalRule()
	doc.H2("💰 Summary")

	doc.H3("Expenses")
	var lines []string
	for _, c := range r.View.ExpenseCurrencies() {
		lines = append(lines, fmt.Sprintf("%s: %s", md.Bold(c), r.View.ExpenseTotals[c].String()))
	}
	doc.BulletList(lines...)

	if len(r.View.IncomeTotals) > 0 {
		doc.H3("Income")
		lines = lines[:0]
		for _, c := range r.View.Currencies() {
			total, ok := r.View.IncomeTotals[c]
			if !ok {
				continue
			}
			lines = append(lines, fmt.Sprintf("%s: +%s", md.Bold(c), total.String()))
		}
		doc.BulletList(lines...)
	}
}

func categorySections(doc *md.Markdown, r *bankfeed.Report) {
	for _, currency := range r.View.ExpenseCurrencies() {
		rows := r.Breakdown(currency)
		if len(rows) == 0 {
			continue
		}

		doc.HorizontalRule()
		doc.H2(fmt.Sprintf("📂 %s Expenses by Category", currency))
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Category", "Amount", "%"},
		}
		for _, row := range rows {
			table.Rows = append(table.Rows, []string{
				row.Category,
				row.Amount.String(),
				fmt.Sprintf("%.0f%% %s", row.Percent, percentBar(row.Percent)),
			})
		}
		table.Rows = append(table.Rows, []string{
			md.Bold("Total"), md.Bold(r.View.ExpenseTotals[currency].String()), "",
		})
		doc.Table(table)
	}
}

func topExpensesSection(doc *md.Markdown, r *bankfeed.Report) {
	if len(r.View.TopExpenses) == 0 {
		return
	}

	doc.HorizontalRule()
	doc.H2("🔝 Top 10 Expenses")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignCenter, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
		Header:    []string{"#", "Date", "Description", "Amount", "Source"},
	}
	for i, tx := range r.View.TopExpenses {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", i+1),
			tx.Time.Format("Jan 02"),
			truncate(tx.Description, 35),
			tx.Amount.Abs().String(),
			sourceLabel(tx),
		})
	}
	doc.Table(table)
}

func dailySection(doc *md.Markdown, r *bankfeed.Report) {
	currencies := r.View.ExpenseCurrencies()
	if len(currencies) == 0 {
		return
	}

	doc.HorizontalRule()
	doc.H2("📅 Daily Spending")
	table := md.TableSet{
		Alignment: make([]md.TableAlignment, 0, len(currencies)+1),
		Header:    append([]string{"Day"}, currencies...),
	}
	table.Alignment = append(table.Alignment, md.AlignLeft)
	for range currencies {
		table.Alignment = append(table.Alignment, md.AlignRight)
	}

	for _, day := range r.View.Daily {
		row := []string{day.Date.Time().Format("Mon 02")}
		for _, c := range currencies {
			total, ok := day.Totals[c]
			if !ok || total.IsZero() {
				row = append(row, "—") // zero-activity days stay visible
			} else {
				row = append(row, total.String())
			}
		}
		table.Rows = append(table.Rows, row)
	}
	doc.Table(table)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

func signedAmount(tx bankfeed.Transaction) string {
	if tx.IsExpense {
		return "-" + tx.Amount.Abs().String()
	}
	return "+" + tx.Amount.String()
}

// sourceLabel decorates the source with its sub-account type.
func sourceLabel(tx bankfeed.Transaction) string {
	emoji := "🌍"
	if tx.Source == "Monobank" {
		emoji = "🏦"
	}
	if tx.AccountType == "" {
		return fmt.Sprintf("%s %s", emoji, tx.Source)
	}
	return fmt.Sprintf("%s %s", emoji, tx.AccountType)
}

func percentBar(pct float64) string {
	filled := int(pct / 5)
	if filled > 20 {
		filled = 20
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}
