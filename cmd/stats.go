package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/bankfeed"
	"github.com/google/subcommands"
)

// statsCmd displays expense statistics: total spent and category breakdown.
type statsCmd struct {
	days    int
	account string
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show expense statistics by category" }
func (*statsCmd) Usage() string {
	return `bft stats [-days <n>] [-account <id>]

  Shows total spending and the per-category breakdown over the last n days.
  With -account, only that Monobank account is considered; otherwise every
  configured source contributes.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "number of past days to analyze")
	f.StringVar(&c.account, "account", "", "restrict to one Monobank account id")
}

func (c *statsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var (
		txs []bankfeed.Transaction
		err error
	)
	w := window(c.days)

	if c.account != "" {
		txs, err = c.accountTransactions(ctx)
	} else {
		txs, _, err = fetchWindow(ctx, c.days)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report := bankfeed.NewReport(txs, w, time.Now())
	for _, currency := range report.View.ExpenseCurrencies() {
		fmt.Printf("%s: total spent %s over %d days\n", currency, report.View.ExpenseTotals[currency], c.days)
		for _, row := range report.Breakdown(currency) {
			fmt.Printf("  %-28s %12s  %5.1f%%\n", row.Category, row.Amount, row.Percent)
		}
	}
	if len(report.View.ExpenseTotals) == 0 {
		fmt.Println("No expenses in the period.")
	}
	return subcommands.ExitSuccess
}

// accountTransactions fetches and normalizes a single Monobank account.
func (c *statsCmd) accountTransactions(ctx context.Context) ([]bankfeed.Transaction, error) {
	mono, err := newMonobank()
	if err != nil {
		return nil, err
	}
	return mono.AccountTransactions(ctx, c.account, window(c.days))
}
