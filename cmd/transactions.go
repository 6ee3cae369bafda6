package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// transactionsCmd lists the normalized transactions of the last N days.
type transactionsCmd struct {
	days int
}

func (*transactionsCmd) Name() string     { return "transactions" }
func (*transactionsCmd) Synopsis() string { return "list normalized transactions from all sources" }
func (*transactionsCmd) Usage() string {
	return `bft transactions [-days <n>]

  Fetches the last n days from every configured source and lists the merged,
  normalized transactions, newest first.
`
}

func (c *transactionsCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 14, "number of past days to fetch")
}

func (c *transactionsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, _, err := fetchWindow(ctx, c.days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	for _, tx := range txs {
		sign := "+"
		if tx.IsExpense {
			sign = "-"
		}
		fmt.Printf("%s  %s%s  %-20s %-12s %s\n",
			tx.Time.Format("2006-01-02 15:04"),
			sign, tx.Amount.Abs(),
			tx.Category, tx.Source+"/"+tx.AccountType, tx.Description)
	}
	fmt.Printf("%d transactions\n", len(txs))
	return subcommands.ExitSuccess
}
