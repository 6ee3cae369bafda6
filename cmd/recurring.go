package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bankfeed"
	"github.com/google/subcommands"
)

// recurringCmd detects candidate subscriptions over a lookback window.
type recurringCmd struct {
	days int
}

func (*recurringCmd) Name() string     { return "recurring" }
func (*recurringCmd) Synopsis() string { return "detect recurring payments (candidate subscriptions)" }
func (*recurringCmd) Usage() string {
	return `bft recurring [-days <n>]

  Groups expenses repeating with the same description and amount over the
  last n days and shows the average interval between occurrences.
`
}

func (c *recurringCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 90, "lookback window in days")
}

func (c *recurringCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, _, err := fetchWindow(ctx, c.days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	groups := bankfeed.DetectRecurring(txs)
	if len(groups) == 0 {
		fmt.Println("No recurring payments found.")
		return subcommands.ExitSuccess
	}
	for _, g := range groups {
		fmt.Printf("%-40s %10s  x%d  every %.1f days  (last %s)\n",
			g.Description, g.Amount, g.Occurrences, g.AvgIntervalDays,
			g.LastSeen.Format("2006-01-02"))
	}
	return subcommands.ExitSuccess
}
