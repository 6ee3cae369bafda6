package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// balancesCmd shows the current balance of every account across sources.
type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "show current balances across all sources" }
func (*balancesCmd) Usage() string {
	return `bft balances

  Shows every account balance per source and currency. Balances are not
  converted or summed across currencies.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {}

func (c *balancesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status := subcommands.ExitSuccess

	if mono, err := newMonobank(); err == nil {
		balances, err := mono.Balances(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching Monobank balances: %v\n", err)
			status = subcommands.ExitFailure
		} else {
			fmt.Println("Monobank:")
			for _, b := range balances {
				line := fmt.Sprintf("  %-6s %s  %s", b.Type, b.Currency, b.Balance)
				if !b.CreditLimit.IsZero() {
					line += fmt.Sprintf("  (credit limit %s)", b.CreditLimit)
				}
				fmt.Println(line)
			}
		}
	} else {
		fmt.Fprintf(os.Stderr, "Skipping Monobank: %v\n", err)
	}

	if ws, err := newWise(ctx); err == nil {
		balances, err := ws.Balances(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching Wise balances: %v\n", err)
			status = subcommands.ExitFailure
		} else {
			fmt.Println("Wise:")
			for _, b := range balances {
				fmt.Printf("  %s  %s\n", b.Currency, b.Amount)
			}
		}
	} else {
		fmt.Fprintf(os.Stderr, "Skipping Wise: %v\n", err)
	}

	return status
}
