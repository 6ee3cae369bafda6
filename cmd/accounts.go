package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/bankfeed/monobank"
	"github.com/google/subcommands"
)

// accountsCmd lists the accounts and profiles behind each configured source.
type accountsCmd struct{}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list accounts and profiles of every source" }
func (*accountsCmd) Usage() string {
	return `bft accounts

  Lists the Monobank sub-accounts and the Wise profiles reachable with the
  configured credentials.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {}

func (c *accountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status := subcommands.ExitSuccess

	if mono, err := newMonobank(); err == nil {
		info, err := mono.Info(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching Monobank accounts: %v\n", err)
			status = subcommands.ExitFailure
		} else {
			fmt.Printf("Monobank (%s):\n", info.Name)
			for _, acc := range info.Accounts {
				fmt.Printf("  %s  %-6s %s\n", acc.ID, acc.Type, monobank.CurrencyCode(acc.CurrencyCode))
			}
		}
	} else {
		fmt.Fprintf(os.Stderr, "Skipping Monobank: %v\n", err)
	}

	if ws, err := newWise(ctx); err == nil {
		profiles, err := ws.Profiles(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching Wise profiles: %v\n", err)
			status = subcommands.ExitFailure
		} else {
			fmt.Println("Wise profiles:")
			for _, p := range profiles {
				marker := ""
				if p.ID == ws.ProfileID() {
					marker = " (selected)"
				}
				fmt.Printf("  %d  %s%s\n", p.ID, p.Type, marker)
			}
		}
	} else {
		fmt.Fprintf(os.Stderr, "Skipping Wise: %v\n", err)
	}

	return status
}
