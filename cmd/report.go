package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/bankfeed"
	"github.com/etnz/bankfeed/date"
	"github.com/etnz/bankfeed/renderer"
	"github.com/google/subcommands"
)

// reportCmd generates the full spending report.
type reportCmd struct {
	days int
	out  string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "generate a full spending report" }
func (*reportCmd) Usage() string {
	return `bft report [-days <n>] [-o [<file>]]

  Fetches the last n days from every configured source and renders the full
  spending report: transactions, totals, category breakdowns, top expenses
  and the daily grid. With -o the report is also written to a markdown file
  named from today's date and the day count.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 14, "number of past days to report on")
	f.StringVar(&c.out, "o", "", "write the report to this file ('auto' derives the name)")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, w, err := fetchWindow(ctx, c.days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	report := bankfeed.NewReport(txs, w, time.Now())
	content := renderer.ReportMarkdown(report)

	if c.out != "" {
		filename := c.out
		if filename == "auto" {
			filename = bankfeed.ReportFilename(date.Today(), c.days)
		}
		if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing report %q: %v\n", filename, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Report written to %s\n", filename)
	}

	printMarkdown(content)
	return subcommands.ExitSuccess
}
