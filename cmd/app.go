// Package cmd implements the CLI application to fetch, aggregate and report
// bank transactions.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/bankfeed"
	"github.com/etnz/bankfeed/date"
	"github.com/etnz/bankfeed/monobank"
	"github.com/etnz/bankfeed/wise"
	"github.com/google/subcommands"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&accountsCmd{},
	&balancesCmd{},
	&transactionsCmd{},
	&statsCmd{},
	&recurringCmd{},
	&reportCmd{},
	&topicCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so reading the
// environment on demand is ok.

// newMonobank builds the Monobank client from the environment. A missing
// token is a configuration error, reported immediately.
func newMonobank() (*monobank.Client, error) {
	return monobank.New(os.Getenv("MONOBANK_API_TOKEN"))
}

// newWise builds the Wise client from the environment, resolving the profile
// once unless WISE_PROFILE_ID pins it.
func newWise(ctx context.Context) (*wise.Client, error) {
	token := os.Getenv("WISE_API_TOKEN")
	if pid := os.Getenv("WISE_PROFILE_ID"); pid != "" {
		id, err := strconv.ParseInt(pid, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WISE_PROFILE_ID %q: %w", pid, err)
		}
		return wise.New(token, id)
	}
	return wise.Resolve(ctx, token)
}

// newSources builds every configured source. At least one source must be
// configured; a source whose credentials are absent is skipped with a notice
// so the remaining ones still contribute.
func newSources(ctx context.Context) ([]bankfeed.Source, error) {
	var sources []bankfeed.Source

	if mono, err := newMonobank(); err == nil {
		sources = append(sources, mono)
	} else {
		fmt.Fprintf(os.Stderr, "Skipping Monobank: %v\n", err)
	}
	if ws, err := newWise(ctx); err == nil {
		sources = append(sources, ws)
	} else {
		fmt.Fprintf(os.Stderr, "Skipping Wise: %v\n", err)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no source is configured, set MONOBANK_API_TOKEN and/or WISE_API_TOKEN")
	}
	return sources, nil
}

// window converts a -days flag into the reporting window ending today.
func window(days int) date.Range { return date.LastDays(date.Today(), days) }

// fetchTimeout bounds total report-generation latency. Sources that returned
// in time contribute, the rest are reported as timed out.
const fetchTimeout = 5 * time.Minute

// fetchWindow fetches and merges all configured sources for the window,
// reporting per-source diagnostics on stderr.
func fetchWindow(ctx context.Context, days int) ([]bankfeed.Transaction, date.Range, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	w := window(days)
	sources, err := newSources(ctx)
	if err != nil {
		return nil, w, err
	}
	txs, statuses, err := bankfeed.FetchAll(ctx, w, sources...)
	for _, st := range statuses {
		switch {
		case st.TimedOut:
			fmt.Fprintf(os.Stderr, "Source %s timed out, no data contributed\n", st.Name)
		case st.Err != nil:
			fmt.Fprintf(os.Stderr, "Source %s failed: %v\n", st.Name, st.Err)
		}
	}
	return txs, w, err
}

// printMarkdown renders markdown for the terminal.
func printMarkdown(content string) {
	out, err := glamour.Render(content, "auto")
	if err != nil {
		fmt.Print(content)
		return
	}
	fmt.Print(out)
}
