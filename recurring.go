package bankfeed

import (
	"sort"
	"strings"
	"time"
)

// RecurringGroup is a set of at least two expense transactions sharing a
// description and absolute amount, interpreted as a candidate subscription or
// repeated payment. Groups are derived views: recomputed on every detection
// run, never persisted.
type RecurringGroup struct {
	Description     string    `json:"description"`
	Amount          Money     `json:"amount"` // absolute
	Occurrences     int       `json:"count"`
	AvgIntervalDays float64   `json:"avg_interval_days"`
	LastSeen        time.Time `json:"last_transaction"`
}

// DetectRecurring groups expense transactions by (trimmed description,
// absolute amount rounded to the currency's minor unit) and reports every
// group with two or more occurrences, most frequent first.
//
// Any repeating pair qualifies: no minimum-regularity filter is applied on
// the interval variance. Deciding whether a group is a true subscription is
// left to the consumer.
func DetectRecurring(txs []Transaction) []RecurringGroup {
	type signature struct {
		description string
		amount      string
		currency    string
	}

	groups := make(map[signature][]Transaction)
	var order []signature // group output must be deterministic, stable on input order
	for _, tx := range txs {
		if !tx.IsExpense || tx.Amount.Abs().IsZero() {
			continue
		}
		sig := signature{
			description: strings.TrimSpace(tx.Description),
			amount:      tx.Amount.Abs().StringFixed(),
			currency:    tx.Amount.Currency(),
		}
		if _, seen := groups[sig]; !seen {
			order = append(order, sig)
		}
		groups[sig] = append(groups[sig], tx)
	}

	var recurring []RecurringGroup
	for _, sig := range order {
		members := groups[sig]
		if len(members) < 2 {
			continue
		}

		times := make([]time.Time, len(members))
		for i, tx := range members {
			times[i] = tx.Time
		}
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

		var total time.Duration
		for i := 1; i < len(times); i++ {
			total += times[i].Sub(times[i-1])
		}
		avg := total.Seconds() / float64(len(times)-1) / (24 * 3600)

		recurring = append(recurring, RecurringGroup{
			Description:     sig.description,
			Amount:          members[0].Amount.Abs(),
			Occurrences:     len(members),
			AvgIntervalDays: avg,
			LastSeen:        times[len(times)-1],
		})
	}

	sort.SliceStable(recurring, func(i, j int) bool {
		return recurring[i].Occurrences > recurring[j].Occurrences
	})
	return recurring
}
