package bankfeed

import (
	"context"
	"time"
)

// Policy configures the rate-limited fetch policy: how many attempts a
// rate-limited call gets, and the initial backoff delay. The delay doubles
// after every rate-limited attempt.
type Policy struct {
	Retries      int
	InitialDelay time.Duration
}

// DefaultPolicy mirrors the coarse per-minute quotas real bank APIs enforce:
// call volume is low (report generation), so a small attempt budget with
// exponential backoff is enough.
var DefaultPolicy = Policy{Retries: 3, InitialDelay: 5 * time.Second}

// Retry invokes op, retrying with exponential backoff while op fails with a
// rate-limit signal (see RateLimited). Any other failure propagates
// immediately. After the attempt budget is exhausted the last error is
// returned.
//
// The backoff wait is a scheduled timer honoring ctx, never a blocking sleep,
// so unrelated concurrent fetches are not stalled by one source's backoff.
func Retry(ctx context.Context, p Policy, op func() error) error {
	delay := p.InitialDelay
	var err error
	for attempt := 0; attempt < p.Retries; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if !RateLimited(err) {
			return err
		}
		if attempt == p.Retries-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return err
}
