// Package monobank is the source adapter for the Monobank personal API, a
// ledger-style source: statements are served per account over bounded time
// windows, under a coarse per-minute rate limit.
package monobank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/etnz/bankfeed"
	"github.com/etnz/bankfeed/date"
	"github.com/rs/zerolog/log"
)

// SourceName identifies transactions produced by this adapter.
const SourceName = "Monobank"

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.monobank.ua"

// maxStatementRange is the longest window one statement call accepts; longer
// requests are chunked transparently.
const maxStatementRange = 30 * 24 * time.Hour

// DefaultPacing is the pause between per-account statement calls, to stay
// inside the source's shared rate budget. A policy knob, not a correctness
// requirement.
const DefaultPacing = 5 * time.Second

// Client wraps the Monobank personal API.
// The zero value is not usable, use New.
type Client struct {
	// BaseURL can be overridden, e.g. to point at a test server.
	BaseURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Policy is the retry budget applied to every statement call.
	Policy bankfeed.Policy
	// Pacing is the delay between successive per-account fetches.
	Pacing time.Duration

	token string
}

// New returns a client for the given API token. A missing token is a
// configuration error, surfaced immediately and never retried.
func New(token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("monobank: API token is required (MONOBANK_API_TOKEN)")
	}
	return &Client{
		BaseURL: DefaultBaseURL,
		Policy:  bankfeed.DefaultPolicy,
		Pacing:  DefaultPacing,
		token:   token,
	}, nil
}

// Name implements bankfeed.Source.
func (c *Client) Name() string { return SourceName }

// Account is one sub-account from the client-info payload.
type Account struct {
	ID           string `json:"id"`
	Type         string `json:"type"` // "black", "white", "fop", ...
	CurrencyCode int    `json:"currencyCode"`
	Balance      int64  `json:"balance"`     // minor units
	CreditLimit  int64  `json:"creditLimit"` // minor units
	CashbackType string `json:"cashbackType"`
}

// ClientInfo is the raw client-info payload.
type ClientInfo struct {
	Name     string    `json:"name"`
	Accounts []Account `json:"accounts"`
}

// StatementItem is one raw ledger record from the statement endpoint.
type StatementItem struct {
	ID          string `json:"id"`
	Time        int64  `json:"time"` // unix seconds
	Description string `json:"description"`
	MCC         int    `json:"mcc"`
	Amount      int64  `json:"amount"` // minor units, signed
}

func (c *Client) getJSON(ctx context.Context, path string, data any) error {
	header := http.Header{"X-Token": []string{c.token}}
	return bankfeed.GetJSON(ctx, c.HTTPClient, c.BaseURL+path, header, nil, data)
}

// Info retrieves the raw client info, under the retry policy.
func (c *Client) Info(ctx context.Context) (ClientInfo, error) {
	var info ClientInfo
	err := bankfeed.Retry(ctx, c.Policy, func() error {
		return c.getJSON(ctx, "/personal/client-info", &info)
	})
	if err != nil {
		return ClientInfo{}, fmt.Errorf("monobank: cannot fetch client info: %w", err)
	}
	return info, nil
}

// Balance is a simplified per-account balance view.
type Balance struct {
	ID           string         `json:"id"`
	Type         string         `json:"type"`
	Currency     string         `json:"currency"`
	Balance      bankfeed.Money `json:"balance"`
	CreditLimit  bankfeed.Money `json:"credit_limit"`
	CashbackType string         `json:"cashback_type,omitempty"`
}

// Balances returns the portfolio view: every account with balance, credit
// limit and currency.
func (c *Client) Balances(ctx context.Context) ([]Balance, error) {
	info, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}
	balances := make([]Balance, 0, len(info.Accounts))
	for _, acc := range info.Accounts {
		currency := CurrencyCode(acc.CurrencyCode)
		balances = append(balances, Balance{
			ID:           acc.ID,
			Type:         acc.Type,
			Currency:     currency,
			Balance:      bankfeed.MinorUnits(acc.Balance, currency),
			CreditLimit:  bankfeed.MinorUnits(acc.CreditLimit, currency),
			CashbackType: acc.CashbackType,
		})
	}
	return balances, nil
}

// malformed reports whether err means the response body had an unexpected
// shape. Such a unit of fetch counts as zero records, it is not a hard
// failure.
func malformed(err error) bool {
	var syntax *json.SyntaxError
	var shape *json.UnmarshalTypeError
	return errors.As(err, &syntax) || errors.As(err, &shape)
}

// Statement fetches the account's ledger records for [from, to), transparently
// chunking windows longer than the provider accepts into sequential,
// contiguous sub-windows.
//
// Partial-result policy: when a chunk exhausts its rate-limit retries, or the
// provider rejects the range as invalid, fetching stops and the records
// already accumulated are returned. A malformed response body counts as zero
// records for that chunk only. Any other failure propagates as an error.
func (c *Client) Statement(ctx context.Context, accountID string, from, to time.Time) ([]StatementItem, error) {
	var all []StatementItem

	for cur := from; cur.Before(to); {
		next := cur.Add(maxStatementRange)
		if next.After(to) {
			next = to
		}

		path := fmt.Sprintf("/personal/statement/%s/%d/%d", accountID, cur.Unix(), next.Unix())
		var items []StatementItem
		err := bankfeed.Retry(ctx, c.Policy, func() error {
			items = items[:0]
			return c.getJSON(ctx, path, &items)
		})
		switch {
		case err == nil:
			all = append(all, items...)
		case bankfeed.RateLimited(err):
			log.Warn().Str("account", accountID).Err(err).Msg("rate limit retries exhausted, returning partial statement")
			return all, nil
		case bankfeed.BadRequest(err):
			log.Warn().Str("account", accountID).Err(err).Msg("statement range rejected, returning partial statement")
			return all, nil
		case malformed(err):
			log.Warn().Str("account", accountID).Err(err).Msg("malformed statement response, skipping chunk")
		default:
			return all, fmt.Errorf("monobank: cannot fetch statement for account %s: %w", accountID, err)
		}

		cur = next
	}
	return all, nil
}

// pace waits the inter-account delay, honoring ctx.
func (c *Client) pace(ctx context.Context) error {
	if c.Pacing <= 0 {
		return nil
	}
	timer := time.NewTimer(c.Pacing)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Transactions implements bankfeed.Source: it enumerates the accounts, fetches
// each one's statement for the window sequentially (the rate budget binds per
// source) and normalizes the records into the canonical model.
//
// Clearly inactive business sub-accounts ("fop" with a zero balance) are
// skipped. An account whose fetch fails contributes nothing, the remaining
// accounts are still fetched.
func (c *Client) Transactions(ctx context.Context, window date.Range) ([]bankfeed.Transaction, error) {
	info, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	from := window.From.Time()
	to := window.To.Time().Add(24 * time.Hour)
	if to.After(now) {
		to = now
	}

	var txs []bankfeed.Transaction
	fetched := 0
	for _, acc := range info.Accounts {
		if acc.Type == "fop" && acc.Balance == 0 {
			continue
		}
		if fetched > 0 {
			if err := c.pace(ctx); err != nil {
				return txs, err
			}
		}
		fetched++

		items, err := c.Statement(ctx, acc.ID, from, to)
		if err != nil {
			log.Warn().Str("account", acc.ID).Str("type", acc.Type).Err(err).Msg("account statement failed, continuing with remaining accounts")
			continue
		}

		currency := CurrencyCode(acc.CurrencyCode)
		for _, item := range items {
			tx, ok := normalize(item, currency, acc.Type, from, now)
			if !ok {
				continue
			}
			txs = append(txs, tx)
		}
	}

	bankfeed.SortByTimeDesc(txs)
	return txs, nil
}

// AccountTransactions fetches and normalizes a single account's statement for
// the window. The account must belong to the token's client info, its
// currency and type come from there.
func (c *Client) AccountTransactions(ctx context.Context, accountID string, window date.Range) ([]bankfeed.Transaction, error) {
	info, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}
	var account *Account
	for i := range info.Accounts {
		if info.Accounts[i].ID == accountID {
			account = &info.Accounts[i]
			break
		}
	}
	if account == nil {
		return nil, fmt.Errorf("monobank: unknown account %q", accountID)
	}

	now := time.Now()
	from := window.From.Time()
	to := window.To.Time().Add(24 * time.Hour)
	if to.After(now) {
		to = now
	}

	items, err := c.Statement(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}
	currency := CurrencyCode(account.CurrencyCode)
	var txs []bankfeed.Transaction
	for _, item := range items {
		if tx, ok := normalize(item, currency, account.Type, from, now); ok {
			txs = append(txs, tx)
		}
	}
	bankfeed.SortByTimeDesc(txs)
	return txs, nil
}

// normalize maps one raw ledger record into the canonical model, dropping
// out-of-window records and anything that fails the model invariants.
func normalize(item StatementItem, currency, accountType string, from, to time.Time) (bankfeed.Transaction, bool) {
	at := time.Unix(item.Time, 0)
	if at.Before(from) || at.After(to) {
		return bankfeed.Transaction{}, false
	}

	description := item.Description
	if description == "" {
		description = "Unknown"
	}

	tx := bankfeed.NewTransaction(
		at,
		description,
		bankfeed.MinorUnits(item.Amount, currency),
		Category(item.MCC),
		SourceName,
		accountType,
		strconv.Itoa(item.MCC),
	)
	if err := tx.Check(); err != nil {
		log.Warn().Err(err).Str("id", item.ID).Msg("dropping record violating the canonical model")
		return bankfeed.Transaction{}, false
	}
	return tx, true
}

var _ bankfeed.Source = (*Client)(nil)
