// Package wise is the source adapter for the Wise platform API, an
// activity-style source: card payments are paginated with an opaque cursor,
// bank transfers come from a separate endpoint with its own status
// vocabulary.
package wise

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/bankfeed"
	"github.com/etnz/bankfeed/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SourceName identifies transactions produced by this adapter.
const SourceName = "Wise"

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.wise.com/v1"

// activityPageSize is the page size requested from the activities endpoint.
const activityPageSize = 100

// Client wraps the Wise platform API for one resolved profile.
// The profile is fixed at construction time (see New and Resolve), there is
// no lazily cached profile lookup.
type Client struct {
	// BaseURL can be overridden, e.g. to point at a test server.
	BaseURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
	// Policy is the retry budget applied to paginated fetches.
	Policy bankfeed.Policy

	token     string
	profileID int64
}

// New returns a client for the given token and explicit profile ID. A missing
// token is a configuration error, surfaced immediately and never retried.
func New(token string, profileID int64) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("wise: API token is required (WISE_API_TOKEN)")
	}
	return &Client{
		BaseURL:   DefaultBaseURL,
		Policy:    bankfeed.DefaultPolicy,
		token:     token,
		profileID: profileID,
	}, nil
}

// Resolve returns a client whose profile is resolved once, now: the personal
// profile if one exists, the first one otherwise.
func Resolve(ctx context.Context, token string) (*Client, error) {
	c, err := New(token, 0)
	if err != nil {
		return nil, err
	}
	if err := c.ResolveProfile(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// ResolveProfile fixes the client's profile: the personal profile if one
// exists, the first one otherwise.
func (c *Client) ResolveProfile(ctx context.Context) error {
	profiles, err := c.Profiles(ctx)
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		return fmt.Errorf("wise: no profiles found for this account")
	}
	c.profileID = profiles[0].ID
	for _, p := range profiles {
		if p.Type == "personal" {
			c.profileID = p.ID
			break
		}
	}
	return nil
}

// Name implements bankfeed.Source.
func (c *Client) Name() string { return SourceName }

// ProfileID returns the profile this client operates on.
func (c *Client) ProfileID() int64 { return c.profileID }

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, data any) error {
	header := http.Header{
		"Authorization": []string{"Bearer " + c.token},
		"Content-Type":  []string{"application/json"},
	}
	return bankfeed.GetJSON(ctx, c.HTTPClient, c.BaseURL+path, header, query, data)
}

// Profile is one Wise profile (personal or business).
type Profile struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// Profiles lists all profiles associated with the token.
func (c *Client) Profiles(ctx context.Context) ([]Profile, error) {
	var profiles []Profile
	if err := c.getJSON(ctx, "/profiles", nil, &profiles); err != nil {
		return nil, fmt.Errorf("wise: cannot list profiles: %w", err)
	}
	return profiles, nil
}

// BalanceView is the display-only balance of one currency account.
type BalanceView struct {
	Currency string         `json:"currency"`
	Amount   bankfeed.Money `json:"amount"`
}

// Balances returns the per-currency balances of the profile's accounts.
// The payload is deeply nested and only feeds a display view, so the few
// fields of interest are extracted by path instead of modeling the whole
// shape.
func (c *Client) Balances(ctx context.Context) ([]BalanceView, error) {
	query := url.Values{"profileId": []string{fmt.Sprintf("%d", c.profileID)}}
	var payload any
	if err := c.getJSON(ctx, "/borderless-accounts", query, &payload); err != nil {
		return nil, fmt.Errorf("wise: cannot fetch balances: %w", err)
	}

	jval, err := jsonpath.Get("$[*].balances[*]", payload)
	if err != nil {
		return nil, fmt.Errorf("wise: unexpected balances payload: %w", err)
	}
	items, ok := jval.([]any)
	if !ok {
		// jsonpath is never clear about whether it returns a list or a single
		// answer, treat a single answer as a one-element list.
		items = []any{jval}
	}

	var views []BalanceView
	for _, item := range items {
		currency, _ := jsonpath.Get("$.currency", item)
		value, _ := jsonpath.Get("$.amount.value", item)
		code, ok1 := currency.(string)
		amount, ok2 := value.(float64)
		if !ok1 || !ok2 {
			continue
		}
		views = append(views, BalanceView{Currency: code, Amount: bankfeed.M(amount, code)})
	}
	return views, nil
}

// parseAmount parses an amount string like "1.40 EUR" or "3,300 EUR" into a
// value and currency.
func parseAmount(s string) (decimal.Decimal, string, bool) {
	s = strings.ReplaceAll(s, ",", "")
	parts := strings.Fields(s)
	if len(parts) < 2 {
		return decimal.Decimal{}, "", false
	}
	value, err := decimal.NewFromString(parts[0])
	if err != nil {
		return decimal.Decimal{}, "", false
	}
	return value, parts[1], true
}

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// stripTags removes the markup Wise embeds in activity titles.
func stripTags(s string) string { return strings.TrimSpace(tagPattern.ReplaceAllString(s, "")) }

// activity is one raw record from the activities endpoint.
type activity struct {
	ID              string `json:"id"`
	Type            string `json:"type"`
	Status          string `json:"status"`
	CreatedOn       string `json:"createdOn"` // RFC 3339
	Title           string `json:"title"`
	PrimaryAmount   string `json:"primaryAmount"`
	SecondaryAmount string `json:"secondaryAmount"`
}

// activitiesPage is one page of the cursor-paginated activities endpoint.
// An empty cursor means end of data.
type activitiesPage struct {
	Activities []activity `json:"activities"`
	Cursor     string     `json:"cursor"`
}

// CardTransactions pages through the profile's activities and normalizes the
// settled and pending card payments within the window.
//
// The same record can appear on adjacent pages, so records are deduplicated
// by activity ID. Paging stops once a page's oldest record predates the
// window start, or the API stops returning a cursor. A page whose fetch
// exhausts the rate-limit budget ends the paging with the records collected
// so far.
func (c *Client) CardTransactions(ctx context.Context, from, to time.Time) ([]bankfeed.Transaction, error) {
	var txs []bankfeed.Transaction
	seen := make(map[string]bool)
	cursor := ""

	for {
		query := url.Values{"size": []string{fmt.Sprintf("%d", activityPageSize)}}
		if cursor != "" {
			query.Set("cursor", cursor)
		}

		var page activitiesPage
		err := bankfeed.Retry(ctx, c.Policy, func() error {
			page = activitiesPage{}
			return c.getJSON(ctx, fmt.Sprintf("/profiles/%d/activities", c.profileID), query, &page)
		})
		if err != nil {
			if bankfeed.RateLimited(err) {
				log.Warn().Err(err).Msg("rate limit retries exhausted, returning partial card activity")
				return txs, nil
			}
			return txs, fmt.Errorf("wise: cannot fetch activities: %w", err)
		}
		if len(page.Activities) == 0 {
			break
		}

		pastWindow := false
		for _, act := range page.Activities {
			if seen[act.ID] {
				continue
			}
			seen[act.ID] = true

			at, err := time.Parse(time.RFC3339, act.CreatedOn)
			if err != nil {
				log.Warn().Str("id", act.ID).Str("createdOn", act.CreatedOn).Msg("dropping activity with unreadable timestamp")
				continue
			}
			at = at.In(time.Local)
			if at.Before(from) {
				pastWindow = true
				continue
			}

			if tx, ok := c.normalizeActivity(act, at, to); ok {
				txs = append(txs, tx)
			}
		}

		if pastWindow || page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}

	return txs, nil
}

// normalizeActivity maps one card activity into the canonical model, applying
// the source's status vocabulary: only completed and pending card payments
// are retained.
func (c *Client) normalizeActivity(act activity, at, to time.Time) (bankfeed.Transaction, bool) {
	if act.Type != "CARD_PAYMENT" {
		return bankfeed.Transaction{}, false
	}
	if act.Status != "COMPLETED" && act.Status != "PENDING" {
		return bankfeed.Transaction{}, false
	}
	if at.After(to) {
		return bankfeed.Transaction{}, false
	}

	value, currency, ok := parseAmount(act.PrimaryAmount)
	if !ok {
		log.Warn().Str("id", act.ID).Str("amount", act.PrimaryAmount).Msg("dropping activity with unreadable amount")
		return bankfeed.Transaction{}, false
	}
	// The secondary amount, when present, is the charge in the account's own
	// currency and takes precedence.
	if sec, secCur, ok := parseAmount(act.SecondaryAmount); ok && sec.IsPositive() {
		value, currency = sec, secCur
	}

	title := stripTags(act.Title)
	if title == "" {
		title = "Unknown"
	}

	tx := bankfeed.NewTransaction(
		at,
		title,
		bankfeed.M(value, currency).Neg(), // card payments are expenses
		Categorize(title),
		SourceName,
		"card",
		"",
	)
	if err := tx.Check(); err != nil {
		log.Warn().Err(err).Str("id", act.ID).Msg("dropping record violating the canonical model")
		return bankfeed.Transaction{}, false
	}
	return tx, true
}

// transfer is one raw record from the transfers endpoint.
type transfer struct {
	ID             int64   `json:"id"`
	Status         string  `json:"status"`
	Created        string  `json:"created"` // "2006-01-02 15:04:05"
	SourceValue    float64 `json:"sourceValue"`
	SourceCurrency string  `json:"sourceCurrency"`
	TargetCurrency string  `json:"targetCurrency"`
	Reference      string  `json:"reference"`
	// SourceAccount is null for incoming transfers (money coming in).
	SourceAccount *int64 `json:"sourceAccount"`
	Details       struct {
		Reference string `json:"reference"`
	} `json:"details"`
}

const transferTimeFormat = "2006-01-02 15:04:05"

// Transfers fetches the profile's bank transfers within the window. Only
// settled transfers count: status "outgoing_payment_sent" or
// "funds_converted" per this source's vocabulary.
func (c *Client) Transfers(ctx context.Context, from, to time.Time) ([]bankfeed.Transaction, error) {
	var raw []transfer
	query := url.Values{"limit": []string{"200"}}
	if err := c.getJSON(ctx, "/transfers", query, &raw); err != nil {
		return nil, fmt.Errorf("wise: cannot fetch transfers: %w", err)
	}

	var txs []bankfeed.Transaction
	for _, tr := range raw {
		if tr.Status != "outgoing_payment_sent" && tr.Status != "funds_converted" {
			continue
		}
		at, err := time.ParseInLocation(transferTimeFormat, tr.Created, time.Local)
		if err != nil {
			log.Warn().Int64("id", tr.ID).Str("created", tr.Created).Msg("dropping transfer with unreadable timestamp")
			continue
		}
		if at.Before(from) || at.After(to) {
			continue
		}

		reference := tr.Reference
		if reference == "" {
			reference = tr.Details.Reference
		}
		var description string
		switch {
		case tr.SourceCurrency != tr.TargetCurrency && reference == "":
			description = fmt.Sprintf("Transfer (%s→%s)", tr.SourceCurrency, tr.TargetCurrency)
		case tr.SourceCurrency != tr.TargetCurrency:
			description = fmt.Sprintf("%s (%s→%s)", reference, tr.SourceCurrency, tr.TargetCurrency)
		case reference == "":
			description = "Bank Transfer"
		default:
			description = reference
		}

		amount := bankfeed.M(tr.SourceValue, tr.SourceCurrency)
		if tr.SourceAccount != nil {
			amount = amount.Neg() // an outgoing payment is an expense
		}

		tx := bankfeed.NewTransaction(at, description, amount, "Bank Transfer", SourceName, "transfer", "")
		if err := tx.Check(); err != nil {
			log.Warn().Err(err).Int64("id", tr.ID).Msg("dropping record violating the canonical model")
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Transactions implements bankfeed.Source: card payments plus bank transfers,
// merged and sorted by timestamp descending. One failing endpoint degrades to
// partial data, the source only fails when both do.
func (c *Client) Transactions(ctx context.Context, window date.Range) ([]bankfeed.Transaction, error) {
	now := time.Now()
	from := window.From.Time()
	to := window.To.Time().Add(24 * time.Hour)
	if to.After(now) {
		to = now
	}

	cards, cardErr := c.CardTransactions(ctx, from, to)
	if cardErr != nil {
		log.Warn().Err(cardErr).Msg("card activity fetch failed")
	}
	transfers, trErr := c.Transfers(ctx, from, to)
	if trErr != nil {
		log.Warn().Err(trErr).Msg("transfer fetch failed")
	}
	if cardErr != nil && trErr != nil {
		return nil, fmt.Errorf("wise: all endpoints failed: %w", cardErr)
	}

	txs := append(cards, transfers...)
	bankfeed.SortByTimeDesc(txs)
	return txs, nil
}

var _ bankfeed.Source = (*Client)(nil)
