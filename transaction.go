package bankfeed

import (
	"fmt"
	"sort"
	"time"
)

// Transaction is the canonical, source-agnostic transaction model.
// Every Transaction exposed past an adapter boundary has all fields populated;
// adapters reject raw records that cannot be fully normalized.
type Transaction struct {
	Time        time.Time `json:"time"`
	Description string    `json:"description"`
	// Amount is signed in the transaction's native currency:
	// negative for expenses, positive for income. Never converted.
	Amount      Money  `json:"amount"`
	Category    string `json:"category"`
	Source      string `json:"source"`
	AccountType string `json:"account_type"`
	IsExpense   bool   `json:"is_expense"`
	// RawCode is the source-native classification code (e.g. a merchant
	// category code), retained for debugging. May be empty.
	RawCode string `json:"raw_code,omitempty"`
}

// NewTransaction builds a Transaction deriving IsExpense from the amount sign.
// The flag is fixed at normalization time and never recomputed afterward.
func NewTransaction(at time.Time, description string, amount Money, category, source, accountType, rawCode string) Transaction {
	return Transaction{
		Time:        at,
		Description: description,
		Amount:      amount,
		Category:    category,
		Source:      source,
		AccountType: accountType,
		IsExpense:   amount.IsNegative(),
		RawCode:     rawCode,
	}
}

// Check verifies the canonical model invariants. A violation is a programming
// error in an adapter, not a recoverable condition: malformed data must never
// enter the canonical model.
func (t Transaction) Check() error {
	switch {
	case t.Time.IsZero():
		return fmt.Errorf("transaction has no timestamp")
	case t.Amount.Currency() == "":
		return fmt.Errorf("transaction has no currency")
	case t.Category == "":
		return fmt.Errorf("transaction has no category")
	case t.Source == "":
		return fmt.Errorf("transaction has no source")
	case t.AccountType == "":
		return fmt.Errorf("transaction has no account type")
	case t.IsExpense != t.Amount.IsNegative():
		return fmt.Errorf("transaction expense flag disagrees with amount sign")
	}
	return nil
}

// SortByTimeDesc sorts transactions by timestamp descending, the canonical
// downstream ordering. The sort is stable so that equal timestamps keep their
// fetch order.
func SortByTimeDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Time.After(txs[j].Time) })
}
