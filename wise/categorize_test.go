package wise

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		merchant string
		want     string
	}{
		{"Uber *Trip", "Transport"},
		{"BOLT.EU/O/2406", "Transport"},
		{"Lidl Lisboa", "Groceries"},
		{"Starbucks Coffee", "Restaurants"},
		{"Netflix.com", "Subscriptions"},
		{"Farmacia Central", "Health & Fitness"},
		{"AMAZON.DE", "Shopping"},
		{"Some Unknown Merchant", "Card Payment"},
		{"", "Card Payment"},
	}
	for _, tc := range tests {
		if got := Categorize(tc.merchant); got != tc.want {
			t.Errorf("Categorize(%q) = %q, want %q", tc.merchant, got, tc.want)
		}
	}
}

func TestCategorizeOrder(t *testing.T) {
	// "amazon prime" overlaps the Shopping keyword "amazon": subscription
	// rules come first and must win.
	if got := Categorize("Amazon Prime Video"); got != "Subscriptions" {
		t.Errorf("Categorize(Amazon Prime Video) = %q, want Subscriptions", got)
	}
	if got := Categorize("Amazon Marketplace"); got != "Shopping" {
		t.Errorf("Categorize(Amazon Marketplace) = %q, want Shopping", got)
	}
}

func TestCategorizeStable(t *testing.T) {
	for _, merchant := range []string{"Uber", "Lidl", "whatever"} {
		if Categorize(merchant) != Categorize(merchant) {
			t.Errorf("Categorize(%q) is not stable", merchant)
		}
	}
}
