package bankfeed

import "testing"

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{-25050, "UAH", "-250.50"},
		{499, "EUR", "4.99"},
		{0, "USD", "0.00"},
	}
	for _, tc := range tests {
		if got := MinorUnits(tc.amount, tc.currency).StringFixed(); got != tc.want {
			t.Errorf("MinorUnits(%d, %s) = %s, want %s", tc.amount, tc.currency, got, tc.want)
		}
	}
}

func TestMoneySignedString(t *testing.T) {
	if got := M(0, "EUR").SignedString(); got != "-" {
		t.Errorf("zero = %q, want -", got)
	}
	if got := M(1.5, "EUR").SignedString(); got[0] != '+' {
		t.Errorf("positive = %q, want a leading +", got)
	}
}

func TestMoneyWeakCurrency(t *testing.T) {
	// The zero Money merges into any currency, so map accumulators work.
	var sum Money
	sum = sum.Add(M(1.10, "EUR"))
	sum = sum.Add(M(2.20, "EUR"))
	if got, want := sum.StringFixed(), "3.30"; got != want {
		t.Errorf("sum = %s, want %s", got, want)
	}
	if sum.Currency() != "EUR" {
		t.Errorf("currency = %q, want EUR", sum.Currency())
	}

	defer func() {
		if recover() == nil {
			t.Errorf("mixing currencies should panic")
		}
	}()
	M(1, "EUR").Add(M(1, "USD"))
}
