package date

import (
	"testing"
	"time"
)

// TestCanonical assert that canonical() gives comparable times.
func TestCanonical(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.canonical() != d2.canonical() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid canonical() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	// Day overflows roll over to the next month.
	d := New(2025, 1, 32)
	if got, want := d.String(), "2025-02-01"; got != want {
		t.Errorf("New(2025,1,32) = %s, want %s", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "2025-07-01", want: "2025-07-01"},
		{in: "2025-7-1", want: "2025-07-01"},
		{in: "not-a-date", err: true},
	}
	for _, tc := range tests {
		got, err := Parse(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("Parse(%q): expected an error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got.String() != tc.want {
			t.Errorf("Parse(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestLastDays(t *testing.T) {
	r := LastDays(New(2025, 8, 14), 14)
	if got, want := r.From, New(2025, 8, 1); got != want {
		t.Errorf("From = %s, want %s", got, want)
	}
	if got, want := r.Len(), 14; got != want {
		t.Errorf("Len = %d, want %d", got, want)
	}
}

func TestRangeDays(t *testing.T) {
	r := Range{From: New(2025, 2, 27), To: New(2025, 3, 2)}
	var got []string
	for d := range r.Days() {
		got = append(got, d.String())
	}
	want := []string{"2025-02-27", "2025-02-28", "2025-03-01", "2025-03-02"}
	if len(got) != len(want) {
		t.Fatalf("Days yielded %d dates, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Days[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestOf(t *testing.T) {
	at := time.Date(2025, 3, 15, 23, 59, 0, 0, time.Local)
	if got, want := Of(at), New(2025, 3, 15); got != want {
		t.Errorf("Of(%v) = %s, want %s", at, got, want)
	}
}
