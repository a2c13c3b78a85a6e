package core

import "testing"

func TestClassifyExpiry(t *testing.T) {
	now := NewDate(2024, 6, 10)
	cases := []struct {
		name string
		end  Date
		want ExpiryStatus
	}{
		{"no end date", Date{}, ExpiryActiveNoEnd},
		{"expired yesterday", now.AddDays(-1), ExpiryExpired},
		{"long expired", now.AddMonths(-12), ExpiryExpired},
		{"ends today", now, ExpiryExpiringSoon},
		{"within window", now.AddDays(30), ExpiryExpiringSoon},
		{"exactly at window edge", now.AddDays(DefaultExpiryWindowDays), ExpiryExpiringSoon},
		{"one day past window", now.AddDays(DefaultExpiryWindowDays + 1), ExpiryActiveWithEnd},
		{"far future", now.AddMonths(24), ExpiryActiveWithEnd},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyExpiry(tc.end, now, DefaultExpiryWindowDays)
			if got != tc.want {
				t.Fatalf("ClassifyExpiry(%s) = %s, want %s", tc.end, got, tc.want)
			}
		})
	}
}

func TestClassifyExpiryShortWindow(t *testing.T) {
	now := NewDate(2024, 6, 10)
	end := now.AddDays(45)
	if got := ClassifyExpiry(end, now, DefaultExpiryWindowDays); got != ExpiryExpiringSoon {
		t.Fatalf("60-day window: got %s", got)
	}
	if got := ClassifyExpiry(end, now, ShortExpiryWindowDays); got != ExpiryActiveWithEnd {
		t.Fatalf("30-day window: got %s", got)
	}
}

func TestClassifyExpiryExhaustive(t *testing.T) {
	// Every contract lands in exactly one bucket, whatever the end date.
	now := NewDate(2024, 6, 10)
	seen := map[ExpiryStatus]bool{}
	ends := []Date{{}}
	for offset := -100; offset <= 100; offset += 5 {
		ends = append(ends, now.AddDays(offset))
	}
	for _, end := range ends {
		status := ClassifyExpiry(end, now, DefaultExpiryWindowDays)
		switch status {
		case ExpiryActiveNoEnd, ExpiryExpired, ExpiryExpiringSoon, ExpiryActiveWithEnd:
			seen[status] = true
		default:
			t.Fatalf("unknown status %q for end %s", status, end)
		}
	}
	if len(seen) != 4 {
		t.Fatalf("expected all four buckets to appear, saw %v", seen)
	}
}

func TestContractExpiryStatus(t *testing.T) {
	now := NewDate(2024, 6, 10)
	c := Contract{EndDate: now.AddDays(10)}
	if got := c.ExpiryStatus(now, DefaultExpiryWindowDays); got != ExpiryExpiringSoon {
		t.Fatalf("got %s", got)
	}
}
