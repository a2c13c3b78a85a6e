package core

import "testing"

func TestAddMonthsClampsToEndOfMonth(t *testing.T) {
	cases := []struct {
		name   string
		start  Date
		months int
		want   Date
	}{
		{"plain", NewDate(2024, 3, 15), 1, NewDate(2024, 4, 15)},
		{"leap february", NewDate(2024, 1, 31), 1, NewDate(2024, 2, 29)},
		{"non-leap february", NewDate(2023, 1, 31), 1, NewDate(2023, 2, 28)},
		{"31st into 30-day month", NewDate(2024, 5, 31), 1, NewDate(2024, 6, 30)},
		{"six months", NewDate(2024, 8, 31), 6, NewDate(2025, 2, 28)},
		{"ten months over year boundary", NewDate(2024, 4, 30), 10, NewDate(2025, 2, 28)},
		{"negative", NewDate(2024, 3, 31), -1, NewDate(2024, 2, 29)},
		{"zero", NewDate(2024, 3, 31), 0, NewDate(2024, 3, 31)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.start.AddMonths(tc.months)
			if !got.Equal(tc.want.Time) {
				t.Fatalf("AddMonths(%s, %d) = %s, want %s", tc.start, tc.months, got, tc.want)
			}
		})
	}
}

func TestAddMonthsKeepsDayWhenValid(t *testing.T) {
	// Day-of-month must survive unless the target month is too short.
	d := NewDate(2024, 1, 15)
	for m := 1; m <= 12; m++ {
		got := d.AddMonths(m)
		if got.Day() != 15 {
			t.Fatalf("AddMonths(%s, %d) moved day to %d", d, m, got.Day())
		}
	}
}

func TestDaysUntil(t *testing.T) {
	now := NewDate(2024, 6, 10)
	cases := []struct {
		target Date
		want   int
	}{
		{NewDate(2024, 6, 10), 0},
		{NewDate(2024, 6, 20), 10},
		{NewDate(2024, 5, 31), -10},
		{NewDate(2024, 7, 1), 21},
	}
	for _, tc := range cases {
		if got := tc.target.DaysUntil(now); got != tc.want {
			t.Fatalf("DaysUntil(%s from %s) = %d, want %d", tc.target, now, got, tc.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2024 || d.MonthOf() != 2 || d.Day() != 29 {
		t.Fatalf("parsed wrong date: %s", d)
	}

	if d, err := ParseDate(""); err != nil || !d.IsZero() {
		t.Fatalf("empty input should yield zero date, got %s err=%v", d, err)
	}
	if d, err := ParseDate("  "); err != nil || !d.IsZero() {
		t.Fatalf("whitespace input should yield zero date, got %s err=%v", d, err)
	}
	if _, err := ParseDate("31/01/2024"); err == nil {
		t.Fatal("expected error for non-ISO format")
	}
}

func TestDateZeroValueAccessors(t *testing.T) {
	var d Date
	if d.Year() != 0 || d.MonthOf() != 0 {
		t.Fatalf("zero date should report 0/0, got %d/%d", d.Year(), d.MonthOf())
	}
	if d.String() != "" {
		t.Fatalf("zero date should render empty, got %q", d.String())
	}
}
