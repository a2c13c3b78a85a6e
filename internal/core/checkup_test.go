package core

import "testing"

func contractStarting(id int64, start Date) Contract {
	return Contract{ID: id, ClientID: 1, Type: Electricity, Provider: "Enel", StartDate: start}
}

func TestEvaluateCheckupsWindow(t *testing.T) {
	now := NewDate(2024, 9, 15)
	cases := []struct {
		name      string
		start     Date
		wantTypes []CheckupType
		wantDiffs []int
	}{
		{"T4 lands today", now.AddMonths(-6), []CheckupType{CheckupT4}, []int{0}},
		{"T4 edge of window", now.AddMonths(-6).AddDays(10), []CheckupType{CheckupT4}, []int{10}},
		{"T4 just outside", now.AddMonths(-6).AddDays(-11), nil, nil},
		{"T8 lands today", now.AddMonths(-10), []CheckupType{CheckupT8}, []int{0}},
		{"far future", now.AddMonths(2), nil, nil},
		{"no start date", Date{}, nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			items := EvaluateCheckups([]Contract{contractStarting(1, tc.start)}, now, nil)
			if len(items) != len(tc.wantTypes) {
				t.Fatalf("got %d items, want %d", len(items), len(tc.wantTypes))
			}
			for i, item := range items {
				if item.Type != tc.wantTypes[i] {
					t.Fatalf("item %d type = %s, want %s", i, item.Type, tc.wantTypes[i])
				}
				if item.DaysDiff != tc.wantDiffs[i] {
					t.Fatalf("item %d daysDiff = %d, want %d", i, item.DaysDiff, tc.wantDiffs[i])
				}
			}
		})
	}
}

func TestEvaluateCheckupsSymmetry(t *testing.T) {
	// A contract started exactly 6 months ago has its T4 milestone today.
	now := NewDate(2024, 7, 15)
	items := EvaluateCheckups([]Contract{contractStarting(1, now.AddMonths(-6))}, now, nil)
	if len(items) != 1 || items[0].DaysDiff != 0 {
		t.Fatalf("expected one item with daysDiff 0, got %+v", items)
	}

	// 6 months and 11 days ago falls outside the ±10 day window.
	items = EvaluateCheckups([]Contract{contractStarting(1, now.AddMonths(-6).AddDays(-11))}, now, nil)
	if len(items) != 0 {
		t.Fatalf("expected no items outside the window, got %+v", items)
	}
}

func TestEvaluateCheckupsBothMilestones(t *testing.T) {
	// Contrived: with start at now-6 months, only T4 fires; no single "now"
	// can see both milestones of one contract, so verify across contracts.
	now := NewDate(2024, 9, 15)
	contracts := []Contract{
		contractStarting(1, now.AddMonths(-6)),
		contractStarting(2, now.AddMonths(-10)),
	}
	items := EvaluateCheckups(contracts, now, nil)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestCheckupDismissal(t *testing.T) {
	now := NewDate(2024, 9, 15)
	contracts := []Contract{
		contractStarting(7, now.AddMonths(-6)),
		contractStarting(8, now.AddMonths(-10)),
	}

	dismissed := map[string]struct{}{DismissalKey(7, CheckupT4): {}}
	items := EvaluateCheckups(contracts, now, dismissed)
	if len(items) != 1 || items[0].Contract.ID != 8 {
		t.Fatalf("dismissal of 7_T4 should leave only contract 8, got %+v", items)
	}

	// Re-running with the same dismissal set is idempotent.
	for i := 0; i < 3; i++ {
		again := EvaluateCheckups(contracts, now, dismissed)
		if len(again) != 1 {
			t.Fatalf("run %d: expected 1 item, got %d", i, len(again))
		}
	}

	// Dismissing T4 never affects T8 of the same contract.
	both := []Contract{contractStarting(9, now.AddMonths(-10))}
	d := map[string]struct{}{DismissalKey(9, CheckupT4): {}}
	items = EvaluateCheckups(both, now, d)
	if len(items) != 1 || items[0].Type != CheckupT8 {
		t.Fatalf("T8 should survive a T4 dismissal, got %+v", items)
	}

	// Clearing the set brings the item back.
	items = EvaluateCheckups(contracts, now, nil)
	if len(items) != 2 {
		t.Fatalf("cleared dismissals should restore both items, got %d", len(items))
	}
}

func TestSortCheckups(t *testing.T) {
	items := []CheckupItem{
		{DaysDiff: 5},
		{DaysDiff: -8},
		{DaysDiff: 0},
	}
	SortCheckups(items)
	want := []int{-8, 0, 5}
	for i, item := range items {
		if item.DaysDiff != want[i] {
			t.Fatalf("position %d: daysDiff = %d, want %d", i, item.DaysDiff, want[i])
		}
	}
}

func TestDismissalKeyFormat(t *testing.T) {
	if got := DismissalKey(42, CheckupT4); got != "42_T4" {
		t.Fatalf("DismissalKey = %q", got)
	}
	if got := DismissalKey(42, CheckupT8); got != "42_T8" {
		t.Fatalf("DismissalKey = %q", got)
	}
}
