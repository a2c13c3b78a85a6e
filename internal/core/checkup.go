package core

import (
	"fmt"
	"sort"
)

// CheckupType identifies a post-signature review milestone.
type CheckupType string

const (
	// CheckupT4 is the first review, six months after the start date.
	CheckupT4 CheckupType = "T4"
	// CheckupT8 is the second review, ten months after the start date.
	CheckupT8 CheckupType = "T8"
)

// CheckupWindowDays is the half-width of the reminder window: a milestone is
// reported while "now" is within this many days of the target date.
const CheckupWindowDays = 10

// checkupOffsets maps each milestone to its distance from the start date in
// calendar months.
var checkupOffsets = []struct {
	Type   CheckupType
	Months int
}{
	{CheckupT4, 6},
	{CheckupT8, 10},
}

// CheckupItem is a derived reminder, recomputed on every evaluation and
// never persisted. DaysDiff is the signed day offset from now to the target
// date (negative = overdue).
type CheckupItem struct {
	Contract Contract    `json:"contract"`
	Type     CheckupType `json:"type"`
	Target   Date        `json:"target"`
	DaysDiff int         `json:"daysDiff"`
}

// DismissalKey is the persisted marker for a dismissed (contract, milestone)
// pair. Dismissal is permanent: it survives contract edits and re-runs.
func DismissalKey(contractID int64, t CheckupType) string {
	return fmt.Sprintf("%d_%s", contractID, t)
}

// Key returns the item's dismissal key.
func (i CheckupItem) Key() string {
	return DismissalKey(i.Contract.ID, i.Type)
}

// EvaluateCheckups walks the contract collection and emits one item per
// milestone whose window contains "now", minus dismissed pairs. Contracts
// without a start date are skipped silently. Both milestones are evaluated
// independently, so a contract can appear zero, one or two times. No output
// order is guaranteed; use SortCheckups where display order matters.
func EvaluateCheckups(contracts []Contract, now Date, dismissed map[string]struct{}) []CheckupItem {
	var items []CheckupItem
	for _, c := range contracts {
		if c.StartDate.IsZero() {
			continue
		}
		for _, milestone := range checkupOffsets {
			if _, ok := dismissed[DismissalKey(c.ID, milestone.Type)]; ok {
				continue
			}
			target := c.StartDate.AddMonths(milestone.Months)
			diff := target.DaysUntil(now)
			if diff < -CheckupWindowDays || diff > CheckupWindowDays {
				continue
			}
			items = append(items, CheckupItem{
				Contract: c,
				Type:     milestone.Type,
				Target:   target,
				DaysDiff: diff,
			})
		}
	}
	return items
}

// SortCheckups orders items by day offset ascending, most overdue first.
// Ties keep a stable order so repeated renders do not shuffle.
func SortCheckups(items []CheckupItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DaysDiff < items[j].DaysDiff
	})
}
