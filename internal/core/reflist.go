package core

import "strings"

// ReferenceList is a user-managed ordered set of unique strings (providers,
// operation types, appointment statuses). Matching is case-insensitive but
// the original casing of the first entry wins. Removing a value never
// touches entities that already reference it; those keep their legacy value.
type ReferenceList struct {
	values []string
}

// NewReferenceList builds a list from seed values, dropping blanks and
// case-insensitive duplicates while preserving order.
func NewReferenceList(values ...string) *ReferenceList {
	l := &ReferenceList{}
	for _, v := range values {
		l.Add(v)
	}
	return l
}

// Values returns a copy of the current list.
func (l *ReferenceList) Values() []string {
	out := make([]string, len(l.values))
	copy(out, l.values)
	return out
}

// Contains reports whether the value is present, ignoring case.
func (l *ReferenceList) Contains(v string) bool {
	return l.indexOf(v) >= 0
}

// Add appends the value unless already present (case-insensitively) and
// returns the new list. Blank values are ignored.
func (l *ReferenceList) Add(v string) []string {
	v = strings.TrimSpace(v)
	if v == "" || l.Contains(v) {
		return l.Values()
	}
	l.values = append(l.values, v)
	return l.Values()
}

// Remove deletes the value if present (case-insensitively) and returns the
// new list. Removing an absent value is a no-op.
func (l *ReferenceList) Remove(v string) []string {
	if i := l.indexOf(v); i >= 0 {
		l.values = append(l.values[:i], l.values[i+1:]...)
	}
	return l.Values()
}

func (l *ReferenceList) indexOf(v string) int {
	v = strings.TrimSpace(v)
	for i, existing := range l.values {
		if strings.EqualFold(existing, v) {
			return i
		}
	}
	return -1
}
