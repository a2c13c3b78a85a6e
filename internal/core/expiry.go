package core

// ExpiryStatus is the classification of a contract relative to "now".
// The four buckets are mutually exclusive and exhaustive.
type ExpiryStatus string

const (
	// ExpiryActiveNoEnd: no end date, always active regardless of start date.
	ExpiryActiveNoEnd ExpiryStatus = "active_no_end"
	// ExpiryExpired: end date strictly before today.
	ExpiryExpired ExpiryStatus = "expired"
	// ExpiryExpiringSoon: today <= end date <= today + window.
	ExpiryExpiringSoon ExpiryStatus = "expiring_soon"
	// ExpiryActiveWithEnd: end date beyond today + window.
	ExpiryActiveWithEnd ExpiryStatus = "active_with_end"
)

// Expiry windows in days. The dashboard, sidebar badge and "expiring" lists
// all use DefaultExpiryWindowDays; ShortExpiryWindowDays exists only for the
// narrower filtered contract view. There is a single classification
// function so the two call sites cannot drift apart.
const (
	DefaultExpiryWindowDays = 60
	ShortExpiryWindowDays   = 30
)

// ClassifyExpiry buckets an optional end date against now. Both dates are
// day-granular; end == now and end == now + window both classify as
// expiring-soon.
func ClassifyExpiry(endDate, now Date, windowDays int) ExpiryStatus {
	switch {
	case endDate.IsZero():
		return ExpiryActiveNoEnd
	case endDate.Before(now.Time):
		return ExpiryExpired
	case !endDate.After(now.AddDays(windowDays).Time):
		return ExpiryExpiringSoon
	default:
		return ExpiryActiveWithEnd
	}
}

// AddDays shifts the date by n calendar days.
func (d Date) AddDays(n int) Date {
	y, m, day := d.Date()
	return NewDate(y, m, day+n)
}

// ExpiryStatus classifies the contract with the given window.
func (c Contract) ExpiryStatus(now Date, windowDays int) ExpiryStatus {
	return ClassifyExpiry(c.EndDate, now, windowDays)
}
