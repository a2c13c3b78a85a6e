package core

import "strings"

// CommissionFilter selects contracts by start-date year, start-date month
// and provider. The zero value of each dimension means "all". Contracts
// without a start date never match an active year or month filter.
type CommissionFilter struct {
	Year     int    // 0 = all years
	Month    int    // 1-12, 0 = all months
	Provider string // "" = all providers
}

// Matches applies the three dimensions AND-ed together. The provider
// comparison folds case, like reference lists and search do: "ENEL" and
// "Enel" are the same provider.
func (f CommissionFilter) Matches(c Contract) bool {
	if f.Year != 0 && c.StartDate.Year() != f.Year {
		return false
	}
	if f.Month != 0 && c.StartDate.MonthOf() != f.Month {
		return false
	}
	if f.Provider != "" && !strings.EqualFold(c.Provider, f.Provider) {
		return false
	}
	return true
}

// FilterContracts returns the subset matching the filter, preserving order.
func FilterContracts(contracts []Contract, f CommissionFilter) []Contract {
	var out []Contract
	for _, c := range contracts {
		if f.Matches(c) {
			out = append(out, c)
		}
	}
	return out
}

// CommissionReport sums commissions over a contract subset. Energy covers
// electricity and gas; telephony is its complement, so Energy + Telephony
// always equals Total. Contracts with an unknown commission contribute zero.
type CommissionReport struct {
	Total     Money `json:"total"`
	Energy    Money `json:"energy"`
	Telephony Money `json:"telephony"`
	Count     int   `json:"count"`
}

func sumCommissions(contracts []Contract) CommissionReport {
	var r CommissionReport
	for _, c := range contracts {
		r.Count++
		cents := int64(0)
		if c.HasCommission {
			cents = c.Commission.Cents
		}
		r.Total.Cents += cents
		if c.Type == Telephony {
			r.Telephony.Cents += cents
		} else {
			r.Energy.Cents += cents
		}
	}
	return r
}

// AggregateCommissions filters the collection and sums the result.
func AggregateCommissions(contracts []Contract, f CommissionFilter) CommissionReport {
	return sumCommissions(FilterContracts(contracts, f))
}

// CurrentMonthReport sums commissions over contracts started in now's
// calendar month, ignoring any user-selected filter. Backs the "this month"
// dashboard widget.
func CurrentMonthReport(contracts []Contract, now Date) CommissionReport {
	return AggregateCommissions(contracts, CommissionFilter{
		Year:  now.Year(),
		Month: now.MonthOf(),
	})
}

// DistinctProviders counts distinct provider names among energy contracts
// and among telephony contracts over the full collection. A provider used in
// both categories counts once in each.
func DistinctProviders(contracts []Contract) (energy, telephony int) {
	energySet := map[string]struct{}{}
	telephonySet := map[string]struct{}{}
	for _, c := range contracts {
		if c.Provider == "" {
			continue
		}
		if c.Type == Telephony {
			telephonySet[c.Provider] = struct{}{}
		} else {
			energySet[c.Provider] = struct{}{}
		}
	}
	return len(energySet), len(telephonySet)
}
