package core

import (
	"errors"
	"math"
)

// SplitMethod selects the bill allocation algorithm.
type SplitMethod string

const (
	// SplitSimple divides the whole bill proportionally to consumption.
	SplitSimple SplitMethod = "simple"
	// SplitAdvanced splits fixed fees equally and the remainder by consumption.
	SplitAdvanced SplitMethod = "advanced"
)

// ErrNoParticipants rejects a split with an empty participant list; the UI
// enforces a minimum of one participant and never removes the last row.
var ErrNoParticipants = errors.New("bill split requires at least one participant")

// ErrInvalidMethod rejects unknown allocation methods.
var ErrInvalidMethod = errors.New("invalid split method")

// Participant is one party on the shared bill with their declared
// consumption in bill units (kWh, smc, ...).
type Participant struct {
	Name        string  `json:"name"`
	Consumption float64 `json:"consumption"`
}

// BillSplitInput is the full calculator state. Shares are a pure projection
// of this struct: every change to any field requires a fresh SplitBill call,
// there is no incremental update.
type BillSplitInput struct {
	Method           SplitMethod   `json:"method"`
	TotalBill        Money         `json:"totalBill"`
	TotalConsumption float64       `json:"totalConsumption"` // the bill's stated total, not the participants' sum
	FixedFee         Money         `json:"fixedFee"`
	PowerFee         Money         `json:"powerFee"`
	OtherFee         Money         `json:"otherFee"`
	Participants     []Participant `json:"participants"`
}

// ParticipantShare is one participant's computed slice of the bill.
type ParticipantShare struct {
	Name          string  `json:"name"`
	Consumption   float64 `json:"consumption"`
	FixedShare    Money   `json:"fixedShare"`
	VariableShare Money   `json:"variableShare"`
	Total         Money   `json:"total"`
}

// BillSplitResult carries the shares plus the advisory reconciliation data.
// Discrepancy is declared total consumption minus the participants' sum; a
// non-zero value is surfaced to the user but never blocks the calculation.
type BillSplitResult struct {
	Shares      []ParticipantShare `json:"shares"`
	TotalFixed  Money              `json:"totalFixed"`
	RatePerUnit float64            `json:"ratePerUnit"` // euros per consumption unit
	Discrepancy float64            `json:"discrepancy"`
}

// SplitBill allocates the bill across participants.
//
// Simple: unit cost = totalBill / totalConsumption, share = consumption × cost.
// Advanced: fixed fees are split equally, the remainder at
// (totalBill − fixed) / totalConsumption per unit.
//
// A zero or blank declared total consumption is floored at one unit so the
// rate stays finite and shares render as ordinary currency. Shares are
// computed in float cents and rounded half-up, so their sum can differ from
// the bill total by sub-cent rounding only.
func SplitBill(in BillSplitInput) (BillSplitResult, error) {
	if len(in.Participants) == 0 {
		return BillSplitResult{}, ErrNoParticipants
	}
	if in.Method != SplitSimple && in.Method != SplitAdvanced {
		return BillSplitResult{}, ErrInvalidMethod
	}

	consumption := in.TotalConsumption
	if consumption <= 0 {
		consumption = 1
	}

	var participantSum float64
	for _, p := range in.Participants {
		participantSum += p.Consumption
	}

	result := BillSplitResult{
		Discrepancy: in.TotalConsumption - participantSum,
		Shares:      make([]ParticipantShare, 0, len(in.Participants)),
	}

	switch in.Method {
	case SplitSimple:
		rateCents := float64(in.TotalBill.Cents) / consumption
		result.RatePerUnit = rateCents / 100
		for _, p := range in.Participants {
			variable := roundCents(p.Consumption * rateCents)
			result.Shares = append(result.Shares, ParticipantShare{
				Name:          p.Name,
				Consumption:   p.Consumption,
				VariableShare: Money{Cents: variable},
				Total:         Money{Cents: variable},
			})
		}
	case SplitAdvanced:
		fixedCents := in.FixedFee.Cents + in.PowerFee.Cents + in.OtherFee.Cents
		result.TotalFixed = Money{Cents: fixedCents}
		fixedPerPerson := float64(fixedCents) / float64(len(in.Participants))
		rateCents := float64(in.TotalBill.Cents-fixedCents) / consumption
		result.RatePerUnit = rateCents / 100
		for _, p := range in.Participants {
			fixed := roundCents(fixedPerPerson)
			variable := roundCents(p.Consumption * rateCents)
			result.Shares = append(result.Shares, ParticipantShare{
				Name:          p.Name,
				Consumption:   p.Consumption,
				FixedShare:    Money{Cents: fixed},
				VariableShare: Money{Cents: variable},
				Total:         Money{Cents: fixed + variable},
			})
		}
	}

	return result, nil
}

// roundCents rounds half away from zero to whole cents.
func roundCents(f float64) int64 {
	return int64(math.Round(f))
}
