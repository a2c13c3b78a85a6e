package core

import (
	"math"
	"testing"
)

func TestSplitBillSimple(t *testing.T) {
	in := BillSplitInput{
		Method:           SplitSimple,
		TotalBill:        Money{Cents: 10000}, // €100
		TotalConsumption: 50,
		Participants: []Participant{
			{Name: "A", Consumption: 20},
			{Name: "B", Consumption: 30},
		},
	}
	r, err := SplitBill(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Shares[0].Total.Cents != 4000 {
		t.Fatalf("share A = %d, want 4000", r.Shares[0].Total.Cents)
	}
	if r.Shares[1].Total.Cents != 6000 {
		t.Fatalf("share B = %d, want 6000", r.Shares[1].Total.Cents)
	}
	if r.RatePerUnit != 2.0 {
		t.Fatalf("rate = %f, want 2.0", r.RatePerUnit)
	}
	if r.Discrepancy != 0 {
		t.Fatalf("discrepancy = %f, want 0", r.Discrepancy)
	}
}

func TestSplitBillAdvancedConservation(t *testing.T) {
	// Reference example: fees 10+5+0, bill 100, consumption 50, split 20/30.
	in := BillSplitInput{
		Method:           SplitAdvanced,
		TotalBill:        Money{Cents: 10000},
		TotalConsumption: 50,
		FixedFee:         Money{Cents: 1000},
		PowerFee:         Money{Cents: 500},
		OtherFee:         Money{Cents: 0},
		Participants: []Participant{
			{Name: "A", Consumption: 20},
			{Name: "B", Consumption: 30},
		},
	}
	r, err := SplitBill(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TotalFixed.Cents != 1500 {
		t.Fatalf("totalFixed = %d, want 1500", r.TotalFixed.Cents)
	}
	// fixedPerPerson = 7.50, rate = (100-15)/50 = 1.70
	if r.Shares[0].FixedShare.Cents != 750 {
		t.Fatalf("fixed share = %d, want 750", r.Shares[0].FixedShare.Cents)
	}
	if r.Shares[0].Total.Cents != 4150 { // 7.50 + 20*1.70 = 41.50
		t.Fatalf("share A = %d, want 4150", r.Shares[0].Total.Cents)
	}
	if r.Shares[1].Total.Cents != 5850 { // 7.50 + 30*1.70 = 58.50
		t.Fatalf("share B = %d, want 5850", r.Shares[1].Total.Cents)
	}

	// Conservation: shares sum to the bill when consumptions reconcile.
	var sum int64
	for _, s := range r.Shares {
		sum += s.Total.Cents
	}
	if sum != in.TotalBill.Cents {
		t.Fatalf("shares sum to %d, want %d", sum, in.TotalBill.Cents)
	}
	if math.Abs(r.RatePerUnit-1.70) > 1e-9 {
		t.Fatalf("rate = %f, want 1.70", r.RatePerUnit)
	}
}

func TestSplitBillBlankFeesDefaultToZero(t *testing.T) {
	in := BillSplitInput{
		Method:           SplitAdvanced,
		TotalBill:        Money{Cents: 6000},
		TotalConsumption: 30,
		Participants:     []Participant{{Name: "solo", Consumption: 30}},
	}
	r, err := SplitBill(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TotalFixed.Cents != 0 {
		t.Fatalf("totalFixed = %d, want 0", r.TotalFixed.Cents)
	}
	if r.Shares[0].Total.Cents != 6000 {
		t.Fatalf("share = %d, want 6000", r.Shares[0].Total.Cents)
	}
}

func TestSplitBillZeroConsumptionDoesNotBlowUp(t *testing.T) {
	// A blank declared total is floored at one unit: finite rate, no NaN.
	in := BillSplitInput{
		Method:           SplitSimple,
		TotalBill:        Money{Cents: 5000},
		TotalConsumption: 0,
		Participants:     []Participant{{Name: "A", Consumption: 10}},
	}
	r, err := SplitBill(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(r.RatePerUnit) || math.IsInf(r.RatePerUnit, 0) {
		t.Fatalf("rate must stay finite, got %f", r.RatePerUnit)
	}
	// unit rate 5000 cents/unit × 10 units
	if r.Shares[0].Total.Cents != 50000 {
		t.Fatalf("share = %d, want 50000", r.Shares[0].Total.Cents)
	}
	if r.Discrepancy != -10 {
		t.Fatalf("discrepancy = %f, want -10", r.Discrepancy)
	}
}

func TestSplitBillDiscrepancyIsAdvisoryOnly(t *testing.T) {
	in := BillSplitInput{
		Method:           SplitSimple,
		TotalBill:        Money{Cents: 10000},
		TotalConsumption: 100, // participants only declare 60
		Participants: []Participant{
			{Name: "A", Consumption: 25},
			{Name: "B", Consumption: 35},
		},
	}
	r, err := SplitBill(in)
	if err != nil {
		t.Fatalf("discrepancy must not block the calculation: %v", err)
	}
	if r.Discrepancy != 40 {
		t.Fatalf("discrepancy = %f, want 40", r.Discrepancy)
	}
	if r.Shares[0].Total.Cents != 2500 || r.Shares[1].Total.Cents != 3500 {
		t.Fatalf("shares = %d/%d, want 2500/3500",
			r.Shares[0].Total.Cents, r.Shares[1].Total.Cents)
	}
}

func TestSplitBillRequiresParticipants(t *testing.T) {
	_, err := SplitBill(BillSplitInput{Method: SplitSimple, TotalBill: Money{Cents: 100}})
	if err != ErrNoParticipants {
		t.Fatalf("expected ErrNoParticipants, got %v", err)
	}
}

func TestSplitBillRejectsUnknownMethod(t *testing.T) {
	_, err := SplitBill(BillSplitInput{
		Method:       SplitMethod("weird"),
		Participants: []Participant{{Name: "A"}},
	})
	if err != ErrInvalidMethod {
		t.Fatalf("expected ErrInvalidMethod, got %v", err)
	}
}
