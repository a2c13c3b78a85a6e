package services

import (
	"context"
	"testing"

	"gestionale/internal/core"
	"gestionale/internal/store/memory"
)

func newDashboardFixture(t *testing.T) (*DashboardService, *memory.Store, core.Date) {
	t.Helper()
	mem := memory.New()
	session := NewSessionService(mem)
	svc := NewDashboardService(mem, session)
	now := core.NewDate(2024, 9, 15)
	svc.now = func() core.Date { return now }
	return svc, mem, now
}

func TestDashboardBuild(t *testing.T) {
	ctx := context.Background()
	svc, mem, now := newDashboardFixture(t)

	client, _ := mem.CreateClient(ctx, core.Client{FirstName: "Mario", LastName: "Rossi"})
	// One contract in its T4 window, one expiring, one expired.
	mem.CreateContract(ctx, core.Contract{
		ClientID: client.ID, Type: core.Electricity, Provider: "Enel",
		StartDate: now.AddMonths(-6),
		Commission: core.Money{Cents: 5000}, HasCommission: true,
	})
	mem.CreateContract(ctx, core.Contract{
		ClientID: client.ID, Type: core.Gas, Provider: "Eni",
		EndDate: now.AddDays(20),
	})
	mem.CreateContract(ctx, core.Contract{
		ClientID: client.ID, Type: core.Telephony, Provider: "TIM",
		EndDate: now.AddDays(-3),
	})
	mem.CreateTask(ctx, core.OfficeTask{Title: "aperto"})
	mem.CreateTask(ctx, core.OfficeTask{Title: "chiuso", Done: true})

	d, err := svc.Build(ctx, core.CommissionFilter{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(d.Checkups) != 1 || d.Checkups[0].Type != core.CheckupT4 {
		t.Fatalf("checkups = %+v", d.Checkups)
	}
	if len(d.Expiring) != 1 || d.ExpiringBadge != 1 {
		t.Fatalf("expiring = %d badge = %d", len(d.Expiring), d.ExpiringBadge)
	}
	if len(d.Expired) != 1 {
		t.Fatalf("expired = %d", len(d.Expired))
	}
	if d.Commissions.Total.Cents != 5000 {
		t.Fatalf("commissions = %d", d.Commissions.Total.Cents)
	}
	if d.MonthCommissions.Count != 0 {
		// The commissioned contract started six months ago, not this month.
		t.Fatalf("month commissions = %+v", d.MonthCommissions)
	}
	if d.EnergyProviders != 2 || d.TelephonyProviders != 1 {
		t.Fatalf("providers = %d/%d", d.EnergyProviders, d.TelephonyProviders)
	}
	if d.OpenTasks != 1 {
		t.Fatalf("open tasks = %d", d.OpenTasks)
	}
	if !d.Widgets.Checkups {
		t.Fatalf("widgets = %+v", d.Widgets)
	}
}

func TestDashboardRespectsDismissals(t *testing.T) {
	ctx := context.Background()
	svc, mem, now := newDashboardFixture(t)
	session := NewSessionService(mem)

	client, _ := mem.CreateClient(ctx, core.Client{FirstName: "A"})
	contract, _ := mem.CreateContract(ctx, core.Contract{
		ClientID: client.ID, Type: core.Gas, Provider: "Eni",
		StartDate: now.AddMonths(-6),
	})

	session.DismissCheckup(ctx, contract.ID, core.CheckupT4)

	d, err := svc.Build(ctx, core.CommissionFilter{})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(d.Checkups) != 0 {
		t.Fatalf("dismissed checkup still shown: %+v", d.Checkups)
	}
}

func TestDashboardFailsWhenAnyListFails(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	flaky := &flakyStore{EntityStore: mem, failListContracts: true}
	svc := NewDashboardService(flaky, NewSessionService(mem))

	if _, err := svc.Build(ctx, core.CommissionFilter{}); err == nil {
		t.Fatal("expected build to fail when a list fails")
	}
}

func TestSearchAll(t *testing.T) {
	ctx := context.Background()
	svc, mem, _ := newDashboardFixture(t)
	mem.CreateClient(ctx, core.Client{FirstName: "Mario", LastName: "Rossi"})

	r, err := svc.SearchAll(ctx, "ross")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(r.Clients) != 1 {
		t.Fatalf("clients = %+v", r.Clients)
	}

	r, _ = svc.SearchAll(ctx, "  ")
	if len(r.Clients) != 0 {
		t.Fatal("blank query should return nothing")
	}
}
