package services

import (
	"context"

	"gestionale/internal/core"
	"gestionale/internal/store"
)

// Dashboard is everything the landing page shows, computed from a single
// snapshot so the widgets never disagree with each other.
type Dashboard struct {
	Checkups           []core.CheckupItem    `json:"checkups"`
	Expiring           []core.Contract       `json:"expiring"`
	Expired            []core.Contract       `json:"expired"`
	ExpiringBadge      int                   `json:"expiringBadge"`
	MonthCommissions   core.CommissionReport `json:"monthCommissions"`
	Commissions        core.CommissionReport `json:"commissions"`
	EnergyProviders    int                   `json:"energyProviders"`
	TelephonyProviders int                   `json:"telephonyProviders"`
	OpenTasks          int                   `json:"openTasks"`
	Appointments       []core.Appointment    `json:"appointments"`
	Widgets            WidgetPrefs           `json:"widgets"`
}

// DashboardService composes the derived views over the entity store.
type DashboardService struct {
	store   store.EntityStore
	session *SessionService

	now func() core.Date
}

func NewDashboardService(s store.EntityStore, session *SessionService) *DashboardService {
	return &DashboardService{store: s, session: session, now: core.Today}
}

// Build assembles the dashboard for the given commission filter.
func (s *DashboardService) Build(ctx context.Context, filter core.CommissionFilter) (*Dashboard, error) {
	snap, err := LoadSnapshot(ctx, s.store)
	if err != nil {
		return nil, err
	}
	dismissed, err := s.session.DismissedCheckups(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.session.WidgetPrefs(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()

	checkups := core.EvaluateCheckups(snap.Contracts, now, dismissed)
	core.SortCheckups(checkups)

	var expiring, expired []core.Contract
	for _, c := range snap.Contracts {
		switch c.ExpiryStatus(now, core.DefaultExpiryWindowDays) {
		case core.ExpiryExpiringSoon:
			expiring = append(expiring, c)
		case core.ExpiryExpired:
			expired = append(expired, c)
		}
	}

	openTasks := 0
	for _, t := range snap.Tasks {
		if !t.Done {
			openTasks++
		}
	}

	energy, telephony := core.DistinctProviders(snap.Contracts)

	return &Dashboard{
		Checkups:           checkups,
		Expiring:           expiring,
		Expired:            expired,
		ExpiringBadge:      len(expiring),
		MonthCommissions:   core.CurrentMonthReport(snap.Contracts, now),
		Commissions:        core.AggregateCommissions(snap.Contracts, filter),
		EnergyProviders:    energy,
		TelephonyProviders: telephony,
		OpenTasks:          openTasks,
		Appointments:       snap.Appointments,
		Widgets:            prefs,
	}, nil
}

// SearchAll runs the quick search over a fresh snapshot.
func (s *DashboardService) SearchAll(ctx context.Context, query string) (core.SearchResult, error) {
	snap, err := LoadSnapshot(ctx, s.store)
	if err != nil {
		return core.SearchResult{}, err
	}
	return core.Search(snap.Clients, snap.Contracts, query), nil
}
