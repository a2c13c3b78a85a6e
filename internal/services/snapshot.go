package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gestionale/internal/core"
	"gestionale/internal/store"
)

// Snapshot is a point-in-time read of every collection, taken in parallel.
// Derived views (checkups, expiry, commissions, search) always compute from
// one snapshot so they agree with each other.
type Snapshot struct {
	Clients      []core.Client
	Contracts    []core.Contract
	Appointments []core.Appointment
	Tasks        []core.OfficeTask
}

// LoadSnapshot reads all four collections concurrently. Any single failure
// fails the whole load; the caller keeps whatever snapshot it already had.
func LoadSnapshot(ctx context.Context, s store.EntityStore) (*Snapshot, error) {
	snap := &Snapshot{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.Clients, err = s.ListClients(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Contracts, err = s.ListContracts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Appointments, err = s.ListAppointments(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Tasks, err = s.ListTasks(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snap, nil
}

// ClientByID resolves a client from the snapshot without a store call.
func (s *Snapshot) ClientByID(id int64) (core.Client, bool) {
	for _, c := range s.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return core.Client{}, false
}
