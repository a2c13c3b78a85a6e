package services

import (
	"context"
	"fmt"
	"log/slog"

	"gestionale/internal/core"
	"gestionale/internal/store"
)

// ClientService validates and persists clients and owns the cascade delete.
type ClientService struct {
	store store.EntityStore
}

func NewClientService(s store.EntityStore) *ClientService {
	return &ClientService{store: s}
}

func (s *ClientService) List(ctx context.Context) ([]core.Client, error) {
	return s.store.ListClients(ctx)
}

func (s *ClientService) Get(ctx context.Context, id int64) (core.Client, error) {
	return s.store.GetClient(ctx, id)
}

func (s *ClientService) Create(ctx context.Context, c core.Client) (core.Client, error) {
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}
	created, err := s.store.CreateClient(ctx, c)
	if err != nil {
		return core.Client{}, fmt.Errorf("create client: %w", err)
	}
	slog.InfoContext(ctx, "Client created", "id", created.ID, "name", created.FullName())
	return created, nil
}

func (s *ClientService) Update(ctx context.Context, c core.Client) (core.Client, error) {
	if err := c.Validate(); err != nil {
		return core.Client{}, err
	}
	updated, err := s.store.UpdateClient(ctx, c)
	if err != nil {
		return core.Client{}, err
	}
	return updated, nil
}

// Delete removes the client and every contract that references it. The two
// phases are not atomic: contracts go first, so an interruption leaves a
// client without contracts, never contracts without a client. The startup
// orphan sweep covers the remaining corner.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.GetClient(ctx, id); err != nil {
		return err
	}

	removed, err := s.store.DeleteContractsByClient(ctx, id)
	if err != nil {
		return fmt.Errorf("delete contracts of client %d: %w", id, err)
	}

	if err := s.store.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Client deleted", "id", id, "contracts_removed", removed)
	return nil
}
