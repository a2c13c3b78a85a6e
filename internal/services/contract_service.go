package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gestionale/internal/core"
	"gestionale/internal/store"
)

// SyncPublisher enqueues a contract for export. The AMQP client satisfies
// it; a nil publisher means exports are off.
type SyncPublisher interface {
	PublishContractSync(ctx context.Context, id int64) error
}

// ContractService orchestrates contract writes across the store and AMQP.
type ContractService struct {
	store     store.EntityStore
	publisher SyncPublisher
}

func NewContractService(s store.EntityStore, publisher SyncPublisher) *ContractService {
	return &ContractService{store: s, publisher: publisher}
}

func (s *ContractService) List(ctx context.Context) ([]core.Contract, error) {
	return s.store.ListContracts(ctx)
}

func (s *ContractService) ListByClient(ctx context.Context, clientID int64) ([]core.Contract, error) {
	return s.store.ListContractsByClient(ctx, clientID)
}

func (s *ContractService) Get(ctx context.Context, id int64) (core.Contract, error) {
	return s.store.GetContract(ctx, id)
}

// ListExpiring returns contracts whose end date is within the window,
// soonest first among the classified set.
func (s *ContractService) ListExpiring(ctx context.Context, now core.Date, windowDays int) ([]core.Contract, error) {
	contracts, err := s.store.ListContracts(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Contract
	for _, c := range contracts {
		if c.ExpiryStatus(now, windowDays) == core.ExpiryExpiringSoon {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *ContractService) Create(ctx context.Context, c core.Contract) (core.Contract, error) {
	if err := s.validate(ctx, c); err != nil {
		return core.Contract{}, err
	}
	created, err := s.store.CreateContract(ctx, c)
	if err != nil {
		return core.Contract{}, fmt.Errorf("create contract: %w", err)
	}
	s.publishSync(ctx, created.ID)
	return created, nil
}

func (s *ContractService) Update(ctx context.Context, c core.Contract) (core.Contract, error) {
	if err := s.validate(ctx, c); err != nil {
		return core.Contract{}, err
	}
	updated, err := s.store.UpdateContract(ctx, c)
	if err != nil {
		return core.Contract{}, err
	}
	s.publishSync(ctx, updated.ID)
	return updated, nil
}

func (s *ContractService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteContract(ctx, id)
}

func (s *ContractService) validate(ctx context.Context, c core.Contract) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := s.store.GetClient(ctx, c.ClientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return core.ErrMissingClient
		}
		return fmt.Errorf("check client %d: %w", c.ClientID, err)
	}
	return nil
}

// publishSync is best effort: the contract is already saved locally, so a
// missing or unreachable broker only delays the spreadsheet export.
func (s *ContractService) publishSync(ctx context.Context, id int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishContractSync(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish contract sync message",
			"id", id, "error", err)
	}
}
