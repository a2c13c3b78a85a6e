// Package worker exports contracts from SQLite to the commission register
// spreadsheet. AMQP messages drive the hot path; a periodic rescan picks up
// anything a lost message or a crashed run left pending.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gestionale/internal/amqp"
	"gestionale/internal/sheets"
	"gestionale/internal/storage"
	"gestionale/internal/store"
)

const defaultMaxAttempts = 5

// SyncWorker moves contract rows from SQLite to the register sheet.
type SyncWorker struct {
	storage     *storage.SQLiteRepository
	writer      sheets.ContractWriter
	batchSize   int
	maxAttempts int
}

func NewSyncWorker(repo *storage.SQLiteRepository, writer sheets.ContractWriter, batchSize int) *SyncWorker {
	if batchSize <= 0 {
		batchSize = 20
	}
	return &SyncWorker{
		storage:     repo,
		writer:      writer,
		batchSize:   batchSize,
		maxAttempts: defaultMaxAttempts,
	}
}

// HandleSyncMessage exports the contract named by one AMQP message. The
// current row is always re-read from SQLite, so stale messages are harmless.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.ContractSyncMessage) error {
	slog.InfoContext(ctx, "Processing contract sync message", "id", msg.ID)

	err := w.exportContract(ctx, msg.ID)
	if errors.Is(err, store.ErrNotFound) {
		// Deleted between enqueue and delivery; nothing to export.
		slog.WarnContext(ctx, "Contract vanished before export", "id", msg.ID)
		return nil
	}
	return err
}

func (w *SyncWorker) exportContract(ctx context.Context, id int64) error {
	contract, err := w.storage.GetContract(ctx, id)
	if err != nil {
		return fmt.Errorf("get contract %d: %w", id, err)
	}

	client, err := w.storage.GetClient(ctx, contract.ClientID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("get client %d: %w", contract.ClientID, err)
	}

	ref, err := w.writer.Append(ctx, client, contract)
	if err != nil {
		if markErr := w.storage.MarkContractSyncError(ctx, id, w.maxAttempts); markErr != nil {
			slog.ErrorContext(ctx, "Failed to record sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append contract %d: %w", id, err)
	}

	if err := w.storage.MarkContractSynced(ctx, id); err != nil {
		return fmt.Errorf("mark synced %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Contract exported", "id", id, "row", ref)
	return nil
}

// RescanPending exports every contract still flagged pending, up to the
// batch size. Called once at startup and then on a timer.
func (w *SyncWorker) RescanPending(ctx context.Context) (int, error) {
	pending, err := w.storage.GetPendingSyncContracts(ctx, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("list pending contracts: %w", err)
	}

	exported := 0
	for _, c := range pending {
		if ctx.Err() != nil {
			return exported, ctx.Err()
		}
		if err := w.exportContract(ctx, c.ID); err != nil {
			slog.ErrorContext(ctx, "Rescan export failed", "id", c.ID, "error", err)
			continue
		}
		exported++
	}

	if len(pending) > 0 {
		slog.InfoContext(ctx, "Rescan complete", "pending", len(pending), "exported", exported)
	}
	return exported, nil
}

// Run consumes sync messages and rescans on the given interval until the
// context ends.
func (w *SyncWorker) Run(ctx context.Context, client *amqp.Client, rescanEvery time.Duration) error {
	if _, err := w.RescanPending(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup rescan failed", "error", err)
	}

	if rescanEvery > 0 {
		ticker := time.NewTicker(rescanEvery)
		defer ticker.Stop()
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if _, err := w.RescanPending(ctx); err != nil {
						slog.ErrorContext(ctx, "Periodic rescan failed", "error", err)
					}
				}
			}
		}()
	}

	return client.ConsumeContractSync(ctx, func(msg *amqp.ContractSyncMessage) error {
		return w.HandleSyncMessage(ctx, msg)
	})
}
