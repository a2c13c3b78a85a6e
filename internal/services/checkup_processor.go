package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gestionale/internal/amqp"
	"gestionale/internal/core"
	"gestionale/internal/store"
)

const stateKeyNotified = "checkup_notifications"

// ReminderPublisher sends one checkup reminder downstream.
type ReminderPublisher interface {
	PublishCheckupReminder(ctx context.Context, msg *amqp.CheckupReminderMessage) error
}

// CheckupProcessor is the worker-side evaluation loop: recompute pending
// milestones and publish at most one reminder per (contract, milestone) per
// day. The last-notified dates live in app_state so restarts do not re-spam.
type CheckupProcessor struct {
	store     store.EntityStore
	session   *SessionService
	publisher ReminderPublisher

	now func() core.Date
}

func NewCheckupProcessor(s store.EntityStore, session *SessionService, publisher ReminderPublisher) *CheckupProcessor {
	return &CheckupProcessor{store: s, session: session, publisher: publisher, now: core.Today}
}

// RunOnce evaluates every contract and publishes reminders for milestones
// not yet notified today. Returns the number of reminders sent.
func (p *CheckupProcessor) RunOnce(ctx context.Context) (int, error) {
	snap, err := LoadSnapshot(ctx, p.store)
	if err != nil {
		return 0, err
	}
	dismissed, err := p.session.DismissedCheckups(ctx)
	if err != nil {
		return 0, err
	}

	now := p.now()
	items := core.EvaluateCheckups(snap.Contracts, now, dismissed)
	core.SortCheckups(items)

	notified, err := p.loadNotified(ctx)
	if err != nil {
		return 0, err
	}

	today := now.String()
	sent := 0
	for _, item := range items {
		if notified[item.Key()] == today {
			continue
		}

		clientName := ""
		if c, ok := snap.ClientByID(item.Contract.ClientID); ok {
			clientName = c.FullName()
		}

		msg := &amqp.CheckupReminderMessage{
			ContractID: item.Contract.ID,
			ClientName: clientName,
			Provider:   item.Contract.Provider,
			Milestone:  string(item.Type),
			TargetDate: item.Target.String(),
			DaysDiff:   item.DaysDiff,
			Timestamp:  time.Now(),
		}
		if err := p.publisher.PublishCheckupReminder(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish checkup reminder",
				"contract_id", item.Contract.ID,
				"milestone", item.Type,
				"error", err)
			continue
		}

		notified[item.Key()] = today
		sent++
	}

	if err := p.saveNotified(ctx, notified, today); err != nil {
		return sent, err
	}

	slog.InfoContext(ctx, "Checkup run complete",
		"pending", len(items),
		"sent", sent)
	return sent, nil
}

func (p *CheckupProcessor) loadNotified(ctx context.Context) (map[string]string, error) {
	raw, ok, err := p.store.GetState(ctx, stateKeyNotified)
	if err != nil {
		return nil, fmt.Errorf("load notification state: %w", err)
	}
	notified := map[string]string{}
	if ok {
		if err := json.Unmarshal(raw, &notified); err != nil {
			slog.WarnContext(ctx, "Malformed notification state, starting fresh", "error", err)
			notified = map[string]string{}
		}
	}
	return notified, nil
}

// saveNotified persists the map, dropping entries from past days so the
// blob cannot grow without bound.
func (p *CheckupProcessor) saveNotified(ctx context.Context, notified map[string]string, today string) error {
	for k, day := range notified {
		if day != today {
			delete(notified, k)
		}
	}
	raw, err := json.Marshal(notified)
	if err != nil {
		return fmt.Errorf("marshal notification state: %w", err)
	}
	if err := p.store.SetState(ctx, stateKeyNotified, raw); err != nil {
		return fmt.Errorf("save notification state: %w", err)
	}
	return nil
}
