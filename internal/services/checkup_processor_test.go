package services

import (
	"context"
	"errors"
	"testing"

	"gestionale/internal/amqp"
	"gestionale/internal/core"
	"gestionale/internal/store/memory"
)

type recordingReminderPublisher struct {
	messages []*amqp.CheckupReminderMessage
	failWith error
}

func (p *recordingReminderPublisher) PublishCheckupReminder(ctx context.Context, msg *amqp.CheckupReminderMessage) error {
	if p.failWith != nil {
		return p.failWith
	}
	p.messages = append(p.messages, msg)
	return nil
}

func newProcessorFixture(t *testing.T) (*CheckupProcessor, *memory.Store, *recordingReminderPublisher, core.Date) {
	t.Helper()
	mem := memory.New()
	pub := &recordingReminderPublisher{}
	p := NewCheckupProcessor(mem, NewSessionService(mem), pub)
	now := core.NewDate(2024, 9, 15)
	p.now = func() core.Date { return now }
	return p, mem, pub, now
}

func TestProcessorPublishesPendingMilestones(t *testing.T) {
	ctx := context.Background()
	p, mem, pub, now := newProcessorFixture(t)

	client, _ := mem.CreateClient(ctx, core.Client{FirstName: "Mario", LastName: "Rossi"})
	mem.CreateContract(ctx, core.Contract{
		ClientID: client.ID, Type: core.Electricity, Provider: "Enel",
		StartDate: now.AddMonths(-6),
	})

	sent, err := p.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sent != 1 || len(pub.messages) != 1 {
		t.Fatalf("sent = %d, messages = %d", sent, len(pub.messages))
	}
	msg := pub.messages[0]
	if msg.Milestone != "T4" || msg.ClientName != "Mario Rossi" || msg.DaysDiff != 0 {
		t.Fatalf("message = %+v", msg)
	}
}

func TestProcessorNotifiesOncePerDay(t *testing.T) {
	ctx := context.Background()
	p, mem, pub, now := newProcessorFixture(t)

	client, _ := mem.CreateClient(ctx, core.Client{FirstName: "A"})
	mem.CreateContract(ctx, core.Contract{
		ClientID: client.ID, Type: core.Gas, Provider: "Eni",
		StartDate: now.AddMonths(-6),
	})

	for i := 0; i < 3; i++ {
		if _, err := p.RunOnce(ctx); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}
	if len(pub.messages) != 1 {
		t.Fatalf("same-day re-runs must not re-notify, got %d messages", len(pub.messages))
	}

	// The next day it fires again.
	p.now = func() core.Date { return now.AddDays(1) }
	if _, err := p.RunOnce(ctx); err != nil {
		t.Fatalf("next day: %v", err)
	}
	if len(pub.messages) != 2 {
		t.Fatalf("expected a fresh reminder the next day, got %d", len(pub.messages))
	}
}

func TestProcessorSkipsDismissed(t *testing.T) {
	ctx := context.Background()
	p, mem, pub, now := newProcessorFixture(t)
	session := NewSessionService(mem)

	client, _ := mem.CreateClient(ctx, core.Client{FirstName: "A"})
	contract, _ := mem.CreateContract(ctx, core.Contract{
		ClientID: client.ID, Type: core.Telephony, Provider: "TIM",
		StartDate: now.AddMonths(-6),
	})
	session.DismissCheckup(ctx, contract.ID, core.CheckupT4)

	sent, err := p.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sent != 0 || len(pub.messages) != 0 {
		t.Fatalf("dismissed milestone was published: %d", len(pub.messages))
	}
}

func TestProcessorRetriesAfterPublishFailure(t *testing.T) {
	// A failed publish must not be recorded as notified.
	ctx := context.Background()
	p, mem, pub, now := newProcessorFixture(t)

	client, _ := mem.CreateClient(ctx, core.Client{FirstName: "A"})
	mem.CreateContract(ctx, core.Contract{
		ClientID: client.ID, Type: core.Gas, Provider: "Eni",
		StartDate: now.AddMonths(-6),
	})

	pub.failWith = errors.New("broker down")
	if sent, err := p.RunOnce(ctx); err != nil || sent != 0 {
		t.Fatalf("sent=%d err=%v", sent, err)
	}

	pub.failWith = nil
	sent, err := p.RunOnce(ctx)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if sent != 1 {
		t.Fatalf("expected retry to publish, sent = %d", sent)
	}
}
