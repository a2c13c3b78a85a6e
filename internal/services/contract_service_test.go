package services

import (
	"context"
	"errors"
	"testing"

	"gestionale/internal/core"
	"gestionale/internal/store/memory"
)

type recordingPublisher struct {
	published []int64
	failWith  error
}

func (p *recordingPublisher) PublishContractSync(ctx context.Context, id int64) error {
	if p.failWith != nil {
		return p.failWith
	}
	p.published = append(p.published, id)
	return nil
}

func TestContractCreatePublishesSync(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	pub := &recordingPublisher{}
	svc := NewContractService(mem, pub)

	client, _ := mem.CreateClient(ctx, core.Client{FirstName: "Mario"})
	created, err := svc.Create(ctx, core.Contract{ClientID: client.ID, Type: core.Electricity, Provider: "Enel"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(pub.published) != 1 || pub.published[0] != created.ID {
		t.Fatalf("published = %v, want [%d]", pub.published, created.ID)
	}
}

func TestContractCreateRejectsUnknownClient(t *testing.T) {
	svc := NewContractService(memory.New(), nil)
	_, err := svc.Create(context.Background(), core.Contract{ClientID: 999, Type: core.Gas})
	if err != core.ErrMissingClient {
		t.Fatalf("expected ErrMissingClient, got %v", err)
	}
}

func TestContractCreateSurvivesBrokerFailure(t *testing.T) {
	// The contract is already saved locally; a dead broker must not fail
	// the request.
	ctx := context.Background()
	mem := memory.New()
	pub := &recordingPublisher{failWith: errors.New("broker down")}
	svc := NewContractService(mem, pub)

	client, _ := mem.CreateClient(ctx, core.Client{FirstName: "Mario"})
	created, err := svc.Create(ctx, core.Contract{ClientID: client.ID, Type: core.Gas, Provider: "Eni"})
	if err != nil {
		t.Fatalf("create should succeed despite broker failure: %v", err)
	}
	if _, err := mem.GetContract(ctx, created.ID); err != nil {
		t.Fatalf("contract not persisted: %v", err)
	}
}

func TestContractCreateWithoutPublisher(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := NewContractService(mem, nil)

	client, _ := mem.CreateClient(ctx, core.Client{FirstName: "Mario"})
	if _, err := svc.Create(ctx, core.Contract{ClientID: client.ID, Type: core.Telephony, Provider: "TIM"}); err != nil {
		t.Fatalf("create: %v", err)
	}
}

func TestListExpiring(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := NewContractService(mem, nil)
	now := core.NewDate(2024, 6, 10)

	client, _ := mem.CreateClient(ctx, core.Client{FirstName: "Mario"})
	mk := func(end core.Date) {
		_, err := mem.CreateContract(ctx, core.Contract{ClientID: client.ID, Type: core.Gas, EndDate: end})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	mk(core.Date{})            // no end
	mk(now.AddDays(-5))        // expired
	mk(now.AddDays(30))        // expiring
	mk(now.AddDays(59))        // expiring
	mk(now.AddMonths(6))       // active

	got, err := svc.ListExpiring(ctx, now, core.DefaultExpiryWindowDays)
	if err != nil {
		t.Fatalf("list expiring: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d expiring contracts, want 2", len(got))
	}
}
