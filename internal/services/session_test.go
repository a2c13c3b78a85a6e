package services

import (
	"context"
	"testing"

	"gestionale/internal/core"
	"gestionale/internal/store/memory"
)

func TestGateOpenUntilCredentialsSet(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(memory.New())

	ok, err := svc.CheckGate(ctx, "anyone", "anything")
	if err != nil || !ok {
		t.Fatalf("gate should be open before setup: ok=%v err=%v", ok, err)
	}

	if err := svc.SetCredentials(ctx, Credentials{Username: "ufficio", Password: "segreta"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	ok, _ = svc.CheckGate(ctx, "ufficio", "segreta")
	if !ok {
		t.Fatal("correct pair rejected")
	}
	ok, _ = svc.CheckGate(ctx, "ufficio", "sbagliata")
	if ok {
		t.Fatal("wrong password accepted")
	}
}

func TestWidgetPrefsDefaultAndRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(memory.New())

	prefs, err := svc.WidgetPrefs(ctx)
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if !prefs.Checkups || !prefs.Tasks {
		t.Fatalf("defaults should show everything: %+v", prefs)
	}

	prefs.Commissions = false
	if err := svc.SetWidgetPrefs(ctx, prefs); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ := svc.WidgetPrefs(ctx)
	if got.Commissions {
		t.Fatal("preference not persisted")
	}
}

func TestMalformedStateDegradesToDefault(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()
	svc := NewSessionService(mem)

	mem.SetState(ctx, "widget_prefs", []byte("{{{not json"))
	prefs, err := svc.WidgetPrefs(ctx)
	if err != nil {
		t.Fatalf("malformed blob must not error: %v", err)
	}
	if prefs != DefaultWidgetPrefs() {
		t.Fatalf("expected defaults, got %+v", prefs)
	}

	// A blob that decodes some fields before hitting a type error must not
	// leak the partially decoded value: callers get the full default.
	mem.SetState(ctx, "widget_prefs", []byte(`{"checkups":false,"expiring":"boh","tasks":false}`))
	prefs, err = svc.WidgetPrefs(ctx)
	if err != nil {
		t.Fatalf("partially decodable blob must not error: %v", err)
	}
	if prefs != DefaultWidgetPrefs() {
		t.Fatalf("expected pristine defaults, got %+v", prefs)
	}

	mem.SetState(ctx, "dismissed_checkups", []byte("garbage"))
	set, err := svc.DismissedCheckups(ctx)
	if err != nil {
		t.Fatalf("malformed dismissals must not error: %v", err)
	}
	if len(set) != 0 {
		t.Fatalf("expected empty set, got %v", set)
	}
}

func TestDismissalsPersistAndClear(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(memory.New())

	if err := svc.DismissCheckup(ctx, 7, core.CheckupT4); err != nil {
		t.Fatalf("dismiss: %v", err)
	}
	// Dismissing twice is a no-op.
	if err := svc.DismissCheckup(ctx, 7, core.CheckupT4); err != nil {
		t.Fatalf("repeat dismiss: %v", err)
	}
	if err := svc.DismissCheckup(ctx, 7, core.CheckupT8); err != nil {
		t.Fatalf("dismiss T8: %v", err)
	}

	set, _ := svc.DismissedCheckups(ctx)
	if len(set) != 2 {
		t.Fatalf("set = %v, want 2 keys", set)
	}
	if _, ok := set[core.DismissalKey(7, core.CheckupT4)]; !ok {
		t.Fatalf("missing 7_T4 in %v", set)
	}

	if err := svc.ClearDismissals(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	set, _ = svc.DismissedCheckups(ctx)
	if len(set) != 0 {
		t.Fatalf("clear left %v", set)
	}
}
