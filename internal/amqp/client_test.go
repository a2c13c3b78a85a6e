package amqp

import (
	"fmt"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
		{63, 30 * time.Second}, // shift overflow still capped
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestContractSyncMessageRoundTrip(t *testing.T) {
	msg := NewContractSyncMessage(42)
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := ContractSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != 42 {
		t.Fatalf("id = %d, want 42", got.ID)
	}
	if got.Timestamp.IsZero() {
		t.Fatal("timestamp not set")
	}
}

func TestContractSyncMessageRejectsGarbage(t *testing.T) {
	if _, err := ContractSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestCheckupReminderMessageRoundTrip(t *testing.T) {
	msg := &CheckupReminderMessage{
		ContractID: 7,
		ClientName: "Mario Rossi",
		Provider:   "Enel",
		Milestone:  "T4",
		TargetDate: "2024-09-15",
		DaysDiff:   -3,
		Timestamp:  time.Now(),
	}
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := CheckupReminderMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ContractID != 7 || got.Milestone != "T4" || got.DaysDiff != -3 {
		t.Fatalf("round trip lost fields: %+v", got)
	}
}
