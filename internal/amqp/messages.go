package amqp

import (
	"encoding/json"
	"time"
)

// ContractSyncMessage asks the export worker to push one contract to the
// commission register. Only the ID travels; the worker reads the current
// row from the database, so a stale message can never overwrite newer data.
type ContractSyncMessage struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewContractSyncMessage(id int64) *ContractSyncMessage {
	return &ContractSyncMessage{
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *ContractSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ContractSyncMessageFromJSON(data []byte) (*ContractSyncMessage, error) {
	var msg ContractSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CheckupReminderMessage is one milestone reminder produced by the checkup
// worker. It carries enough to render a notification without a DB read.
type CheckupReminderMessage struct {
	ContractID int64     `json:"contractId"`
	ClientName string    `json:"clientName"`
	Provider   string    `json:"provider"`
	Milestone  string    `json:"milestone"`
	TargetDate string    `json:"targetDate"`
	DaysDiff   int       `json:"daysDiff"`
	Timestamp  time.Time `json:"timestamp"`
}

func (m *CheckupReminderMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CheckupReminderMessageFromJSON(data []byte) (*CheckupReminderMessage, error) {
	var msg CheckupReminderMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
