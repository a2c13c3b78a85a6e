// Package store defines the persistence ports for the CRM entities. Every
// backend (in-memory, SQLite) implements these interfaces; services depend
// on the ports only.
package store

import (
	"context"
	"errors"

	"gestionale/internal/core"
)

// ErrNotFound is returned by Get/Update/Delete when the id does not exist.
var ErrNotFound = errors.New("not found")

// RefKind selects one of the user-managed reference lists.
type RefKind string

const (
	RefProviders           RefKind = "providers"
	RefOperationTypes      RefKind = "operation_types"
	RefAppointmentStatuses RefKind = "appointment_statuses"
)

// IsValid reports whether the kind names a known reference list.
func (k RefKind) IsValid() bool {
	switch k {
	case RefProviders, RefOperationTypes, RefAppointmentStatuses:
		return true
	default:
		return false
	}
}

// ErrUnknownRefKind is returned for reference-list kinds outside the known set.
var ErrUnknownRefKind = errors.New("unknown reference list kind")

type (
	// ClientStore persists clients. Create assigns ID and CreatedAt; Update
	// replaces the full record except CreatedAt.
	ClientStore interface {
		ListClients(ctx context.Context) ([]core.Client, error)
		GetClient(ctx context.Context, id int64) (core.Client, error)
		CreateClient(ctx context.Context, c core.Client) (core.Client, error)
		UpdateClient(ctx context.Context, c core.Client) (core.Client, error)
		DeleteClient(ctx context.Context, id int64) error
	}

	// ContractStore persists contracts. DeleteByClient removes every
	// contract of a client and returns how many went away.
	ContractStore interface {
		ListContracts(ctx context.Context) ([]core.Contract, error)
		ListContractsByClient(ctx context.Context, clientID int64) ([]core.Contract, error)
		GetContract(ctx context.Context, id int64) (core.Contract, error)
		CreateContract(ctx context.Context, c core.Contract) (core.Contract, error)
		UpdateContract(ctx context.Context, c core.Contract) (core.Contract, error)
		DeleteContract(ctx context.Context, id int64) error
		DeleteContractsByClient(ctx context.Context, clientID int64) (int, error)
	}

	AppointmentStore interface {
		ListAppointments(ctx context.Context) ([]core.Appointment, error)
		GetAppointment(ctx context.Context, id int64) (core.Appointment, error)
		CreateAppointment(ctx context.Context, a core.Appointment) (core.Appointment, error)
		UpdateAppointment(ctx context.Context, a core.Appointment) (core.Appointment, error)
		DeleteAppointment(ctx context.Context, id int64) error
	}

	TaskStore interface {
		ListTasks(ctx context.Context) ([]core.OfficeTask, error)
		GetTask(ctx context.Context, id int64) (core.OfficeTask, error)
		CreateTask(ctx context.Context, t core.OfficeTask) (core.OfficeTask, error)
		UpdateTask(ctx context.Context, t core.OfficeTask) (core.OfficeTask, error)
		DeleteTask(ctx context.Context, id int64) error
	}

	// ReferenceListStore manages the named value lists. Add and Remove are
	// case-insensitive no-ops when the value is already present or absent,
	// and both return the resulting list.
	ReferenceListStore interface {
		ListReferenceValues(ctx context.Context, kind RefKind) ([]string, error)
		AddReferenceValue(ctx context.Context, kind RefKind, value string) ([]string, error)
		RemoveReferenceValue(ctx context.Context, kind RefKind, value string) ([]string, error)
	}

	// StateStore is a small key/value blob store for session state:
	// dismissed checkup keys, widget preferences, the credential pair.
	// Get reports ok=false when the key has never been set.
	StateStore interface {
		GetState(ctx context.Context, key string) (value []byte, ok bool, err error)
		SetState(ctx context.Context, key string, value []byte) error
	}
)

// EntityStore is the full persistence surface the application wires once.
type EntityStore interface {
	ClientStore
	ContractStore
	AppointmentStore
	TaskStore
	ReferenceListStore
	StateStore
}
