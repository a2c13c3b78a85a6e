// Package memory is the in-process EntityStore. It backs the tests and the
// zero-configuration mode; everything lives behind one mutex and survives
// only as long as the process.
package memory

import (
	"context"
	"sync"

	"gestionale/internal/core"
	"gestionale/internal/store"
)

// Store implements store.EntityStore with mutex-guarded slices. Insertion
// order is preserved on every list. Values are copied on the way in and out
// so callers can never alias internal state.
type Store struct {
	mu sync.Mutex

	nextID       int64
	clients      []core.Client
	contracts    []core.Contract
	appointments []core.Appointment
	tasks        []core.OfficeTask
	refs         map[store.RefKind]*core.ReferenceList
	state        map[string][]byte

	now func() core.Date
}

var _ store.EntityStore = (*Store)(nil)

func New() *Store {
	return &Store{
		nextID: 1,
		refs: map[store.RefKind]*core.ReferenceList{
			store.RefProviders:           core.NewReferenceList(),
			store.RefOperationTypes:      core.NewReferenceList(),
			store.RefAppointmentStatuses: core.NewReferenceList(),
		},
		state: map[string][]byte{},
		now:   core.Today,
	}
}

func (s *Store) allocate() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func copyClient(c core.Client) core.Client {
	out := c
	if c.IBANs != nil {
		out.IBANs = make([]core.IBAN, len(c.IBANs))
		copy(out.IBANs, c.IBANs)
	}
	return out
}

// Clients

func (s *Store) ListClients(ctx context.Context) ([]core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Client, len(s.clients))
	for i, c := range s.clients {
		out[i] = copyClient(c)
	}
	return out, nil
}

func (s *Store) GetClient(ctx context.Context, id int64) (core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.ID == id {
			return copyClient(c), nil
		}
	}
	return core.Client{}, store.ErrNotFound
}

func (s *Store) CreateClient(ctx context.Context, c core.Client) (core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.allocate()
	c.CreatedAt = s.now().Time
	s.clients = append(s.clients, copyClient(c))
	return c, nil
}

func (s *Store) UpdateClient(ctx context.Context, c core.Client) (core.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.clients {
		if existing.ID == c.ID {
			c.CreatedAt = existing.CreatedAt
			s.clients[i] = copyClient(c)
			return c, nil
		}
	}
	return core.Client{}, store.ErrNotFound
}

func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.clients {
		if c.ID == id {
			s.clients = append(s.clients[:i], s.clients[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// Contracts

func (s *Store) ListContracts(ctx context.Context) ([]core.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Contract, len(s.contracts))
	copy(out, s.contracts)
	return out, nil
}

func (s *Store) ListContractsByClient(ctx context.Context, clientID int64) ([]core.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Contract
	for _, c := range s.contracts {
		if c.ClientID == clientID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) GetContract(ctx context.Context, id int64) (core.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.contracts {
		if c.ID == id {
			return c, nil
		}
	}
	return core.Contract{}, store.ErrNotFound
}

func (s *Store) CreateContract(ctx context.Context, c core.Contract) (core.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.allocate()
	c.CreatedAt = s.now().Time
	s.contracts = append(s.contracts, c)
	return c, nil
}

func (s *Store) UpdateContract(ctx context.Context, c core.Contract) (core.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.contracts {
		if existing.ID == c.ID {
			c.CreatedAt = existing.CreatedAt
			s.contracts[i] = c
			return c, nil
		}
	}
	return core.Contract{}, store.ErrNotFound
}

func (s *Store) DeleteContract(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.contracts {
		if c.ID == id {
			s.contracts = append(s.contracts[:i], s.contracts[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteContractsByClient(ctx context.Context, clientID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.contracts[:0]
	removed := 0
	for _, c := range s.contracts {
		if c.ClientID == clientID {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	s.contracts = kept
	return removed, nil
}

// Appointments

func (s *Store) ListAppointments(ctx context.Context) ([]core.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out, nil
}

func (s *Store) GetAppointment(ctx context.Context, id int64) (core.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return core.Appointment{}, store.ErrNotFound
}

func (s *Store) CreateAppointment(ctx context.Context, a core.Appointment) (core.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.allocate()
	a.CreatedAt = s.now().Time
	s.appointments = append(s.appointments, a)
	return a, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, a core.Appointment) (core.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.appointments {
		if existing.ID == a.ID {
			a.CreatedAt = existing.CreatedAt
			s.appointments[i] = a
			return a, nil
		}
	}
	return core.Appointment{}, store.ErrNotFound
}

func (s *Store) DeleteAppointment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.appointments {
		if a.ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// Tasks

func (s *Store) ListTasks(ctx context.Context) ([]core.OfficeTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.OfficeTask, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

func (s *Store) GetTask(ctx context.Context, id int64) (core.OfficeTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return core.OfficeTask{}, store.ErrNotFound
}

func (s *Store) CreateTask(ctx context.Context, t core.OfficeTask) (core.OfficeTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.allocate()
	t.CreatedAt = s.now().Time
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, t core.OfficeTask) (core.OfficeTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.tasks {
		if existing.ID == t.ID {
			t.CreatedAt = existing.CreatedAt
			s.tasks[i] = t
			return t, nil
		}
	}
	return core.OfficeTask{}, store.ErrNotFound
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// Reference lists

func (s *Store) ListReferenceValues(ctx context.Context, kind store.RefKind) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.refs[kind]
	if !ok {
		return nil, store.ErrUnknownRefKind
	}
	return l.Values(), nil
}

func (s *Store) AddReferenceValue(ctx context.Context, kind store.RefKind, value string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.refs[kind]
	if !ok {
		return nil, store.ErrUnknownRefKind
	}
	return l.Add(value), nil
}

func (s *Store) RemoveReferenceValue(ctx context.Context, kind store.RefKind, value string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.refs[kind]
	if !ok {
		return nil, store.ErrUnknownRefKind
	}
	return l.Remove(value), nil
}

// State

func (s *Store) GetState(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.state[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *Store) SetState(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.state[key] = v
	return nil
}
