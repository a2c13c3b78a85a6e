package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"gestionale/internal/core"
	"gestionale/internal/store"
)

// State keys in the app_state table.
const (
	stateKeyCredentials = "credentials"
	stateKeyWidgets     = "widget_prefs"
	stateKeyDismissed   = "dismissed_checkups"
)

// Credentials is the single global login pair used for the gate check.
// This is an access gate for one shared office account, not real auth.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// WidgetPrefs controls which dashboard widgets render.
type WidgetPrefs struct {
	Checkups     bool `json:"checkups"`
	Expiring     bool `json:"expiring"`
	Commissions  bool `json:"commissions"`
	Appointments bool `json:"appointments"`
	Tasks        bool `json:"tasks"`
}

// DefaultWidgetPrefs has every widget visible.
func DefaultWidgetPrefs() WidgetPrefs {
	return WidgetPrefs{Checkups: true, Expiring: true, Commissions: true, Appointments: true, Tasks: true}
}

// SessionService reads and writes the small pieces of session state that
// outlive a request: credentials, widget preferences, dismissed checkups.
// A malformed stored blob degrades to the default instead of failing.
type SessionService struct {
	state store.StateStore
}

func NewSessionService(state store.StateStore) *SessionService {
	return &SessionService{state: state}
}

func (s *SessionService) Credentials(ctx context.Context) (Credentials, error) {
	return loadState(ctx, s.state, stateKeyCredentials, Credentials{})
}

func (s *SessionService) SetCredentials(ctx context.Context, creds Credentials) error {
	return s.save(ctx, stateKeyCredentials, creds)
}

// CheckGate compares the given pair against the stored one. While no pair
// has ever been set, the gate is open.
func (s *SessionService) CheckGate(ctx context.Context, username, password string) (bool, error) {
	creds, err := s.Credentials(ctx)
	if err != nil {
		return false, err
	}
	if creds.Username == "" && creds.Password == "" {
		return true, nil
	}
	return creds.Username == username && creds.Password == password, nil
}

func (s *SessionService) WidgetPrefs(ctx context.Context) (WidgetPrefs, error) {
	return loadState(ctx, s.state, stateKeyWidgets, DefaultWidgetPrefs())
}

func (s *SessionService) SetWidgetPrefs(ctx context.Context, prefs WidgetPrefs) error {
	return s.save(ctx, stateKeyWidgets, prefs)
}

// DismissedCheckups returns the persistent dismissal set.
func (s *SessionService) DismissedCheckups(ctx context.Context) (map[string]struct{}, error) {
	keys, err := loadState(ctx, s.state, stateKeyDismissed, []string(nil))
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set, nil
}

// DismissCheckup marks one (contract, milestone) pair as handled. Repeats
// are no-ops.
func (s *SessionService) DismissCheckup(ctx context.Context, contractID int64, t core.CheckupType) error {
	set, err := s.DismissedCheckups(ctx)
	if err != nil {
		return err
	}
	key := core.DismissalKey(contractID, t)
	if _, ok := set[key]; ok {
		return nil
	}
	set[key] = struct{}{}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return s.save(ctx, stateKeyDismissed, keys)
}

// ClearDismissals empties the set, bringing every pending checkup back.
func (s *SessionService) ClearDismissals(ctx context.Context) error {
	return s.save(ctx, stateKeyDismissed, []string{})
}

// loadState decodes the blob stored at key into a copy of def. A missing key
// yields def; so does a malformed blob, even one json.Unmarshal partially
// decoded before failing. Callers always get either the stored value or the
// pristine default, never a half-overwritten mix.
func loadState[T any](ctx context.Context, state store.StateStore, key string, def T) (T, error) {
	raw, ok, err := state.GetState(ctx, key)
	if err != nil {
		return def, fmt.Errorf("load state %s: %w", key, err)
	}
	if !ok {
		return def, nil
	}
	out := def
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.WarnContext(ctx, "Malformed state blob, using defaults", "key", key, "error", err)
		return def, nil
	}
	return out, nil
}

func (s *SessionService) save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal state %s: %w", key, err)
	}
	if err := s.state.SetState(ctx, key, raw); err != nil {
		return fmt.Errorf("save state %s: %w", key, err)
	}
	return nil
}
