// Package storage is the SQLite persistence backend. Schema changes go
// through embedded migrations; queries are plain database/sql.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gestionale/internal/core"
	"gestionale/internal/store"

	_ "modernc.org/sqlite"
)

// Sync states for the contract export worker.
const (
	SyncPending = "pending"
	SyncDone    = "synced"
	SyncError   = "error"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ store.EntityStore = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{db: db}

	// A client delete interrupted between the two phases can leave contracts
	// behind; sweep them on startup so they never accumulate.
	if n, err := repo.sweepOrphanContracts(context.Background()); err != nil {
		slog.Warn("orphan contract sweep failed", "error", err)
	} else if n > 0 {
		slog.Info("removed orphan contracts", "count", n)
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) sweepOrphanContracts(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM contracts WHERE client_id NOT IN (SELECT id FROM clients)`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Clients

const clientColumns = `id, first_name, last_name, email, phone, fiscal_code,
	legal_address, residential_address, notes, created_at`

func (r *SQLiteRepository) scanClient(row interface{ Scan(...any) error }) (core.Client, error) {
	var c core.Client
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.FiscalCode, &c.LegalAddress, &c.ResidentialAddress, &c.Notes, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Client{}, store.ErrNotFound
	}
	if err != nil {
		return core.Client{}, fmt.Errorf("scan client: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) loadIBANs(ctx context.Context, clientID int64) ([]core.IBAN, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT value, kind FROM client_ibans WHERE client_id = ? ORDER BY position`, clientID)
	if err != nil {
		return nil, fmt.Errorf("load ibans: %w", err)
	}
	defer rows.Close()

	var out []core.IBAN
	for rows.Next() {
		var i core.IBAN
		if err := rows.Scan(&i.Value, &i.Kind); err != nil {
			return nil, fmt.Errorf("scan iban: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) saveIBANs(ctx context.Context, tx *sql.Tx, clientID int64, ibans []core.IBAN) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM client_ibans WHERE client_id = ?`, clientID); err != nil {
		return fmt.Errorf("clear ibans: %w", err)
	}
	for pos, i := range ibans {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO client_ibans (client_id, value, kind, position) VALUES (?, ?, ?, ?)`,
			clientID, i.Value, i.Kind, pos)
		if err != nil {
			return fmt.Errorf("insert iban: %w", err)
		}
	}
	return nil
}

func (r *SQLiteRepository) ListClients(ctx context.Context) ([]core.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var out []core.Client
	for rows.Next() {
		c, err := r.scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		ibans, err := r.loadIBANs(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].IBANs = ibans
	}
	return out, nil
}

func (r *SQLiteRepository) GetClient(ctx context.Context, id int64) (core.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	c, err := r.scanClient(row)
	if err != nil {
		return core.Client{}, err
	}
	c.IBANs, err = r.loadIBANs(ctx, c.ID)
	if err != nil {
		return core.Client{}, err
	}
	return c, nil
}

func (r *SQLiteRepository) CreateClient(ctx context.Context, c core.Client) (core.Client, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Client{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	c.CreatedAt = time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`INSERT INTO clients (first_name, last_name, email, phone, fiscal_code,
			legal_address, residential_address, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.FiscalCode,
		c.LegalAddress, c.ResidentialAddress, c.Notes, c.CreatedAt)
	if err != nil {
		return core.Client{}, fmt.Errorf("insert client: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return core.Client{}, fmt.Errorf("last insert id: %w", err)
	}
	if err := r.saveIBANs(ctx, tx, c.ID, c.IBANs); err != nil {
		return core.Client{}, err
	}
	if err := tx.Commit(); err != nil {
		return core.Client{}, fmt.Errorf("commit: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) UpdateClient(ctx context.Context, c core.Client) (core.Client, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Client{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE clients SET first_name = ?, last_name = ?, email = ?, phone = ?,
			fiscal_code = ?, legal_address = ?, residential_address = ?, notes = ?
		 WHERE id = ?`,
		c.FirstName, c.LastName, c.Email, c.Phone, c.FiscalCode,
		c.LegalAddress, c.ResidentialAddress, c.Notes, c.ID)
	if err != nil {
		return core.Client{}, fmt.Errorf("update client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Client{}, err
	}
	if n == 0 {
		return core.Client{}, store.ErrNotFound
	}
	if err := r.saveIBANs(ctx, tx, c.ID, c.IBANs); err != nil {
		return core.Client{}, err
	}
	if err := tx.Commit(); err != nil {
		return core.Client{}, fmt.Errorf("commit: %w", err)
	}
	return r.GetClient(ctx, c.ID)
}

func (r *SQLiteRepository) DeleteClient(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Contracts

const contractColumns = `id, client_id, type, provider, code, start_date, end_date,
	commission_cents, paid, pod, power_kw, voltage, pdr, meter_serial, fiber_type,
	supply_address, operation_type, customer_type, created_at`

func scanContract(row interface{ Scan(...any) error }) (core.Contract, error) {
	var (
		c          core.Contract
		start, end string
		commission sql.NullInt64
	)
	err := row.Scan(&c.ID, &c.ClientID, &c.Type, &c.Provider, &c.Code, &start, &end,
		&commission, &c.Paid, &c.POD, &c.PowerKW, &c.Voltage, &c.PDR, &c.MeterSerial,
		&c.FiberType, &c.SupplyAddress, &c.OperationType, &c.CustomerType, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Contract{}, store.ErrNotFound
	}
	if err != nil {
		return core.Contract{}, fmt.Errorf("scan contract: %w", err)
	}
	if c.StartDate, err = core.ParseDate(start); err != nil {
		return core.Contract{}, err
	}
	if c.EndDate, err = core.ParseDate(end); err != nil {
		return core.Contract{}, err
	}
	if commission.Valid {
		c.HasCommission = true
		c.Commission = core.Money{Cents: commission.Int64}
	}
	return c, nil
}

func commissionValue(c core.Contract) any {
	if !c.HasCommission {
		return nil
	}
	return c.Commission.Cents
}

func (r *SQLiteRepository) ListContracts(ctx context.Context) ([]core.Contract, error) {
	return r.queryContracts(ctx, `SELECT `+contractColumns+` FROM contracts ORDER BY id`)
}

func (r *SQLiteRepository) ListContractsByClient(ctx context.Context, clientID int64) ([]core.Contract, error) {
	return r.queryContracts(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE client_id = ? ORDER BY id`, clientID)
}

func (r *SQLiteRepository) queryContracts(ctx context.Context, query string, args ...any) ([]core.Contract, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	defer rows.Close()

	var out []core.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetContract(ctx context.Context, id int64) (core.Contract, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+contractColumns+` FROM contracts WHERE id = ?`, id)
	return scanContract(row)
}

func (r *SQLiteRepository) CreateContract(ctx context.Context, c core.Contract) (core.Contract, error) {
	c.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contracts (client_id, type, provider, code, start_date, end_date,
			commission_cents, paid, pod, power_kw, voltage, pdr, meter_serial,
			fiber_type, supply_address, operation_type, customer_type,
			sync_status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ClientID, c.Type, c.Provider, c.Code, c.StartDate.String(), c.EndDate.String(),
		commissionValue(c), c.Paid, c.POD, c.PowerKW, c.Voltage, c.PDR, c.MeterSerial,
		c.FiberType, c.SupplyAddress, c.OperationType, c.CustomerType,
		SyncPending, c.CreatedAt)
	if err != nil {
		return core.Contract{}, fmt.Errorf("insert contract: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return core.Contract{}, fmt.Errorf("last insert id: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) UpdateContract(ctx context.Context, c core.Contract) (core.Contract, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contracts SET client_id = ?, type = ?, provider = ?, code = ?,
			start_date = ?, end_date = ?, commission_cents = ?, paid = ?, pod = ?,
			power_kw = ?, voltage = ?, pdr = ?, meter_serial = ?, fiber_type = ?,
			supply_address = ?, operation_type = ?, customer_type = ?,
			sync_status = ?, sync_attempts = 0
		 WHERE id = ?`,
		c.ClientID, c.Type, c.Provider, c.Code,
		c.StartDate.String(), c.EndDate.String(), commissionValue(c), c.Paid, c.POD,
		c.PowerKW, c.Voltage, c.PDR, c.MeterSerial, c.FiberType,
		c.SupplyAddress, c.OperationType, c.CustomerType,
		SyncPending, c.ID)
	if err != nil {
		return core.Contract{}, fmt.Errorf("update contract: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Contract{}, err
	}
	if n == 0 {
		return core.Contract{}, store.ErrNotFound
	}
	return r.GetContract(ctx, c.ID)
}

func (r *SQLiteRepository) DeleteContract(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete contract: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteContractsByClient(ctx context.Context, clientID int64) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE client_id = ?`, clientID)
	if err != nil {
		return 0, fmt.Errorf("delete contracts by client: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Sync bookkeeping for the sheets export worker.

// GetPendingSyncContracts returns contracts not yet exported, oldest first.
func (r *SQLiteRepository) GetPendingSyncContracts(ctx context.Context, limit int) ([]core.Contract, error) {
	return r.queryContracts(ctx,
		`SELECT `+contractColumns+` FROM contracts
		 WHERE sync_status = ? ORDER BY id LIMIT ?`, SyncPending, limit)
}

func (r *SQLiteRepository) MarkContractSynced(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE contracts SET sync_status = ? WHERE id = ?`, SyncDone, id)
	if err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	return nil
}

// MarkContractSyncError bumps the attempt counter and flags the row after
// maxAttempts so a poisoned contract stops blocking the queue.
func (r *SQLiteRepository) MarkContractSyncError(ctx context.Context, id int64, maxAttempts int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE contracts SET sync_attempts = sync_attempts + 1,
			sync_status = CASE WHEN sync_attempts + 1 >= ? THEN ? ELSE sync_status END
		 WHERE id = ?`, maxAttempts, SyncError, id)
	if err != nil {
		return fmt.Errorf("mark sync error: %w", err)
	}
	return nil
}

// Appointments

const appointmentColumns = `id, name, provider, date, time, location, notes, status, created_at`

func scanAppointment(row interface{ Scan(...any) error }) (core.Appointment, error) {
	var (
		a    core.Appointment
		date string
	)
	err := row.Scan(&a.ID, &a.Name, &a.Provider, &date, &a.Time, &a.Location,
		&a.Notes, &a.Status, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Appointment{}, store.ErrNotFound
	}
	if err != nil {
		return core.Appointment{}, fmt.Errorf("scan appointment: %w", err)
	}
	if a.Date, err = core.ParseDate(date); err != nil {
		return core.Appointment{}, err
	}
	return a, nil
}

func (r *SQLiteRepository) ListAppointments(ctx context.Context) ([]core.Appointment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var out []core.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetAppointment(ctx context.Context, id int64) (core.Appointment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = ?`, id)
	return scanAppointment(row)
}

func (r *SQLiteRepository) CreateAppointment(ctx context.Context, a core.Appointment) (core.Appointment, error) {
	a.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO appointments (name, provider, date, time, location, notes, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Name, a.Provider, a.Date.String(), a.Time, a.Location, a.Notes, a.Status, a.CreatedAt)
	if err != nil {
		return core.Appointment{}, fmt.Errorf("insert appointment: %w", err)
	}
	a.ID, err = res.LastInsertId()
	if err != nil {
		return core.Appointment{}, fmt.Errorf("last insert id: %w", err)
	}
	return a, nil
}

func (r *SQLiteRepository) UpdateAppointment(ctx context.Context, a core.Appointment) (core.Appointment, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET name = ?, provider = ?, date = ?, time = ?,
			location = ?, notes = ?, status = ? WHERE id = ?`,
		a.Name, a.Provider, a.Date.String(), a.Time, a.Location, a.Notes, a.Status, a.ID)
	if err != nil {
		return core.Appointment{}, fmt.Errorf("update appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Appointment{}, err
	}
	if n == 0 {
		return core.Appointment{}, store.ErrNotFound
	}
	return r.GetAppointment(ctx, a.ID)
}

func (r *SQLiteRepository) DeleteAppointment(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Office tasks

func scanTask(row interface{ Scan(...any) error }) (core.OfficeTask, error) {
	var t core.OfficeTask
	err := row.Scan(&t.ID, &t.Title, &t.Done, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.OfficeTask{}, store.ErrNotFound
	}
	if err != nil {
		return core.OfficeTask{}, fmt.Errorf("scan task: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) ListTasks(ctx context.Context) ([]core.OfficeTask, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, done, created_at FROM office_tasks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []core.OfficeTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) GetTask(ctx context.Context, id int64) (core.OfficeTask, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, done, created_at FROM office_tasks WHERE id = ?`, id)
	return scanTask(row)
}

func (r *SQLiteRepository) CreateTask(ctx context.Context, t core.OfficeTask) (core.OfficeTask, error) {
	t.CreatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO office_tasks (title, done, created_at) VALUES (?, ?, ?)`,
		t.Title, t.Done, t.CreatedAt)
	if err != nil {
		return core.OfficeTask{}, fmt.Errorf("insert task: %w", err)
	}
	t.ID, err = res.LastInsertId()
	if err != nil {
		return core.OfficeTask{}, fmt.Errorf("last insert id: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) UpdateTask(ctx context.Context, t core.OfficeTask) (core.OfficeTask, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE office_tasks SET title = ?, done = ? WHERE id = ?`,
		t.Title, t.Done, t.ID)
	if err != nil {
		return core.OfficeTask{}, fmt.Errorf("update task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.OfficeTask{}, err
	}
	if n == 0 {
		return core.OfficeTask{}, store.ErrNotFound
	}
	return r.GetTask(ctx, t.ID)
}

func (r *SQLiteRepository) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM office_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Reference lists

func (r *SQLiteRepository) ListReferenceValues(ctx context.Context, kind store.RefKind) ([]string, error) {
	if !kind.IsValid() {
		return nil, store.ErrUnknownRefKind
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT value FROM reference_values WHERE kind = ? ORDER BY position, value`, kind)
	if err != nil {
		return nil, fmt.Errorf("list reference values: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan reference value: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) AddReferenceValue(ctx context.Context, kind store.RefKind, value string) ([]string, error) {
	if !kind.IsValid() {
		return nil, store.ErrUnknownRefKind
	}
	list, err := r.ListReferenceValues(ctx, kind)
	if err != nil {
		return nil, err
	}
	next := core.NewReferenceList(list...).Add(value)
	if len(next) > len(list) {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO reference_values (kind, value, position)
			 VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM reference_values WHERE kind = ?))`,
			kind, next[len(next)-1], kind)
		if err != nil {
			return nil, fmt.Errorf("add reference value: %w", err)
		}
	}
	return next, nil
}

func (r *SQLiteRepository) RemoveReferenceValue(ctx context.Context, kind store.RefKind, value string) ([]string, error) {
	if !kind.IsValid() {
		return nil, store.ErrUnknownRefKind
	}
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reference_values WHERE kind = ? AND LOWER(value) = LOWER(TRIM(?))`,
		kind, value)
	if err != nil {
		return nil, fmt.Errorf("remove reference value: %w", err)
	}
	return r.ListReferenceValues(ctx, kind)
}

// State

func (r *SQLiteRepository) GetState(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get state %s: %w", key, err)
	}
	return v, true, nil
}

func (r *SQLiteRepository) SetState(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set state %s: %w", key, err)
	}
	return nil
}
