// Package memory is an in-process ContractWriter used in tests and when no
// spreadsheet is configured.
package memory

import (
	"context"
	"strconv"
	"sync"

	"gestionale/internal/core"
	"gestionale/internal/sheets"
)

type Row struct {
	Client   core.Client
	Contract core.Contract
}

type Writer struct {
	mu   sync.Mutex
	rows []Row

	// FailWith makes every Append return this error, for failure-path tests.
	FailWith error
}

var _ sheets.ContractWriter = (*Writer)(nil)

func New() *Writer {
	return &Writer{}
}

func (w *Writer) Append(ctx context.Context, client core.Client, contract core.Contract) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.FailWith != nil {
		return "", w.FailWith
	}
	w.rows = append(w.rows, Row{Client: client, Contract: contract})
	return strconv.Itoa(len(w.rows)), nil
}

func (w *Writer) Rows() []Row {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Row, len(w.rows))
	copy(out, w.rows)
	return out
}
