package sheets

import (
	"context"

	"gestionale/internal/core"
)

// Ports for outbound adapters.
type (
	// ContractWriter appends one contract row to the commission register.
	ContractWriter interface {
		Append(ctx context.Context, client core.Client, contract core.Contract) (rowRef string, err error)
	}
)
