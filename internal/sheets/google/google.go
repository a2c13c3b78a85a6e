// Package google exports contract rows to the commission register
// spreadsheet through the Google Sheets API, authenticated with a service
// account or a stored user OAuth token.
package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gestionale/internal/core"
	ports "gestionale/internal/sheets"

	"golang.org/x/oauth2"
	ggoogle "golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ports.ContractWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client from the environment.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME (default "Contratti").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Contratti"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	// A user OAuth token, prepared once with cmd/oauth-init, takes
	// precedence over service-account credentials.
	if svc, ok, err := newOAuthService(ctx); ok {
		return svc, err
	}

	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// newOAuthService builds a Sheets service from a stored user token. The
// second return value reports whether the OAuth path was configured at all.
func newOAuthService(ctx context.Context) (*gsheet.Service, bool, error) {
	tokenFile := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_TOKEN_FILE"))
	clientJSON := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_JSON"))
	clientFile := strings.TrimSpace(os.Getenv("GOOGLE_OAUTH_CLIENT_FILE"))
	if tokenFile == "" || (clientJSON == "" && clientFile == "") {
		return nil, false, nil
	}

	var b []byte
	var err error
	if clientJSON != "" {
		b = []byte(clientJSON)
	} else {
		b, err = os.ReadFile(clientFile)
		if err != nil {
			return nil, true, fmt.Errorf("read oauth client file: %w", err)
		}
	}
	cfg, err := ggoogle.ConfigFromJSON(b, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, true, fmt.Errorf("oauth config: %w", err)
	}

	raw, err := os.ReadFile(tokenFile)
	if err != nil {
		return nil, true, fmt.Errorf("read oauth token file: %w", err)
	}
	tok := &oauth2.Token{}
	if err := json.Unmarshal(raw, tok); err != nil {
		return nil, true, fmt.Errorf("decode oauth token: %w", err)
	}

	service, err := gsheet.NewService(ctx, goption.WithTokenSource(cfg.TokenSource(ctx, tok)))
	if err != nil {
		return nil, true, fmt.Errorf("create sheets service: %w", err)
	}
	return service, true, nil
}

// Append writes one contract row to the register and returns the row number.
// Column layout: client, fiscal code, type, provider, code, start date,
// end date, commission in euros, paid flag.
func (c *Client) Append(ctx context.Context, client core.Client, contract core.Contract) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	commission := any("")
	if contract.HasCommission {
		commission = contract.Commission.Euros()
	}
	paid := ""
	if contract.Paid {
		paid = "x"
	}

	row := []any{
		client.FullName(),
		client.FiscalCode,
		string(contract.Type),
		contract.Provider,
		contract.Code,
		contract.StartDate.String(),
		contract.EndDate.String(),
		commission,
		paid,
	}

	rng := fmt.Sprintf("%s!A:I", c.sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{row}}
	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", c.sheetName, err)
	}

	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}
	if ref == "" {
		ref = strconv.FormatInt(contract.ID, 10)
	}
	return ref, nil
}
