// Request parsing helpers: path ids, commission filters, expiry windows,
// JSON bodies. Consolidated here so handlers stay short.
package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gestionale/internal/core"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// pathID extracts the {id} wildcard as an int64.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

// decodeBody unmarshals a size-capped JSON body into v.
func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return fmt.Errorf("empty body")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// parseCommissionFilter reads year/month/provider query parameters. Absent
// or zero values mean "all"; garbage is treated as absent rather than
// failing the dashboard.
func parseCommissionFilter(query url.Values) core.CommissionFilter {
	var f core.CommissionFilter
	if v := strings.TrimSpace(query.Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil && y > 0 {
			f.Year = y
		}
	}
	if v := strings.TrimSpace(query.Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			f.Month = m
		}
	}
	f.Provider = strings.TrimSpace(query.Get("provider"))
	return f
}

// parseWindowDays reads the expiry window, defaulting and clamping to the
// two supported widths.
func parseWindowDays(query url.Values) int {
	v := strings.TrimSpace(query.Get("window"))
	if v == "" {
		return core.DefaultExpiryWindowDays
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return core.DefaultExpiryWindowDays
	}
	if n <= core.ShortExpiryWindowDays {
		return core.ShortExpiryWindowDays
	}
	return core.DefaultExpiryWindowDays
}
