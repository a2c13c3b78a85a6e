package core

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ContractType tags the supply category of a contract.
type ContractType string

const (
	Electricity ContractType = "electricity"
	Gas         ContractType = "gas"
	Telephony   ContractType = "telephony"
)

// IsValid reports whether the contract type is one of the known categories.
func (t ContractType) IsValid() bool {
	switch t {
	case Electricity, Gas, Telephony:
		return true
	default:
		return false
	}
}

// IBANKind tags an IBAN as personal or business.
type IBANKind string

const (
	IBANPersonal IBANKind = "personal"
	IBANBusiness IBANKind = "business"
)

// IBAN is a bank account entry attached to a client.
type IBAN struct {
	Value string   `json:"value"`
	Kind  IBANKind `json:"kind"`
}

// Client is a customer of the agency. CreatedAt is assigned once by the
// entity store and never modified afterwards.
type Client struct {
	ID                 int64     `json:"id"`
	FirstName          string    `json:"firstName"`
	LastName           string    `json:"lastName"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	FiscalCode         string    `json:"fiscalCode"`
	IBANs              []IBAN    `json:"ibans"`
	LegalAddress       string    `json:"legalAddress"`
	ResidentialAddress string    `json:"residentialAddress"`
	Notes              string    `json:"notes"`
	CreatedAt          time.Time `json:"createdAt"`
}

// FullName joins the name fields for display and search.
func (c Client) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
}

// Contract is a utility or telephony contract owned by exactly one client.
// StartDate drives every temporal computation; the zero Date means the date
// is unknown and the contract is skipped by checkups and year/month filters.
// EndDate, when set, is the hard expiry. Commission is absent ("unknown")
// when HasCommission is false.
type Contract struct {
	ID            int64        `json:"id"`
	ClientID      int64        `json:"clientId"`
	Type          ContractType `json:"type"`
	Provider      string       `json:"provider"`
	Code          string       `json:"code"`
	StartDate     Date         `json:"startDate"`
	EndDate       Date         `json:"endDate"`
	Commission    Money        `json:"commission"`
	HasCommission bool         `json:"hasCommission"`
	Paid          bool         `json:"paid"`

	// Electricity
	POD     string `json:"pod,omitempty"`
	PowerKW string `json:"powerKw,omitempty"`
	Voltage string `json:"voltage,omitempty"`
	// Gas
	PDR         string `json:"pdr,omitempty"`
	MeterSerial string `json:"meterSerial,omitempty"`
	// Telephony
	FiberType string `json:"fiberType,omitempty"`

	SupplyAddress string `json:"supplyAddress"`
	OperationType string `json:"operationType"` // free text, e.g. "Switch", "Voltura"
	CustomerType  string `json:"customerType"`  // residential, business or empty
	CreatedAt     time.Time `json:"createdAt"`
}

// Appointment is a scheduled meeting with a client or prospect. Status is a
// free string validated against the appointment-status reference list only
// at entry time; legacy values remain valid.
type Appointment struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Provider  string    `json:"provider"`
	Date      Date      `json:"date"`
	Time      string    `json:"time,omitempty"`
	Location  string    `json:"location,omitempty"`
	Notes     string    `json:"notes"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// OfficeTask is a standalone to-do item for the office.
type OfficeTask struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"createdAt"`
}

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyName         = errors.New("empty name")
	ErrEmptyTitle        = errors.New("empty title")
	ErrInvalidFiscalCode = errors.New("invalid fiscal code")
	ErrInvalidIBAN       = errors.New("invalid IBAN")
	ErrInvalidType       = errors.New("invalid contract type")
	ErrMissingClient     = errors.New("contract must reference a client")
)

// fiscalCodeRe matches the 16-character personal codice fiscale layout.
// Companies use an 11-digit numeric code instead; both are accepted.
var fiscalCodeRe = regexp.MustCompile(`^[A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z]$`)

var numericCodeRe = regexp.MustCompile(`^[0-9]{11}$`)

// ValidateFiscalCode checks the Italian fiscal-code shape. Empty input is
// accepted; validation is only applied to values the user actually entered.
func ValidateFiscalCode(code string) error {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if fiscalCodeRe.MatchString(code) || numericCodeRe.MatchString(code) {
		return nil
	}
	return ErrInvalidFiscalCode
}

// ValidateIBAN checks length, character set and the mod-97 checksum
// (ISO 13616). Empty input is accepted.
func ValidateIBAN(iban string) error {
	s := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(iban), " ", ""))
	if s == "" {
		return nil
	}
	if len(s) < 15 || len(s) > 34 {
		return ErrInvalidIBAN
	}
	if s[0] < 'A' || s[0] > 'Z' || s[1] < 'A' || s[1] > 'Z' {
		return ErrInvalidIBAN
	}
	// Move the country code and check digits to the end, then compute the
	// remainder of the resulting number modulo 97 digit by digit.
	rearranged := s[4:] + s[:4]
	rem := 0
	for _, r := range rearranged {
		switch {
		case r >= '0' && r <= '9':
			rem = (rem*10 + int(r-'0')) % 97
		case r >= 'A' && r <= 'Z':
			n := int(r-'A') + 10
			rem = (rem*100 + n) % 97
		default:
			return ErrInvalidIBAN
		}
	}
	if rem != 1 {
		return ErrInvalidIBAN
	}
	return nil
}

// Validate checks the fields the user can get wrong before any store call.
func (c Client) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" && strings.TrimSpace(c.LastName) == "" {
		return ErrEmptyName
	}
	if err := ValidateFiscalCode(c.FiscalCode); err != nil {
		return err
	}
	for _, iban := range c.IBANs {
		if err := ValidateIBAN(iban.Value); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks structural contract fields. Referential integrity of
// ClientID is the contract service's job, since it needs the store.
func (c Contract) Validate() error {
	if !c.Type.IsValid() {
		return ErrInvalidType
	}
	if c.ClientID <= 0 {
		return ErrMissingClient
	}
	if c.HasCommission && c.Commission.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate requires at least a name; every other field is optional.
func (a Appointment) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Validate requires a title.
func (t OfficeTask) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}
