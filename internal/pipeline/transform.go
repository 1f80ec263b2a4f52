package pipeline

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/bankview/internal/domain"
)

// leadingNumber is the prefix a lenient float parse accepts once every
// character other than digits, '.' and '-' has been removed.
var leadingNumber = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)

// ParseAmount coerces a locale-formatted money cell into a float.
//
// Every rune that is not a digit, '.' or '-' is deleted first, so the
// thousands separator and the currency symbol disappear but so does a comma
// decimal separator: "R$ 1.234,56" becomes "1.23456". The longest numeric
// prefix of what remains is parsed; NaN is returned when there is none.
func ParseAmount(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	prefix := leadingNumber.FindString(cleaned)
	if prefix == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// ParseCode reads a base-10 integer from the start of s, after optional
// whitespace and sign. Trailing garbage is ignored; no digits at all gives
// an invalid code.
func ParseCode(s string) domain.Code {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return domain.Code{}
	}

	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return domain.Code{}
	}
	return domain.NewCode(v)
}

// ParseDate reads a day/month/year cell. Three slash-separated parts are
// reordered into year-month-day; anything else is handed unchanged to the
// date constructor, which only understands ISO dates. Failures yield the
// zero civil.Date, which reports IsValid() == false.
func ParseDate(s string) civil.Date {
	parts := strings.Split(s, "/")
	if len(parts) == 3 {
		day, month, year := parts[0], parts[1], parts[2]
		return newDate(year + "-" + month + "-" + day)
	}
	return newDate(s)
}

// newDate builds a date from year-month-day text. Month and day need not be
// zero padded.
func newDate(s string) civil.Date {
	if d, err := civil.ParseDate(s); err == nil {
		return d
	}

	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return civil.Date{}
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return civil.Date{}
	}

	d := civil.Date{Year: year, Month: time.Month(month), Day: day}
	if !d.IsValid() {
		return civil.Date{}
	}
	return d
}

func RawClientFromRecord(r Record) domain.RawClient {
	return domain.RawClient{
		ID:            r.Get(domain.ColID),
		TaxID:         r.Get(domain.ColClientTaxID),
		SecondaryID:   r.Get(domain.ColClientSecondaryID),
		BirthDate:     r.Get(domain.ColClientBirthDate),
		Name:          r.Get(domain.ColClientName),
		DisplayName:   r.Get(domain.ColClientDisplayName),
		Email:         r.Get(domain.ColClientEmail),
		Address:       r.Get(domain.ColClientAddress),
		AnnualIncome:  r.Get(domain.ColClientIncome),
		NetWorth:      r.Get(domain.ColClientNetWorth),
		MaritalStatus: r.Get(domain.ColClientMarital),
		BranchCode:    r.Get(domain.ColClientBranchCode),
	}
}

func RawAccountFromRecord(r Record) domain.RawAccount {
	return domain.RawAccount{
		ID:              r.Get(domain.ColID),
		OwnerTaxID:      r.Get(domain.ColAccountOwnerTaxID),
		Kind:            r.Get(domain.ColAccountKind),
		Balance:         r.Get(domain.ColAccountBalance),
		CreditLimit:     r.Get(domain.ColAccountLimit),
		AvailableCredit: r.Get(domain.ColAccountAvailable),
	}
}

func RawBranchFromRecord(r Record) domain.RawBranch {
	return domain.RawBranch{
		ID:      r.Get(domain.ColID),
		Code:    r.Get(domain.ColBranchCode),
		Name:    r.Get(domain.ColBranchName),
		Address: r.Get(domain.ColBranchAddress),
	}
}

// DecodeClient coerces the numeric, date and code columns of a raw client.
func DecodeClient(raw domain.RawClient) domain.Client {
	return domain.Client{
		ID:            raw.ID,
		TaxID:         raw.TaxID,
		SecondaryID:   raw.SecondaryID,
		BirthDate:     ParseDate(raw.BirthDate),
		Name:          raw.Name,
		DisplayName:   raw.DisplayName,
		Email:         raw.Email,
		Address:       raw.Address,
		AnnualIncome:  ParseAmount(raw.AnnualIncome),
		NetWorth:      ParseAmount(raw.NetWorth),
		MaritalStatus: domain.MaritalStatus(raw.MaritalStatus),
		BranchCode:    ParseCode(raw.BranchCode),
	}
}

func DecodeAccount(raw domain.RawAccount) domain.Account {
	return domain.Account{
		ID:              raw.ID,
		OwnerTaxID:      raw.OwnerTaxID,
		Kind:            domain.AccountKind(raw.Kind),
		Balance:         ParseAmount(raw.Balance),
		CreditLimit:     ParseAmount(raw.CreditLimit),
		AvailableCredit: ParseAmount(raw.AvailableCredit),
	}
}

func DecodeBranch(raw domain.RawBranch) domain.Branch {
	return domain.Branch{
		ID:      raw.ID,
		Code:    ParseCode(raw.Code),
		Name:    raw.Name,
		Address: raw.Address,
	}
}

// DecodeClients maps raw rows to clients, same length and order.
func DecodeClients(raws []domain.RawClient) []domain.Client {
	out := make([]domain.Client, len(raws))
	for i, raw := range raws {
		out[i] = DecodeClient(raw)
	}
	return out
}

func DecodeAccounts(raws []domain.RawAccount) []domain.Account {
	out := make([]domain.Account, len(raws))
	for i, raw := range raws {
		out[i] = DecodeAccount(raw)
	}
	return out
}

func DecodeBranches(raws []domain.RawBranch) []domain.Branch {
	out := make([]domain.Branch, len(raws))
	for i, raw := range raws {
		out[i] = DecodeBranch(raw)
	}
	return out
}

// DecodeError reports the first cell that failed strict decoding.
type DecodeError struct {
	Table  string
	Row    int // 1-based data row, header excluded
	Column string
	Value  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s row %d: column %q: cannot decode %q", e.Table, e.Row, e.Column, e.Value)
}

// DecodeClientsStrict decodes like DecodeClients but fails on the first
// amount, date or branch code that did not parse.
func DecodeClientsStrict(raws []domain.RawClient) ([]domain.Client, error) {
	out := DecodeClients(raws)
	for i, c := range out {
		raw := raws[i]
		switch {
		case !c.BirthDate.IsValid():
			return nil, &DecodeError{"clients", i + 1, domain.ColClientBirthDate, raw.BirthDate}
		case math.IsNaN(c.AnnualIncome):
			return nil, &DecodeError{"clients", i + 1, domain.ColClientIncome, raw.AnnualIncome}
		case math.IsNaN(c.NetWorth):
			return nil, &DecodeError{"clients", i + 1, domain.ColClientNetWorth, raw.NetWorth}
		case !c.BranchCode.Valid:
			return nil, &DecodeError{"clients", i + 1, domain.ColClientBranchCode, raw.BranchCode}
		}
	}
	return out, nil
}

func DecodeAccountsStrict(raws []domain.RawAccount) ([]domain.Account, error) {
	out := DecodeAccounts(raws)
	for i, a := range out {
		raw := raws[i]
		switch {
		case math.IsNaN(a.Balance):
			return nil, &DecodeError{"accounts", i + 1, domain.ColAccountBalance, raw.Balance}
		case math.IsNaN(a.CreditLimit):
			return nil, &DecodeError{"accounts", i + 1, domain.ColAccountLimit, raw.CreditLimit}
		case math.IsNaN(a.AvailableCredit):
			return nil, &DecodeError{"accounts", i + 1, domain.ColAccountAvailable, raw.AvailableCredit}
		}
	}
	return out, nil
}

func DecodeBranchesStrict(raws []domain.RawBranch) ([]domain.Branch, error) {
	out := DecodeBranches(raws)
	for i, b := range out {
		if !b.Code.Valid {
			return nil, &DecodeError{"branches", i + 1, domain.ColBranchCode, raws[i].Code}
		}
	}
	return out, nil
}
