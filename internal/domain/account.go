package domain

// AccountKind is the account product as written in the spreadsheet.
type AccountKind string

const (
	AccountChecking AccountKind = "corrente"
	AccountSavings  AccountKind = "poupanca"
)

// Account is one decoded row of the accounts table. Accounts reference their
// owner by tax ID, not by client ID.
//
// Balance may be negative (overdraft). CreditLimit and AvailableCredit are
// expected to be non-negative but this is not enforced.
type Account struct {
	ID              string
	OwnerTaxID      string
	Kind            AccountKind
	Balance         float64
	CreditLimit     float64
	AvailableCredit float64
}

// RawAccount holds an accounts row before coercion.
type RawAccount struct {
	ID              string
	OwnerTaxID      string
	Kind            string
	Balance         string
	CreditLimit     string
	AvailableCredit string
}
