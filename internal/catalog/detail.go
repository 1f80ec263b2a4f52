package catalog

import (
	"math"

	"github.com/dvloznov/bankview/internal/domain"
	"github.com/shopspring/decimal"
)

// Detail is the joined view of a single client.
type Detail struct {
	Client   domain.Client
	Accounts []domain.Account
	Branch   *domain.Branch // nil when no branch carries the client's code
	Totals   Totals
}

// Totals aggregates the client's accounts. Cells that did not decode to a
// finite number are left out of the sums and counted in Unparsed.
type Totals struct {
	Balance         decimal.Decimal
	CreditLimit     decimal.Decimal
	AvailableCredit decimal.Decimal
	Unparsed        int
}

// Detail resolves the client with the given id together with its accounts
// and branch. Missing accounts or branch are not errors.
func (c *Catalog) Detail(id string) (Detail, bool) {
	client, ok := c.Client(id)
	if !ok {
		return Detail{}, false
	}

	d := Detail{
		Client:   client,
		Accounts: c.AccountsOf(client),
	}
	if b, ok := c.BranchOf(client); ok {
		d.Branch = &b
	}
	d.Totals = SumAccounts(d.Accounts)
	return d, true
}

// SumAccounts totals balances and credit over accounts.
func SumAccounts(accounts []domain.Account) Totals {
	t := Totals{
		Balance:         decimal.Zero,
		CreditLimit:     decimal.Zero,
		AvailableCredit: decimal.Zero,
	}
	for _, a := range accounts {
		t.Balance = t.add(t.Balance, a.Balance)
		t.CreditLimit = t.add(t.CreditLimit, a.CreditLimit)
		t.AvailableCredit = t.add(t.AvailableCredit, a.AvailableCredit)
	}
	return t
}

func (t *Totals) add(sum decimal.Decimal, v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		t.Unparsed++
		return sum
	}
	return sum.Add(decimal.NewFromFloat(v))
}

// Summary counts what a snapshot contains.
type Summary struct {
	Clients       int `json:"clients"`
	Individuals   int `json:"individuals"`
	Organizations int `json:"organizations"`
	Accounts      int `json:"accounts"`
	Branches      int `json:"branches"`
}

func (c *Catalog) Summary() Summary {
	s := Summary{
		Clients:  len(c.Clients),
		Accounts: len(c.Accounts),
		Branches: len(c.Branches),
	}
	for _, client := range c.Clients {
		switch client.DocumentType() {
		case domain.DocumentIndividual:
			s.Individuals++
		case domain.DocumentOrganization:
			s.Organizations++
		}
	}
	return s
}
