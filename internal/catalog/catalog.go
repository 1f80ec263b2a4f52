// Package catalog holds one loaded snapshot of the three tables and the
// lookups that join them.
package catalog

import (
	"time"

	"github.com/dvloznov/bankview/internal/domain"
)

// Catalog is an immutable snapshot of clients, accounts and branches. It is
// built once per load cycle and never modified afterwards.
type Catalog struct {
	Clients  []domain.Client
	Accounts []domain.Account
	Branches []domain.Branch

	CycleID  string
	LoadedAt time.Time
}

// New wraps the three decoded collections.
func New(clients []domain.Client, accounts []domain.Account, branches []domain.Branch) *Catalog {
	return &Catalog{
		Clients:  clients,
		Accounts: accounts,
		Branches: branches,
		LoadedAt: time.Now(),
	}
}

// FindBranchByCode returns the first branch whose code equals code. An
// invalid code never matches.
func FindBranchByCode(code domain.Code, branches []domain.Branch) (domain.Branch, bool) {
	for _, b := range branches {
		if b.Code.Equal(code) {
			return b, true
		}
	}
	return domain.Branch{}, false
}

// FindAccountsByTaxID returns every account owned by taxID in source order.
// The result is never nil.
func FindAccountsByTaxID(taxID string, accounts []domain.Account) []domain.Account {
	result := []domain.Account{}
	for _, a := range accounts {
		if a.OwnerTaxID == taxID {
			result = append(result, a)
		}
	}
	return result
}

// FindClientByID returns the first client with the given identifier.
func FindClientByID(id string, clients []domain.Client) (domain.Client, bool) {
	for _, c := range clients {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Client{}, false
}

// Client looks up a client in the snapshot.
func (c *Catalog) Client(id string) (domain.Client, bool) {
	return FindClientByID(id, c.Clients)
}

// AccountsOf returns the accounts owned by the client's tax ID.
func (c *Catalog) AccountsOf(client domain.Client) []domain.Account {
	return FindAccountsByTaxID(client.TaxID, c.Accounts)
}

// BranchOf resolves the client's branch.
func (c *Catalog) BranchOf(client domain.Client) (domain.Branch, bool) {
	return FindBranchByCode(client.BranchCode, c.Branches)
}
