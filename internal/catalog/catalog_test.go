package catalog

import (
	"math"
	"testing"

	"github.com/dvloznov/bankview/internal/domain"
	"github.com/google/go-cmp/cmp"
)

func testCatalog() *Catalog {
	clients := []domain.Client{
		{ID: "c1", TaxID: "12345678901", Name: "Ana Silva", BranchCode: domain.NewCode(10)},
		{ID: "c2", TaxID: "12345678000199", Name: "Padaria Pão Quente", BranchCode: domain.NewCode(99)},
		{ID: "c3", TaxID: "98765432100", Name: "Bruno Lima", BranchCode: domain.Code{}},
	}
	accounts := []domain.Account{
		{ID: "a1", OwnerTaxID: "12345678901", Kind: domain.AccountChecking, Balance: 100.5, CreditLimit: 1000, AvailableCredit: 900},
		{ID: "a2", OwnerTaxID: "12345678000199", Kind: domain.AccountChecking, Balance: -50},
		{ID: "a3", OwnerTaxID: "12345678901", Kind: domain.AccountSavings, Balance: 200.25, CreditLimit: math.NaN(), AvailableCredit: 0},
		{ID: "a4", OwnerTaxID: "00000000000", Kind: domain.AccountSavings, Balance: 1},
	}
	branches := []domain.Branch{
		{ID: "b1", Code: domain.NewCode(10), Name: "Centro"},
		{ID: "b2", Code: domain.NewCode(20), Name: "Savassi"},
		{ID: "b3", Code: domain.NewCode(10), Name: "Centro (duplicada)"},
		{ID: "b4", Code: domain.Code{}, Name: "Sem código"},
	}
	return New(clients, accounts, branches)
}

func TestFindAccountsByTaxID(t *testing.T) {
	cat := testCatalog()

	got := FindAccountsByTaxID("12345678901", cat.Accounts)
	ids := make([]string, len(got))
	for i, a := range got {
		ids[i] = a.ID
	}
	if diff := cmp.Diff([]string{"a1", "a3"}, ids); diff != "" {
		t.Errorf("FindAccountsByTaxID() mismatch (-want +got):\n%s", diff)
	}

	none := FindAccountsByTaxID("nobody", cat.Accounts)
	if none == nil || len(none) != 0 {
		t.Errorf("FindAccountsByTaxID(nobody) = %#v, want empty non-nil slice", none)
	}
}

func TestFindBranchByCode(t *testing.T) {
	cat := testCatalog()

	tests := []struct {
		name   string
		code   domain.Code
		wantID string
		wantOK bool
	}{
		{"first match wins", domain.NewCode(10), "b1", true},
		{"unique match", domain.NewCode(20), "b2", true},
		{"no match", domain.NewCode(99), "", false},
		{"invalid code never matches", domain.Code{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := FindBranchByCode(tt.code, cat.Branches)
			if ok != tt.wantOK || b.ID != tt.wantID {
				t.Errorf("FindBranchByCode(%v) = (%q, %v), want (%q, %v)", tt.code, b.ID, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestFindClientByID(t *testing.T) {
	cat := testCatalog()

	c, ok := FindClientByID("c2", cat.Clients)
	if !ok || c.Name != "Padaria Pão Quente" {
		t.Errorf("FindClientByID(c2) = (%q, %v)", c.Name, ok)
	}
	if _, ok := FindClientByID("missing", cat.Clients); ok {
		t.Error("FindClientByID(missing) should report absence")
	}
}

func TestCatalog_Detail(t *testing.T) {
	cat := testCatalog()

	d, ok := cat.Detail("c1")
	if !ok {
		t.Fatal("Detail(c1) not found")
	}
	if len(d.Accounts) != 2 {
		t.Errorf("len(Accounts) = %d, want 2", len(d.Accounts))
	}
	if d.Branch == nil || d.Branch.ID != "b1" {
		t.Errorf("Branch = %+v, want b1", d.Branch)
	}
	if got := d.Totals.Balance.StringFixed(2); got != "300.75" {
		t.Errorf("Totals.Balance = %s, want 300.75", got)
	}
	if got := d.Totals.CreditLimit.StringFixed(2); got != "1000.00" {
		t.Errorf("Totals.CreditLimit = %s, want 1000.00", got)
	}
	if d.Totals.Unparsed != 1 {
		t.Errorf("Totals.Unparsed = %d, want 1", d.Totals.Unparsed)
	}

	noBranch, ok := cat.Detail("c2")
	if !ok {
		t.Fatal("Detail(c2) not found")
	}
	if noBranch.Branch != nil {
		t.Errorf("Branch = %+v, want nil", noBranch.Branch)
	}

	noAccounts, _ := cat.Detail("c3")
	if len(noAccounts.Accounts) != 0 || noAccounts.Branch != nil {
		t.Errorf("Detail(c3) = %+v, want no accounts and no branch", noAccounts)
	}

	if _, ok := cat.Detail("zzz"); ok {
		t.Error("Detail(zzz) should report absence")
	}
}

func TestCatalog_Summary(t *testing.T) {
	got := testCatalog().Summary()
	want := Summary{Clients: 3, Individuals: 2, Organizations: 1, Accounts: 4, Branches: 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Summary() mismatch (-want +got):\n%s", diff)
	}
}
