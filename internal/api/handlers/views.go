package handlers

import (
	"math"
	"time"

	"github.com/dvloznov/bankview/internal/catalog"
	"github.com/dvloznov/bankview/internal/domain"
	"github.com/dvloznov/bankview/internal/format"
	"github.com/dvloznov/bankview/internal/query"
	"github.com/shopspring/decimal"
)

// Amount carries a currency value twice: the number (null when the source
// cell did not parse) and its display string.
type Amount struct {
	Value     *float64 `json:"value"`
	Formatted string   `json:"formatted"`
}

func newAmount(v float64) Amount {
	a := Amount{Formatted: format.Currency(v)}
	if !math.IsNaN(v) && !math.IsInf(v, 0) {
		a.Value = &v
	}
	return a
}

// ClientSummaryView is one row of the client list.
type ClientSummaryView struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	DisplayName   string               `json:"display_name,omitempty"`
	TaxID         string               `json:"tax_id"`
	TaxIDDisplay  string               `json:"tax_id_display"`
	DocumentType  domain.DocumentType  `json:"document_type"`
	DocumentLabel string               `json:"document_label"`
	Email         string               `json:"email"`
	MaritalStatus domain.MaritalStatus `json:"marital_status"`
	BranchCode    domain.Code          `json:"branch_code"`
}

func newClientSummary(c domain.Client) ClientSummaryView {
	return ClientSummaryView{
		ID:            c.ID,
		Name:          c.Name,
		DisplayName:   c.DisplayName,
		TaxID:         c.TaxID,
		TaxIDDisplay:  format.TaxID(c.TaxID),
		DocumentType:  c.DocumentType(),
		DocumentLabel: format.DocumentLabel(c.DocumentType()),
		Email:         c.Email,
		MaritalStatus: c.MaritalStatus,
		BranchCode:    c.BranchCode,
	}
}

// ClientView is the full client record on the detail page.
type ClientView struct {
	ClientSummaryView
	PreferredName    string  `json:"preferred_name"`
	SecondaryID      string  `json:"secondary_id,omitempty"`
	BirthDate        *string `json:"birth_date"`
	BirthDateDisplay string  `json:"birth_date_display"`
	Address          string  `json:"address"`
	AnnualIncome     Amount  `json:"annual_income"`
	NetWorth         Amount  `json:"net_worth"`
}

func newClientView(c domain.Client) ClientView {
	v := ClientView{
		ClientSummaryView: newClientSummary(c),
		PreferredName:     c.PreferredName(),
		SecondaryID:       c.SecondaryID,
		BirthDateDisplay:  format.Date(c.BirthDate),
		Address:           c.Address,
		AnnualIncome:      newAmount(c.AnnualIncome),
		NetWorth:          newAmount(c.NetWorth),
	}
	if c.BirthDate.IsValid() {
		iso := c.BirthDate.String()
		v.BirthDate = &iso
	}
	return v
}

// AccountView is one account card.
type AccountView struct {
	ID              string             `json:"id"`
	Kind            domain.AccountKind `json:"kind"`
	KindLabel       string             `json:"kind_label"`
	Balance         Amount             `json:"balance"`
	CreditLimit     Amount             `json:"credit_limit"`
	AvailableCredit Amount             `json:"available_credit"`
}

func newAccountView(a domain.Account) AccountView {
	return AccountView{
		ID:              a.ID,
		Kind:            a.Kind,
		KindLabel:       format.AccountKind(a.Kind),
		Balance:         newAmount(a.Balance),
		CreditLimit:     newAmount(a.CreditLimit),
		AvailableCredit: newAmount(a.AvailableCredit),
	}
}

// BranchView is a branch as listed or attached to a client.
type BranchView struct {
	ID      string      `json:"id"`
	Code    domain.Code `json:"code"`
	Name    string      `json:"name"`
	Address string      `json:"address"`
}

func newBranchView(b domain.Branch) BranchView {
	return BranchView{ID: b.ID, Code: b.Code, Name: b.Name, Address: b.Address}
}

// TotalsView sums the client's accounts. Values are exact decimal strings.
type TotalsView struct {
	Balance                 string `json:"balance"`
	BalanceDisplay          string `json:"balance_display"`
	CreditLimit             string `json:"credit_limit"`
	CreditLimitDisplay      string `json:"credit_limit_display"`
	AvailableCredit         string `json:"available_credit"`
	AvailableCreditDisplay  string `json:"available_credit_display"`
	UnparsedAmountsExcluded int    `json:"unparsed_amounts_excluded"`
}

func newTotalsView(t catalog.Totals) TotalsView {
	return TotalsView{
		Balance:                 t.Balance.StringFixed(2),
		BalanceDisplay:          displayDecimal(t.Balance),
		CreditLimit:             t.CreditLimit.StringFixed(2),
		CreditLimitDisplay:      displayDecimal(t.CreditLimit),
		AvailableCredit:         t.AvailableCredit.StringFixed(2),
		AvailableCreditDisplay:  displayDecimal(t.AvailableCredit),
		UnparsedAmountsExcluded: t.Unparsed,
	}
}

func displayDecimal(d decimal.Decimal) string {
	return format.Currency(d.Round(2).InexactFloat64())
}

// DetailView is the joined client/accounts/branch triple.
type DetailView struct {
	Client        ClientView    `json:"client"`
	Accounts      []AccountView `json:"accounts"`
	Branch        *BranchView   `json:"branch"`
	BranchMessage string        `json:"branch_message,omitempty"`
	Totals        TotalsView    `json:"totals"`
}

func newDetailView(d catalog.Detail) DetailView {
	v := DetailView{
		Client:   newClientView(d.Client),
		Accounts: make([]AccountView, len(d.Accounts)),
		Totals:   newTotalsView(d.Totals),
	}
	for i, a := range d.Accounts {
		v.Accounts[i] = newAccountView(a)
	}
	if d.Branch != nil {
		b := newBranchView(*d.Branch)
		v.Branch = &b
	} else {
		v.BranchMessage = format.NotAvailable
	}
	return v
}

// ListView is one page of the filtered client list.
type ListView struct {
	Clients    []ClientSummaryView `json:"clients"`
	Matched    int                 `json:"matched"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
	Pages      []query.PageItem    `json:"pages"`
	HasPrev    bool                `json:"has_prev"`
	HasNext    bool                `json:"has_next"`
	Search     string              `json:"search,omitempty"`
	Filter     query.Filter        `json:"filter"`
	CycleID    string              `json:"cycle_id"`
	LoadedAt   time.Time           `json:"loaded_at"`
}

func newListView(s query.Snapshot, v query.View, cat *catalog.Catalog) ListView {
	out := ListView{
		Clients:    make([]ClientSummaryView, len(v.Items)),
		Matched:    v.Matched,
		Page:       v.Page,
		PageSize:   v.PageSize,
		TotalPages: v.TotalPages,
		Pages:      v.Pages,
		HasPrev:    v.HasPrev,
		HasNext:    v.HasNext,
		Search:     s.Search,
		Filter:     s.Filter,
		CycleID:    cat.CycleID,
		LoadedAt:   cat.LoadedAt,
	}
	for i, c := range v.Items {
		out.Clients[i] = newClientSummary(c)
	}
	return out
}
