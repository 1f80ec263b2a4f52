package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dvloznov/bankview/internal/catalog"
	"github.com/dvloznov/bankview/internal/domain"
	"github.com/dvloznov/bankview/internal/format"
	"github.com/dvloznov/bankview/internal/query"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printClientList(w io.Writer, v query.View) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tDOCUMENT\tMARITAL STATUS\tBRANCH")
	for _, c := range v.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s %s\t%s\t%s\n",
			c.ID,
			c.PreferredName(),
			format.DocumentLabel(c.DocumentType()),
			format.TaxID(c.TaxID),
			c.MaritalStatus,
			format.Code(c.BranchCode),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if v.Matched == 0 {
		fmt.Fprintln(w, "No clients found.")
	}
	fmt.Fprintf(w, "\n%d clients, page %d of %d  %s\n", v.Matched, v.Page, v.TotalPages, pageBar(v))
	return nil
}

// pageBar renders the page navigation, e.g. "« 1 … 4 [5] 6 … 10 »".
func pageBar(v query.View) string {
	parts := make([]string, 0, len(v.Pages)+2)
	if v.HasPrev {
		parts = append(parts, "«")
	}
	for _, p := range v.Pages {
		switch {
		case p.Ellipsis:
			parts = append(parts, "…")
		case p.Number == v.Page:
			parts = append(parts, fmt.Sprintf("[%d]", p.Number))
		default:
			parts = append(parts, fmt.Sprint(p.Number))
		}
	}
	if v.HasNext {
		parts = append(parts, "»")
	}
	return strings.Join(parts, " ")
}

func printDetail(w io.Writer, d catalog.Detail) error {
	c := d.Client

	tw := newTable(w)
	fmt.Fprintf(tw, "Name:\t%s\n", c.Name)
	if c.DisplayName != "" {
		fmt.Fprintf(tw, "Display name:\t%s\n", c.DisplayName)
	}
	fmt.Fprintf(tw, "%s:\t%s\n", format.DocumentLabel(c.DocumentType()), format.TaxID(c.TaxID))
	if c.SecondaryID != "" {
		fmt.Fprintf(tw, "RG:\t%s\n", c.SecondaryID)
	}
	fmt.Fprintf(tw, "Birth date:\t%s\n", format.Date(c.BirthDate))
	fmt.Fprintf(tw, "Email:\t%s\n", c.Email)
	fmt.Fprintf(tw, "Address:\t%s\n", c.Address)
	fmt.Fprintf(tw, "Marital status:\t%s\n", c.MaritalStatus)
	fmt.Fprintf(tw, "Annual income:\t%s\n", format.Currency(c.AnnualIncome))
	fmt.Fprintf(tw, "Net worth:\t%s\n", format.Currency(c.NetWorth))
	if d.Branch != nil {
		fmt.Fprintf(tw, "Branch:\t%s (%s) %s\n", d.Branch.Name, format.Code(d.Branch.Code), d.Branch.Address)
	} else {
		fmt.Fprintf(tw, "Branch:\t%s\n", format.NotAvailable)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nAccounts (%d)\n", len(d.Accounts))
	if len(d.Accounts) == 0 {
		fmt.Fprintln(w, "No accounts.")
		return nil
	}

	tw = newTable(w)
	fmt.Fprintln(tw, "ID\tTYPE\tBALANCE\tCREDIT LIMIT\tAVAILABLE CREDIT")
	for _, a := range d.Accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			format.AccountKind(a.Kind),
			format.Currency(a.Balance),
			format.Currency(a.CreditLimit),
			format.Currency(a.AvailableCredit),
		)
	}
	fmt.Fprintf(tw, "\tTotal\t%s\t%s\t%s\n",
		format.Currency(d.Totals.Balance.InexactFloat64()),
		format.Currency(d.Totals.CreditLimit.InexactFloat64()),
		format.Currency(d.Totals.AvailableCredit.InexactFloat64()),
	)
	if err := tw.Flush(); err != nil {
		return err
	}
	if d.Totals.Unparsed > 0 {
		fmt.Fprintf(w, "%d unreadable amounts left out of the totals.\n", d.Totals.Unparsed)
	}
	return nil
}

func printBranches(w io.Writer, branches []domain.Branch) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "CODE\tNAME\tADDRESS")
	for _, b := range branches {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", format.Code(b.Code), b.Name, b.Address)
	}
	return tw.Flush()
}

func printSummary(w io.Writer, s catalog.Summary) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Clients:\t%d\n", s.Clients)
	fmt.Fprintf(tw, "  Individuals (CPF):\t%d\n", s.Individuals)
	fmt.Fprintf(tw, "  Organizations (CNPJ):\t%d\n", s.Organizations)
	fmt.Fprintf(tw, "Accounts:\t%d\n", s.Accounts)
	fmt.Fprintf(tw, "Branches:\t%d\n", s.Branches)
	return tw.Flush()
}
