// Package format renders decoded values the way the browser shows them:
// Brazilian real amounts, day/month/year dates and punctuated tax IDs.
package format

import (
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/bankview/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	currencySymbol = "R$"
	invalidDate    = "Invalid Date"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// Currency formats v as Brazilian reais with two decimals and pt-BR
// grouping, e.g. "R$ 1.234,56" and "-R$ 12,00". NaN renders as "R$ NaN".
func Currency(v float64) string {
	switch {
	case math.IsNaN(v):
		return currencySymbol + " NaN"
	case math.IsInf(v, 1):
		return currencySymbol + " ∞"
	case math.IsInf(v, -1):
		return "-" + currencySymbol + " ∞"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	amount := printer.Sprint(number.Decimal(v, number.Scale(2)))
	if amount == "0,00" {
		sign = ""
	}
	return sign + currencySymbol + " " + amount
}

// Date formats d as dd/mm/yyyy, or "Invalid Date" for the zero date.
func Date(d civil.Date) string {
	if !d.IsValid() {
		return invalidDate
	}
	return fmt.Sprintf("%02d/%02d/%04d", d.Day, int(d.Month), d.Year)
}

// TaxID punctuates an 11-digit individual ID as ###.###.###-## and a
// 14-digit organization ID as ##.###.###/####-##. Non-digits are ignored
// when counting; any other length returns the input unchanged.
func TaxID(s string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)

	switch len(digits) {
	case domain.IndividualTaxIDLength:
		return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
	case domain.OrganizationTaxIDLength:
		return digits[0:2] + "." + digits[2:5] + "." + digits[5:8] + "/" + digits[8:12] + "-" + digits[12:14]
	default:
		return s
	}
}

// DocumentLabel is the Brazilian name of the document a tax ID represents.
func DocumentLabel(t domain.DocumentType) string {
	switch t {
	case domain.DocumentIndividual:
		return "CPF"
	case domain.DocumentOrganization:
		return "CNPJ"
	default:
		return "Documento"
	}
}

// AccountKind is the card title of an account, e.g. "Conta corrente".
func AccountKind(k domain.AccountKind) string {
	switch k {
	case domain.AccountChecking:
		return "Conta corrente"
	case domain.AccountSavings:
		return "Conta poupança"
	default:
		return "Conta " + string(k)
	}
}

// Code renders a branch code, "NaN" when it did not parse.
func Code(c domain.Code) string {
	return c.String()
}

// OrNotAvailable substitutes the absent-value message for an empty string.
func OrNotAvailable(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// NotAvailable is shown for lookups that found nothing.
const NotAvailable = "not available"
