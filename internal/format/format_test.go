package format

import (
	"math"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/bankview/internal/domain"
)

func TestTaxID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12345678901", "123.456.789-01"},
		{"12345678000199", "12.345.678/0001-99"},
		{"123.456.789-01", "123.456.789-01"},
		{"12.345.678/0001-99", "12.345.678/0001-99"},
		{"1234", "1234"},
		{"abc", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := TaxID(tt.input); got != tt.want {
				t.Errorf("TaxID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		date civil.Date
		want string
	}{
		{"padded", civil.Date{Year: 1990, Month: time.March, Day: 5}, "05/03/1990"},
		{"two digits", civil.Date{Year: 2001, Month: time.December, Day: 31}, "31/12/2001"},
		{"invalid", civil.Date{}, "Invalid Date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Date(tt.date); got != tt.want {
				t.Errorf("Date(%v) = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"grouping", 1234.56, "R$ 1.234,56"},
		{"small", 5, "R$ 5,00"},
		{"millions", 2500000.5, "R$ 2.500.000,50"},
		{"negative", -300, "-R$ 300,00"},
		{"zero", 0, "R$ 0,00"},
		{"NaN", math.NaN(), "R$ NaN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.value); got != tt.want {
				t.Errorf("Currency(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	if got := AccountKind(domain.AccountSavings); got != "Conta poupança" {
		t.Errorf("AccountKind(poupanca) = %q", got)
	}
	if got := DocumentLabel(domain.DocumentOrganization); got != "CNPJ" {
		t.Errorf("DocumentLabel(organization) = %q", got)
	}
	if got := OrNotAvailable(""); got != NotAvailable {
		t.Errorf("OrNotAvailable(\"\") = %q", got)
	}
}
