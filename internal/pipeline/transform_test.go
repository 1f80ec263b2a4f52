package pipeline

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dvloznov/bankview/internal/domain"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		isNaN bool
	}{
		{input: "1234.56", want: 1234.56},
		{input: "-250.10", want: -250.10},
		{input: "R$ 1.234,56", want: 1.23456}, // comma is stripped, not read as decimal point
		{input: "R$ 1500", want: 1500},
		{input: "1.234.567", want: 1.234},
		{input: "12-3", want: 12},
		{input: ".5", want: 0.5},
		{input: "-.5", want: -0.5},
		{input: "7.", want: 7},
		{input: "", isNaN: true},
		{input: "abc", isNaN: true},
		{input: "-", isNaN: true},
		{input: "--5", isNaN: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseAmount(tt.input)
			if tt.isNaN {
				if !math.IsNaN(got) {
					t.Errorf("ParseAmount(%q) = %v, want NaN", tt.input, got)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAmount_IdempotentOnCleanNumbers(t *testing.T) {
	for _, s := range []string{"0", "1234.56", "-99.5"} {
		first := ParseAmount(s)
		again := ParseAmount(strconv.FormatFloat(first, 'f', -1, 64))
		if first != again {
			t.Errorf("ParseAmount not stable for %q: %v then %v", s, first, again)
		}
	}
}

func TestParseCode(t *testing.T) {
	tests := []struct {
		input string
		want  domain.Code
	}{
		{"101", domain.NewCode(101)},
		{"  42", domain.NewCode(42)},
		{"7abc", domain.NewCode(7)},
		{"-3", domain.NewCode(-3)},
		{"+8", domain.NewCode(8)},
		{"", domain.Code{}},
		{"abc", domain.Code{}},
		{"-", domain.Code{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseCode(tt.input); got != tt.want {
				t.Errorf("ParseCode(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  civil.Date
	}{
		{"05/03/1990", civil.Date{Year: 1990, Month: time.March, Day: 5}},
		{"5/3/1990", civil.Date{Year: 1990, Month: time.March, Day: 5}},
		{"31/12/2000", civil.Date{Year: 2000, Month: time.December, Day: 31}},
		{"1985-07-20", civil.Date{Year: 1985, Month: time.July, Day: 20}},
		{"30/02/1990", civil.Date{}},
		{"aa/bb/cccc", civil.Date{}},
		{"05/03", civil.Date{}},
		{"", civil.Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseDate(tt.input)
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if tt.want == (civil.Date{}) && got.IsValid() {
				t.Errorf("ParseDate(%q) should be invalid", tt.input)
			}
		})
	}
}

func TestDecodeClient(t *testing.T) {
	rec := Record{
		"id":             "c-1",
		"cpfCnpj":        "12345678901",
		"rg":             "",
		"dataNascimento": "05/03/1990",
		"nome":           "Ana Silva",
		"nomeSocial":     "Aninha",
		"email":          "ana@example.com",
		"endereco":       "Rua A, 10",
		"rendaAnual":     "85000.50",
		"patrimonio":     "n/d",
		"estadoCivil":    "Casado",
		"codigoAgencia":  "12",
	}

	c := DecodeClient(RawClientFromRecord(rec))

	if c.ID != "c-1" || c.TaxID != "12345678901" || c.DisplayName != "Aninha" {
		t.Errorf("identity fields not carried over: %+v", c)
	}
	if c.BirthDate != (civil.Date{Year: 1990, Month: time.March, Day: 5}) {
		t.Errorf("BirthDate = %v", c.BirthDate)
	}
	if c.AnnualIncome != 85000.50 {
		t.Errorf("AnnualIncome = %v, want 85000.50", c.AnnualIncome)
	}
	if !math.IsNaN(c.NetWorth) {
		t.Errorf("NetWorth = %v, want NaN", c.NetWorth)
	}
	if c.MaritalStatus != domain.MaritalMarried {
		t.Errorf("MaritalStatus = %q", c.MaritalStatus)
	}
	if c.BranchCode != domain.NewCode(12) {
		t.Errorf("BranchCode = %+v", c.BranchCode)
	}
}

func TestDecodeAccountAndBranch(t *testing.T) {
	acc := DecodeAccount(RawAccountFromRecord(Record{
		"id": "a-1", "cpfCnpjCliente": "123", "tipo": "poupanca",
		"saldo": "-120.40", "limiteCredito": "1000", "creditoDisponivel": "879.60",
	}))
	if acc.Kind != domain.AccountSavings || acc.Balance != -120.40 || acc.AvailableCredit != 879.60 {
		t.Errorf("DecodeAccount = %+v", acc)
	}

	br := DecodeBranch(RawBranchFromRecord(Record{
		"id": "b-1", "codigo": "0012", "nome": "Centro", "endereco": "Av. Brasil",
	}))
	if br.Code != domain.NewCode(12) || br.Name != "Centro" {
		t.Errorf("DecodeBranch = %+v", br)
	}
}

func TestDecodeClients_PreservesOrderAndLength(t *testing.T) {
	raws := []domain.RawClient{{ID: "3"}, {ID: "1"}, {ID: "2"}}
	got := DecodeClients(raws)
	if len(got) != 3 || got[0].ID != "3" || got[1].ID != "1" || got[2].ID != "2" {
		t.Errorf("DecodeClients order = %+v", got)
	}
}

func TestDecodeClientsStrict(t *testing.T) {
	good := domain.RawClient{ID: "1", BirthDate: "01/01/2000", AnnualIncome: "1", NetWorth: "2", BranchCode: "3"}
	bad := good
	bad.NetWorth = "???"

	if _, err := DecodeClientsStrict([]domain.RawClient{good}); err != nil {
		t.Fatalf("DecodeClientsStrict(good) error = %v", err)
	}

	_, err := DecodeClientsStrict([]domain.RawClient{good, bad})
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *DecodeError, got %v", err)
	}
	if decErr.Row != 2 || decErr.Column != domain.ColClientNetWorth {
		t.Errorf("DecodeError = %+v, want row 2 column patrimonio", decErr)
	}
}

func TestDecodeBranchesStrict(t *testing.T) {
	_, err := DecodeBranchesStrict([]domain.RawBranch{{ID: "b", Code: "x"}})
	if err == nil {
		t.Fatal("expected error for non-numeric branch code")
	}
}
