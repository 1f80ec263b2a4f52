package domain

import (
	"unicode/utf8"

	"cloud.google.com/go/civil"
)

// MaritalStatus is the client's civil state as written in the spreadsheet.
type MaritalStatus string

const (
	MaritalSingle   MaritalStatus = "Solteiro"
	MaritalMarried  MaritalStatus = "Casado"
	MaritalWidowed  MaritalStatus = "Viúvo"
	MaritalDivorced MaritalStatus = "Divorciado"
)

// MaritalStatuses lists the known values in display order.
var MaritalStatuses = []MaritalStatus{MaritalSingle, MaritalMarried, MaritalWidowed, MaritalDivorced}

// Known reports whether m is one of the four recognised states.
func (m MaritalStatus) Known() bool {
	for _, s := range MaritalStatuses {
		if m == s {
			return true
		}
	}
	return false
}

// DocumentType classifies a national tax ID by its length.
type DocumentType string

const (
	DocumentIndividual   DocumentType = "individual"   // 11 characters (CPF)
	DocumentOrganization DocumentType = "organization" // 14 characters (CNPJ)
	DocumentUnknown      DocumentType = "unknown"
)

const (
	IndividualTaxIDLength   = 11
	OrganizationTaxIDLength = 14
)

// ClassifyTaxID returns the document type implied by the stored tax ID.
// The length is taken on the value as stored, punctuation included.
func ClassifyTaxID(taxID string) DocumentType {
	switch utf8.RuneCountInString(taxID) {
	case IndividualTaxIDLength:
		return DocumentIndividual
	case OrganizationTaxIDLength:
		return DocumentOrganization
	default:
		return DocumentUnknown
	}
}

// Client is one decoded row of the clients table.
//
// AnnualIncome and NetWorth may be NaN when the source cell could not be
// read as a number; BirthDate may be the zero (invalid) date.
type Client struct {
	ID            string
	TaxID         string
	SecondaryID   string // optional, "" when absent
	BirthDate     civil.Date
	Name          string
	DisplayName   string // optional, "" when absent
	Email         string
	Address       string
	AnnualIncome  float64
	NetWorth      float64
	MaritalStatus MaritalStatus
	BranchCode    Code
}

// PreferredName is the display name when one is set, otherwise the legal name.
func (c Client) PreferredName() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Name
}

// DocumentType classifies the client's tax ID.
func (c Client) DocumentType() DocumentType {
	return ClassifyTaxID(c.TaxID)
}

// RawClient holds a clients row before coercion. Every field is the
// trimmed cell text.
type RawClient struct {
	ID            string
	TaxID         string
	SecondaryID   string
	BirthDate     string
	Name          string
	DisplayName   string
	Email         string
	Address       string
	AnnualIncome  string
	NetWorth      string
	MaritalStatus string
	BranchCode    string
}
