// Package query derives the client list view: free-text search, structured
// filters and pagination over an immutable client collection.
package query

import (
	"fmt"
	"strings"

	"github.com/dvloznov/bankview/internal/domain"
)

// Filter narrows the client list. Zero values mean "no constraint".
type Filter struct {
	MaritalStatus domain.MaritalStatus `json:"marital_status,omitempty"`
	DocumentType  domain.DocumentType  `json:"document_type,omitempty"`
}

// ParseDocumentType accepts the document type names and their CPF/CNPJ
// aliases, case-insensitively. The empty string means no filter.
func ParseDocumentType(s string) (domain.DocumentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", nil
	case "individual", "cpf":
		return domain.DocumentIndividual, nil
	case "organization", "cnpj":
		return domain.DocumentOrganization, nil
	default:
		return "", fmt.Errorf("unknown document type %q", s)
	}
}

// ParseMaritalStatus accepts one of the known marital states (exact match
// after trimming) or the empty string.
func ParseMaritalStatus(s string) (domain.MaritalStatus, error) {
	m := domain.MaritalStatus(strings.TrimSpace(s))
	if m == "" || m.Known() {
		return m, nil
	}
	return "", fmt.Errorf("unknown marital status %q", s)
}

// MatchesSearch reports whether the client matches a free-text term. The
// lowercased term is looked up in the lowercased legal name, in the
// lowercased display name when there is one, and in the tax ID exactly as
// stored. An empty term matches everyone.
func MatchesSearch(c domain.Client, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)

	if strings.Contains(strings.ToLower(c.Name), term) {
		return true
	}
	if strings.Contains(c.TaxID, term) {
		return true
	}
	return c.DisplayName != "" && strings.Contains(strings.ToLower(c.DisplayName), term)
}

// Matches reports whether the client passes every filter that is set.
func (f Filter) Matches(c domain.Client) bool {
	if f.MaritalStatus != "" && c.MaritalStatus != f.MaritalStatus {
		return false
	}
	switch f.DocumentType {
	case domain.DocumentIndividual, domain.DocumentOrganization:
		return c.DocumentType() == f.DocumentType
	}
	return true
}

// Apply runs search, then the marital-status filter, then the document-type
// filter. The input is not modified and order is preserved.
func Apply(clients []domain.Client, term string, f Filter) []domain.Client {
	result := make([]domain.Client, 0, len(clients))
	for _, c := range clients {
		if MatchesSearch(c, term) && f.Matches(c) {
			result = append(result, c)
		}
	}
	return result
}
