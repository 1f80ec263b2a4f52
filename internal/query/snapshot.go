package query

import (
	"github.com/dvloznov/bankview/internal/domain"
)

// Snapshot is the complete input of the list view. Transitions return a new
// snapshot; changing the clients, the search term or the filter always goes
// back to page 1.
type Snapshot struct {
	Clients []domain.Client
	Search  string
	Filter  Filter
	Page    int
}

// NewSnapshot starts on page 1 with no search and no filter.
func NewSnapshot(clients []domain.Client) Snapshot {
	return Snapshot{Clients: clients, Page: 1}
}

func (s Snapshot) WithClients(clients []domain.Client) Snapshot {
	s.Clients = clients
	s.Page = 1
	return s
}

func (s Snapshot) WithSearch(term string) Snapshot {
	s.Search = term
	s.Page = 1
	return s
}

func (s Snapshot) WithFilter(f Filter) Snapshot {
	s.Filter = f
	s.Page = 1
	return s
}

// WithPage moves to page. Out-of-range pages are clamped by Derive.
func (s Snapshot) WithPage(page int) Snapshot {
	s.Page = page
	return s
}

// View is what the list renders.
type View struct {
	Items      []domain.Client
	Matched    int
	Page       int
	PageSize   int
	TotalPages int
	Pages      []PageItem
	HasPrev    bool
	HasNext    bool
}

// Derive computes the filtered, paginated view of s. The page is clamped
// into [1, TotalPages].
func Derive(s Snapshot, pageSize int) View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	matched := Apply(s.Clients, s.Search, s.Filter)
	total := TotalPages(len(matched), pageSize)

	page := s.Page
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	return View{
		Items:      Paginate(matched, page, pageSize),
		Matched:    len(matched),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: total,
		Pages:      PageNumbers(page, total),
		HasPrev:    page > 1,
		HasNext:    page < total,
	}
}
