package query

// DefaultPageSize is the number of clients per page unless configured.
const DefaultPageSize = 10

// maxPlainPages is the largest page count rendered without ellipses.
const maxPlainPages = 7

// TotalPages is ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate returns the 1-based page of items, clipped to the available
// length. Pages outside the range yield an empty slice.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// PageItem is one entry of the page navigation: a page number or a gap.
type PageItem struct {
	Number   int  `json:"number,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func pageItem(n int) PageItem { return PageItem{Number: n} }

var ellipsis = PageItem{Ellipsis: true}

// PageNumbers lays out the navigation for current out of total pages.
//
// Up to seven pages are all listed. Beyond that the first and last pages are
// always shown and the rest is compressed around the current page:
// near the start 1 2 3 4 5 … N, near the end 1 … N-4 N-3 N-2 N-1 N, and in
// the middle 1 … c-1 c c+1 … N.
func PageNumbers(current, total int) []PageItem {
	items := []PageItem{pageItem(1)}

	if total <= maxPlainPages {
		for i := 2; i <= total; i++ {
			items = append(items, pageItem(i))
		}
		return items
	}

	switch {
	case current < 5:
		items = append(items, pageItem(2), pageItem(3), pageItem(4), pageItem(5), ellipsis, pageItem(total))
	case current > total-4:
		items = append(items, ellipsis)
		for i := total - 4; i <= total; i++ {
			items = append(items, pageItem(i))
		}
	default:
		items = append(items, ellipsis,
			pageItem(current-1), pageItem(current), pageItem(current+1),
			ellipsis, pageItem(total))
	}
	return items
}
