package catalog

// Link is a pager link as rendered by the API.
type Link struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
}

// Page is one page of the paginated product listing. CurrentPage is always the
// value returned by the server.
type Page struct {
	Data        []Product `json:"data"`
	CurrentPage int       `json:"current_page"`
	LastPage    int       `json:"last_page"`
	PerPage     int       `json:"per_page"`
	Total       int       `json:"total"`
	Links       []Link    `json:"links"`
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.CurrentPage > 1 }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.CurrentPage < p.LastPage }

// Range returns the 1-based positions of the first and last product on the page.
func (p Page) Range() (from, to int) {
	if p.Total == 0 {
		return 0, 0
	}
	from = (p.CurrentPage-1)*p.PerPage + 1
	to = min(p.CurrentPage*p.PerPage, p.Total)
	return from, to
}

// PageItemKind identifies an entry of the pager.
type PageItemKind int

const (
	PageItemPrev PageItemKind = iota
	PageItemNumber
	PageItemEllipsis
	PageItemNext
)

// PageItem is one entry of the pager.
type PageItem struct {
	Kind     PageItemKind
	Page     int
	Active   bool
	Disabled bool
}

// pagerRadius is how many pages are shown on each side of the current page.
const pagerRadius = 2

// Pagination builds the pager for current of last pages: prev, first page,
// ellipsis, current±2, ellipsis, last page, next. It returns nil when there is
// a single page.
func Pagination(current, last int) []PageItem {
	if last <= 1 {
		return nil
	}
	current = max(1, min(current, last))

	start := max(1, current-pagerRadius)
	end := min(last, current+pagerRadius)

	items := []PageItem{{Kind: PageItemPrev, Page: current - 1, Disabled: current == 1}}

	if start > 1 {
		items = append(items, PageItem{Kind: PageItemNumber, Page: 1})
		if start > 2 {
			items = append(items, PageItem{Kind: PageItemEllipsis, Disabled: true})
		}
	}

	for p := start; p <= end; p++ {
		items = append(items, PageItem{Kind: PageItemNumber, Page: p, Active: p == current})
	}

	if end < last {
		if end < last-1 {
			items = append(items, PageItem{Kind: PageItemEllipsis, Disabled: true})
		}
		items = append(items, PageItem{Kind: PageItemNumber, Page: last})
	}

	return append(items, PageItem{Kind: PageItemNext, Page: current + 1, Disabled: current == last})
}
