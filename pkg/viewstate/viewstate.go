// Package viewstate holds the presentation state of list and table views as
// immutable values. Every transition returns a new value; the visible slice
// is computed from the data and the state, never stored.
package viewstate

// Reveal tracks how many items of a list are shown when the list grows in
// fixed steps ("show more", "show less", "show all").
type Reveal struct {
	Visible int
	Step    int
}

func NewReveal(step int) Reveal {
	if step < 1 {
		step = 1
	}
	return Reveal{Visible: step, Step: step}
}

// More grows the window by one step, capped at total.
func (r Reveal) More(total int) Reveal {
	r.Visible = min(r.Visible+r.Step, total)
	if r.Visible < r.Step {
		r.Visible = r.Step
	}
	return r
}

// Less collapses the window back to a single step.
func (r Reveal) Less() Reveal {
	r.Visible = r.Step
	return r
}

func (r Reveal) All(total int) Reveal {
	r.Visible = max(total, r.Step)
	return r
}

func (r Reveal) HasMore(total int) bool {
	return r.Visible < total
}

func (r Reveal) HasLess() bool {
	return r.Visible > r.Step
}

// Window returns the items visible under r.
func Window[T any](items []T, r Reveal) []T {
	n := min(max(r.Visible, 0), len(items))
	return items[:n]
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// ParseSortDirection maps "desc" to Descending and anything else to Ascending.
func ParseSortDirection(s string) SortDirection {
	if SortDirection(s) == Descending {
		return Descending
	}
	return Ascending
}

const DefaultPageSize = 20

// TableView is the state of a searchable, paged and sortable table.
type TableView struct {
	Search    string
	Page      int
	PageSize  int
	Direction SortDirection
}

func NewTableView() TableView {
	return TableView{Page: 1, PageSize: DefaultPageSize, Direction: Ascending}
}

// WithSearch changes the search term and jumps back to the first page.
func (v TableView) WithSearch(term string) TableView {
	v.Search = term
	v.Page = 1
	return v
}

func (v TableView) WithPage(page int) TableView {
	v.Page = page
	return v
}

func (v TableView) Next(totalPages int) TableView {
	v.Page = min(v.Page+1, max(totalPages, 1))
	return v
}

func (v TableView) Prev() TableView {
	v.Page = max(v.Page-1, 1)
	return v
}

func (v TableView) Toggle() TableView {
	if v.Direction == Descending {
		v.Direction = Ascending
	} else {
		v.Direction = Descending
	}
	return v
}

// TotalPages is ceil(n / page size).
func (v TableView) TotalPages(n int) int {
	size := v.pageSize()
	return (n + size - 1) / size
}

// Bounds returns the [start, end) range of the current page over n rows,
// with the page clamped into [1, TotalPages].
func (v TableView) Bounds(n int) (page, start, end int) {
	size := v.pageSize()
	page = min(max(v.Page, 1), max(v.TotalPages(n), 1))
	start = min((page-1)*size, n)
	end = min(start+size, n)
	return page, start, end
}

func (v TableView) pageSize() int {
	if v.PageSize < 1 {
		return DefaultPageSize
	}
	return v.PageSize
}
