package domain

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ListQuery carries the uniform list-endpoint parameters. Normalize before
// use: page floors at 1 and per_page is clamped to [1, MaxPerPage]. A zero
// per_page means the caller never set one and takes the default.
type ListQuery struct {
	Page      int
	PerPage   int
	Search    string
	SortBy    string
	SortOrder string
}

func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = DefaultPerPage
	} else if q.PerPage < 1 {
		q.PerPage = 1
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
	return q
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasPrev bool  `json:"has_prev"`
	HasNext bool  `json:"has_next"`
	PrevNum *int  `json:"prev_num"`
	NextNum *int  `json:"next_num"`
}

func NewPagination(page, perPage int, total int64) Pagination {
	pages := int((total + int64(perPage) - 1) / int64(perPage))

	p := Pagination{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   pages,
		HasPrev: page > 1,
		HasNext: page < pages,
	}
	if p.HasPrev {
		prev := page - 1
		p.PrevNum = &prev
	}
	if p.HasNext {
		next := page + 1
		p.NextNum = &next
	}
	return p
}

type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}
