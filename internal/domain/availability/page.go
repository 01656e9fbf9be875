package availability

import "strconv"

type Page struct {
	Page  int
	Limit int
}

// ParsePage reads page and limit query values. Missing, non-numeric or
// non-positive values fall back to the defaults; limit is capped at MaxLimit.
func ParsePage(page, limit string) Page {
	p := Page{Page: DefaultPage, Limit: DefaultLimit}
	if v, err := strconv.Atoi(page); err == nil && v >= 1 {
		p.Page = v
	}
	if v, err := strconv.Atoi(limit); err == nil && v >= 1 {
		p.Limit = min(v, MaxLimit)
	}
	return p
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Page) TotalPages(totalCount int) int {
	if p.Limit <= 0 || totalCount <= 0 {
		return 0
	}
	return (totalCount + p.Limit - 1) / p.Limit
}
