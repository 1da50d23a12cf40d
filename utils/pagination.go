package utils

// PageParams holds a normalized page/limit pair parsed from the query string.
type PageParams struct {
	Page  int
	Limit int
}

// NewPageParams parses page and limit with the API defaults (page 1, limit 10).
func NewPageParams(pageStr, limitStr string) PageParams {
	page := ParseIntDefault(pageStr, 1)
	if page < 1 {
		page = 1
	}
	limit := ParseIntDefault(limitStr, 10)
	if limit < 1 {
		limit = 10
	}
	return PageParams{Page: page, Limit: limit}
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Links returns the next/prev pagination block for a list response: a map with
// "next" and/or "prev" entries, each {page, limit}. Empty when neither exists.
func (p PageParams) Links(total int64) map[string]any {
	links := make(map[string]any)
	if int64(p.Page*p.Limit) < total {
		links["next"] = map[string]int{"page": p.Page + 1, "limit": p.Limit}
	}
	if p.Offset() > 0 {
		links["prev"] = map[string]int{"page": p.Page - 1, "limit": p.Limit}
	}
	return links
}
