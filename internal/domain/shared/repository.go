package shared

// Filter defines common listing options shared by repository queries
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	Search   string
}

// Limit returns the effective page size, defaulting to 20 and capping at 200
func (f Filter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 200 {
		return 200
	}
	return f.PageSize
}

// Offset returns the row offset implied by Page and PageSize
func (f Filter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}
