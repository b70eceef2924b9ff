package repository

// Page is a limit/offset window over one pet collection.
// Page-number arithmetic lives in the service pager.
type Page struct {
	Limit  int
	Offset int
}

// PageResult is one window of a collection plus the collection's total size.
type PageResult[T any] struct {
	Items []T
	Total int
}

const defaultPageLimit = 10

// SanitizePage clamps a window to something every backend can execute.
func SanitizePage(p Page) Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
