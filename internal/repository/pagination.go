package repository

const (
	defaultLimit = 20
	maxLimit     = 100
)

type Pagination struct {
	Page  int
	Limit int
}

// Normalize clamps page and limit to the accepted range.
func (p Pagination) Normalize() Pagination {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 || p.Limit > maxLimit {
		p.Limit = defaultLimit
	}
	return p
}

func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}
