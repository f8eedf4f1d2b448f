package request

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest is the offset/limit window read from the query string.
type PageRequest struct {
	Offset int `json:"offset" validate:"min=0"`
	Limit  int `json:"limit" validate:"min=0"`
}

func (p PageRequest) Skip() int {
	if p.Offset < 0 {
		return 0
	}
	return p.Offset
}

func (p PageRequest) Take() int {
	if p.Limit < 1 {
		return DefaultLimit
	}
	if p.Limit > MaxLimit {
		return MaxLimit
	}
	return p.Limit
}
