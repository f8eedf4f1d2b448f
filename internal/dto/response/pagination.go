package response

type PageResponse[T any] struct {
	Data       []T      `json:"data"`
	Pagination PageMeta `json:"pagination"`
}

type PageMeta struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
	Count  int `json:"count"`
}

func NewPageResponse[T any](data []T, offset, limit int) *PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	return &PageResponse[T]{
		Data: data,
		Pagination: PageMeta{
			Offset: offset,
			Limit:  limit,
			Count:  len(data),
		},
	}
}
