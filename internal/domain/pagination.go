package domain

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ListFilter descreve filtros, busca, ordenação e paginação de uma listagem
type ListFilter struct {
	Search   string
	Filters  map[string][]string
	OwnerID  *int
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// Normalize aplica os limites de paginação
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

func (f *ListFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type PaginatedResponse[T any] struct {
	Data        []T `json:"data"`
	TotalRows   int `json:"totalRows"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

func NewPaginatedResponse[T any](data []T, total int, filter ListFilter) PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	pages := 0
	if filter.PageSize > 0 {
		pages = (total + filter.PageSize - 1) / filter.PageSize
	}
	return PaginatedResponse[T]{
		Data:        data,
		TotalRows:   total,
		TotalPages:  pages,
		CurrentPage: filter.Page,
		PageSize:    filter.PageSize,
	}
}
