package entity

// Page is one slice of a list plus what the pager needs to render.
type Page[T any] struct {
	Items     []T
	Number    int
	Size      int
	Total     int
	PageCount int
}

// Paginate cuts page number (1-based) of size items out of items. The page is
// clamped to the valid range; an empty list has zero pages and shows page 1.
func Paginate[T any](items []T, number, size int) Page[T] {
	if size <= 0 {
		size = 10
	}
	total := len(items)
	pageCount := (total + size - 1) / size

	if number > pageCount {
		number = pageCount
	}
	if number < 1 {
		number = 1
	}

	start := (number - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:     items[start:end],
		Number:    number,
		Size:      size,
		Total:     total,
		PageCount: pageCount,
	}
}

// First is the 1-based index of the first item shown, 0 when empty.
func (p Page[T]) First() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Number-1)*p.Size + 1
}

// Last is the 1-based index of the last item shown.
func (p Page[T]) Last() int {
	if p.Total == 0 {
		return 0
	}
	return p.First() + len(p.Items) - 1
}

func (p Page[T]) HasPrev() bool {
	return p.Number > 1
}

func (p Page[T]) HasNext() bool {
	return p.Number < p.PageCount
}

// Numbers lists every page number for the pager.
func (p Page[T]) Numbers() []int {
	out := make([]int, p.PageCount)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
