package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		page      int
		size      int
		wantPage  int
		wantCount int
		wantItems []int
	}{
		{"last partial page", 25, 3, 10, 3, 3, []int{21, 22, 23, 24, 25}},
		{"first page", 25, 1, 10, 1, 3, seq(10)},
		{"clamped high", 25, 9, 10, 3, 3, []int{21, 22, 23, 24, 25}},
		{"clamped low", 25, -2, 10, 1, 3, seq(10)},
		{"exact multiple", 20, 2, 10, 2, 2, []int{11, 12, 13, 14, 15, 16, 17, 18, 19, 20}},
		{"empty", 0, 1, 10, 1, 0, []int{}},
		{"default size", 3, 1, 0, 1, 1, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(seq(tt.total), tt.page, tt.size)
			assert.Equal(t, tt.wantPage, p.Number)
			assert.Equal(t, tt.wantCount, p.PageCount)
			assert.Equal(t, tt.wantItems, p.Items)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestPageBounds(t *testing.T) {
	p := Paginate(seq(25), 3, 10)
	assert.Equal(t, 21, p.First())
	assert.Equal(t, 25, p.Last())
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
	assert.Equal(t, []int{1, 2, 3}, p.Numbers())

	empty := Paginate([]int{}, 1, 10)
	assert.Equal(t, 0, empty.First())
	assert.Equal(t, 0, empty.Last())
	assert.Empty(t, empty.Numbers())
}
