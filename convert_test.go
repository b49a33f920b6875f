package fits

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseAxes(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{name: "empty", in: []int{}, want: []int{}},
		{name: "single", in: []int{5}, want: []int{5}},
		{name: "pair", in: []int{100, 50}, want: []int{50, 100}},
		{name: "cube", in: []int{2, 3, 4}, want: []int{4, 3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reverseAxes(tt.in))
		})
	}
}

func TestReverseAxes_OwnInverse(t *testing.T) {
	in := []int{7, 11, 13, 17}
	assert.Equal(t, in, reverseAxes(reverseAxes(in)))
}

func TestRowRange(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		end       int
		wantFirst int64
		wantCount int64
	}{
		{name: "from zero", start: 0, end: 10, wantFirst: 1, wantCount: 10},
		{name: "interior", start: 5, end: 8, wantFirst: 6, wantCount: 3},
		{name: "empty", start: 4, end: 4, wantFirst: 5, wantCount: 0},
		{name: "single", start: 0, end: 1, wantFirst: 1, wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, count := rowRange(tt.start, tt.end)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestLibraryAxes(t *testing.T) {
	// A row-major [100, 50] shape is [50, 100] in the library's order.
	assert.Equal(t, []int64{50, 100}, libraryAxes([]int{100, 50}))
	assert.Equal(t, []int64{4, 3, 2}, libraryAxes([]int{2, 3, 4}))
}

func TestProduct(t *testing.T) {
	assert.Equal(t, 1, product(nil))
	assert.Equal(t, 5, product([]int{5}))
	assert.Equal(t, 5000, product([]int{100, 50}))
	assert.Equal(t, 0, product([]int{10, 0}))
}
