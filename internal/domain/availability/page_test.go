package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	assert.Equal(t, Page{Page: 1, Limit: 10}, ParsePage("", ""))
	assert.Equal(t, Page{Page: 1, Limit: 10}, ParsePage("0", "abc"))
	assert.Equal(t, Page{Page: 1, Limit: 10}, ParsePage("-3", "-1"))
	assert.Equal(t, Page{Page: 3, Limit: 25}, ParsePage("3", "25"))
	assert.Equal(t, Page{Page: 2, Limit: MaxLimit}, ParsePage("2", "1000"))
}

func TestPage_TotalPages(t *testing.T) {
	for _, tc := range []struct {
		limit, total, want int
	}{
		{limit: 10, total: 0, want: 0},
		{limit: 10, total: 1, want: 1},
		{limit: 10, total: 10, want: 1},
		{limit: 10, total: 11, want: 2},
		{limit: 3, total: 10, want: 4},
		{limit: 1, total: 7, want: 7},
	} {
		assert.Equal(t, tc.want, Page{Page: 1, Limit: tc.limit}.TotalPages(tc.total))
	}
}
