package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/storefront/core/catalog"
)

func pagerString(items []catalog.PageItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch it.Kind {
		case catalog.PageItemPrev:
			out = append(out, "<")
		case catalog.PageItemNext:
			out = append(out, ">")
		case catalog.PageItemEllipsis:
			out = append(out, "...")
		default:
			s := string(rune('0' + it.Page%10))
			if it.Page >= 10 {
				s = string(rune('0'+it.Page/10)) + s
			}
			if it.Active {
				s = "[" + s + "]"
			}
			out = append(out, s)
		}
	}
	return out
}

func TestPagination(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current int
		last    int
		want    []string
	}{
		{"single page", 1, 1, nil},
		{"first of three", 1, 3, []string{"<", "[1]", "2", "3", ">"}},
		{"middle of many", 6, 12, []string{"<", "1", "...", "4", "5", "[6]", "7", "8", "...", "12", ">"}},
		{"near start", 3, 10, []string{"<", "1", "2", "[3]", "4", "5", "...", "10", ">"}},
		{"no gap before first", 4, 10, []string{"<", "1", "2", "3", "[4]", "5", "6", "...", "10", ">"}},
		{"last page", 10, 10, []string{"<", "1", "...", "8", "9", "[10]", ">"}},
		{"current beyond last", 15, 10, []string{"<", "1", "...", "8", "9", "[10]", ">"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			items := catalog.Pagination(tt.current, tt.last)
			if tt.want == nil {
				assert.Nil(t, items)
				return
			}
			assert.Equal(t, tt.want, pagerString(items))
		})
	}
}

func TestPagination_Disabled(t *testing.T) {
	t.Parallel()

	items := catalog.Pagination(1, 5)
	assert.True(t, items[0].Disabled)
	assert.False(t, items[len(items)-1].Disabled)

	items = catalog.Pagination(5, 5)
	assert.False(t, items[0].Disabled)
	assert.True(t, items[len(items)-1].Disabled)
}

func TestPage_Range(t *testing.T) {
	t.Parallel()

	p := catalog.Page{CurrentPage: 3, PerPage: 10, Total: 25, LastPage: 3}
	from, to := p.Range()
	assert.Equal(t, 21, from)
	assert.Equal(t, 25, to)
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())

	from, to = catalog.Page{}.Range()
	assert.Zero(t, from)
	assert.Zero(t, to)
}
