package shared

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name       string
		url        string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/employees", 50, 0},
		{"explicit", "/employees?limit=10&offset=20", 10, 20},
		{"clamped to max", "/employees?limit=9999", 100, 0},
		{"garbage ignored", "/employees?limit=abc&offset=-3", 50, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.url, nil)
			p := ParsePagination(r, 50, 100)
			if p.Limit != tc.wantLimit || p.Offset != tc.wantOffset {
				t.Errorf("got limit=%d offset=%d, want limit=%d offset=%d",
					p.Limit, p.Offset, tc.wantLimit, tc.wantOffset)
			}
		})
	}
}

func TestPaginationWindow(t *testing.T) {
	cases := []struct {
		name           string
		p              Pagination
		n              int
		wantLo, wantHi int
	}{
		{"no limit", Pagination{}, 5, 0, 5},
		{"first page", Pagination{Limit: 2}, 5, 0, 2},
		{"middle page", Pagination{Limit: 2, Offset: 2}, 5, 2, 4},
		{"offset past end", Pagination{Limit: 2, Offset: 10}, 5, 5, 5},
		{"limit past end", Pagination{Limit: 10, Offset: 3}, 5, 3, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lo, hi := tc.p.Window(tc.n)
			if lo != tc.wantLo || hi != tc.wantHi {
				t.Errorf("Window(%d) = (%d, %d), want (%d, %d)", tc.n, lo, hi, tc.wantLo, tc.wantHi)
			}
		})
	}
}
