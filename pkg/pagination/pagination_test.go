package pagination

import (
	"net/url"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Params{}.Normalize(DefaultLimit)
	if p.Page != 1 || p.Limit != DefaultLimit {
		t.Fatalf("unexpected defaults %+v", p)
	}

	p = Params{Page: -3, Limit: 500}.Normalize(DefaultLimit)
	if p.Page != 1 || p.Limit != MaxLimit {
		t.Fatalf("expected clamped params, got %+v", p)
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 3, Limit: 10}
	if p.Offset() != 20 {
		t.Fatalf("unexpected offset %d", p.Offset())
	}
}

func TestFromQuery(t *testing.T) {
	query := url.Values{"page": {"2"}, "limit": {"5"}}
	p := FromQuery(query, DefaultLimit)
	if p.Page != 2 || p.Limit != 5 {
		t.Fatalf("unexpected params %+v", p)
	}

	p = FromQuery(url.Values{"page": {"abc"}}, BrowseLimit)
	if p.Page != 1 || p.Limit != BrowseLimit {
		t.Fatalf("expected fallback params, got %+v", p)
	}
}

func TestNewPageCeilAndEmpty(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 25, Params{Page: 1, Limit: 10})
	if page.Pages != 3 {
		t.Fatalf("expected ceil(25/10)=3 pages, got %d", page.Pages)
	}
	if page.Total != 25 {
		t.Fatalf("expected total to reflect full filtered set, got %d", page.Total)
	}

	empty := NewPage[int](nil, 25, Params{Page: 9, Limit: 10})
	if empty.Items == nil || len(empty.Items) != 0 {
		t.Fatalf("expected empty non-nil items for out-of-range page, got %#v", empty.Items)
	}
}
