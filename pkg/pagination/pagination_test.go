package pagination

import (
	"net/url"
	"testing"
)

func TestFromQueryDefaults(t *testing.T) {
	params := FromQuery(url.Values{})
	if params.Page != DefaultPage || params.Limit != DefaultLimit {
		t.Fatalf("params = %+v, want defaults", params)
	}
}

func TestFromQueryParsesValues(t *testing.T) {
	params := FromQuery(url.Values{"page": {"3"}, "limit": {"25"}})
	if params.Page != 3 || params.Limit != 25 {
		t.Fatalf("params = %+v", params)
	}
	if params.Offset() != 50 {
		t.Fatalf("Offset = %d, want 50", params.Offset())
	}
}

func TestFromQueryIgnoresGarbage(t *testing.T) {
	params := FromQuery(url.Values{"page": {"-1"}, "limit": {"abc"}})
	if params.Page != DefaultPage || params.Limit != DefaultLimit {
		t.Fatalf("params = %+v, want defaults", params)
	}
}

func TestFromQueryClampsLimit(t *testing.T) {
	params := FromQuery(url.Values{"limit": {"5000"}})
	if params.Limit != MaxLimit {
		t.Fatalf("Limit = %d, want %d", params.Limit, MaxLimit)
	}
}

func TestMetaForRoundsUpTotalPages(t *testing.T) {
	meta := MetaFor(Params{Page: 2, Limit: 10}, 31)
	if meta.TotalPages != 4 {
		t.Fatalf("TotalPages = %d, want 4", meta.TotalPages)
	}
	if meta.Total != 31 || meta.Page != 2 || meta.Limit != 10 {
		t.Fatalf("meta = %+v", meta)
	}
}

func TestMetaForEmpty(t *testing.T) {
	meta := MetaFor(Params{Page: 1, Limit: 10}, 0)
	if meta.TotalPages != 0 {
		t.Fatalf("TotalPages = %d, want 0", meta.TotalPages)
	}
}
