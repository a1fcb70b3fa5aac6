package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func params(t *testing.T, query string) Params {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/"+query, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	return FromContext(c)
}

func TestFromContextDefaults(t *testing.T) {
	p := params(t, "")
	if p.Limit != DefaultLimit || p.Offset != 0 {
		t.Errorf("got %+v, want defaults", p)
	}
}

func TestFromContextCustomValues(t *testing.T) {
	p := params(t, "?limit=25&offset=10")
	if p.Limit != 25 || p.Offset != 10 {
		t.Errorf("got %+v", p)
	}
}

func TestFromContextClampsLimit(t *testing.T) {
	p := params(t, "?limit=9999")
	if p.Limit != MaxLimit {
		t.Errorf("limit = %d, want %d", p.Limit, MaxLimit)
	}
}

func TestFromContextNegativeOffset(t *testing.T) {
	p := params(t, "?offset=-5")
	if p.Offset != 0 {
		t.Errorf("offset = %d, want 0", p.Offset)
	}
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		limit, offset, total     int
		wantStart, wantEnd       int
	}{
		{10, 0, 25, 0, 10},
		{10, 20, 25, 20, 25},
		{10, 30, 25, 25, 25},
		{10, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		p := Params{Limit: tt.limit, Offset: tt.offset}
		start, end := p.Page(tt.total)
		if start != tt.wantStart || end != tt.wantEnd {
			t.Errorf("Page(%d) with %+v = [%d, %d), want [%d, %d)",
				tt.total, p, start, end, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestNewResponseHasMore(t *testing.T) {
	if r := NewResponse(nil, 100, 10, 0); !r.HasMore {
		t.Error("expected HasMore at start of large set")
	}
	if r := NewResponse(nil, 100, 10, 95); r.HasMore {
		t.Error("expected no more past the end")
	}
}
