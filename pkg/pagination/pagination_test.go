package pagination_test

import (
	"net/url"
	"testing"

	"docpress/pkg/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "", 1, 20},
		{"explicit values", "page=3&page_size=50", 3, 50},
		{"limit alias", "page=1&limit=10", 1, 10},
		{"page_size wins over limit", "page_size=30&limit=10", 1, 30},
		{"zero page normalized", "page=0", 1, 20},
		{"negative page normalized", "page=-2", 1, 20},
		{"oversized page_size capped", "page_size=500", 1, 100},
		{"garbage ignored", "page=abc&page_size=xyz", 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, testConfig())

			if req.Page != tt.wantPage {
				t.Errorf("Page = %d, want %d", req.Page, tt.wantPage)
			}
			if req.PageSize != tt.wantPageSize {
				t.Errorf("PageSize = %d, want %d", req.PageSize, tt.wantPageSize)
			}
		})
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var c pagination.Config
		if err := c.Finalize(); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.DefaultPageSize != 20 || c.MaxPageSize != 100 {
			t.Errorf("config = %+v, want defaults 20/100", c)
		}
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv(pagination.EnvPaginationDefaultPageSize, "10")

		var c pagination.Config
		if err := c.Finalize(); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.DefaultPageSize != 10 {
			t.Errorf("DefaultPageSize = %d, want 10", c.DefaultPageSize)
		}
	})

	t.Run("non-positive env ignored", func(t *testing.T) {
		t.Setenv(pagination.EnvPaginationMaxPageSize, "-5")

		var c pagination.Config
		if err := c.Finalize(); err != nil {
			t.Fatalf("Finalize() error = %v", err)
		}
		if c.MaxPageSize != 100 {
			t.Errorf("MaxPageSize = %d, want 100", c.MaxPageSize)
		}
	})

	t.Run("default exceeding max rejected", func(t *testing.T) {
		c := pagination.Config{DefaultPageSize: 200, MaxPageSize: 100}
		if err := c.Finalize(); err == nil {
			t.Error("Finalize() error = nil, want default exceeds max error")
		}
	})
}

func TestPageRequest_Offset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if got := req.Offset(); got != 50 {
		t.Errorf("Offset() = %d, want 50", got)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"empty total yields zero pages", 0, 20, 0},
		{"exact division", 40, 20, 2},
		{"remainder rounds up", 41, 20, 3},
		{"single partial page", 5, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{}, tt.total, 1, tt.pageSize)

			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestNewPageResult_NilDataBecomesEmpty(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, 1, 20)

	if result.Data == nil {
		t.Error("Data is nil, want empty slice")
	}
	if len(result.Data) != 0 {
		t.Errorf("Data length = %d, want 0", len(result.Data))
	}
}
