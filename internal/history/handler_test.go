package history_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"docpress/internal/history"
	"docpress/pkg/pagination"

	"github.com/google/uuid"
)

type stubSystem struct {
	entries []history.Entry
}

func (s *stubSystem) Create(ctx context.Context, cmd history.CreateCommand) (*history.Entry, error) {
	return nil, nil
}

func (s *stubSystem) Update(ctx context.Context, id uuid.UUID, cmd history.UpdateCommand) error {
	return nil
}

func (s *stubSystem) Find(ctx context.Context, id uuid.UUID) (*history.Entry, error) {
	for i := range s.entries {
		if s.entries[i].ID == id {
			return &s.entries[i], nil
		}
	}
	return nil, history.ErrNotFound
}

func (s *stubSystem) FindByPostID(ctx context.Context, wpPostID int) (*history.Entry, error) {
	return nil, history.ErrNotFound
}

func (s *stubSystem) Search(ctx context.Context, page pagination.PageRequest, filters history.Filters) (*pagination.PageResult[history.Entry], error) {
	page.Normalize(pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
	result := pagination.NewPageResult(s.entries, len(s.entries), page.Page, page.PageSize)
	return &result, nil
}

func newHandler(sys history.System) *history.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return history.NewHandler(sys, logger, pagination.Config{DefaultPageSize: 20, MaxPageSize: 100})
}

func TestSearch_EmptyTable(t *testing.T) {
	handler := newHandler(&stubSystem{})

	req := httptest.NewRequest(http.MethodGet, "/posts/history?status=failed&page=1&limit=20", nil)
	rec := httptest.NewRecorder()
	handler.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Records    []history.Entry `json:"records"`
		Pagination struct {
			Total    int `json:"total"`
			Pages    int `json:"pages"`
			Page     int `json:"page"`
			PageSize int `json:"page_size"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.Records == nil || len(resp.Records) != 0 {
		t.Errorf("records = %v, want empty array", resp.Records)
	}
	if resp.Pagination.Total != 0 {
		t.Errorf("pagination.total = %d, want 0", resp.Pagination.Total)
	}
	if resp.Pagination.Pages != 0 {
		t.Errorf("pagination.pages = %d, want 0", resp.Pagination.Pages)
	}
	if resp.Pagination.Page != 1 {
		t.Errorf("pagination.page = %d, want 1", resp.Pagination.Page)
	}
	if resp.Pagination.PageSize != 20 {
		t.Errorf("pagination.page_size = %d, want 20", resp.Pagination.PageSize)
	}
}

func TestFind_InvalidID(t *testing.T) {
	handler := newHandler(&stubSystem{})

	req := httptest.NewRequest(http.MethodGet, "/posts/history/not-a-uuid", nil)
	req.SetPathValue("id", "not-a-uuid")
	rec := httptest.NewRecorder()
	handler.Find(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestFind_NotFound(t *testing.T) {
	handler := newHandler(&stubSystem{})

	id := uuid.New()
	req := httptest.NewRequest(http.MethodGet, "/posts/history/"+id.String(), nil)
	req.SetPathValue("id", id.String())
	rec := httptest.NewRecorder()
	handler.Find(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestFind_ReturnsEntry(t *testing.T) {
	entry := history.Entry{ID: uuid.New(), Title: "Aviso", Status: history.StatusCompleted}
	handler := newHandler(&stubSystem{entries: []history.Entry{entry}})

	req := httptest.NewRequest(http.MethodGet, "/posts/history/"+entry.ID.String(), nil)
	req.SetPathValue("id", entry.ID.String())
	rec := httptest.NewRecorder()
	handler.Find(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got history.Entry
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != entry.ID || got.Title != "Aviso" {
		t.Errorf("entry = %+v, want id %s title Aviso", got, entry.ID)
	}
}
