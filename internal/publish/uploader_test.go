package publish_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"docpress/internal/convert"
	"docpress/internal/images"
	"docpress/internal/publish"
	"docpress/internal/wordpress"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeStore struct {
	mu      sync.Mutex
	nextID  int
	failFor map[string]bool
}

func (s *fakeStore) UploadMedia(ctx context.Context, filename, contentType string, data []byte, altText string) (*wordpress.Media, error) {
	if s.failFor[filename] {
		return nil, errors.New("upload rejected")
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.mu.Unlock()

	return &wordpress.Media{ID: id, SourceURL: "https://cms.example.com/media/" + filename}, nil
}

func artifact(name string) convert.ImageArtifact {
	return convert.ImageArtifact{
		ID:          uuid.New(),
		FileName:    name,
		ContentType: "image/svg+xml",
		Data:        []byte("<svg/>"),
		Placeholder: "temp://" + name,
	}
}

func newUploader(store publish.MediaStore) *publish.Uploader {
	optimizer := images.NewOptimizer(1920, 1920, 82, discardLogger())
	return publish.NewUploader(store, optimizer, discardLogger())
}

func TestUploadAll_PartitionsResults(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		failures []int
	}{
		{"all succeed", 4, nil},
		{"some fail", 5, []int{1, 3}},
		{"all fail", 3, []int{0, 1, 2}},
		{"empty input", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifacts := make([]convert.ImageArtifact, tt.total)
			store := &fakeStore{failFor: make(map[string]bool)}
			for i := range artifacts {
				artifacts[i] = artifact(uuid.NewString() + ".svg")
			}
			for _, i := range tt.failures {
				store.failFor[artifacts[i].FileName] = true
			}

			outcome := newUploader(store).UploadAll(context.Background(), artifacts, "alt")

			if got := len(outcome.Successful) + len(outcome.Failed); got != tt.total {
				t.Errorf("successful(%d) + failed(%d) = %d, want %d",
					len(outcome.Successful), len(outcome.Failed), got, tt.total)
			}
			if len(outcome.Failed) != len(tt.failures) {
				t.Errorf("failed = %d, want %d", len(outcome.Failed), len(tt.failures))
			}
		})
	}
}

func TestUploadAll_ReferencesCarryPlaceholders(t *testing.T) {
	artifacts := []convert.ImageArtifact{artifact("a.svg"), artifact("b.svg")}
	store := &fakeStore{failFor: make(map[string]bool)}

	outcome := newUploader(store).UploadAll(context.Background(), artifacts, "alt")

	if len(outcome.Successful) != 2 {
		t.Fatalf("successful = %d, want 2", len(outcome.Successful))
	}
	for i, ref := range outcome.Successful {
		if ref.Placeholder != artifacts[i].Placeholder {
			t.Errorf("ref[%d].Placeholder = %q, want %q", i, ref.Placeholder, artifacts[i].Placeholder)
		}
		if ref.ImageID != artifacts[i].ID {
			t.Errorf("ref[%d].ImageID = %v, want %v", i, ref.ImageID, artifacts[i].ID)
		}
		if ref.MediaID == 0 || ref.URL == "" {
			t.Errorf("ref[%d] incomplete: %+v", i, ref)
		}
	}
}

func TestUploadAll_FailuresNameArtifacts(t *testing.T) {
	artifacts := []convert.ImageArtifact{artifact("bad.svg")}
	store := &fakeStore{failFor: map[string]bool{"bad.svg": true}}

	outcome := newUploader(store).UploadAll(context.Background(), artifacts, "alt")

	if len(outcome.Failed) != 1 {
		t.Fatalf("failed = %d, want 1", len(outcome.Failed))
	}
	if outcome.Failed[0].FileName != "bad.svg" {
		t.Errorf("failed[0].FileName = %q, want bad.svg", outcome.Failed[0].FileName)
	}
	if outcome.Failed[0].Err == nil {
		t.Error("failed[0].Err is nil, want error")
	}
}
