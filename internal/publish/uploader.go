package publish

import (
	"context"
	"log/slog"
	"sync"

	"docpress/internal/convert"
	"docpress/internal/images"
	"docpress/internal/wordpress"

	"github.com/google/uuid"
)

// MediaReference pairs a local image identity with its remote media ID and
// public URL, driving the placeholder rewrite pass.
type MediaReference struct {
	ImageID     uuid.UUID
	MediaID     int
	URL         string
	Placeholder string
}

// FailedUpload records one image that could not be uploaded.
type FailedUpload struct {
	ImageID  uuid.UUID
	FileName string
	Err      error
}

// UploadOutcome partitions upload results. Every artifact lands in exactly
// one of the two slices.
type UploadOutcome struct {
	Successful []MediaReference
	Failed     []FailedUpload
}

// MediaStore uploads image payloads to the CMS media library.
type MediaStore interface {
	UploadMedia(ctx context.Context, filename, contentType string, data []byte, altText string) (*wordpress.Media, error)
}

// Uploader pushes extracted images to the media store concurrently, each
// independently fallible.
type Uploader struct {
	store     MediaStore
	optimizer *images.Optimizer
	logger    *slog.Logger
}

// NewUploader creates a media uploader.
func NewUploader(store MediaStore, optimizer *images.Optimizer, logger *slog.Logger) *Uploader {
	return &Uploader{
		store:     store,
		optimizer: optimizer,
		logger:    logger.With("system", "uploader"),
	}
}

// UploadAll uploads every artifact concurrently and waits for all of them,
// partitioning successes from failures. It never fails as a whole; failed
// uploads are recorded and excluded from the rewrite mapping.
func (u *Uploader) UploadAll(ctx context.Context, artifacts []convert.ImageArtifact, altText string) *UploadOutcome {
	outcome := &UploadOutcome{}
	if len(artifacts) == 0 {
		return outcome
	}

	type slot struct {
		ref MediaReference
		err error
	}
	slots := make([]slot, len(artifacts))

	var wg sync.WaitGroup
	for i, artifact := range artifacts {
		wg.Add(1)
		go func(i int, artifact convert.ImageArtifact) {
			defer wg.Done()

			data, contentType := u.optimizer.Optimize(artifact.Data, artifact.ContentType)
			filename := artifact.FileName
			if contentType != artifact.ContentType {
				filename = artifact.ID.String() + images.Extension(contentType)
			}

			media, err := u.store.UploadMedia(ctx, filename, contentType, data, altText)
			if err != nil {
				slots[i] = slot{err: err}
				return
			}
			slots[i] = slot{ref: MediaReference{
				ImageID:     artifact.ID,
				MediaID:     media.ID,
				URL:         media.SourceURL,
				Placeholder: artifact.Placeholder,
			}}
		}(i, artifact)
	}
	wg.Wait()

	for i, s := range slots {
		if s.err != nil {
			u.logger.Warn("image upload failed", "file", artifacts[i].FileName, "error", s.err)
			outcome.Failed = append(outcome.Failed, FailedUpload{
				ImageID:  artifacts[i].ID,
				FileName: artifacts[i].FileName,
				Err:      s.err,
			})
			continue
		}
		outcome.Successful = append(outcome.Successful, s.ref)
	}

	u.logger.Info("image uploads complete",
		"total", len(artifacts),
		"successful", len(outcome.Successful),
		"failed", len(outcome.Failed),
	)
	return outcome
}
