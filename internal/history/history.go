// Package history records document-to-post pipeline executions. Each run owns
// exactly one entry from creation through its terminal status; entries are the
// audit source for searches and cascading deletions.
package history

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a pipeline run.
type Status string

// Entry lifecycle states. A run moves from processing to exactly one of
// completed or failed; deleted marks entries whose remote post was removed.
const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusDeleted    Status = "deleted"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusProcessing, StatusCompleted, StatusFailed, StatusDeleted:
		return true
	}
	return false
}

// Entry is one recorded pipeline execution.
type Entry struct {
	ID           uuid.UUID       `json:"id"`
	Title        string          `json:"title"`
	Status       Status          `json:"status"`
	CreatedBy    string          `json:"created_by"`
	ChatID       *int64          `json:"chat_id,omitempty"`
	MessageID    *int            `json:"message_id,omitempty"`
	FileName     string          `json:"file_name"`
	MediaIDs     []int           `json:"media_ids"`
	WPPostID     *int            `json:"wp_post_id,omitempty"`
	WPResponse   json.RawMessage `json:"wp_response,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	Timezone     string          `json:"timezone"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateCommand contains the data recorded when a pipeline run begins.
// New entries always start in StatusProcessing.
type CreateCommand struct {
	Title     string
	CreatedBy string
	FileName  string
	Timezone  string
	ChatID    *int64
	MessageID *int
}

// UpdateCommand contains the fields a pipeline stage may patch onto an
// existing entry. Nil fields are left untouched.
type UpdateCommand struct {
	Status       *Status
	MediaIDs     []int
	WPPostID     *int
	WPResponse   json.RawMessage
	ErrorMessage *string
}
