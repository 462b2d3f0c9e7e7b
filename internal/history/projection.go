package history

import (
	"database/sql"
	"encoding/json"

	"docpress/pkg/query"
	"docpress/pkg/repository"

	"github.com/google/uuid"
)

var projection = query.NewProjectionMap("post_history", "h").
	Project("id", "Id").
	Project("title", "Title").
	Project("status", "Status").
	Project("created_by", "CreatedBy").
	Project("chat_id", "ChatID").
	Project("message_id", "MessageID").
	Project("file_name", "FileName").
	Project("media_ids", "MediaIDs").
	Project("wp_post_id", "WPPostID").
	Project("wp_response", "WPResponse").
	Project("error_message", "ErrorMessage").
	Project("timezone", "Timezone").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

func scanEntry(s repository.Scanner) (Entry, error) {
	var (
		e          Entry
		id         string
		mediaIDs   sql.NullString
		wpResponse sql.NullString
	)

	err := s.Scan(
		&id,
		&e.Title,
		&e.Status,
		&e.CreatedBy,
		&e.ChatID,
		&e.MessageID,
		&e.FileName,
		&mediaIDs,
		&e.WPPostID,
		&wpResponse,
		&e.ErrorMessage,
		&e.Timezone,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return e, err
	}

	e.ID, err = uuid.Parse(id)
	if err != nil {
		return e, err
	}

	e.MediaIDs = []int{}
	if mediaIDs.Valid && mediaIDs.String != "" {
		if err := json.Unmarshal([]byte(mediaIDs.String), &e.MediaIDs); err != nil {
			return e, err
		}
	}

	if wpResponse.Valid && wpResponse.String != "" {
		e.WPResponse = json.RawMessage(wpResponse.String)
	}

	return e, nil
}
