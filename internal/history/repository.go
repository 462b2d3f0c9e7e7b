package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"docpress/pkg/pagination"
	"docpress/pkg/query"
	"docpress/pkg/repository"

	"github.com/google/uuid"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a MySQL-backed history system.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "history"),
		pagination: pagination,
	}
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Entry, error) {
	id := uuid.New()

	q := `INSERT INTO post_history
		(id, title, status, created_by, chat_id, message_id, file_name, media_ids, timezone)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	timezone := cmd.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q,
			id.String(), cmd.Title, string(StatusProcessing), cmd.CreatedBy,
			cmd.ChatID, cmd.MessageID, cmd.FileName, "[]", timezone,
		)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	entry, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("history entry created", "id", id, "title", cmd.Title, "created_by", cmd.CreatedBy)
	return entry, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) error {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if cmd.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*cmd.Status))
	}
	if cmd.MediaIDs != nil {
		encoded, err := json.Marshal(cmd.MediaIDs)
		if err != nil {
			return fmt.Errorf("encode media ids: %w", err)
		}
		sets = append(sets, "media_ids = ?")
		args = append(args, string(encoded))
	}
	if cmd.WPPostID != nil {
		sets = append(sets, "wp_post_id = ?")
		args = append(args, *cmd.WPPostID)
	}
	if cmd.WPResponse != nil {
		sets = append(sets, "wp_response = ?")
		args = append(args, string(cmd.WPResponse))
	}
	if cmd.ErrorMessage != nil {
		sets = append(sets, "error_message = ?")
		args = append(args, *cmd.ErrorMessage)
	}

	if len(sets) == 0 {
		return nil
	}

	q := fmt.Sprintf("UPDATE post_history SET %s, updated_at = NOW() WHERE id = ?", strings.Join(sets, ", "))
	args = append(args, id.String())

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, q, args...)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Entry, error) {
	q, args := query.
		NewBuilder(projection, "CreatedAt").
		BuildSingle("Id", id.String())

	entry, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &entry, nil
}

func (r *repo) FindByPostID(ctx context.Context, wpPostID int) (*Entry, error) {
	q, args := query.
		NewBuilder(projection, "CreatedAt").
		BuildSingle("WPPostID", wpPostID)

	entry, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &entry, nil
}

func (r *repo) Search(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, "CreatedAt").
		OrderBy("", true)

	filters.Apply(qb)

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count history: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	entries, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	result := pagination.NewPageResult(entries, total, page.Page, page.PageSize)
	return &result, nil
}
