package history

import (
	"context"

	"docpress/pkg/pagination"

	"github.com/google/uuid"
)

// System defines the history recording operations.
type System interface {
	Create(ctx context.Context, cmd CreateCommand) (*Entry, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) error
	Find(ctx context.Context, id uuid.UUID) (*Entry, error)
	FindByPostID(ctx context.Context, wpPostID int) (*Entry, error)
	Search(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Entry], error)
}
