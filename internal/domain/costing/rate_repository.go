package costing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shrimpcfr/backend/internal/domain/shared"
)

// RateRepository defines persistence operations for rate brackets.
// FindAll returns brackets ordered by Low ascending so that first-match
// lookups are stable.
type RateRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Rate, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Rate, error)
	Save(ctx context.Context, rate *Rate) error
	SaveBatch(ctx context.Context, rates []*Rate) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
}
