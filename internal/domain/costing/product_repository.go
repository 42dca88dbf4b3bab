package costing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shrimpcfr/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products.
// FindAll honours filter.Search (species, specification, size; case
// insensitive) and filter.Filters["status"].
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindActive(ctx context.Context) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	SaveBatch(ctx context.Context, products []*Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
