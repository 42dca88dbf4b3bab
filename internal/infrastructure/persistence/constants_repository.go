package persistence

import (
	"context"
	"errors"

	"github.com/shrimpcfr/backend/internal/domain/costing"
	"github.com/shrimpcfr/backend/internal/domain/shared"
	"github.com/shrimpcfr/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormConstantsRepository implements costing.ConstantsRepository using GORM
type GormConstantsRepository struct {
	db *gorm.DB
}

// NewGormConstantsRepository creates a new GormConstantsRepository
func NewGormConstantsRepository(db *gorm.DB) *GormConstantsRepository {
	return &GormConstantsRepository{db: db}
}

// Get returns the stored constants or shared.ErrNotFound
func (r *GormConstantsRepository) Get(ctx context.Context) (*costing.Constants, error) {
	var model models.ConstantsModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", models.ConstantsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts the constants row
func (r *GormConstantsRepository) Save(ctx context.Context, constants *costing.Constants) error {
	return r.db.WithContext(ctx).Save(models.ConstantsModelFromDomain(constants)).Error
}
