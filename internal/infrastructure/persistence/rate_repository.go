package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shrimpcfr/backend/internal/domain/costing"
	"github.com/shrimpcfr/backend/internal/domain/shared"
	"github.com/shrimpcfr/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRateRepository implements costing.RateRepository using GORM
type GormRateRepository struct {
	db *gorm.DB
}

// NewGormRateRepository creates a new GormRateRepository
func NewGormRateRepository(db *gorm.DB) *GormRateRepository {
	return &GormRateRepository{db: db}
}

// FindByID finds a rate bracket by ID
func (r *GormRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*costing.Rate, error) {
	var model models.RateModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns rate brackets ordered by low bound unless another
// whitelisted order is requested. Paging applies only when Page is set.
func (r *GormRateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]costing.Rate, error) {
	var rows []models.RateModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RateModel{}), filter)

	orderBy := ValidateSortField(filter.OrderBy, RateSortFields, "low")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	if orderBy != "low" {
		query = query.Order("low ASC")
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	rates := make([]costing.Rate, len(rows))
	for i := range rows {
		rates[i] = *rows[i].ToDomain()
	}
	return rates, nil
}

// Save creates or updates a rate bracket
func (r *GormRateRepository) Save(ctx context.Context, rate *costing.Rate) error {
	return r.db.WithContext(ctx).Save(models.RateModelFromDomain(rate)).Error
}

// SaveBatch creates or updates several rate brackets in one transaction
func (r *GormRateRepository) SaveBatch(ctx context.Context, rates []*costing.Rate) error {
	if len(rates) == 0 {
		return nil
	}
	rows := make([]*models.RateModel, len(rates))
	for i, rate := range rates {
		rows[i] = models.RateModelFromDomain(rate)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(rows).Error
	})
}

// Delete deletes a rate bracket
func (r *GormRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts rate brackets matching the filter
func (r *GormRateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RateModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByName checks whether another bracket already uses name
func (r *GormRateRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.RateModel{}).Where("LOWER(name) = LOWER(?)", name)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormRateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("LOWER(name) LIKE ?", likePattern(filter.Search))
	}
	return query
}
