package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/shrimpcfr/backend/internal/domain/costing"
	"github.com/shrimpcfr/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AdminProvisioner creates the default administrator when it is missing.
type AdminProvisioner interface {
	EnsureDefaultAdmin(ctx context.Context) error
}

// SeedResult reports what a seeding run inserted
type SeedResult struct {
	Rates     int
	Products  int
	Constants bool
}

// Seeder loads reference data into empty tables. Running it again is a no-op.
type Seeder struct {
	rates     costing.RateRepository
	products  costing.ProductRepository
	constants costing.ConstantsRepository
	admin     AdminProvisioner
	data      func() (*costing.SeedData, error)
	logger    *zap.Logger
}

// NewSeeder creates a Seeder using the embedded seed data. admin may be nil.
func NewSeeder(
	rates costing.RateRepository,
	products costing.ProductRepository,
	constants costing.ConstantsRepository,
	admin AdminProvisioner,
	logger *zap.Logger,
) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{
		rates:     rates,
		products:  products,
		constants: constants,
		admin:     admin,
		data:      costing.DefaultSeedData,
		logger:    logger.Named("seed"),
	}
}

// Seed inserts the factory rates, products and constants into empty tables
// and provisions the default administrator.
func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	data, err := s.data()
	if err != nil {
		return result, err
	}

	rateCount, err := s.rates.Count(ctx, shared.Filter{})
	if err != nil {
		return result, fmt.Errorf("count rates: %w", err)
	}
	if rateCount == 0 {
		if err := s.rates.SaveBatch(ctx, data.Rates); err != nil {
			return result, fmt.Errorf("seed rates: %w", err)
		}
		result.Rates = len(data.Rates)
	}

	productCount, err := s.products.Count(ctx, shared.Filter{})
	if err != nil {
		return result, fmt.Errorf("count products: %w", err)
	}
	if productCount == 0 {
		if err := s.products.SaveBatch(ctx, data.Products); err != nil {
			return result, fmt.Errorf("seed products: %w", err)
		}
		result.Products = len(data.Products)
	}

	if _, err := s.constants.Get(ctx); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return result, fmt.Errorf("load constants: %w", err)
		}
		defaults := costing.DefaultConstants()
		if err := s.constants.Save(ctx, &defaults); err != nil {
			return result, fmt.Errorf("seed constants: %w", err)
		}
		result.Constants = true
	}

	if s.admin != nil {
		if err := s.admin.EnsureDefaultAdmin(ctx); err != nil {
			return result, fmt.Errorf("seed admin: %w", err)
		}
	}

	s.logger.Info("Seed completed",
		zap.Int("rates", result.Rates),
		zap.Int("products", result.Products),
		zap.Bool("constants", result.Constants),
	)
	return result, nil
}
