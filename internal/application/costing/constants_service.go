package costing

import (
	"context"
	"errors"

	"github.com/shrimpcfr/backend/internal/domain/costing"
	"github.com/shrimpcfr/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ConstantsService manages the costing constants record
type ConstantsService struct {
	constantsRepo costing.ConstantsRepository
	logger        *zap.Logger
}

// NewConstantsService creates a new ConstantsService
func NewConstantsService(constantsRepo costing.ConstantsRepository, logger *zap.Logger) *ConstantsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConstantsService{
		constantsRepo: constantsRepo,
		logger:        logger,
	}
}

// Get returns the stored constants
func (s *ConstantsService) Get(ctx context.Context) (*ConstantsResponse, error) {
	c, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	response := ToConstantsResponse(c)
	return &response, nil
}

// Current returns the stored constants, persisting the defaults first when
// none have been saved
func (s *ConstantsService) Current(ctx context.Context) (costing.Constants, error) {
	c, err := s.constantsRepo.Get(ctx)
	if err == nil {
		return *c, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return costing.Constants{}, err
	}

	defaults := costing.DefaultConstants()
	if err := s.constantsRepo.Save(ctx, &defaults); err != nil {
		return costing.Constants{}, err
	}
	s.logger.Info("Costing constants initialised with defaults")
	return defaults, nil
}

// Update merges a partial update into the stored constants
func (s *ConstantsService) Update(ctx context.Context, req UpdateConstantsRequest) (*ConstantsResponse, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	next, err := current.Apply(req.toDomain())
	if err != nil {
		return nil, err
	}

	if err := s.constantsRepo.Save(ctx, &next); err != nil {
		return nil, err
	}

	s.logger.Info("Costing constants updated",
		zap.String("usd_rate", next.USDRate.String()),
		zap.String("subsidy_rate", next.SubsidyRate.String()),
		zap.String("subsidy_cap", next.SubsidyCap.String()),
	)

	response := ToConstantsResponse(next)
	return &response, nil
}

// Reset restores the default constants
func (s *ConstantsService) Reset(ctx context.Context) (*ConstantsResponse, error) {
	defaults := costing.DefaultConstants()
	if err := s.constantsRepo.Save(ctx, &defaults); err != nil {
		return nil, err
	}

	s.logger.Info("Costing constants reset to defaults")

	response := ToConstantsResponse(defaults)
	return &response, nil
}
