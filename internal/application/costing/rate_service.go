package costing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shrimpcfr/backend/internal/domain/costing"
	"github.com/shrimpcfr/backend/internal/domain/shared"
)

var errRateNotFound = shared.NewDomainError("NOT_FOUND", "Rate not found")

// RateService handles rate bracket operations
type RateService struct {
	rateRepo costing.RateRepository
}

// NewRateService creates a new RateService
func NewRateService(rateRepo costing.RateRepository) *RateService {
	return &RateService{rateRepo: rateRepo}
}

// Create creates a new rate bracket
func (s *RateService) Create(ctx context.Context, req CreateRateRequest) (*RateResponse, error) {
	exists, err := s.rateRepo.ExistsByName(ctx, req.Name, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Rate with this name already exists")
	}

	rate, err := costing.NewRate(req.Name, req.Low, req.High, req.Rate)
	if err != nil {
		return nil, err
	}

	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}

	response := ToRateResponse(rate)
	return &response, nil
}

// GetByID retrieves a rate bracket by ID
func (s *RateService) GetByID(ctx context.Context, id uuid.UUID) (*RateResponse, error) {
	rate, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToRateResponse(rate)
	return &response, nil
}

// List retrieves rate brackets ordered by their low bound
func (s *RateService) List(ctx context.Context, filter RateListFilter) ([]RateResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = shared.DefaultPageSize
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "low"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
	}

	rates, err := s.rateRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.rateRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToRateResponses(rates), total, nil
}

// Update replaces a rate bracket
func (s *RateService) Update(ctx context.Context, id uuid.UUID, req UpdateRateRequest) (*RateResponse, error) {
	rate, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	exists, err := s.rateRepo.ExistsByName(ctx, req.Name, &id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Rate with this name already exists")
	}

	if err := rate.Update(req.Name, req.Low, req.High, req.Rate); err != nil {
		return nil, err
	}

	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}

	response := ToRateResponse(rate)
	return &response, nil
}

// Delete deletes a rate bracket
func (s *RateService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.rateRepo.Delete(ctx, id)
}

// LookupByQuantity returns the first bracket containing quantity
func (s *RateService) LookupByQuantity(ctx context.Context, quantity int) (*RateResponse, error) {
	table, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	rate, err := table.ForQuantity(quantity)
	if err != nil {
		return nil, err
	}

	response := ToRateResponse(rate)
	return &response, nil
}

// Table returns every stored bracket in lookup order
func (s *RateService) Table(ctx context.Context) (costing.RateTable, error) {
	rates, err := s.rateRepo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}
	return costing.RateTable(rates), nil
}

func (s *RateService) find(ctx context.Context, id uuid.UUID) (*costing.Rate, error) {
	rate, err := s.rateRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, errRateNotFound
		}
		return nil, err
	}
	return rate, nil
}
