package costing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shrimpcfr/backend/internal/domain/costing"
	"github.com/shrimpcfr/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo costing.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo costing.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product, active unless the request says otherwise
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := costing.NewProduct(costing.ProductInput{
		Species:         req.Species,
		Specification:   req.Specification,
		Size:            req.Size,
		Glazing:         req.Glazing,
		Low:             req.Low,
		High:            req.High,
		ReferenceWeight: req.ReferenceWeight,
	})
	if err != nil {
		return nil, err
	}

	if req.Status == string(costing.ProductStatusInactive) {
		if err := product.Deactivate(); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products matching the search term and status
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = shared.DefaultPageSize
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
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
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	products, err := s.productRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToProductResponses(products), total, nil
}

// Update replaces the product attributes and, when given, its status
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	err = product.Update(costing.ProductInput{
		Species:         req.Species,
		Specification:   req.Specification,
		Size:            req.Size,
		Glazing:         req.Glazing,
		Low:             req.Low,
		High:            req.High,
		ReferenceWeight: req.ReferenceWeight,
	})
	if err != nil {
		return nil, err
	}

	if req.Status != "" && req.Status != string(product.Status) {
		product.ToggleStatus()
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Delete deletes a product
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, id)
}

// ToggleStatus flips a product between active and inactive
func (s *ProductService) ToggleStatus(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	product.ToggleStatus()
	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

func (s *ProductService) find(ctx context.Context, id uuid.UUID) (*costing.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, costing.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}
