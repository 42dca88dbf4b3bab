package costing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shrimpcfr/backend/internal/domain/costing"
	"github.com/shrimpcfr/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockRateRepository is a mock implementation of costing.RateRepository
type MockRateRepository struct {
	mock.Mock
}

func (m *MockRateRepository) FindByID(ctx context.Context, id uuid.UUID) (*costing.Rate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*costing.Rate), args.Error(1)
}

func (m *MockRateRepository) FindAll(ctx context.Context, filter shared.Filter) ([]costing.Rate, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]costing.Rate), args.Error(1)
}

func (m *MockRateRepository) Save(ctx context.Context, rate *costing.Rate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockRateRepository) SaveBatch(ctx context.Context, rates []*costing.Rate) error {
	args := m.Called(ctx, rates)
	return args.Error(0)
}

func (m *MockRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRateRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRateRepository) ExistsByName(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

// MockProductRepository is a mock implementation of costing.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*costing.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*costing.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]costing.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]costing.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context) ([]costing.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]costing.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *costing.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveBatch(ctx context.Context, products []*costing.Product) error {
	args := m.Called(ctx, products)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockConstantsRepository is a mock implementation of costing.ConstantsRepository
type MockConstantsRepository struct {
	mock.Mock
}

func (m *MockConstantsRepository) Get(ctx context.Context) (*costing.Constants, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*costing.Constants), args.Error(1)
}

func (m *MockConstantsRepository) Save(ctx context.Context, constants *costing.Constants) error {
	args := m.Called(ctx, constants)
	return args.Error(0)
}

type staticRates costing.RateTable

func (r staticRates) Table(context.Context) (costing.RateTable, error) {
	return costing.RateTable(r), nil
}

type staticConstants costing.Constants

func (c staticConstants) Current(context.Context) (costing.Constants, error) {
	return costing.Constants(c), nil
}

type recordedCalculation struct {
	kind string
	err  error
}

type fakeRecorder struct {
	calls []recordedCalculation
}

func (r *fakeRecorder) RecordCalculation(_ context.Context, kind string, _ time.Duration, err error) {
	r.calls = append(r.calls, recordedCalculation{kind: kind, err: err})
}
