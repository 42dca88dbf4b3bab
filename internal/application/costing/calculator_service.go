package costing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/shrimpcfr/backend/internal/domain/costing"
	"github.com/shrimpcfr/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Calculation kinds reported to the CalculationRecorder
const (
	KindProductCost     = "product_cost"
	KindReferenceCost   = "reference_cost"
	KindFinalCFR        = "final_cfr"
	KindSubsidy         = "subsidy"
	KindSubsidyBatch    = "subsidy_batch"
	KindSubsidyValidate = "subsidy_validate"
	KindDemo            = "demo"
)

// RateTableProvider supplies the rate brackets used for lookups
type RateTableProvider interface {
	Table(ctx context.Context) (costing.RateTable, error)
}

// ConstantsProvider supplies the current costing constants
type ConstantsProvider interface {
	Current(ctx context.Context) (costing.Constants, error)
}

// CalculationRecorder observes finished calculations
type CalculationRecorder interface {
	RecordCalculation(ctx context.Context, kind string, duration time.Duration, err error)
}

type noopRecorder struct{}

func (noopRecorder) RecordCalculation(context.Context, string, time.Duration, error) {}

// CalculatorOption configures a CalculatorService
type CalculatorOption func(*CalculatorService)

// WithRecorder sets the recorder that counts calculations
func WithRecorder(r CalculationRecorder) CalculatorOption {
	return func(s *CalculatorService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the service logger
func WithLogger(l *zap.Logger) CalculatorOption {
	return func(s *CalculatorService) {
		if l != nil {
			s.logger = l
		}
	}
}

// CalculatorService runs the CFR costing pipeline against stored data
type CalculatorService struct {
	productRepo costing.ProductRepository
	rates       RateTableProvider
	constants   ConstantsProvider
	recorder    CalculationRecorder
	logger      *zap.Logger
}

// NewCalculatorService creates a new CalculatorService
func NewCalculatorService(
	productRepo costing.ProductRepository,
	rates RateTableProvider,
	constants ConstantsProvider,
	opts ...CalculatorOption,
) *CalculatorService {
	s := &CalculatorService{
		productRepo: productRepo,
		rates:       rates,
		constants:   constants,
		recorder:    noopRecorder{},
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CalculateProductCost costs a stored product for a quantity
func (s *CalculatorService) CalculateProductCost(ctx context.Context, req ProductCostRequest) (resp *ProductCostResponse, err error) {
	defer s.observe(ctx, KindProductCost, time.Now(), &err)

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		return nil, costing.ErrInvalidQuantity
	}
	if req.ActualWeight != nil && !req.ActualWeight.IsPositive() {
		return nil, costing.ErrInvalidActualWeight
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, costing.ErrProductNotFound
		}
		return nil, err
	}

	table, c, err := s.inputs(ctx)
	if err != nil {
		return nil, err
	}

	result, err := costing.ProductCost(product, table, c, quantity, req.ActualWeight)
	if err != nil {
		return nil, err
	}

	response := ToProductCostResponse(result)
	return &response, nil
}

// ReferenceRMCost averages the stored rates over [low, high]
func (s *CalculatorService) ReferenceRMCost(ctx context.Context, req ReferenceCostRequest) (resp *ReferenceCostResponse, err error) {
	defer s.observe(ctx, KindReferenceCost, time.Now(), &err)

	if req.High < req.Low {
		return nil, shared.NewDomainError("INVALID_SIZE_RANGE", "High size count cannot be less than low size count")
	}
	if req.High > costing.MaxSizeCount {
		return nil, shared.NewDomainError("INVALID_SIZE_RANGE", fmt.Sprintf("Size count cannot exceed %d", costing.MaxSizeCount))
	}

	table, err := s.rates.Table(ctx)
	if err != nil {
		return nil, err
	}

	avg, err := costing.ReferenceRMCost(table, req.Low, req.High)
	if err != nil {
		return nil, err
	}

	return &ReferenceCostResponse{
		Low:             req.Low,
		High:            req.High,
		ReferenceRMCost: avg,
		Rounded:         costing.Round2(avg),
	}, nil
}

// FinalCFR converts a BDT cost to the final CFR with the current constants
func (s *CalculatorService) FinalCFR(ctx context.Context, req FinalCFRRequest) (resp *BreakdownResponse, err error) {
	defer s.observe(ctx, KindFinalCFR, time.Now(), &err)

	if req.BDTCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BDT_COST", "BDT cost cannot be negative")
	}

	c, err := s.constants.Current(ctx)
	if err != nil {
		return nil, err
	}

	breakdown := ToBreakdownResponse(costing.FinalCFR(req.BDTCost, c))
	return &breakdown, nil
}

// Subsidy calculates a single capped subsidy
func (s *CalculatorService) Subsidy(ctx context.Context, req SubsidyRequest) (resp *SubsidyResponse, err error) {
	defer s.observe(ctx, KindSubsidy, time.Now(), &err)

	c, err := s.constants.Current(ctx)
	if err != nil {
		return nil, err
	}

	in, err := subsidyInput(req, c)
	if err != nil {
		return nil, err
	}

	response := toSubsidyResponse(in, costing.CalculateSubsidy(in))
	return &response, nil
}

// SubsidyBatch calculates every item in order
func (s *CalculatorService) SubsidyBatch(ctx context.Context, req SubsidyBatchRequest) (resp []SubsidyResponse, err error) {
	defer s.observe(ctx, KindSubsidyBatch, time.Now(), &err)

	c, err := s.constants.Current(ctx)
	if err != nil {
		return nil, err
	}

	inputs := make([]costing.SubsidyInput, len(req.Items))
	for i, item := range req.Items {
		in, err := subsidyInput(item, c)
		if err != nil {
			return nil, err
		}
		inputs[i] = in
	}

	results := costing.CalculateSubsidyBatch(inputs)
	responses := make([]SubsidyResponse, len(results))
	for i := range results {
		responses[i] = toSubsidyResponse(inputs[i], results[i])
	}
	return responses, nil
}

// ValidateSubsidy checks that rounding keeps a subsidy within one cent
func (s *CalculatorService) ValidateSubsidy(ctx context.Context, req SubsidyRequest) (resp *SubsidyValidationResponse, err error) {
	defer s.observe(ctx, KindSubsidyValidate, time.Now(), &err)

	c, err := s.constants.Current(ctx)
	if err != nil {
		return nil, err
	}

	in, err := subsidyInput(req, c)
	if err != nil {
		return nil, err
	}

	return &SubsidyValidationResponse{
		Valid:  costing.ValidateSubsidy(in),
		Result: toSubsidyResponse(in, costing.CalculateSubsidy(in)),
	}, nil
}

// Demo runs the glazing method over the factory rate table with the
// default constants, independent of stored data
func (s *CalculatorService) Demo(ctx context.Context, req DemoRequest) (resp *DemoResponse, err error) {
	defer s.observe(ctx, KindDemo, time.Now(), &err)

	low, high, err := costing.ParseSizeRange(req.SizeRange)
	if err != nil {
		return nil, err
	}
	if !req.Glazing.IsPositive() || req.Glazing.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_GLAZING", "Glazing must be greater than 0 and at most 100")
	}
	if !req.ReferenceWeight.IsPositive() {
		return nil, shared.NewDomainError("INVALID_REFERENCE_WEIGHT", "Reference weight must be positive")
	}

	table, err := costing.DefaultRateTable()
	if err != nil {
		return nil, err
	}

	refRM, err := costing.ReferenceRMCost(table, low, high)
	if err != nil {
		return nil, err
	}

	c := costing.DefaultConstants()
	breakdown := costing.WithGlazingPercentage(refRM, req.Glazing.Div(decimal.NewFromInt(100)), req.ReferenceWeight, c)

	return &DemoResponse{
		SizeRange:       req.SizeRange,
		Low:             low,
		High:            high,
		ApplicableRates: ToRateResponses(table.Overlapping(low, high)),
		ReferenceRMCost: costing.Round2(refRM),
		Constants:       ToConstantsResponse(c),
		Breakdown:       ToBreakdownResponse(breakdown),
	}, nil
}

func (s *CalculatorService) inputs(ctx context.Context) (costing.RateTable, costing.Constants, error) {
	table, err := s.rates.Table(ctx)
	if err != nil {
		return nil, costing.Constants{}, err
	}
	c, err := s.constants.Current(ctx)
	if err != nil {
		return nil, costing.Constants{}, err
	}
	return table, c, nil
}

func (s *CalculatorService) observe(ctx context.Context, kind string, start time.Time, errp *error) {
	elapsed := time.Since(start)
	s.recorder.RecordCalculation(ctx, kind, elapsed, *errp)
	if *errp != nil {
		s.logger.Debug("Calculation failed",
			zap.String("kind", kind),
			zap.Duration("duration", elapsed),
			zap.Error(*errp),
		)
	}
}

func subsidyInput(req SubsidyRequest, c costing.Constants) (costing.SubsidyInput, error) {
	in := costing.SubsidyInput{
		PreSubsidyCost: req.PreSubsidyCost,
		SubsidyRate:    c.SubsidyRate,
		SubsidyCap:     c.SubsidyCap,
	}
	if req.SubsidyRate != nil {
		in.SubsidyRate = *req.SubsidyRate
	}
	if req.SubsidyCap != nil {
		in.SubsidyCap = *req.SubsidyCap
	}

	if in.PreSubsidyCost.IsNegative() {
		return in, shared.NewDomainError("INVALID_PRE_SUBSIDY_COST", "Pre-subsidy cost cannot be negative")
	}
	if in.SubsidyRate.IsNegative() || in.SubsidyRate.GreaterThan(decimal.NewFromInt(1)) {
		return in, shared.NewDomainError("INVALID_SUBSIDY_RATE", "Subsidy rate must be between 0 and 1")
	}
	if in.SubsidyCap.IsNegative() {
		return in, shared.NewDomainError("INVALID_SUBSIDY_CAP", "Subsidy cap cannot be negative")
	}
	return in, nil
}

func toSubsidyResponse(in costing.SubsidyInput, r costing.SubsidyResult) SubsidyResponse {
	return SubsidyResponse{
		PreSubsidyCost: r.PreSubsidyCost,
		Subsidy:        r.Subsidy,
		FinalCFRCost:   r.FinalCFRCost,
		SubsidyRate:    in.SubsidyRate,
		SubsidyCap:     in.SubsidyCap,
	}
}
