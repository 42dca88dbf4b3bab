package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	appcosting "github.com/shrimpcfr/backend/internal/application/costing"
	"github.com/shrimpcfr/backend/internal/domain/costing"
	"github.com/shrimpcfr/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrUnsupportedFormat is returned for an export format with no renderer
var ErrUnsupportedFormat = shared.NewDomainError("UNSUPPORTED_FORMAT", "Unsupported export format")

// Archive keeps a copy of exported documents
type Archive interface {
	Store(ctx context.Context, key, contentType string, data []byte) (string, error)
}

// Option configures a ProductionReportService
type Option func(*ProductionReportService)

// WithRenderer registers a renderer under its format
func WithRenderer(r Renderer) Option {
	return func(s *ProductionReportService) {
		s.renderers[strings.ToLower(r.Format())] = r
	}
}

// WithArchive keeps a copy of every export
func WithArchive(a Archive) Option {
	return func(s *ProductionReportService) {
		s.archive = a
	}
}

// WithClock overrides the report timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *ProductionReportService) {
		s.now = now
	}
}

// ProductionReportService costs every product with the current rates and
// constants
type ProductionReportService struct {
	productRepo costing.ProductRepository
	rates       appcosting.RateTableProvider
	constants   appcosting.ConstantsProvider
	renderers   map[string]Renderer
	archive     Archive
	logger      *zap.Logger
	now         func() time.Time
}

// NewProductionReportService creates a new ProductionReportService
func NewProductionReportService(
	productRepo costing.ProductRepository,
	rates appcosting.RateTableProvider,
	constants appcosting.ConstantsProvider,
	logger *zap.Logger,
	opts ...Option,
) *ProductionReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &ProductionReportService{
		productRepo: productRepo,
		rates:       rates,
		constants:   constants,
		renderers:   make(map[string]Renderer),
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate costs every active product, or every product with
// IncludeInactive. A product that cannot be costed gets a zero row carrying
// the error instead of failing the report.
func (s *ProductionReportService) Generate(ctx context.Context, req GenerateRequest) (*ProductionReport, error) {
	products, err := s.products(ctx, req.IncludeInactive)
	if err != nil {
		return nil, err
	}

	table, err := s.rates.Table(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.constants.Current(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(products))
	for i := range products {
		rows = append(rows, s.costRow(&products[i], table, c))
	}

	return &ProductionReport{
		GeneratedAt: s.now(),
		Constants:   appcosting.ToConstantsResponse(c),
		Rows:        rows,
		Summary:     summarize(rows),
	}, nil
}

// Export renders the report in the requested format
func (s *ProductionReportService) Export(ctx context.Context, req ExportRequest) (*ExportResult, error) {
	format := strings.ToLower(strings.TrimSpace(req.Format))
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, ErrUnsupportedFormat
	}

	r, err := s.Generate(ctx, GenerateRequest{IncludeInactive: req.IncludeInactive})
	if err != nil {
		return nil, err
	}

	data, err := renderer.Render(r)
	if err != nil {
		return nil, fmt.Errorf("render %s report: %w", format, err)
	}

	result := &ExportResult{
		Data:        data,
		ContentType: renderer.ContentType(),
		FileName:    FileName(r.GeneratedAt, format),
	}

	if s.archive != nil {
		key, err := s.archive.Store(ctx, result.FileName, result.ContentType, data)
		if err != nil {
			return nil, fmt.Errorf("archive report: %w", err)
		}
		result.ArchiveKey = key
	}

	s.logger.Info("Production report exported",
		zap.String("format", format),
		zap.Int("products", len(r.Rows)),
		zap.Int("bytes", len(data)),
		zap.String("archive_key", result.ArchiveKey),
	)

	return result, nil
}

// FileName returns production-report-YYYYMMDD.<ext>
func FileName(at time.Time, ext string) string {
	return fmt.Sprintf("production-report-%s.%s", at.Format("20060102"), ext)
}

func (s *ProductionReportService) products(ctx context.Context, includeInactive bool) ([]costing.Product, error) {
	if !includeInactive {
		return s.productRepo.FindActive(ctx)
	}
	return s.productRepo.FindAll(ctx, shared.Filter{OrderBy: "species", OrderDir: "asc"})
}

func (s *ProductionReportService) costRow(p *costing.Product, table costing.RateTable, c costing.Constants) Row {
	row := Row{
		ProductID:       p.ID,
		Species:         p.Species,
		Specification:   p.Specification,
		Size:            p.Size,
		RangeLabel:      p.RangeLabel(),
		Status:          string(p.Status),
		Glazing:         p.Glazing,
		ReferenceWeight: p.ReferenceWeight,
	}

	result, err := costing.ProductCost(p, table, c, 1, nil)
	if err != nil {
		s.logger.Warn("Product could not be costed",
			zap.String("product_id", p.ID.String()),
			zap.Error(err),
		)
		row.Error = err.Error()
		return row
	}

	b := result.Breakdown
	row.ReferenceRMCost = costing.Round2(result.Rate)
	if b.AdjustedRMCost != nil {
		row.AdjustedRMCost = *b.AdjustedRMCost
	}
	row.TotalBDT = b.TotalBDT
	row.USDCost = b.USDCost
	row.PreSubsidyCost = b.PreSubsidyCost
	row.AppliedSubsidy = b.AppliedSubsidy
	row.FinalCFRCostUSD = b.FinalCFRCostUSD
	return row
}
