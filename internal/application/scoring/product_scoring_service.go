package scoring

import (
	"context"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/ops"
	"github.com/momento/fulfillment/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductScoringService evaluates per-variant return rates and operates the
// product kill switch
type ProductScoringService struct {
	metricRepo ops.ProductMetricRepository
	reporter   AuditReporter
	logger     *zap.Logger
}

// NewProductScoringService creates a new ProductScoringService
func NewProductScoringService(
	metricRepo ops.ProductMetricRepository,
	reporter AuditReporter,
	logger *zap.Logger,
) *ProductScoringService {
	return &ProductScoringService{
		metricRepo: metricRepo,
		reporter:   reporter,
		logger:     logger,
	}
}

// Run evaluates every shop's product metrics
func (s *ProductScoringService) Run(ctx context.Context) (*ProductRunResult, error) {
	shops, err := s.metricRepo.ListShops(ctx)
	if err != nil {
		return nil, err
	}

	total := &ProductRunResult{}
	for _, shopID := range shops {
		result, err := s.RunForShop(ctx, shopID)
		if err != nil {
			s.logger.Error("product scoring failed for shop",
				zap.String("shop_id", shopID.String()),
				zap.Error(err))
			continue
		}
		total.Evaluated += result.Evaluated
		total.Suppressed += result.Suppressed
		total.Restored += result.Restored
	}
	return total, nil
}

// RunForShop flips the kill switch for variants whose return rate crossed
// the threshold, and restores variants that recovered
func (s *ProductScoringService) RunForShop(ctx context.Context, shopID uuid.UUID) (*ProductRunResult, error) {
	metrics, err := s.metricRepo.FindAll(ctx, shopID)
	if err != nil {
		return nil, err
	}

	result := &ProductRunResult{Evaluated: len(metrics)}
	for _, metric := range metrics {
		shouldSuppress := metric.ShouldSuppress()
		switch {
		case shouldSuppress && !metric.Suppressed:
			metric.Suppress()
			if err := s.metricRepo.Upsert(ctx, metric); err != nil {
				s.logger.Error("failed to suppress variant",
					zap.String("variant_id", metric.VariantID),
					zap.Error(err))
				continue
			}
			result.Suppressed++
			s.reporter.AppendEvent(ctx, shopID, metric.VariantID, "scoring-job", ops.KillSwitchMeta{
				ReturnRate: metric.ReturnRate(),
				Reason:     "return rate above threshold",
			})
		case !shouldSuppress && metric.Suppressed:
			metric.Unsuppress()
			if err := s.metricRepo.Upsert(ctx, metric); err != nil {
				s.logger.Error("failed to restore variant",
					zap.String("variant_id", metric.VariantID),
					zap.Error(err))
				continue
			}
			result.Restored++
			s.reporter.AppendEvent(ctx, shopID, metric.VariantID, "scoring-job", ops.KillSwitchMeta{
				ReturnRate: metric.ReturnRate(),
				Reason:     "return rate recovered",
			})
		}
	}
	return result, nil
}

// RecordOrder counts a routed order line against a variant's metrics
func (s *ProductScoringService) RecordOrder(ctx context.Context, shopID uuid.UUID, variantID string) error {
	return s.record(ctx, shopID, variantID, (*ops.ProductMetric).RecordOrder)
}

// RecordReturn counts a returned unit against a variant's metrics
func (s *ProductScoringService) RecordReturn(ctx context.Context, shopID uuid.UUID, variantID string) error {
	return s.record(ctx, shopID, variantID, (*ops.ProductMetric).RecordReturn)
}

func (s *ProductScoringService) record(ctx context.Context, shopID uuid.UUID, variantID string, bump func(*ops.ProductMetric)) error {
	metric, err := s.metricRepo.FindByVariant(ctx, shopID, variantID)
	if err != nil {
		if !shared.IsNotFound(err) {
			return err
		}
		metric, err = ops.NewProductMetric(shopID, variantID)
		if err != nil {
			return err
		}
	}

	bump(metric)
	return s.metricRepo.Upsert(ctx, metric)
}
