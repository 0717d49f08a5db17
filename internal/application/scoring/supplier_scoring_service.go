package scoring

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/ops"
	"github.com/momento/fulfillment/internal/domain/routing"
	"github.com/momento/fulfillment/internal/domain/supplier"
	"go.uber.org/zap"
)

// ScoringWindow is the trailing window of purchase-order outcomes a
// reliability score is computed over.
const ScoringWindow = 30 * 24 * time.Hour

// AuditReporter appends audit events on behalf of the scoring jobs
type AuditReporter interface {
	AppendEvent(ctx context.Context, shopID uuid.UUID, entityID, actor string, meta ops.EventMeta)
}

// SupplierScoringService recomputes supplier reliability scores from
// purchase-order outcomes
type SupplierScoringService struct {
	poRepo       routing.PurchaseOrderRepository
	supplierRepo supplier.Repository
	reporter     AuditReporter
	logger       *zap.Logger
}

// NewSupplierScoringService creates a new SupplierScoringService
func NewSupplierScoringService(
	poRepo routing.PurchaseOrderRepository,
	supplierRepo supplier.Repository,
	reporter AuditReporter,
	logger *zap.Logger,
) *SupplierScoringService {
	return &SupplierScoringService{
		poRepo:       poRepo,
		supplierRepo: supplierRepo,
		reporter:     reporter,
		logger:       logger,
	}
}

// Run recomputes every supplier's reliability score over the trailing
// window. A supplier with no purchase orders in the window keeps its
// current score. One supplier failing does not stop the run.
func (s *SupplierScoringService) Run(ctx context.Context) (*SupplierRunResult, error) {
	since := time.Now().Add(-ScoringWindow)

	outcomes, err := s.poRepo.OutcomeStats(ctx, since)
	if err != nil {
		return nil, err
	}

	result := &SupplierRunResult{WindowStart: since}
	for _, outcome := range outcomes {
		if outcome.Total == 0 {
			continue
		}
		result.Evaluated++

		report, err := s.scoreSupplier(ctx, outcome)
		if err != nil {
			s.logger.Error("supplier scoring failed",
				zap.String("supplier_id", outcome.SupplierID.String()),
				zap.Error(err))
			continue
		}
		if report.OldScore != report.NewScore {
			result.Updated++
		}
		result.Reports = append(result.Reports, *report)
	}

	s.logger.Info("supplier scoring run complete",
		zap.Int("evaluated", result.Evaluated),
		zap.Int("updated", result.Updated))

	return result, nil
}

func (s *SupplierScoringService) scoreSupplier(ctx context.Context, outcome routing.SupplierOutcome) (*SupplierScoreReport, error) {
	newScore := ComputeScore(outcome.Total, outcome.Failures)

	sup, err := s.supplierRepo.FindByID(ctx, outcome.SupplierID)
	if err != nil {
		return nil, err
	}

	previous := sup.UpdateReliabilityScore(newScore)
	if previous != sup.ReliabilityScore {
		if err := s.supplierRepo.Save(ctx, sup); err != nil {
			return nil, err
		}
	}

	// the audit row is written even when the score holds steady, so the
	// history shows every run that evaluated this supplier
	s.reporter.AppendEvent(ctx, uuid.Nil, sup.ID.String(), "scoring-job", ops.ScoreUpdateMeta{
		OldScore: previous,
		NewScore: sup.ReliabilityScore,
		Total:    outcome.Total,
		Failures: outcome.Failures,
	})

	return &SupplierScoreReport{
		SupplierID: sup.ID,
		OldScore:   previous,
		NewScore:   sup.ReliabilityScore,
		Total:      outcome.Total,
		Failures:   outcome.Failures,
	}, nil
}

// ComputeScore derives a reliability score from outcome counts: the rounded
// percentage of purchase orders that did not end canceled.
func ComputeScore(total, failures int64) int {
	if total <= 0 {
		return supplier.DefaultReliabilityScore
	}
	return int(math.Round(100 * float64(total-failures) / float64(total)))
}
