package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/inventory"
	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/momento/fulfillment/internal/domain/supplier"
	"go.uber.org/zap"
)

// UpsertBatchSize is the number of offers written per conflict-resolving
// batch. Each batch commits on its own so one bad batch cannot roll back
// the rest of a large feed.
const UpsertBatchSize = 100

// ReconcilerService ingests supplier stock feeds and computes sellable
// quantities
type ReconcilerService struct {
	offerRepo    inventory.OfferRepository
	supplierRepo supplier.Repository
	policyRepo   supplier.PolicyRepository
	logger       *zap.Logger
}

// NewReconcilerService creates a new ReconcilerService
func NewReconcilerService(
	offerRepo inventory.OfferRepository,
	supplierRepo supplier.Repository,
	policyRepo supplier.PolicyRepository,
	logger *zap.Logger,
) *ReconcilerService {
	return &ReconcilerService{
		offerRepo:    offerRepo,
		supplierRepo: supplierRepo,
		policyRepo:   policyRepo,
		logger:       logger,
	}
}

// IngestOffers replaces the stored stock positions for a supplier feed.
// Malformed items are skipped individually, valid items are written in
// batches of UpsertBatchSize, and a failed batch is reported without
// aborting the batches after it.
func (s *ReconcilerService) IngestOffers(ctx context.Context, supplierID uuid.UUID, req IngestOffersRequest) (*IngestResult, error) {
	sup, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if sup.Status == supplier.StatusInactive {
		return nil, shared.NewDomainError("SUPPLIER_INACTIVE", "Cannot ingest offers for an inactive supplier")
	}

	result := &IngestResult{Received: len(req.Offers)}
	fetchedAt := time.Now()

	valid := make([]inventory.SupplierOffer, 0, len(req.Offers))
	for _, item := range req.Offers {
		offer, err := inventory.NewSupplierOffer(
			supplierID,
			item.SupplierSKU,
			item.Qty,
			item.Cost,
			item.Currency,
			item.LeadTimeDays,
			item.ShipsFromRegion,
		)
		if err != nil {
			result.Skipped = append(result.Skipped, SkippedOffer{
				SupplierSKU: item.SupplierSKU,
				Reason:      err.Error(),
			})
			continue
		}
		offer.FetchedAt = fetchedAt
		valid = append(valid, *offer)
	}

	for start := 0; start < len(valid); start += UpsertBatchSize {
		end := start + UpsertBatchSize
		if end > len(valid) {
			end = len(valid)
		}
		batch := valid[start:end]

		if err := s.offerRepo.UpsertBatch(ctx, batch); err != nil {
			result.FailedBatches++
			s.logger.Error("offer batch upsert failed",
				zap.String("supplier_id", supplierID.String()),
				zap.Int("batch_start", start),
				zap.Int("batch_size", len(batch)),
				zap.Error(err))
			continue
		}
		result.Upserted += len(batch)
	}

	s.logger.Info("offer feed ingested",
		zap.String("supplier_id", supplierID.String()),
		zap.Int("received", result.Received),
		zap.Int("upserted", result.Upserted),
		zap.Int("skipped", len(result.Skipped)),
		zap.Int("failed_batches", result.FailedBatches))

	return result, nil
}

// ListOffers returns the stored stock positions for a supplier
func (s *ReconcilerService) ListOffers(ctx context.Context, supplierID uuid.UUID) ([]OfferResponse, error) {
	offers, err := s.offerRepo.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return ToOfferResponses(offers), nil
}

// ComputeSafeQuantities derives the sellable quantity per mapped variant for
// a supplier using the default safety buffer. Offers without a SKU mapping
// do not appear in the result.
func (s *ReconcilerService) ComputeSafeQuantities(ctx context.Context, supplierID uuid.UUID) ([]SafeQuantity, error) {
	return s.computeSafeQuantities(ctx, supplierID, inventory.DefaultSafetyBuffer)
}

// ComputeSafeQuantitiesForShop is ComputeSafeQuantities with the buffer
// taken from the shop's policy for the supplier. A missing or disabled
// policy falls back to the default buffer.
func (s *ReconcilerService) ComputeSafeQuantitiesForShop(ctx context.Context, shopID, supplierID uuid.UUID) ([]SafeQuantity, error) {
	buffer := inventory.DefaultSafetyBuffer

	policy, err := s.policyRepo.FindByShopAndSupplier(ctx, shopID, supplierID)
	switch {
	case err == nil:
		if policy.Enabled {
			buffer = policy.BufferStock
		}
	case shared.IsNotFound(err):
		// no policy configured, default buffer applies
	default:
		return nil, err
	}

	return s.computeSafeQuantities(ctx, supplierID, buffer)
}

func (s *ReconcilerService) computeSafeQuantities(ctx context.Context, supplierID uuid.UUID, buffer int) ([]SafeQuantity, error) {
	mapped, err := s.offerRepo.FindMappedBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	quantities := make([]SafeQuantity, len(mapped))
	for i, m := range mapped {
		quantities[i] = SafeQuantity{
			VariantID:   m.VariantID,
			SupplierSKU: m.SupplierSKU,
			RawQty:      m.Qty,
			SafeQty:     inventory.SafeQuantity(m.Qty, buffer),
		}
	}
	return quantities, nil
}
