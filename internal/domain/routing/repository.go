package routing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// SupplierOutcome aggregates purchase-order outcomes for one supplier over a
// trailing window, as consumed by the reliability scoring job.
type SupplierOutcome struct {
	SupplierID uuid.UUID
	Total      int64
	Failures   int64 // terminal status canceled
}

// PurchaseOrderRepository defines persistence for purchase orders
type PurchaseOrderRepository interface {
	// CreateWithLines persists a purchase order and its lines atomically.
	// The (orderID, supplierID) key is conflict-resolving: if another
	// invocation already created this pairing, no duplicate is written and
	// created is false.
	CreateWithLines(ctx context.Context, po *PurchaseOrder) (created bool, err error)

	// FindByID finds a purchase order with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderID finds all purchase orders created for an external order
	FindByOrderID(ctx context.Context, orderID string) ([]PurchaseOrder, error)

	// FindBySupplier finds purchase orders for a supplier matching the filter
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// Save persists status changes on an existing purchase order
	Save(ctx context.Context, po *PurchaseOrder) error

	// OutcomeStats aggregates per-supplier totals and canceled counts for
	// purchase orders created after the cutoff.
	OutcomeStats(ctx context.Context, since time.Time) ([]SupplierOutcome, error)
}

// CandidateFinder resolves routing candidates for one order line: active
// suppliers mapped to the variant whose current offer can cover the
// requested quantity and whose score clears the suppression threshold.
type CandidateFinder interface {
	FindCandidates(ctx context.Context, variantID string, qtyNeeded int) ([]Candidate, error)
}
