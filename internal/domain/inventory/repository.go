package inventory

import (
	"context"

	"github.com/google/uuid"
)

// MappedOffer is an offer joined to its SKU mapping, as used by the
// safe-quantity calculation.
type MappedOffer struct {
	VariantID   string
	SupplierSKU string
	Qty         int
}

// OfferRepository defines persistence for supplier offers
type OfferRepository interface {
	// UpsertBatch inserts or replaces offers keyed by (supplier, supplier SKU)
	// in a single conflict-resolving write committed on its own.
	UpsertBatch(ctx context.Context, offers []SupplierOffer) error

	// FindBySupplier returns all offers for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]SupplierOffer, error)

	// FindBySupplierAndSKU returns one offer row, or ErrNotFound
	FindBySupplierAndSKU(ctx context.Context, supplierID uuid.UUID, supplierSKU string) (*SupplierOffer, error)

	// FindMappedBySupplier joins offers to SKU mappings for the supplier;
	// offers with no mapping are excluded.
	FindMappedBySupplier(ctx context.Context, supplierID uuid.UUID) ([]MappedOffer, error)

	// CountBySupplier counts offer rows held for a supplier
	CountBySupplier(ctx context.Context, supplierID uuid.UUID) (int64, error)
}
