package supplier

import (
	"context"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// Repository defines the interface for supplier persistence
type Repository interface {
	// FindByID finds a supplier by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindByCode finds a supplier by its code
	FindByCode(ctx context.Context, code string) (*Supplier, error)

	// FindAll finds all suppliers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)

	// FindActive finds all suppliers in active rotation, stable order
	FindActive(ctx context.Context) ([]Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, s *Supplier) error

	// Count counts suppliers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByID checks if a supplier with the given ID exists
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// ExistsByCode checks if a supplier with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// PolicyRepository defines persistence for per-(shop, supplier) policies
type PolicyRepository interface {
	// FindByShopAndSupplier returns the policy for the pair, or ErrNotFound
	FindByShopAndSupplier(ctx context.Context, shopID, supplierID uuid.UUID) (*ShopSupplierPolicy, error)

	// FindBySupplier returns all policies configured for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]ShopSupplierPolicy, error)

	// Upsert inserts or replaces the policy for its (shop, supplier) key
	Upsert(ctx context.Context, policy *ShopSupplierPolicy) error
}

// SkuMappingRepository defines persistence for supplier SKU mappings
type SkuMappingRepository interface {
	// FindByVariant returns all mappings that resolve the given variant
	FindByVariant(ctx context.Context, variantID string) ([]SkuMapping, error)

	// FindBySupplier returns all mappings for a supplier
	FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]SkuMapping, error)

	// UpsertBatch inserts or replaces mappings keyed by (supplier, supplier SKU)
	UpsertBatch(ctx context.Context, mappings []SkuMapping) error
}
