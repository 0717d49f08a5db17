package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/momento/fulfillment/internal/domain/supplier"
)

// GormPolicyRepository implements supplier.PolicyRepository using GORM
type GormPolicyRepository struct {
	db *gorm.DB
}

// NewGormPolicyRepository creates a new GormPolicyRepository
func NewGormPolicyRepository(db *gorm.DB) *GormPolicyRepository {
	return &GormPolicyRepository{db: db}
}

// FindByShopAndSupplier returns the policy for a (shop, supplier) pair
func (r *GormPolicyRepository) FindByShopAndSupplier(ctx context.Context, shopID, supplierID uuid.UUID) (*supplier.ShopSupplierPolicy, error) {
	var policy supplier.ShopSupplierPolicy
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND supplier_id = ?", shopID, supplierID).
		First(&policy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &policy, nil
}

// FindBySupplier returns all policies configured for a supplier
func (r *GormPolicyRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID) ([]supplier.ShopSupplierPolicy, error) {
	var policies []supplier.ShopSupplierPolicy
	if err := r.db.WithContext(ctx).
		Where("supplier_id = ?", supplierID).
		Order("shop_id ASC").
		Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}

// Upsert inserts or replaces the policy for its (shop, supplier) key
func (r *GormPolicyRepository) Upsert(ctx context.Context, policy *supplier.ShopSupplierPolicy) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "shop_id"}, {Name: "supplier_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"buffer_stock",
				"min_margin",
				"enabled",
				"updated_at",
			}),
		}).
		Create(policy).Error
}

// Ensure GormPolicyRepository implements supplier.PolicyRepository
var _ supplier.PolicyRepository = (*GormPolicyRepository)(nil)
