package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momento/fulfillment/internal/domain/ops"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// GormProductMetricRepository implements ops.ProductMetricRepository using GORM
type GormProductMetricRepository struct {
	db *gorm.DB
}

// NewGormProductMetricRepository creates a new GormProductMetricRepository
func NewGormProductMetricRepository(db *gorm.DB) *GormProductMetricRepository {
	return &GormProductMetricRepository{db: db}
}

// FindByVariant returns the metric row for a (shop, variant) pair
func (r *GormProductMetricRepository) FindByVariant(ctx context.Context, shopID uuid.UUID, variantID string) (*ops.ProductMetric, error) {
	var metric ops.ProductMetric
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND variant_id = ?", shopID, variantID).
		First(&metric).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &metric, nil
}

// FindAll returns all metric rows for a shop
func (r *GormProductMetricRepository) FindAll(ctx context.Context, shopID uuid.UUID) ([]*ops.ProductMetric, error) {
	var metrics []*ops.ProductMetric
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("variant_id ASC").
		Find(&metrics).Error; err != nil {
		return nil, err
	}
	return metrics, nil
}

// FindSuppressedVariants returns the variant IDs currently suppressed for a shop
func (r *GormProductMetricRepository) FindSuppressedVariants(ctx context.Context, shopID uuid.UUID) ([]string, error) {
	var variants []string
	if err := r.db.WithContext(ctx).
		Model(&ops.ProductMetric{}).
		Where("shop_id = ? AND suppressed = ?", shopID, true).
		Order("variant_id ASC").
		Pluck("variant_id", &variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// ListShops returns the distinct shop IDs that have metric rows
func (r *GormProductMetricRepository) ListShops(ctx context.Context) ([]uuid.UUID, error) {
	var shops []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&ops.ProductMetric{}).
		Distinct("shop_id").
		Order("shop_id ASC").
		Pluck("shop_id", &shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

// Upsert inserts or replaces the metric row for its (shop, variant) key
func (r *GormProductMetricRepository) Upsert(ctx context.Context, metric *ops.ProductMetric) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "shop_id"}, {Name: "variant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"order_count",
				"return_count",
				"suppressed",
				"updated_at",
			}),
		}).
		Create(metric).Error
}

// Ensure GormProductMetricRepository implements ops.ProductMetricRepository
var _ ops.ProductMetricRepository = (*GormProductMetricRepository)(nil)
