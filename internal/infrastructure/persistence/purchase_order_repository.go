package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momento/fulfillment/internal/domain/routing"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// GormPurchaseOrderRepository implements routing.PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// CreateWithLines persists a purchase order and its lines in one transaction.
// The insert resolves conflicts on the (order_id, supplier_id) unique key
// with DO NOTHING, so a concurrent duplicate routing run loses the race
// cleanly: created is false and no lines are written.
func (r *GormPurchaseOrderRepository) CreateWithLines(ctx context.Context, po *routing.PurchaseOrder) (bool, error) {
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Omit("Lines").
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "order_id"}, {Name: "supplier_id"}},
				DoNothing: true,
			}).
			Create(po)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil // Lost the race, another run owns this pairing
		}

		created = true
		if len(po.Lines) == 0 {
			return nil
		}
		return tx.Create(&po.Lines).Error
	})
	if err != nil {
		return false, err
	}

	return created, nil
}

// FindByID finds a purchase order with its lines
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*routing.PurchaseOrder, error) {
	var po routing.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&po, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindByOrderID finds all purchase orders created for an external order
func (r *GormPurchaseOrderRepository) FindByOrderID(ctx context.Context, orderID string) ([]routing.PurchaseOrder, error) {
	var pos []routing.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("order_id = ?", orderID).
		Order("supplier_id ASC").
		Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}

// FindBySupplier finds purchase orders for a supplier matching the filter
func (r *GormPurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]routing.PurchaseOrder, error) {
	query := r.db.WithContext(ctx).
		Preload("Lines").
		Where("supplier_id = ?", supplierID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	var pos []routing.PurchaseOrder
	if err := query.Find(&pos).Error; err != nil {
		return nil, err
	}
	return pos, nil
}

// Save persists status changes on an existing purchase order
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, po *routing.PurchaseOrder) error {
	return r.db.WithContext(ctx).Omit("Lines").Save(po).Error
}

// OutcomeStats aggregates per-supplier totals and canceled counts for
// purchase orders created after the cutoff.
func (r *GormPurchaseOrderRepository) OutcomeStats(ctx context.Context, since time.Time) ([]routing.SupplierOutcome, error) {
	var outcomes []routing.SupplierOutcome
	if err := r.db.WithContext(ctx).
		Table("purchase_orders").
		Select("supplier_id AS supplier_id, COUNT(*) AS total, COUNT(*) FILTER (WHERE status = ?) AS failures", routing.PurchaseOrderStatusCanceled).
		Where("created_at >= ?", since).
		Group("supplier_id").
		Order("supplier_id ASC").
		Scan(&outcomes).Error; err != nil {
		return nil, err
	}
	return outcomes, nil
}

// Ensure GormPurchaseOrderRepository implements routing.PurchaseOrderRepository
var _ routing.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
