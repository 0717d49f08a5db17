package persistence

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/momento/fulfillment/internal/domain/ops"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// GormEventHistoryRepository implements ops.EventHistoryRepository using
// GORM. The table is append-only; this type exposes no update or delete.
type GormEventHistoryRepository struct {
	db *gorm.DB
}

// NewGormEventHistoryRepository creates a new GormEventHistoryRepository
func NewGormEventHistoryRepository(db *gorm.DB) *GormEventHistoryRepository {
	return &GormEventHistoryRepository{db: db}
}

// Append writes one audit event
func (r *GormEventHistoryRepository) Append(ctx context.Context, event *ops.EventHistory) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// FindByEntity returns all events recorded against an entity, newest first
func (r *GormEventHistoryRepository) FindByEntity(ctx context.Context, shopID uuid.UUID, entityID string) ([]*ops.EventHistory, error) {
	var events []*ops.EventHistory
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND entity_id = ?", shopID, entityID).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindByType returns a page of events of one type for a shop, newest first
func (r *GormEventHistoryRepository) FindByType(ctx context.Context, shopID uuid.UUID, eventType ops.EventType, filter shared.Filter) (*shared.Paginated[ops.EventHistory], error) {
	base := r.db.WithContext(ctx).
		Model(&ops.EventHistory{}).
		Where("shop_id = ? AND event_type = ?", shopID, eventType).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	orderDir := "DESC"
	if strings.ToLower(filter.OrderDir) == "asc" {
		orderDir = "ASC"
	}

	var items []ops.EventHistory
	if err := base.
		Order("created_at " + orderDir).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(items, total, page, pageSize)
	return &result, nil
}

// Ensure GormEventHistoryRepository implements ops.EventHistoryRepository
var _ ops.EventHistoryRepository = (*GormEventHistoryRepository)(nil)
