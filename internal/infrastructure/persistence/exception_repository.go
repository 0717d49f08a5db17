package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/momento/fulfillment/internal/domain/ops"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// GormExceptionRepository implements ops.ExceptionRepository using GORM
type GormExceptionRepository struct {
	db *gorm.DB
}

// NewGormExceptionRepository creates a new GormExceptionRepository
func NewGormExceptionRepository(db *gorm.DB) *GormExceptionRepository {
	return &GormExceptionRepository{db: db}
}

// FindByID finds an exception by its ID
func (r *GormExceptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*ops.Exception, error) {
	var exception ops.Exception
	if err := r.db.WithContext(ctx).First(&exception, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &exception, nil
}

// FindOpen returns a page of open exceptions for a shop, newest first
func (r *GormExceptionRepository) FindOpen(ctx context.Context, shopID uuid.UUID, filter shared.Filter) (*shared.Paginated[ops.Exception], error) {
	base := r.applyTypeFilters(
		r.db.WithContext(ctx).Model(&ops.Exception{}).
			Where("shop_id = ? AND status = ?", shopID, ops.ExceptionStatusOpen),
		filter,
	).Session(&gorm.Session{})

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

	orderBy := "created_at"
	if filter.OrderBy != "" {
		orderBy = filter.OrderBy
	}
	orderDir := "DESC"
	if strings.ToLower(filter.OrderDir) == "asc" {
		orderDir = "ASC"
	}

	var items []ops.Exception
	if err := base.
		Order(orderBy + " " + orderDir).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&items).Error; err != nil {
		return nil, err
	}

	result := shared.NewPaginated(items, total, page, pageSize)
	return &result, nil
}

// FindByOrder returns all exceptions raised for an external order
func (r *GormExceptionRepository) FindByOrder(ctx context.Context, shopID uuid.UUID, orderID string) ([]*ops.Exception, error) {
	var exceptions []*ops.Exception
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND entity_ref->>'order_id' = ?", shopID, orderID).
		Order("created_at DESC").
		Find(&exceptions).Error; err != nil {
		return nil, err
	}
	return exceptions, nil
}

// Save creates or updates an exception
func (r *GormExceptionRepository) Save(ctx context.Context, exception *ops.Exception) error {
	return r.db.WithContext(ctx).Save(exception).Error
}

// CountOpen counts open exceptions for a shop
func (r *GormExceptionRepository) CountOpen(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ops.Exception{}).
		Where("shop_id = ? AND status = ?", shopID, ops.ExceptionStatusOpen).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormExceptionRepository) applyTypeFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "severity":
			query = query.Where("severity = ?", value)
		}
	}
	return query
}

// Ensure GormExceptionRepository implements ops.ExceptionRepository
var _ ops.ExceptionRepository = (*GormExceptionRepository)(nil)
