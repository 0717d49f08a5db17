package ops

import (
	"context"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// ExceptionRepository persists operational exceptions
type ExceptionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Exception, error)
	FindOpen(ctx context.Context, shopID uuid.UUID, filter shared.Filter) (*shared.Paginated[Exception], error)
	FindByOrder(ctx context.Context, shopID uuid.UUID, orderID string) ([]*Exception, error)
	Save(ctx context.Context, exception *Exception) error
	CountOpen(ctx context.Context, shopID uuid.UUID) (int64, error)
}

// EventHistoryRepository is the append-only audit log store. There is no
// update or delete on purpose.
type EventHistoryRepository interface {
	Append(ctx context.Context, event *EventHistory) error
	FindByEntity(ctx context.Context, shopID uuid.UUID, entityID string) ([]*EventHistory, error)
	FindByType(ctx context.Context, shopID uuid.UUID, eventType EventType, filter shared.Filter) (*shared.Paginated[EventHistory], error)
}

// ProductMetricRepository persists per-variant quality counters
type ProductMetricRepository interface {
	FindByVariant(ctx context.Context, shopID uuid.UUID, variantID string) (*ProductMetric, error)
	FindAll(ctx context.Context, shopID uuid.UUID) ([]*ProductMetric, error)
	FindSuppressedVariants(ctx context.Context, shopID uuid.UUID) ([]string, error)
	ListShops(ctx context.Context) ([]uuid.UUID, error)
	Upsert(ctx context.Context, metric *ProductMetric) error
}
