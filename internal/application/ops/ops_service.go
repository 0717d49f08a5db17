package ops

import (
	"context"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/ops"
	"github.com/momento/fulfillment/internal/domain/shared"
	"go.uber.org/zap"
)

// OpsService handles the exception queue and the audit log
type OpsService struct {
	exceptionRepo ops.ExceptionRepository
	eventRepo     ops.EventHistoryRepository
	logger        *zap.Logger
}

// NewOpsService creates a new OpsService
func NewOpsService(
	exceptionRepo ops.ExceptionRepository,
	eventRepo ops.EventHistoryRepository,
	logger *zap.Logger,
) *OpsService {
	return &OpsService{
		exceptionRepo: exceptionRepo,
		eventRepo:     eventRepo,
		logger:        logger,
	}
}

// Raise records a new open exception. It never returns an error to the
// caller: an exception raised from a failure path must not introduce a
// second failure path, so persistence errors are logged and swallowed.
func (s *OpsService) Raise(ctx context.Context, req RaiseExceptionRequest) {
	exc, err := ops.NewException(req.ShopID, req.Type, req.Severity, req.Ref, req.Notes)
	if err != nil {
		s.logger.Error("invalid exception dropped",
			zap.String("type", string(req.Type)),
			zap.Error(err))
		return
	}

	if err := s.exceptionRepo.Save(ctx, exc); err != nil {
		s.logger.Error("failed to persist exception",
			zap.String("type", string(req.Type)),
			zap.String("order_id", req.Ref.OrderID),
			zap.Error(err))
		return
	}

	s.logger.Warn("exception raised",
		zap.String("exception_id", exc.ID.String()),
		zap.String("type", string(exc.Type)),
		zap.String("severity", string(exc.Severity)),
		zap.String("order_id", exc.Ref.OrderID))
}

// GetException retrieves one exception by ID
func (s *OpsService) GetException(ctx context.Context, id uuid.UUID) (*ExceptionResponse, error) {
	exc, err := s.exceptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToExceptionResponse(exc)
	return &response, nil
}

// ListOpen returns the open exception queue for a shop, newest first
func (s *OpsService) ListOpen(ctx context.Context, shopID uuid.UUID, filter ExceptionListFilter) (*shared.Paginated[ExceptionResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}

	page, err := s.exceptionRepo.FindOpen(ctx, shopID, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToExceptionResponses(page.Items), page.Total, page.Page, page.PageSize)
	return &result, nil
}

// StartProgress marks an exception as being worked on
func (s *OpsService) StartProgress(ctx context.Context, id uuid.UUID) (*ExceptionResponse, error) {
	return s.mutate(ctx, id, func(exc *ops.Exception) error {
		return exc.StartProgress()
	})
}

// Resolve closes an exception as handled
func (s *OpsService) Resolve(ctx context.Context, id uuid.UUID, req ResolveExceptionRequest) (*ExceptionResponse, error) {
	return s.mutate(ctx, id, func(exc *ops.Exception) error {
		return exc.Resolve(req.Notes)
	})
}

// Ignore closes an exception without action
func (s *OpsService) Ignore(ctx context.Context, id uuid.UUID, req ResolveExceptionRequest) (*ExceptionResponse, error) {
	return s.mutate(ctx, id, func(exc *ops.Exception) error {
		return exc.Ignore(req.Notes)
	})
}

func (s *OpsService) mutate(ctx context.Context, id uuid.UUID, apply func(*ops.Exception) error) (*ExceptionResponse, error) {
	exc, err := s.exceptionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(exc); err != nil {
		return nil, err
	}

	if err := s.exceptionRepo.Save(ctx, exc); err != nil {
		return nil, err
	}

	response := ToExceptionResponse(exc)
	return &response, nil
}

// AppendEvent writes a typed audit event. Like Raise it is best effort:
// audit failures are logged, never propagated, since a lost audit row must
// not fail the operation it describes.
func (s *OpsService) AppendEvent(ctx context.Context, shopID uuid.UUID, entityID, actor string, meta ops.EventMeta) {
	event, err := ops.NewEventHistory(shopID, entityID, actor, meta)
	if err != nil {
		s.logger.Error("invalid audit event dropped",
			zap.String("entity_id", entityID),
			zap.Error(err))
		return
	}

	if err := s.eventRepo.Append(ctx, event); err != nil {
		s.logger.Error("failed to append audit event",
			zap.String("event_type", string(event.EventType)),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

// ListEventsByEntity returns the audit trail for one entity
func (s *OpsService) ListEventsByEntity(ctx context.Context, shopID uuid.UUID, entityID string) ([]EventResponse, error) {
	events, err := s.eventRepo.FindByEntity(ctx, shopID, entityID)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, len(events))
	for i, e := range events {
		responses[i] = ToEventResponse(e)
	}
	return responses, nil
}

// ListEventsByType returns paginated audit events of one type for a shop
func (s *OpsService) ListEventsByType(ctx context.Context, shopID uuid.UUID, eventType ops.EventType, filter ExceptionListFilter) (*shared.Paginated[EventResponse], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}

	page, err := s.eventRepo.FindByType(ctx, shopID, eventType, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToEventResponses(page.Items), page.Total, page.Page, page.PageSize)
	return &result, nil
}
