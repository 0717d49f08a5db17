package routing

import (
	"context"

	"github.com/google/uuid"
	appops "github.com/momento/fulfillment/internal/application/ops"
	"github.com/momento/fulfillment/internal/domain/ops"
	"github.com/momento/fulfillment/internal/domain/routing"
	"github.com/momento/fulfillment/internal/domain/shared"
	"go.uber.org/zap"
)

// OpsReporter raises exceptions and appends audit events on behalf of the
// routing engine. Both operations are best effort and never return errors.
type OpsReporter interface {
	Raise(ctx context.Context, req appops.RaiseExceptionRequest)
	AppendEvent(ctx context.Context, shopID uuid.UUID, entityID, actor string, meta ops.EventMeta)
}

// RoutingService routes placed orders to suppliers and manages the
// resulting purchase orders
type RoutingService struct {
	poRepo      routing.PurchaseOrderRepository
	finder      routing.CandidateFinder
	metricRepo  ops.ProductMetricRepository
	reporter    OpsReporter
	idempotency shared.IdempotencyStore
	idemConfig  shared.IdempotencyConfig
	logger      *zap.Logger
}

// NewRoutingService creates a new RoutingService
func NewRoutingService(
	poRepo routing.PurchaseOrderRepository,
	finder routing.CandidateFinder,
	metricRepo ops.ProductMetricRepository,
	reporter OpsReporter,
	idempotency shared.IdempotencyStore,
	idemConfig shared.IdempotencyConfig,
	logger *zap.Logger,
) *RoutingService {
	return &RoutingService{
		poRepo:      poRepo,
		finder:      finder,
		metricRepo:  metricRepo,
		reporter:    reporter,
		idempotency: idempotency,
		idemConfig:  idemConfig,
		logger:      logger,
	}
}

// RouteOrder assigns each order line to the cheapest eligible supplier by
// effective cost and creates one purchase order per winning supplier.
// A line that cannot be routed raises an exception and is skipped; the
// remaining lines still route. Redelivery of an already routed order
// returns the existing purchase orders without creating duplicates.
func (s *RoutingService) RouteOrder(ctx context.Context, req RouteOrderRequest) (*RouteOrderResult, error) {
	if s.idemConfig.Enabled {
		fresh, err := s.idempotency.MarkProcessed(ctx, routingKey(req.OrderID), s.idemConfig.TTL)
		if err != nil {
			// the store is an optimization; the unique (order, supplier)
			// key still prevents duplicate purchase orders
			s.logger.Warn("idempotency store unavailable, relying on unique key",
				zap.String("order_id", req.OrderID),
				zap.Error(err))
		} else if !fresh {
			return s.alreadyRouted(ctx, req.OrderID)
		}
	}

	result := &RouteOrderResult{OrderID: req.OrderID}
	plan := routing.NewPlan()

	suppressed, err := s.suppressedVariants(ctx, req.ShopID)
	if err != nil {
		// losing the kill-switch set must not stop fulfillment
		s.logger.Error("suppressed-variant lookup failed, routing without kill switch",
			zap.String("order_id", req.OrderID),
			zap.Error(err))
		s.reporter.Raise(ctx, appops.RaiseExceptionRequest{
			ShopID:   req.ShopID,
			Type:     ops.ExceptionTypeRoutingError,
			Severity: ops.SeverityCritical,
			Ref: ops.EntityRef{
				OrderID: req.OrderID,
				Error:   "suppressed-variant lookup failed: " + err.Error(),
			},
		})
		suppressed = map[string]struct{}{}
	}

	for _, line := range req.Lines {
		s.routeLine(ctx, req.ShopID, req.OrderID, line, suppressed, plan, result)
	}

	for _, group := range plan.Groups() {
		s.createPurchaseOrder(ctx, req.ShopID, req.OrderID, group, result)
	}

	s.logger.Info("order routed",
		zap.String("order_id", req.OrderID),
		zap.Int("purchase_orders", len(result.PurchaseOrders)),
		zap.Int("failed_lines", len(result.FailedLines)))

	return result, nil
}

func (s *RoutingService) routeLine(ctx context.Context, shopID uuid.UUID, orderID string, line OrderLineItem, suppressed map[string]struct{}, plan *routing.Plan, result *RouteOrderResult) {
	if _, ok := suppressed[line.VariantID]; ok {
		s.failLine(ctx, shopID, orderID, line, result,
			ops.ExceptionTypeNoSupplierFound, ops.SeverityHigh,
			"variant is suppressed by the product kill switch")
		return
	}

	candidates, err := s.finder.FindCandidates(ctx, line.VariantID, line.Qty)
	if err != nil {
		s.failLine(ctx, shopID, orderID, line, result,
			ops.ExceptionTypeRoutingError, ops.SeverityCritical,
			"candidate lookup failed: "+err.Error())
		return
	}

	best := routing.SelectBest(candidates, line.Qty)
	if best == nil {
		s.failLine(ctx, shopID, orderID, line, result,
			ops.ExceptionTypeNoSupplierFound, ops.SeverityHigh,
			"no eligible supplier with sufficient stock")
		return
	}

	plan.Add(best.SupplierID, routing.PlannedLine{
		ExternalOrderItemID: line.ExternalOrderItemID,
		SupplierSKU:         best.SupplierSKU,
		Qty:                 line.Qty,
		UnitCost:            best.UnitCost,
	})
}

func (s *RoutingService) failLine(ctx context.Context, shopID uuid.UUID, orderID string, line OrderLineItem, result *RouteOrderResult, excType ops.ExceptionType, severity ops.Severity, reason string) {
	result.FailedLines = append(result.FailedLines, FailedLine{
		ExternalOrderItemID: line.ExternalOrderItemID,
		VariantID:           line.VariantID,
		Reason:              reason,
	})
	s.reporter.Raise(ctx, appops.RaiseExceptionRequest{
		ShopID:   shopID,
		Type:     excType,
		Severity: severity,
		Ref: ops.EntityRef{
			OrderID:    orderID,
			LineItemID: line.ExternalOrderItemID,
			VariantID:  line.VariantID,
			Error:      reason,
		},
	})
}

func (s *RoutingService) createPurchaseOrder(ctx context.Context, shopID uuid.UUID, orderID string, group routing.Group, result *RouteOrderResult) {
	po, err := routing.NewPurchaseOrder(orderID, shopID, group.SupplierID)
	if err != nil {
		s.reportGroupFailure(ctx, shopID, orderID, group, result, err)
		return
	}
	for _, line := range group.Lines {
		if err := po.AddLine(line.ExternalOrderItemID, line.SupplierSKU, line.Qty, line.UnitCost); err != nil {
			s.reportGroupFailure(ctx, shopID, orderID, group, result, err)
			return
		}
	}

	created, err := s.poRepo.CreateWithLines(ctx, po)
	if err != nil {
		s.reportGroupFailure(ctx, shopID, orderID, group, result, err)
		return
	}
	if !created {
		// a concurrent delivery won the race for this (order, supplier)
		existing, err := s.poRepo.FindByOrderID(ctx, orderID)
		if err == nil {
			for i := range existing {
				if existing[i].SupplierID == group.SupplierID {
					result.PurchaseOrders = append(result.PurchaseOrders, ToPurchaseOrderResponse(&existing[i]))
					return
				}
			}
		}
		return
	}

	result.PurchaseOrders = append(result.PurchaseOrders, ToPurchaseOrderResponse(po))

	s.reporter.AppendEvent(ctx, shopID, orderID, "system", ops.RoutingDecisionMeta{
		PurchaseOrderID: po.ID,
		SupplierID:      po.SupplierID,
		LineCount:       po.LineCount(),
		Reason:          "best effective cost",
	})
}

func (s *RoutingService) reportGroupFailure(ctx context.Context, shopID uuid.UUID, orderID string, group routing.Group, result *RouteOrderResult, err error) {
	for _, line := range group.Lines {
		result.FailedLines = append(result.FailedLines, FailedLine{
			ExternalOrderItemID: line.ExternalOrderItemID,
			Reason:              "purchase order creation failed: " + err.Error(),
		})
	}
	s.reporter.Raise(ctx, appops.RaiseExceptionRequest{
		ShopID:   shopID,
		Type:     ops.ExceptionTypeRoutingError,
		Severity: ops.SeverityCritical,
		Ref: ops.EntityRef{
			OrderID:    orderID,
			SupplierID: group.SupplierID.String(),
			Error:      err.Error(),
		},
	})
}

func (s *RoutingService) alreadyRouted(ctx context.Context, orderID string) (*RouteOrderResult, error) {
	existing, err := s.poRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &RouteOrderResult{
		OrderID:        orderID,
		PurchaseOrders: ToPurchaseOrderResponses(existing),
		AlreadyRouted:  true,
	}, nil
}

func (s *RoutingService) suppressedVariants(ctx context.Context, shopID uuid.UUID) (map[string]struct{}, error) {
	variants, err := s.metricRepo.FindSuppressedVariants(ctx, shopID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		set[v] = struct{}{}
	}
	return set, nil
}

// GetPurchaseOrder retrieves a purchase order with its lines
func (s *RoutingService) GetPurchaseOrder(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

// ListByOrder retrieves all purchase orders created for an external order
func (s *RoutingService) ListByOrder(ctx context.Context, orderID string) ([]PurchaseOrderResponse, error) {
	pos, err := s.poRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponses(pos), nil
}

// Transition moves a purchase order through its lifecycle
func (s *RoutingService) Transition(ctx context.Context, id uuid.UUID, req TransitionRequest) (*PurchaseOrderResponse, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := po.Transition(routing.PurchaseOrderStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(po)
	return &response, nil
}

func routingKey(orderID string) string {
	return "routing:order:" + orderID
}
