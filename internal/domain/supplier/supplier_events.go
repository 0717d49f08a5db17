package supplier

import (
	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// Aggregate type constant for Supplier
const AggregateTypeSupplier = "Supplier"

// Event type constants for Supplier
const (
	EventTypeSupplierCreated       = "SupplierCreated"
	EventTypeSupplierStatusChanged = "SupplierStatusChanged"
	EventTypeSupplierScoreChanged  = "SupplierScoreChanged"
)

// SupplierCreatedEvent is published when a new supplier is registered
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	AuthType   AuthType  `json:"auth_type"`
}

// NewSupplierCreatedEvent creates a new SupplierCreatedEvent
func NewSupplierCreatedEvent(s *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierCreated, AggregateTypeSupplier, s.ID),
		SupplierID:      s.ID,
		Code:            s.Code,
		Name:            s.Name,
		AuthType:        s.AuthType,
	}
}

// SupplierStatusChangedEvent is published when a supplier's status changes
type SupplierStatusChangedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	Code       string    `json:"code"`
	OldStatus  Status    `json:"old_status"`
	NewStatus  Status    `json:"new_status"`
}

// NewSupplierStatusChangedEvent creates a new SupplierStatusChangedEvent
func NewSupplierStatusChangedEvent(s *Supplier, oldStatus, newStatus Status) *SupplierStatusChangedEvent {
	return &SupplierStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierStatusChanged, AggregateTypeSupplier, s.ID),
		SupplierID:      s.ID,
		Code:            s.Code,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// SupplierScoreChangedEvent is published when the scoring job updates a
// supplier's reliability score
type SupplierScoreChangedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	OldScore   int       `json:"old_score"`
	NewScore   int       `json:"new_score"`
}

// NewSupplierScoreChangedEvent creates a new SupplierScoreChangedEvent
func NewSupplierScoreChangedEvent(s *Supplier, oldScore, newScore int) *SupplierScoreChangedEvent {
	return &SupplierScoreChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierScoreChanged, AggregateTypeSupplier, s.ID),
		SupplierID:      s.ID,
		OldScore:        oldScore,
		NewScore:        newScore,
	}
}
