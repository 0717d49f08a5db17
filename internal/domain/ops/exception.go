package ops

import (
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// ExceptionType identifies the failure path that raised an exception
type ExceptionType string

const (
	ExceptionTypeNoSupplierFound ExceptionType = "NO_SUPPLIER_FOUND"
	ExceptionTypeRoutingError    ExceptionType = "ROUTING_ERROR"
	ExceptionTypeScoringError    ExceptionType = "SCORING_ERROR"
)

// Severity grades how urgently an operator should look at an exception
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// IsValid checks if the severity is known
func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// ExceptionStatus tracks operator triage of an exception
type ExceptionStatus string

const (
	ExceptionStatusOpen       ExceptionStatus = "open"
	ExceptionStatusInProgress ExceptionStatus = "in_progress"
	ExceptionStatusResolved   ExceptionStatus = "resolved"
	ExceptionStatusIgnored    ExceptionStatus = "ignored"
)

// EntityRef points an exception at the order, line, supplier, or variant it
// concerns. Persisted as a JSON column; empty fields are omitted.
type EntityRef struct {
	OrderID    string `json:"order_id,omitempty"`
	LineItemID string `json:"line_item_id,omitempty"`
	VariantID  string `json:"variant_id,omitempty"`
	SupplierID string `json:"supplier_id,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Exception is an operational exception awaiting operator triage. The engine
// only ever creates them as open; resolution is an operator action.
type Exception struct {
	shared.BaseEntity
	ShopID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type     ExceptionType   `gorm:"type:varchar(50);not null"`
	Severity Severity        `gorm:"type:varchar(20);not null"`
	Ref      EntityRef       `gorm:"column:entity_ref;type:jsonb;serializer:json"`
	Status   ExceptionStatus `gorm:"type:varchar(20);not null;default:'open';index"`
	Notes    string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Exception) TableName() string {
	return "ops_exceptions"
}

// NewException raises a new open exception
func NewException(shopID uuid.UUID, excType ExceptionType, severity Severity, ref EntityRef, notes string) (*Exception, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	if excType == "" {
		return nil, shared.NewDomainError("INVALID_TYPE", "Exception type cannot be empty")
	}
	if !severity.IsValid() {
		return nil, shared.NewDomainError("INVALID_SEVERITY", "Unknown exception severity")
	}

	return &Exception{
		BaseEntity: shared.NewBaseEntity(),
		ShopID:     shopID,
		Type:       excType,
		Severity:   severity,
		Ref:        ref,
		Status:     ExceptionStatusOpen,
		Notes:      notes,
	}, nil
}

// StartProgress marks the exception as being worked on
func (e *Exception) StartProgress() error {
	if e.Status != ExceptionStatusOpen {
		return shared.NewDomainError("INVALID_STATE", "Only open exceptions can be started")
	}
	e.Status = ExceptionStatusInProgress
	e.UpdatedAt = time.Now()
	return nil
}

// Resolve closes the exception as handled
func (e *Exception) Resolve(notes string) error {
	if e.Status == ExceptionStatusResolved || e.Status == ExceptionStatusIgnored {
		return shared.NewDomainError("INVALID_STATE", "Exception is already closed")
	}
	e.Status = ExceptionStatusResolved
	if notes != "" {
		e.Notes = notes
	}
	e.UpdatedAt = time.Now()
	return nil
}

// Ignore closes the exception without action
func (e *Exception) Ignore(notes string) error {
	if e.Status == ExceptionStatusResolved || e.Status == ExceptionStatusIgnored {
		return shared.NewDomainError("INVALID_STATE", "Exception is already closed")
	}
	e.Status = ExceptionStatusIgnored
	if notes != "" {
		e.Notes = notes
	}
	e.UpdatedAt = time.Now()
	return nil
}

// IsOpen returns true while the exception awaits triage
func (e *Exception) IsOpen() bool {
	return e.Status == ExceptionStatusOpen
}
