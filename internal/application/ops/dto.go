package ops

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/ops"
)

// RaiseExceptionRequest represents a request to raise an operational
// exception
type RaiseExceptionRequest struct {
	ShopID   uuid.UUID         `json:"shop_id" binding:"required"`
	Type     ops.ExceptionType `json:"type" binding:"required"`
	Severity ops.Severity      `json:"severity" binding:"required,oneof=low medium high critical"`
	Ref      ops.EntityRef     `json:"ref"`
	Notes    string            `json:"notes"`
}

// ResolveExceptionRequest carries operator notes for closing an exception
type ResolveExceptionRequest struct {
	Notes string `json:"notes" binding:"max=2000"`
}

// ExceptionListFilter represents filter options for the exception queue
type ExceptionListFilter struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ExceptionResponse represents an exception in API responses
type ExceptionResponse struct {
	ID        uuid.UUID     `json:"id"`
	ShopID    uuid.UUID     `json:"shop_id"`
	Type      string        `json:"type"`
	Severity  string        `json:"severity"`
	Ref       ops.EntityRef `json:"ref"`
	Status    string        `json:"status"`
	Notes     string        `json:"notes"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// EventResponse represents an audit event in API responses
type EventResponse struct {
	ID        uuid.UUID       `json:"id"`
	ShopID    uuid.UUID       `json:"shop_id"`
	EventType string          `json:"event_type"`
	EntityID  string          `json:"entity_id"`
	Actor     string          `json:"actor"`
	Meta      json.RawMessage `json:"meta"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToExceptionResponse converts a domain exception to a response DTO
func ToExceptionResponse(e *ops.Exception) ExceptionResponse {
	return ExceptionResponse{
		ID:        e.ID,
		ShopID:    e.ShopID,
		Type:      string(e.Type),
		Severity:  string(e.Severity),
		Ref:       e.Ref,
		Status:    string(e.Status),
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToExceptionResponses converts domain exceptions to response DTOs
func ToExceptionResponses(exceptions []ops.Exception) []ExceptionResponse {
	responses := make([]ExceptionResponse, len(exceptions))
	for i := range exceptions {
		responses[i] = ToExceptionResponse(&exceptions[i])
	}
	return responses
}

// ToEventResponse converts a domain audit event to a response DTO
func ToEventResponse(e *ops.EventHistory) EventResponse {
	return EventResponse{
		ID:        e.ID,
		ShopID:    e.ShopID,
		EventType: string(e.EventType),
		EntityID:  e.EntityID,
		Actor:     e.Actor,
		Meta:      e.Meta,
		CreatedAt: e.CreatedAt,
	}
}

// ToEventResponses converts domain audit events to response DTOs
func ToEventResponses(events []ops.EventHistory) []EventResponse {
	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = ToEventResponse(&events[i])
	}
	return responses
}
