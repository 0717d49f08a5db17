package ops

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// EventHistory is an append-only audit record. Rows are never updated or
// deleted; the UpdatedAt column is unused by design of the log.
type EventHistory struct {
	shared.BaseEntity
	ShopID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_event_history_shop_type"`
	EventType EventType       `gorm:"type:varchar(50);not null;index:idx_event_history_shop_type"`
	EntityID  string          `gorm:"type:varchar(255);not null;index"`
	Actor     string          `gorm:"type:varchar(255);not null;default:'system'"`
	Meta      json.RawMessage `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (EventHistory) TableName() string {
	return "event_history"
}

// NewEventHistory appends a typed audit event. A zero shop ID records a
// platform-scoped event, such as a supplier score change.
func NewEventHistory(shopID uuid.UUID, entityID, actor string, meta EventMeta) (*EventHistory, error) {
	if entityID == "" {
		return nil, shared.NewDomainError("INVALID_ENTITY", "Entity ID cannot be empty")
	}
	if meta == nil {
		return nil, shared.NewDomainError("INVALID_META", "Event meta cannot be nil")
	}
	if actor == "" {
		actor = "system"
	}

	raw, err := EncodeMeta(meta)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_META", "Event meta is not serializable")
	}

	return &EventHistory{
		BaseEntity: shared.NewBaseEntity(),
		ShopID:     shopID,
		EventType:  meta.EventType(),
		EntityID:   entityID,
		Actor:      actor,
		Meta:       raw,
	}, nil
}

// DecodedMeta returns the typed meta of the event
func (e *EventHistory) DecodedMeta() (EventMeta, error) {
	return DecodeMeta(e.EventType, e.Meta)
}
