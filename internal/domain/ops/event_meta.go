package ops

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType classifies an audit event
type EventType string

const (
	EventTypeRoutingDecision     EventType = "routing_decision"
	EventTypeSupplierScoreUpdate EventType = "supplier_score_update"
	EventTypeProductKillSwitch   EventType = "product_kill_switch"
)

// EventMeta is the typed payload of an audit event. Each event type carries
// its own meta shape; unknown types fall back to OpaqueMeta.
type EventMeta interface {
	EventType() EventType
}

// RoutingDecisionMeta records why one purchase order went to its supplier
type RoutingDecisionMeta struct {
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
	SupplierID      uuid.UUID `json:"supplier_id"`
	LineCount       int       `json:"line_count"`
	Reason          string    `json:"reason"`
}

// EventType returns the event type this meta belongs to
func (RoutingDecisionMeta) EventType() EventType { return EventTypeRoutingDecision }

// ScoreUpdateMeta records a supplier reliability score change
type ScoreUpdateMeta struct {
	OldScore int    `json:"old_score"`
	NewScore int    `json:"new_score"`
	Total    int64  `json:"total"`
	Failures int64  `json:"failures"`
	Reason   string `json:"reason,omitempty"`
}

// EventType returns the event type this meta belongs to
func (ScoreUpdateMeta) EventType() EventType { return EventTypeSupplierScoreUpdate }

// KillSwitchMeta records a product being suppressed from routing
type KillSwitchMeta struct {
	ReturnRate decimal.Decimal `json:"return_rate"`
	Reason     string          `json:"reason,omitempty"`
}

// EventType returns the event type this meta belongs to
func (KillSwitchMeta) EventType() EventType { return EventTypeProductKillSwitch }

// OpaqueMeta preserves the raw payload of an event type this version does
// not know how to decode
type OpaqueMeta struct {
	Type EventType
	Raw  json.RawMessage
}

// EventType returns the event type this meta belongs to
func (m OpaqueMeta) EventType() EventType { return m.Type }

// EncodeMeta serializes an event meta to its JSON wire form
func EncodeMeta(meta EventMeta) (json.RawMessage, error) {
	if opaque, ok := meta.(OpaqueMeta); ok {
		return opaque.Raw, nil
	}
	return json.Marshal(meta)
}

// DecodeMeta deserializes an event payload into its typed meta. Unknown
// event types decode to OpaqueMeta so history rows never fail to load.
func DecodeMeta(eventType EventType, raw json.RawMessage) (EventMeta, error) {
	switch eventType {
	case EventTypeRoutingDecision:
		var meta RoutingDecisionMeta
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, err
		}
		return meta, nil
	case EventTypeSupplierScoreUpdate:
		var meta ScoreUpdateMeta
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, err
		}
		return meta, nil
	case EventTypeProductKillSwitch:
		var meta KillSwitchMeta
		if err := json.Unmarshal(raw, &meta); err != nil {
			return nil, err
		}
		return meta, nil
	default:
		return OpaqueMeta{Type: eventType, Raw: raw}, nil
	}
}
