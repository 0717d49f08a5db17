package routing

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlannedLine is one order line assigned to its winning supplier, held
// in memory until purchase orders are persisted.
type PlannedLine struct {
	ExternalOrderItemID string
	SupplierSKU         string
	Qty                 int
	UnitCost            decimal.Decimal
}

// Plan is the in-memory grouping of order lines by winning supplier for a
// single order-routing invocation.
type Plan struct {
	groups map[uuid.UUID][]PlannedLine
}

// NewPlan creates an empty routing plan
func NewPlan() *Plan {
	return &Plan{groups: make(map[uuid.UUID][]PlannedLine)}
}

// Add assigns a line to a supplier group
func (p *Plan) Add(supplierID uuid.UUID, line PlannedLine) {
	p.groups[supplierID] = append(p.groups[supplierID], line)
}

// Group pairs a supplier with its planned lines
type Group struct {
	SupplierID uuid.UUID
	Lines      []PlannedLine
}

// Groups returns the supplier groups in deterministic order (by supplier
// UUID string) so purchase-order creation and audit output are reproducible.
func (p *Plan) Groups() []Group {
	groups := make([]Group, 0, len(p.groups))
	for supplierID, lines := range p.groups {
		groups = append(groups, Group{SupplierID: supplierID, Lines: lines})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].SupplierID.String() < groups[j].SupplierID.String()
	})
	return groups
}

// Len returns the number of supplier groups in the plan
func (p *Plan) Len() int {
	return len(p.groups)
}

// LineCount returns the total number of planned lines across all groups
func (p *Plan) LineCount() int {
	n := 0
	for _, lines := range p.groups {
		n += len(lines)
	}
	return n
}
