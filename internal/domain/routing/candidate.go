package routing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SuppressionThreshold is the reliability score at or below which a supplier
// is excluded from routing consideration entirely. The linear risk premium
// applies above it; this is the hard cutoff.
const SuppressionThreshold = 50

// Candidate is one supplier able to fulfill an order line: an active
// supplier mapped to the line's variant with enough offered stock.
type Candidate struct {
	SupplierID       uuid.UUID
	SupplierSKU      string
	UnitCost         decimal.Decimal
	QtyAvailable     int
	ReliabilityScore int
}

// EffectiveCost returns the unit cost adjusted upward by a reliability-risk
// premium proportional to (100 - score): a supplier scoring 80 costs 20%
// more, a supplier at 100 carries no premium.
func (c Candidate) EffectiveCost() decimal.Decimal {
	premium := decimal.NewFromInt(int64(200 - c.ReliabilityScore)).Div(decimal.NewFromInt(100))
	return c.UnitCost.Mul(premium)
}

// SelectBest picks the cheapest candidate by effective cost among those with
// enough stock and a score above the suppression threshold. Ties break on
// the lowest supplier UUID string, so repeated runs over the same candidate
// set always select the same supplier. Returns nil when no candidate passes.
func SelectBest(candidates []Candidate, qtyNeeded int) *Candidate {
	var best *Candidate
	for i := range candidates {
		c := &candidates[i]
		if c.ReliabilityScore <= SuppressionThreshold {
			continue
		}
		if c.QtyAvailable < qtyNeeded {
			continue
		}
		if best == nil {
			best = c
			continue
		}
		switch c.EffectiveCost().Cmp(best.EffectiveCost()) {
		case -1:
			best = c
		case 0:
			if c.SupplierID.String() < best.SupplierID.String() {
				best = c
			}
		}
	}
	return best
}
