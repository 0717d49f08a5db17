package ops

import (
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReturnRateKillThreshold is the return rate above which a product is
// suppressed from routing.
var ReturnRateKillThreshold = decimal.NewFromFloat(0.10)

// ProductMetric accumulates per-variant quality counters used by the
// product scoring job.
type ProductMetric struct {
	shared.BaseEntity
	ShopID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_metric_shop_variant"`
	VariantID   string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_product_metric_shop_variant"`
	OrderCount  int64     `gorm:"not null;default:0"`
	ReturnCount int64     `gorm:"not null;default:0"`
	Suppressed  bool      `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (ProductMetric) TableName() string {
	return "product_metrics"
}

// NewProductMetric creates a fresh metric row for a variant
func NewProductMetric(shopID uuid.UUID, variantID string) (*ProductMetric, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Shop ID cannot be empty")
	}
	if variantID == "" {
		return nil, shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}
	return &ProductMetric{
		BaseEntity: shared.NewBaseEntity(),
		ShopID:     shopID,
		VariantID:  variantID,
	}, nil
}

// RecordOrder counts a routed order line for the variant
func (m *ProductMetric) RecordOrder() {
	m.OrderCount++
	m.UpdatedAt = time.Now()
}

// RecordReturn counts a returned unit for the variant
func (m *ProductMetric) RecordReturn() {
	m.ReturnCount++
	m.UpdatedAt = time.Now()
}

// ReturnRate is returns over orders, zero when no orders were recorded
func (m *ProductMetric) ReturnRate() decimal.Decimal {
	if m.OrderCount == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(m.ReturnCount).Div(decimal.NewFromInt(m.OrderCount))
}

// ShouldSuppress checks the return rate against the kill threshold
func (m *ProductMetric) ShouldSuppress() bool {
	return m.ReturnRate().GreaterThan(ReturnRateKillThreshold)
}

// Suppress flags the variant as excluded from routing
func (m *ProductMetric) Suppress() {
	m.Suppressed = true
	m.UpdatedAt = time.Now()
}

// Unsuppress clears the routing exclusion flag
func (m *ProductMetric) Unsuppress() {
	m.Suppressed = false
	m.UpdatedAt = time.Now()
}
