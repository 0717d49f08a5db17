package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SupplierOffer is a supplier-reported stock position for one supplier SKU.
// Exactly one row exists per (supplier, supplier SKU); each ingestion
// replaces the value fields and refreshes FetchedAt.
type SupplierOffer struct {
	shared.BaseEntity
	SupplierID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_offer_supplier_sku,priority:1"`
	SupplierSKU     string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_offer_supplier_sku,priority:2"`
	Qty             int             `gorm:"not null;default:0"`
	Cost            decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'USD'"`
	LeadTimeDays    int             `gorm:"not null;default:0"`
	ShipsFromRegion string          `gorm:"type:varchar(50)"`
	FetchedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SupplierOffer) TableName() string {
	return "supplier_offers"
}

// NewSupplierOffer creates an offer row for ingestion
func NewSupplierOffer(supplierID uuid.UUID, supplierSKU string, qty int, cost decimal.Decimal, currency string, leadTimeDays int, shipsFromRegion string) (*SupplierOffer, error) {
	offer := &SupplierOffer{
		BaseEntity:      shared.NewBaseEntity(),
		SupplierID:      supplierID,
		SupplierSKU:     supplierSKU,
		Qty:             qty,
		Cost:            cost,
		Currency:        currency,
		LeadTimeDays:    leadTimeDays,
		ShipsFromRegion: shipsFromRegion,
		FetchedAt:       time.Now(),
	}
	if err := offer.Validate(); err != nil {
		return nil, err
	}
	return offer, nil
}

// Validate reports why an offer row is malformed. Malformed rows are skipped
// per item during ingestion; they never abort a batch.
func (o *SupplierOffer) Validate() error {
	if o.SupplierID == uuid.Nil {
		return shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if o.SupplierSKU == "" {
		return shared.NewDomainError("INVALID_SKU", "Supplier SKU cannot be empty")
	}
	if o.Qty < 0 {
		return shared.NewDomainError("INVALID_QTY", "Offer quantity cannot be negative")
	}
	if o.Cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Offer cost cannot be negative")
	}
	if len(o.Currency) != 3 {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter code")
	}
	if o.LeadTimeDays < 0 {
		return shared.NewDomainError("INVALID_LEAD_TIME", "Lead time cannot be negative")
	}
	return nil
}
