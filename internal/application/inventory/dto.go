package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// OfferItem is one supplier-reported stock position in an ingestion payload
type OfferItem struct {
	SupplierSKU     string          `json:"supplier_sku" binding:"required,max=100"`
	Qty             int             `json:"qty"`
	Cost            decimal.Decimal `json:"cost"`
	Currency        string          `json:"currency" binding:"omitempty,len=3"`
	LeadTimeDays    int             `json:"lead_time_days"`
	ShipsFromRegion string          `json:"ships_from_region" binding:"max=50"`
}

// IngestOffersRequest represents a supplier feed ingestion payload
type IngestOffersRequest struct {
	Offers []OfferItem `json:"offers" binding:"required,min=1,dive"`
}

// SkippedOffer reports one feed item rejected during ingestion
type SkippedOffer struct {
	SupplierSKU string `json:"supplier_sku"`
	Reason      string `json:"reason"`
}

// IngestResult summarizes one feed ingestion run
type IngestResult struct {
	Received      int            `json:"received"`
	Upserted      int            `json:"upserted"`
	Skipped       []SkippedOffer `json:"skipped,omitempty"`
	FailedBatches int            `json:"failed_batches"`
}

// OfferResponse represents a supplier offer in API responses
type OfferResponse struct {
	SupplierID      uuid.UUID       `json:"supplier_id"`
	SupplierSKU     string          `json:"supplier_sku"`
	Qty             int             `json:"qty"`
	Cost            decimal.Decimal `json:"cost"`
	Currency        string          `json:"currency"`
	LeadTimeDays    int             `json:"lead_time_days"`
	ShipsFromRegion string          `json:"ships_from_region"`
	FetchedAt       time.Time       `json:"fetched_at"`
}

// SafeQuantity is the sellable quantity for one variant after the safety
// buffer is applied
type SafeQuantity struct {
	VariantID   string `json:"variant_id"`
	SupplierSKU string `json:"supplier_sku"`
	RawQty      int    `json:"raw_qty"`
	SafeQty     int    `json:"safe_qty"`
}

// ToOfferResponses converts domain offers to response DTOs
func ToOfferResponses(offers []inventory.SupplierOffer) []OfferResponse {
	responses := make([]OfferResponse, len(offers))
	for i, o := range offers {
		responses[i] = OfferResponse{
			SupplierID:      o.SupplierID,
			SupplierSKU:     o.SupplierSKU,
			Qty:             o.Qty,
			Cost:            o.Cost,
			Currency:        o.Currency,
			LeadTimeDays:    o.LeadTimeDays,
			ShipsFromRegion: o.ShipsFromRegion,
			FetchedAt:       o.FetchedAt,
		}
	}
	return responses
}
