package supplier

import (
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/supplier"
	"github.com/shopspring/decimal"
)

// CreateSupplierRequest represents a request to register a new supplier
type CreateSupplierRequest struct {
	ID              *uuid.UUID `json:"id"`
	Code            string     `json:"code" binding:"required,min=1,max=50"`
	Name            string     `json:"name" binding:"required,min=1,max=200"`
	AuthType        string     `json:"auth_type" binding:"omitempty,oneof=api_key oauth basic custom"`
	BaseURL         string     `json:"base_url" binding:"omitempty,url,max=500"`
	RateLimitPerMin *int       `json:"rate_limit_per_min" binding:"omitempty,min=1"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name            *string `json:"name" binding:"omitempty,min=1,max=200"`
	BaseURL         *string `json:"base_url" binding:"omitempty,url,max=500"`
	RateLimitPerMin *int    `json:"rate_limit_per_min" binding:"omitempty,min=1"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	Name             string    `json:"name"`
	Status           string    `json:"status"`
	AuthType         string    `json:"auth_type"`
	BaseURL          string    `json:"base_url"`
	RateLimitPerMin  int       `json:"rate_limit_per_min"`
	ReliabilityScore int       `json:"reliability_score"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Version          int       `json:"version"`
}

// SupplierListFilter represents filter options for the supplier list
type SupplierListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active paused inactive"`
	MinScore *int   `form:"min_score" binding:"omitempty,min=0,max=100"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UpsertPolicyRequest represents a request to set a shop-supplier policy
type UpsertPolicyRequest struct {
	ShopID      uuid.UUID        `json:"shop_id" binding:"required"`
	BufferStock int              `json:"buffer_stock" binding:"min=0"`
	MinMargin   *decimal.Decimal `json:"min_margin"`
	Enabled     *bool            `json:"enabled"`
}

// PolicyResponse represents a shop-supplier policy in API responses
type PolicyResponse struct {
	ID          uuid.UUID       `json:"id"`
	ShopID      uuid.UUID       `json:"shop_id"`
	SupplierID  uuid.UUID       `json:"supplier_id"`
	BufferStock int             `json:"buffer_stock"`
	MinMargin   decimal.Decimal `json:"min_margin"`
	Enabled     bool            `json:"enabled"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SkuMappingItem is one SKU mapping in a bulk upsert request
type SkuMappingItem struct {
	SupplierSKU string `json:"supplier_sku" binding:"required,max=100"`
	VariantID   string `json:"variant_id" binding:"required,max=100"`
}

// UpsertSkuMappingsRequest represents a bulk SKU mapping upsert
type UpsertSkuMappingsRequest struct {
	Mappings []SkuMappingItem `json:"mappings" binding:"required,min=1,dive"`
}

// SkuMappingResponse represents a SKU mapping in API responses
type SkuMappingResponse struct {
	SupplierID  uuid.UUID `json:"supplier_id"`
	SupplierSKU string    `json:"supplier_sku"`
	VariantID   string    `json:"variant_id"`
}

// ToSupplierResponse converts a domain supplier to a response DTO
func ToSupplierResponse(s *supplier.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:               s.ID,
		Code:             s.Code,
		Name:             s.Name,
		Status:           string(s.Status),
		AuthType:         string(s.AuthType),
		BaseURL:          s.BaseURL,
		RateLimitPerMin:  s.RateLimitPerMin,
		ReliabilityScore: s.ReliabilityScore,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
		Version:          s.Version,
	}
}

// ToSupplierResponses converts a slice of domain suppliers to response DTOs
func ToSupplierResponses(suppliers []supplier.Supplier) []SupplierResponse {
	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses
}

// ToPolicyResponse converts a domain policy to a response DTO
func ToPolicyResponse(p *supplier.ShopSupplierPolicy) PolicyResponse {
	return PolicyResponse{
		ID:          p.ID,
		ShopID:      p.ShopID,
		SupplierID:  p.SupplierID,
		BufferStock: p.BufferStock,
		MinMargin:   p.MinMargin,
		Enabled:     p.Enabled,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ToSkuMappingResponses converts domain mappings to response DTOs
func ToSkuMappingResponses(mappings []supplier.SkuMapping) []SkuMappingResponse {
	responses := make([]SkuMappingResponse, len(mappings))
	for i, m := range mappings {
		responses[i] = SkuMappingResponse{
			SupplierID:  m.SupplierID,
			SupplierSKU: m.SupplierSKU,
			VariantID:   m.VariantID,
		}
	}
	return responses
}
