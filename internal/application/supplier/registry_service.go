package supplier

import (
	"context"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
	"github.com/momento/fulfillment/internal/domain/supplier"
	"github.com/shopspring/decimal"
)

// RegistryService handles supplier registry operations
type RegistryService struct {
	supplierRepo supplier.Repository
	policyRepo   supplier.PolicyRepository
	mappingRepo  supplier.SkuMappingRepository
}

// NewRegistryService creates a new RegistryService
func NewRegistryService(
	supplierRepo supplier.Repository,
	policyRepo supplier.PolicyRepository,
	mappingRepo supplier.SkuMappingRepository,
) *RegistryService {
	return &RegistryService{
		supplierRepo: supplierRepo,
		policyRepo:   policyRepo,
		mappingRepo:  mappingRepo,
	}
}

// Create registers a new supplier. A caller-supplied ID or an already used
// code is rejected with a duplicate-key error rather than overwriting the
// existing registration.
func (s *RegistryService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicateKey
	}

	authType := supplier.AuthTypeAPIKey
	if req.AuthType != "" {
		authType = supplier.AuthType(req.AuthType)
	}

	var sup *supplier.Supplier
	if req.ID != nil {
		exists, err := s.supplierRepo.ExistsByID(ctx, *req.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.ErrDuplicateKey
		}
		sup, err = supplier.NewWithID(*req.ID, req.Code, req.Name, authType)
		if err != nil {
			return nil, err
		}
	} else {
		sup, err = supplier.New(req.Code, req.Name, authType)
		if err != nil {
			return nil, err
		}
	}

	if req.BaseURL != "" {
		if err := sup.SetBaseURL(req.BaseURL); err != nil {
			return nil, err
		}
	}
	if req.RateLimitPerMin != nil {
		if err := sup.SetRateLimit(*req.RateLimitPerMin); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, sup); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(sup)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *RegistryService) GetByID(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	sup, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	response := ToSupplierResponse(sup)
	return &response, nil
}

// GetByCode retrieves a supplier by code
func (s *RegistryService) GetByCode(ctx context.Context, code string) (*SupplierResponse, error) {
	sup, err := s.supplierRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	response := ToSupplierResponse(sup)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *RegistryService) List(ctx context.Context, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "code"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "asc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.MinScore != nil {
		domainFilter.Filters["min_score"] = *filter.MinScore
	}

	suppliers, err := s.supplierRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSupplierResponses(suppliers), total, nil
}

// ListActive retrieves all suppliers in active rotation
func (s *RegistryService) ListActive(ctx context.Context) ([]SupplierResponse, error) {
	suppliers, err := s.supplierRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponses(suppliers), nil
}

// Update updates a supplier's mutable attributes
func (s *RegistryService) Update(ctx context.Context, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	sup, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := sup.Update(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.BaseURL != nil {
		if err := sup.SetBaseURL(*req.BaseURL); err != nil {
			return nil, err
		}
	}
	if req.RateLimitPerMin != nil {
		if err := sup.SetRateLimit(*req.RateLimitPerMin); err != nil {
			return nil, err
		}
	}

	if err := s.supplierRepo.Save(ctx, sup); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(sup)
	return &response, nil
}

// Activate returns a supplier to active rotation
func (s *RegistryService) Activate(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	return s.transition(ctx, supplierID, (*supplier.Supplier).Activate)
}

// Pause temporarily removes a supplier from rotation
func (s *RegistryService) Pause(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	return s.transition(ctx, supplierID, (*supplier.Supplier).Pause)
}

// Deactivate permanently retires a supplier
func (s *RegistryService) Deactivate(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	return s.transition(ctx, supplierID, (*supplier.Supplier).Deactivate)
}

func (s *RegistryService) transition(ctx context.Context, supplierID uuid.UUID, apply func(*supplier.Supplier) error) (*SupplierResponse, error) {
	sup, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if err := apply(sup); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, sup); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(sup)
	return &response, nil
}

// UpsertPolicy sets or replaces the policy for a (shop, supplier) pair
func (s *RegistryService) UpsertPolicy(ctx context.Context, supplierID uuid.UUID, req UpsertPolicyRequest) (*PolicyResponse, error) {
	exists, err := s.supplierRepo.ExistsByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, shared.ErrNotFound
	}

	minMargin := decimal.Zero
	if req.MinMargin != nil {
		minMargin = *req.MinMargin
	}
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	policy, err := supplier.NewShopSupplierPolicy(req.ShopID, supplierID, req.BufferStock, minMargin, enabled)
	if err != nil {
		return nil, err
	}

	if err := s.policyRepo.Upsert(ctx, policy); err != nil {
		return nil, err
	}

	response := ToPolicyResponse(policy)
	return &response, nil
}

// GetPolicy retrieves the policy for a (shop, supplier) pair
func (s *RegistryService) GetPolicy(ctx context.Context, shopID, supplierID uuid.UUID) (*PolicyResponse, error) {
	policy, err := s.policyRepo.FindByShopAndSupplier(ctx, shopID, supplierID)
	if err != nil {
		return nil, err
	}

	response := ToPolicyResponse(policy)
	return &response, nil
}

// UpsertSkuMappings bulk-loads SKU mappings for a supplier. Existing
// (supplier, supplier SKU) rows are remapped to the new variant.
func (s *RegistryService) UpsertSkuMappings(ctx context.Context, supplierID uuid.UUID, req UpsertSkuMappingsRequest) (int, error) {
	exists, err := s.supplierRepo.ExistsByID(ctx, supplierID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, shared.ErrNotFound
	}

	mappings := make([]supplier.SkuMapping, 0, len(req.Mappings))
	for _, item := range req.Mappings {
		mapping, err := supplier.NewSkuMapping(supplierID, item.SupplierSKU, item.VariantID)
		if err != nil {
			return 0, err
		}
		mappings = append(mappings, *mapping)
	}

	if err := s.mappingRepo.UpsertBatch(ctx, mappings); err != nil {
		return 0, err
	}

	return len(mappings), nil
}

// ListSkuMappings retrieves all SKU mappings for a supplier
func (s *RegistryService) ListSkuMappings(ctx context.Context, supplierID uuid.UUID) ([]SkuMappingResponse, error) {
	mappings, err := s.mappingRepo.FindBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	return ToSkuMappingResponses(mappings), nil
}
