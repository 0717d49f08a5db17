package supplier

import (
	"time"

	"github.com/google/uuid"
	"github.com/momento/fulfillment/internal/domain/shared"
)

// Status represents the lifecycle status of a supplier
type Status string

const (
	StatusActive   Status = "active"
	StatusPaused   Status = "paused" // Temporarily out of rotation (e.g. feed outage)
	StatusInactive Status = "inactive"
)

// IsValid checks if the status is a known supplier status
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusPaused, StatusInactive:
		return true
	}
	return false
}

// AuthType represents how the platform authenticates against a supplier feed
type AuthType string

const (
	AuthTypeAPIKey AuthType = "api_key"
	AuthTypeOAuth  AuthType = "oauth"
	AuthTypeBasic  AuthType = "basic"
	AuthTypeCustom AuthType = "custom"
)

// IsValid checks if the auth type is known
func (a AuthType) IsValid() bool {
	switch a {
	case AuthTypeAPIKey, AuthTypeOAuth, AuthTypeBasic, AuthTypeCustom:
		return true
	}
	return false
}

const (
	// DefaultReliabilityScore is assigned to new suppliers: full benefit of
	// the doubt until the scoring job has evidence.
	DefaultReliabilityScore = 100

	// MinReliabilityScore and MaxReliabilityScore bound the score range.
	MinReliabilityScore = 0
	MaxReliabilityScore = 100
)

// Supplier represents an external dropship supplier.
// It is the aggregate root for registry operations. Suppliers are never
// hard-deleted; they transition to inactive instead.
type Supplier struct {
	shared.BaseAggregateRoot
	Code             string   `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name             string   `gorm:"type:varchar(200);not null"`
	Status           Status   `gorm:"type:varchar(20);not null;default:'active';index"`
	AuthType         AuthType `gorm:"type:varchar(20);not null;default:'api_key'"`
	BaseURL          string   `gorm:"type:varchar(500)"`
	RateLimitPerMin  int      `gorm:"not null;default:60"`
	ReliabilityScore int      `gorm:"not null;default:100;check:reliability_score >= 0 AND reliability_score <= 100"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// New creates a new supplier with required fields
func New(code, name string, authType AuthType) (*Supplier, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if !authType.IsValid() {
		return nil, shared.NewDomainError("INVALID_AUTH_TYPE", "Invalid supplier auth type")
	}

	s := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Status:            StatusActive,
		AuthType:          authType,
		RateLimitPerMin:   60,
		ReliabilityScore:  DefaultReliabilityScore,
	}

	s.AddDomainEvent(NewSupplierCreatedEvent(s))

	return s, nil
}

// NewWithID creates a supplier with a caller-supplied ID. The registry API
// lets external clients bring their own identifiers.
func NewWithID(id uuid.UUID, code, name string, authType AuthType) (*Supplier, error) {
	if id == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ID", "Supplier ID cannot be empty")
	}
	s, err := New(code, name, authType)
	if err != nil {
		return nil, err
	}
	s.BaseAggregateRoot = shared.NewBaseAggregateRootWithID(id)
	s.AddDomainEvent(NewSupplierCreatedEvent(s))
	return s, nil
}

// Update updates the supplier's basic information
func (s *Supplier) Update(name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	s.Name = name
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetBaseURL sets the supplier feed endpoint
func (s *Supplier) SetBaseURL(baseURL string) error {
	if len(baseURL) > 500 {
		return shared.NewDomainError("INVALID_BASE_URL", "Base URL cannot exceed 500 characters")
	}
	s.BaseURL = baseURL
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetRateLimit sets the per-minute request budget for the supplier feed
func (s *Supplier) SetRateLimit(perMin int) error {
	if perMin <= 0 {
		return shared.NewDomainError("INVALID_RATE_LIMIT", "Rate limit must be positive")
	}
	s.RateLimitPerMin = perMin
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// UpdateReliabilityScore sets a new reliability score, clamped to [0, 100].
// Called by the scoring job; emits an event carrying the previous score so
// the change is reconstructible from the audit trail.
func (s *Supplier) UpdateReliabilityScore(score int) (previous int) {
	if score < MinReliabilityScore {
		score = MinReliabilityScore
	}
	if score > MaxReliabilityScore {
		score = MaxReliabilityScore
	}

	previous = s.ReliabilityScore
	s.ReliabilityScore = score
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierScoreChangedEvent(s, previous, score))

	return previous
}

// Activate returns the supplier to active rotation
func (s *Supplier) Activate() error {
	if s.Status == StatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Supplier is already active")
	}

	oldStatus := s.Status
	s.Status = StatusActive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierStatusChangedEvent(s, oldStatus, StatusActive))

	return nil
}

// Pause takes the supplier out of rotation without deactivating it
func (s *Supplier) Pause() error {
	if s.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Only active suppliers can be paused")
	}

	oldStatus := s.Status
	s.Status = StatusPaused
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierStatusChangedEvent(s, oldStatus, StatusPaused))

	return nil
}

// Deactivate retires the supplier. This stands in for deletion.
func (s *Supplier) Deactivate() error {
	if s.Status == StatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Supplier is already inactive")
	}

	oldStatus := s.Status
	s.Status = StatusInactive
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierStatusChangedEvent(s, oldStatus, StatusInactive))

	return nil
}

// IsActive returns true if the supplier is in active rotation
func (s *Supplier) IsActive() bool {
	return s.Status == StatusActive
}

// IsSuppressed returns true if the supplier's score is at or below the
// auto-suppression threshold and it must be excluded from routing entirely.
func (s *Supplier) IsSuppressed(threshold int) bool {
	return s.ReliabilityScore <= threshold
}

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Supplier code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Supplier code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Supplier code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}
