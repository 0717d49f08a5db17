package scoring

import (
	"time"

	"github.com/google/uuid"
)

// SupplierScoreReport is one supplier's score change from a scoring run
type SupplierScoreReport struct {
	SupplierID uuid.UUID `json:"supplier_id"`
	OldScore   int       `json:"old_score"`
	NewScore   int       `json:"new_score"`
	Total      int64     `json:"total"`
	Failures   int64     `json:"failures"`
}

// SupplierRunResult summarizes one supplier scoring run
type SupplierRunResult struct {
	WindowStart time.Time             `json:"window_start"`
	Evaluated   int                   `json:"evaluated"`
	Updated     int                   `json:"updated"`
	Reports     []SupplierScoreReport `json:"reports,omitempty"`
}

// ProductRunResult summarizes one product scoring run
type ProductRunResult struct {
	Evaluated  int `json:"evaluated"`
	Suppressed int `json:"suppressed"`
	Restored   int `json:"restored"`
}
