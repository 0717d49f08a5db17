package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGormCandidateFinder_FindCandidates(t *testing.T) {
	t.Run("returns mapped offers from eligible suppliers", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		finder := NewGormCandidateFinder(db)

		supplierA := uuid.New()
		supplierB := uuid.New()

		rows := sqlmock.NewRows([]string{"supplier_id", "supplier_sku", "unit_cost", "qty_available", "reliability_score"}).
			AddRow(supplierA, "SKU-A", "10.00", 25, 100).
			AddRow(supplierB, "SKU-B", "9.50", 8, 72)

		mock.ExpectQuery(`SELECT suppliers\.id AS supplier_id, .* FROM "sku_mappings" JOIN suppliers ON suppliers\.id = sku_mappings\.supplier_id JOIN supplier_offers ON .* WHERE sku_mappings\.variant_id = \$1 AND suppliers\.status = \$2 AND suppliers\.reliability_score > \$3 AND supplier_offers\.qty >= \$4 ORDER BY suppliers\.id ASC`).
			WithArgs("variant_1", "active", 50, 3).
			WillReturnRows(rows)

		candidates, err := finder.FindCandidates(context.Background(), "variant_1", 3)

		assert.NoError(t, err)
		assert.Len(t, candidates, 2)
		assert.Equal(t, supplierA, candidates[0].SupplierID)
		assert.Equal(t, "SKU-A", candidates[0].SupplierSKU)
		assert.Equal(t, 25, candidates[0].QtyAvailable)
		assert.Equal(t, 72, candidates[1].ReliabilityScore)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice for unmapped variant", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		finder := NewGormCandidateFinder(db)

		mock.ExpectQuery(`SELECT suppliers\.id AS supplier_id, .* FROM "sku_mappings" .*`).
			WithArgs("variant_unknown", "active", 50, 1).
			WillReturnRows(sqlmock.NewRows([]string{"supplier_id", "supplier_sku", "unit_cost", "qty_available", "reliability_score"}))

		candidates, err := finder.FindCandidates(context.Background(), "variant_unknown", 1)

		assert.NoError(t, err)
		assert.Empty(t, candidates)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
