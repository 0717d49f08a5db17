package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/momento/fulfillment/internal/domain/routing"
	"github.com/momento/fulfillment/internal/domain/shared"
)

func TestGormPurchaseOrderRepository_FindByOrderID(t *testing.T) {
	t.Run("loads purchase orders with lines", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		poID := uuid.New()
		shopID := uuid.New()
		supplierID := uuid.New()

		poRows := sqlmock.NewRows([]string{"id", "order_id", "shop_id", "supplier_id", "status"}).
			AddRow(poID, "order_77", shopID, supplierID, "created")

		lineRows := sqlmock.NewRows([]string{"id", "purchase_order_id", "external_order_item_id", "supplier_sku", "qty", "unit_cost"}).
			AddRow(uuid.New(), poID, "item_1", "SKU-1", 2, "19.99")

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE order_id = \$1 ORDER BY supplier_id ASC`).
			WithArgs("order_77").
			WillReturnRows(poRows)
		mock.ExpectQuery(`SELECT \* FROM "purchase_order_lines" WHERE "purchase_order_lines"."purchase_order_id" = \$1`).
			WithArgs(poID).
			WillReturnRows(lineRows)

		pos, err := repo.FindByOrderID(context.Background(), "order_77")

		assert.NoError(t, err)
		assert.Len(t, pos, 1)
		assert.Equal(t, "order_77", pos[0].OrderID)
		assert.Len(t, pos[0].Lines, 1)
		assert.Equal(t, "SKU-1", pos[0].Lines[0].SupplierSKU)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when order has no purchase orders", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE order_id = \$1 ORDER BY supplier_id ASC`).
			WithArgs("order_missing").
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "shop_id", "supplier_id", "status"}))

		pos, err := repo.FindByOrderID(context.Background(), "order_missing")

		assert.NoError(t, err)
		assert.Empty(t, pos)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_FindByID(t *testing.T) {
	t.Run("returns ErrNotFound for missing purchase order", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		poID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(poID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "shop_id", "supplier_id", "status"}))

		po, err := repo.FindByID(context.Background(), poID)

		assert.Nil(t, po)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_FindBySupplier(t *testing.T) {
	t.Run("applies status filter and pagination", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		supplierID := uuid.New()
		filter := shared.DefaultFilter()
		filter.OrderBy = ""
		filter.Filters["status"] = "canceled"

		mock.ExpectQuery(`SELECT \* FROM "purchase_orders" WHERE supplier_id = \$1 AND status = \$2 ORDER BY created_at DESC LIMIT .*`).
			WithArgs(supplierID, "canceled", 20).
			WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "shop_id", "supplier_id", "status"}))

		pos, err := repo.FindBySupplier(context.Background(), supplierID, filter)

		assert.NoError(t, err)
		assert.Empty(t, pos)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseOrderRepository_OutcomeStats(t *testing.T) {
	t.Run("aggregates totals and canceled counts per supplier", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseOrderRepository(db)

		supplierA := uuid.New()
		supplierB := uuid.New()
		since := time.Now().Add(-30 * 24 * time.Hour)

		rows := sqlmock.NewRows([]string{"supplier_id", "total", "failures"}).
			AddRow(supplierA, 10, 2).
			AddRow(supplierB, 3, 0)

		mock.ExpectQuery(`SELECT supplier_id AS supplier_id, COUNT\(\*\) AS total, COUNT\(\*\) FILTER \(WHERE status = \$1\) AS failures FROM "purchase_orders" WHERE created_at >= \$2 GROUP BY .*supplier_id.* ORDER BY supplier_id ASC`).
			WithArgs("canceled", since).
			WillReturnRows(rows)

		outcomes, err := repo.OutcomeStats(context.Background(), since)

		assert.NoError(t, err)
		assert.Len(t, outcomes, 2)
		assert.Equal(t, routing.SupplierOutcome{SupplierID: supplierA, Total: 10, Failures: 2}, outcomes[0])
		assert.Equal(t, int64(0), outcomes[1].Failures)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
