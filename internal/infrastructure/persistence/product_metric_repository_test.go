package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/momento/fulfillment/internal/domain/shared"
)

func TestGormProductMetricRepository_FindByVariant(t *testing.T) {
	t.Run("returns ErrNotFound when no row exists", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductMetricRepository(db)

		shopID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "product_metrics" WHERE shop_id = \$1 AND variant_id = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(shopID, "variant_1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "shop_id", "variant_id", "order_count", "return_count", "suppressed"}))

		metric, err := repo.FindByVariant(context.Background(), shopID, "variant_1")

		assert.Nil(t, metric)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductMetricRepository_FindSuppressedVariants(t *testing.T) {
	t.Run("plucks suppressed variant ids", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductMetricRepository(db)

		shopID := uuid.New()

		mock.ExpectQuery(`SELECT "variant_id" FROM "product_metrics" WHERE shop_id = \$1 AND suppressed = \$2 ORDER BY variant_id ASC`).
			WithArgs(shopID, true).
			WillReturnRows(sqlmock.NewRows([]string{"variant_id"}).AddRow("variant_1").AddRow("variant_9"))

		variants, err := repo.FindSuppressedVariants(context.Background(), shopID)

		assert.NoError(t, err)
		assert.Equal(t, []string{"variant_1", "variant_9"}, variants)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductMetricRepository_ListShops(t *testing.T) {
	t.Run("returns distinct shop ids", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormProductMetricRepository(db)

		shopA := uuid.New()
		shopB := uuid.New()

		mock.ExpectQuery(`SELECT DISTINCT "shop_id" FROM "product_metrics" ORDER BY shop_id ASC`).
			WillReturnRows(sqlmock.NewRows([]string{"shop_id"}).AddRow(shopA).AddRow(shopB))

		shops, err := repo.ListShops(context.Background())

		assert.NoError(t, err)
		assert.Equal(t, []uuid.UUID{shopA, shopB}, shops)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
