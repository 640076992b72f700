package integration

import (
	"context"
	"testing"
	"time"

	"food-dispatch/internal/model"
	"food-dispatch/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestaurantRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewRestaurantRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetAll returns seeded restaurants with coordinates", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		restaurants, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, restaurants, 2)

		assert.Equal(t, int64(1), restaurants[0].ID)
		assert.Equal(t, "Near Kitchen", restaurants[0].Name)
		require.NotNil(t, restaurants[0].Coordinates)
		assert.True(t, restaurants[0].Coordinates.Latitude.Equal(decimal.RequireFromString("55.7674")))
	})

	t.Run("GetAll keeps restaurants without coordinates", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		_, err := testDB.Pool.Exec(ctx,
			"INSERT INTO restaurants (id, name, address) VALUES (7, 'No Coords', 'Unknown')")
		require.NoError(t, err)

		restaurants, err := repo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, restaurants, 1)
		assert.Nil(t, restaurants[0].Coordinates)
	})

	t.Run("GetAvailableMenuEntries excludes unavailable items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		entries, err := repo.GetAvailableMenuEntries(ctx)
		require.NoError(t, err)

		// P003 at restaurant 1 is seeded unavailable.
		require.Len(t, entries, 3)
		for _, e := range entries {
			assert.True(t, e.Availability)
			assert.NotEqual(t, "P003", e.ProductID)
		}
	})
}

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewProductRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetAvailable returns products on at least one menu", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		products, err := repo.GetAvailable(ctx)
		require.NoError(t, err)

		// P003 exists but is only listed as unavailable.
		require.Len(t, products, 2)
		ids := []string{products[0].ID, products[1].ID}
		assert.Contains(t, ids, "P001")
		assert.Contains(t, ids, "P002")
	})

	t.Run("GetByIDs returns prices as decimals", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		products, err := repo.GetByIDs(ctx, []string{"P001", "P002"})
		require.NoError(t, err)
		require.Len(t, products, 2)

		byID := map[string]model.Product{}
		for _, p := range products {
			byID[p.ID] = p
		}
		assert.True(t, byID["P001"].Price.Equal(decimal.RequireFromString("450.00")))
		assert.True(t, byID["P002"].Price.Equal(decimal.RequireFromString("520.00")))
	})

	t.Run("ValidateProductsExist succeeds for valid products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		err := repo.ValidateProductsExist(ctx, []string{"P001", "P002"})
		require.NoError(t, err)
	})

	t.Run("ValidateProductsExist accepts duplicate IDs", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		// Same product on two order lines: one catalogue row must satisfy
		// both occurrences.
		err := repo.ValidateProductsExist(ctx, []string{"P001", "P001", "P002"})
		require.NoError(t, err)
	})

	t.Run("ValidateProductsExist fails for unknown products", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		err := repo.ValidateProductsExist(ctx, []string{"P001", "P999"})
		require.Error(t, err)
		assert.Equal(t, model.ErrProductNotFound, err)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	newOrder := func() *model.Order {
		return &model.Order{
			ID:            uuid.New(),
			Firstname:     "Ivan",
			Lastname:      "Petrov",
			Phonenumber:   "+79031234567",
			Address:       "Moscow, Red Square",
			Status:        model.OrderStatusUnprocessed,
			PaymentMethod: model.PaymentCash,
			RegisteredAt:  time.Now().UTC(),
		}
	}

	t.Run("CreateOrder and CreateLineItems round trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		order := newOrder()
		err = repo.CreateOrder(ctx, tx, order)
		require.NoError(t, err)

		items := []model.OrderLineItem{
			{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: "P001",
				Quantity:  2,
				LinePrice: decimal.RequireFromString("900.00"),
			},
			{
				ID:        uuid.New(),
				OrderID:   order.ID,
				ProductID: "P002",
				Quantity:  1,
				LinePrice: decimal.RequireFromString("520.00"),
			},
		}
		err = repo.CreateLineItems(ctx, tx, items)
		require.NoError(t, err)

		err = tx.Commit(ctx)
		require.NoError(t, err)

		orders, err := repo.GetUnprocessed(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, order.ID, orders[0].ID)
		assert.Equal(t, model.OrderStatusUnprocessed, orders[0].Status)

		grouped, err := repo.GetLineItems(ctx, []uuid.UUID{order.ID})
		require.NoError(t, err)
		require.Len(t, grouped[order.ID], 2)

		total := model.Total(grouped[order.ID])
		assert.True(t, total.Equal(decimal.RequireFromString("1420.00")))
	})

	t.Run("GetUnprocessed excludes processed orders", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		processed := newOrder()
		processed.Status = model.OrderStatusProcessed
		require.NoError(t, repo.CreateOrder(ctx, tx, processed))

		pending := newOrder()
		require.NoError(t, repo.CreateOrder(ctx, tx, pending))
		require.NoError(t, tx.Commit(ctx))

		orders, err := repo.GetUnprocessed(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, pending.ID, orders[0].ID)
	})

	t.Run("GetUnprocessed orders oldest first", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		newer := newOrder()
		newer.RegisteredAt = time.Now().UTC()
		require.NoError(t, repo.CreateOrder(ctx, tx, newer))

		older := newOrder()
		older.RegisteredAt = time.Now().UTC().Add(-time.Hour)
		require.NoError(t, repo.CreateOrder(ctx, tx, older))
		require.NoError(t, tx.Commit(ctx))

		orders, err := repo.GetUnprocessed(ctx)
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, older.ID, orders[0].ID)
		assert.Equal(t, newer.ID, orders[1].ID)
	})

	t.Run("Transaction rollback discards order", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedCatalogue(t, testDB.Pool)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		order := newOrder()
		require.NoError(t, repo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Rollback(ctx))

		orders, err := repo.GetUnprocessed(ctx)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("GetLineItems with no orders returns empty map", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		grouped, err := repo.GetLineItems(ctx, []uuid.UUID{})
		require.NoError(t, err)
		assert.Empty(t, grouped)
	})
}

func TestGeocodeRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewGeocodeRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Get returns nil for unknown address", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		entry, err := repo.Get(ctx, "Moscow, Red Square")
		require.NoError(t, err)
		assert.Nil(t, entry)
	})

	t.Run("Upsert then Get round trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		requestedAt := time.Now().UTC()
		err := repo.Upsert(ctx, &model.GeocodedAddress{
			Address: "Moscow, Red Square",
			Coordinates: &model.Coordinates{
				Longitude: decimal.RequireFromString("37.6208"),
				Latitude:  decimal.RequireFromString("55.7539"),
			},
			RequestedAt: requestedAt,
		})
		require.NoError(t, err)

		entry, err := repo.Get(ctx, "Moscow, Red Square")
		require.NoError(t, err)
		require.NotNil(t, entry)
		require.NotNil(t, entry.Coordinates)
		assert.True(t, entry.Coordinates.Longitude.Equal(decimal.RequireFromString("37.6208")))
		assert.True(t, entry.Coordinates.Latitude.Equal(decimal.RequireFromString("55.7539")))
		assert.WithinDuration(t, requestedAt, entry.RequestedAt, time.Second)
	})

	t.Run("Unresolvable address stored with null coordinates", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		err := repo.Upsert(ctx, &model.GeocodedAddress{
			Address:     "Atlantis",
			Coordinates: nil,
			RequestedAt: time.Now().UTC(),
		})
		require.NoError(t, err)

		entry, err := repo.Get(ctx, "Atlantis")
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Nil(t, entry.Coordinates)
	})

	t.Run("Upsert is idempotent per address", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		first := &model.GeocodedAddress{
			Address:     "Moscow, Tverskaya 7",
			Coordinates: nil,
			RequestedAt: time.Now().UTC().Add(-time.Hour),
		}
		require.NoError(t, repo.Upsert(ctx, first))

		second := &model.GeocodedAddress{
			Address: "Moscow, Tverskaya 7",
			Coordinates: &model.Coordinates{
				Longitude: decimal.RequireFromString("37.6050"),
				Latitude:  decimal.RequireFromString("55.7644"),
			},
			RequestedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.Upsert(ctx, second))

		entry, err := repo.Get(ctx, "Moscow, Tverskaya 7")
		require.NoError(t, err)
		require.NotNil(t, entry)
		require.NotNil(t, entry.Coordinates)
		assert.True(t, entry.Coordinates.Latitude.Equal(decimal.RequireFromString("55.7644")))

		var count int
		err = testDB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM geocoded_addresses").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Addresses differing in formatting are distinct keys", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		require.NoError(t, repo.Upsert(ctx, &model.GeocodedAddress{
			Address:     "Moscow, Arbat 1",
			RequestedAt: time.Now().UTC(),
		}))
		require.NoError(t, repo.Upsert(ctx, &model.GeocodedAddress{
			Address:     "moscow, arbat 1",
			RequestedAt: time.Now().UTC(),
		}))

		var count int
		err := testDB.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM geocoded_addresses").Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}
