package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	// Same decimal codec registration the production pool performs.
	poolConfig.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS restaurants (
			id BIGINT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(255) NOT NULL,
			contact_phone VARCHAR(50) NOT NULL DEFAULT '',
			longitude NUMERIC(11, 8),
			latitude NUMERIC(10, 8)
		);

		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL DEFAULT '',
			price NUMERIC(8, 2) NOT NULL CHECK (price >= 0),
			special_status BOOLEAN NOT NULL DEFAULT FALSE,
			description TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS menu_entries (
			restaurant_id BIGINT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			product_id VARCHAR(50) NOT NULL REFERENCES products(id) ON DELETE CASCADE,
			availability BOOLEAN NOT NULL DEFAULT TRUE,
			PRIMARY KEY (restaurant_id, product_id)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			firstname VARCHAR(100) NOT NULL,
			lastname VARCHAR(100) NOT NULL,
			phonenumber VARCHAR(50) NOT NULL,
			address VARCHAR(255) NOT NULL,
			status VARCHAR(10) NOT NULL DEFAULT 'UNPR',
			payment_method VARCHAR(10) NOT NULL DEFAULT '',
			comment TEXT NOT NULL DEFAULT '',
			registered_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			called_at TIMESTAMPTZ,
			delivered_at TIMESTAMPTZ,
			restaurant_id BIGINT REFERENCES restaurants(id)
		);

		CREATE TABLE IF NOT EXISTS order_line_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id VARCHAR(50) NOT NULL REFERENCES products(id),
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			line_price NUMERIC(10, 2) NOT NULL CHECK (line_price >= 0)
		);

		CREATE TABLE IF NOT EXISTS geocoded_addresses (
			address VARCHAR(255) PRIMARY KEY,
			longitude NUMERIC(11, 8),
			latitude NUMERIC(10, 8),
			requested_at TIMESTAMPTZ NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);
		CREATE INDEX IF NOT EXISTS idx_order_line_items_order_id ON order_line_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_menu_entries_product_id ON menu_entries(product_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCatalogue inserts test restaurant, product and menu data.
func SeedCatalogue(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	restaurants := []struct {
		id       int64
		name     string
		address  string
		lon, lat string
	}{
		{1, "Near Kitchen", "Moscow, Nikolskaya 4", "37.62080000", "55.76740000"},
		{2, "Far Kitchen", "Moscow, Sushchevskaya 21", "37.62080000", "55.78390000"},
	}
	for _, r := range restaurants {
		_, err := pool.Exec(ctx,
			"INSERT INTO restaurants (id, name, address, longitude, latitude) VALUES ($1, $2, $3, $4, $5)",
			r.id, r.name, r.address, r.lon, r.lat,
		)
		if err != nil {
			t.Fatalf("failed to seed restaurant %d: %v", r.id, err)
		}
	}

	products := []struct {
		id       string
		name     string
		category string
		price    string
	}{
		{"P001", "Margherita", "Pizza", "450.00"},
		{"P002", "Pepperoni", "Pizza", "520.00"},
		{"P003", "Caesar", "Salad", "320.00"},
	}
	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, category, price) VALUES ($1, $2, $3, $4)",
			p.id, p.name, p.category, p.price,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.id, err)
		}
	}

	entries := []struct {
		restaurantID int64
		productID    string
		availability bool
	}{
		{1, "P001", true},
		{1, "P002", true},
		{1, "P003", false},
		{2, "P001", true},
	}
	for _, e := range entries {
		_, err := pool.Exec(ctx,
			"INSERT INTO menu_entries (restaurant_id, product_id, availability) VALUES ($1, $2, $3)",
			e.restaurantID, e.productID, e.availability,
		)
		if err != nil {
			t.Fatalf("failed to seed menu entry %d/%s: %v", e.restaurantID, e.productID, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_line_items", "orders", "menu_entries", "products", "restaurants", "geocoded_addresses"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
