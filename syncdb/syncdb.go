// Package syncdb bridges the manager's snapshot to a relational database.
// It owns connection management, schema creation and the merge policy; the
// core only exposes the ExportSnapshot and ReplaceSnapshot seams it uses.
package syncdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"stocktrack/domain"
)

// Open connects to Postgres. An empty dsn falls back to DATABASE_URL from
// the environment, loading a .env file when present.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		godotenv.Load()
		dsn = os.Getenv("DATABASE_URL")
	}
	if dsn == "" {
		return nil, fmt.Errorf("database DSN required: pass --dsn or set DATABASE_URL")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// EnsureSchema creates the bridge tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			code INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL,
			unit_price NUMERIC(12,2) NOT NULL,
			status TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			code INTEGER PRIMARY KEY,
			status TEXT NOT NULL,
			payment_status TEXT NOT NULL,
			delivery_status TEXT NOT NULL,
			created_at TIMESTAMP,
			updated_at TIMESTAMP,
			paid_at TIMESTAMP,
			delivered_at TIMESTAMP,
			paid_amount NUMERIC(12,2) NOT NULL,
			stock_deducted BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS order_lines (
			order_code INTEGER NOT NULL REFERENCES orders(code) ON DELETE CASCADE,
			product_code INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			unit_price NUMERIC(12,2) NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Push writes the full snapshot to the database, upserting by code. Order
// lines are replaced wholesale per order.
func Push(ctx context.Context, db *sql.DB, products []domain.Product, orders []domain.Order) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin push: %w", err)
	}
	defer tx.Rollback()

	for _, p := range products {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (code, name, description, quantity, unit_price, status)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (code) DO UPDATE SET
			   name = EXCLUDED.name,
			   description = EXCLUDED.description,
			   quantity = EXCLUDED.quantity,
			   unit_price = EXCLUDED.unit_price,
			   status = EXCLUDED.status`,
			p.Code, p.Name, p.Description, p.Quantity, p.UnitPrice, string(p.Status))
		if err != nil {
			return fmt.Errorf("push product %d: %w", p.Code, err)
		}
	}

	for _, o := range orders {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO orders (code, status, payment_status, delivery_status,
			   created_at, updated_at, paid_at, delivered_at, paid_amount, stock_deducted)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (code) DO UPDATE SET
			   status = EXCLUDED.status,
			   payment_status = EXCLUDED.payment_status,
			   delivery_status = EXCLUDED.delivery_status,
			   created_at = EXCLUDED.created_at,
			   updated_at = EXCLUDED.updated_at,
			   paid_at = EXCLUDED.paid_at,
			   delivered_at = EXCLUDED.delivered_at,
			   paid_amount = EXCLUDED.paid_amount,
			   stock_deducted = EXCLUDED.stock_deducted`,
			o.Code, string(o.Status), string(o.PaymentStatus), string(o.DeliveryStatus),
			nullTime(o.CreatedAt), nullTime(o.UpdatedAt), nullTime(o.PaidAt), nullTime(o.DeliveredAt),
			o.PaidAmount, o.StockDeducted)
		if err != nil {
			return fmt.Errorf("push order %d: %w", o.Code, err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM order_lines WHERE order_code = $1`, o.Code); err != nil {
			return fmt.Errorf("clear lines for order %d: %w", o.Code, err)
		}
		for _, line := range o.Lines {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO order_lines (order_code, product_code, quantity, unit_price)
				 VALUES ($1, $2, $3, $4)`,
				o.Code, line.ProductCode, line.Quantity, line.UnitPrice)
			if err != nil {
				return fmt.Errorf("push line for order %d: %w", o.Code, err)
			}
		}
	}
	return tx.Commit()
}

// Pull reads the full snapshot from the database.
func Pull(ctx context.Context, db *sql.DB) ([]domain.Product, []domain.Order, error) {
	products, err := pullProducts(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	orders, err := pullOrders(ctx, db)
	if err != nil {
		return nil, nil, err
	}
	return products, orders, nil
}

func pullProducts(ctx context.Context, db *sql.DB) ([]domain.Product, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT code, name, description, quantity, unit_price, status
		 FROM products ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("pull products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var status string
		if err := rows.Scan(&p.Code, &p.Name, &p.Description, &p.Quantity, &p.UnitPrice, &status); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Status, _ = domain.ParseProductStatus(status)
		products = append(products, p)
	}
	return products, rows.Err()
}

func pullOrders(ctx context.Context, db *sql.DB) ([]domain.Order, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT code, status, payment_status, delivery_status,
		        created_at, updated_at, paid_at, delivered_at, paid_amount, stock_deducted
		 FROM orders ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("pull orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var status, payment, delivery string
		var createdAt, updatedAt, paidAt, deliveredAt sql.NullTime
		if err := rows.Scan(&o.Code, &status, &payment, &delivery,
			&createdAt, &updatedAt, &paidAt, &deliveredAt, &o.PaidAmount, &o.StockDeducted); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Status, _ = domain.ParseOrderStatus(status)
		o.PaymentStatus, _ = domain.ParsePaymentStatus(payment)
		o.DeliveryStatus, _ = domain.ParseDeliveryStatus(delivery)
		o.CreatedAt = timestamp(createdAt)
		o.UpdatedAt = timestamp(updatedAt)
		o.PaidAt = timestamp(paidAt)
		o.DeliveredAt = timestamp(deliveredAt)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		lines, err := pullLines(ctx, db, orders[i].Code)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

func pullLines(ctx context.Context, db *sql.DB, orderCode int) ([]domain.OrderLine, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT product_code, quantity, unit_price
		 FROM order_lines WHERE order_code = $1`, orderCode)
	if err != nil {
		return nil, fmt.Errorf("pull lines for order %d: %w", orderCode, err)
	}
	defer rows.Close()

	var lines []domain.OrderLine
	for rows.Next() {
		var l domain.OrderLine
		if err := rows.Scan(&l.ProductCode, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func nullTime(t domain.Timestamp) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.Time, Valid: true}
}

func timestamp(t sql.NullTime) domain.Timestamp {
	if !t.Valid {
		return domain.Timestamp{}
	}
	return domain.NewTimestamp(t.Time)
}
