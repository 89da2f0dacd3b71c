package inventory

import (
	"context"
	"database/sql"
	"fmt"
)

const storeProductsSchema = `
CREATE TABLE IF NOT EXISTS store_products (
	id         UUID NOT NULL,
	name       TEXT NOT NULL,
	price      DOUBLE PRECISION NOT NULL CHECK (price >= 0),
	quantity   INTEGER NOT NULL CHECK (quantity >= 0),
	is_active  BOOLEAN NOT NULL,
	position   INTEGER PRIMARY KEY
)`

// MigratePostgres creates the store_products table if it does not exist.
func MigratePostgres(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, storeProductsSchema)
	return err
}

type productPostgres struct{ db *sql.DB }

// NewPostgresRepository stores the product snapshot in the store_products table.
func NewPostgresRepository(db *sql.DB) Repository { return &productPostgres{db: db} }

func (r *productPostgres) LoadProducts(ctx context.Context) ([]*ProductRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,name,price,quantity,is_active,position
FROM store_products ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var products []*ProductRecord
	for rows.Next() {
		p := &ProductRecord{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Quantity, &p.IsActive, &p.Position); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// SaveProducts replaces the stored snapshot in a single transaction.
func (r *productPostgres) SaveProducts(ctx context.Context, products []*ProductRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM store_products`); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}
	for i, p := range products {
		_, err := tx.ExecContext(ctx, `
INSERT INTO store_products (id,name,price,quantity,is_active,position)
VALUES ($1,$2,$3,$4,$5,$6)`,
			p.ID, p.Name, p.Price, p.Quantity, p.IsActive, i)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}
