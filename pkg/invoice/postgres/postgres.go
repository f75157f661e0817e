package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bchpay/pkg/invoice"
)

// Schema creates the invoices table. seq preserves insertion order since ids
// may repeat.
const Schema = `CREATE TABLE IF NOT EXISTS invoices (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT NOT NULL,
	payment_address TEXT NOT NULL,
	amount DOUBLE PRECISION NOT NULL,
	status TEXT NOT NULL
)`

// Repository persists invoices in PostgreSQL.
type Repository struct {
	db *sql.DB
}

// New creates a PostgreSQL repository.
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the invoices table if it is missing.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("create invoices table: %w", err)
	}
	return nil
}

// Add inserts a new invoice.
func (r *Repository) Add(ctx context.Context, inv invoice.Invoice) error {
	_, err := r.db.ExecContext(ctx, "INSERT INTO invoices (id,payment_address,amount,status) VALUES ($1,$2,$3,$4)",
		inv.ID, inv.PaymentAddress, inv.Amount, string(inv.Status))
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// MarkPaid sets the oldest invoice with the id to paid.
func (r *Repository) MarkPaid(ctx context.Context, id, requestedStatus string) (invoice.Invoice, bool, error) {
	if requestedStatus != string(invoice.StatusPaid) {
		return invoice.Invoice{}, false, nil
	}
	var inv invoice.Invoice
	err := r.db.QueryRowContext(ctx,
		"UPDATE invoices SET status=$2 WHERE seq=(SELECT seq FROM invoices WHERE id=$1 ORDER BY seq LIMIT 1) "+
			"RETURNING id,payment_address,amount,status",
		id, string(invoice.StatusPaid)).
		Scan(&inv.ID, &inv.PaymentAddress, &inv.Amount, &inv.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return invoice.Invoice{}, false, nil
	}
	if err != nil {
		return invoice.Invoice{}, false, fmt.Errorf("mark invoice paid: %w", err)
	}
	return inv, true, nil
}

// Get retrieves the oldest invoice with the id.
func (r *Repository) Get(ctx context.Context, id string) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := r.db.QueryRowContext(ctx,
		"SELECT id,payment_address,amount,status FROM invoices WHERE id=$1 ORDER BY seq LIMIT 1", id).
		Scan(&inv.ID, &inv.PaymentAddress, &inv.Amount, &inv.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return invoice.Invoice{}, invoice.ErrNotFound
	}
	return inv, err
}

// List fetches all invoices in insertion order.
func (r *Repository) List(ctx context.Context) ([]invoice.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id,payment_address,amount,status FROM invoices ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	invoices := []invoice.Invoice{}
	for rows.Next() {
		var inv invoice.Invoice
		if err := rows.Scan(&inv.ID, &inv.PaymentAddress, &inv.Amount, &inv.Status); err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}
