// Package memory implements an in-memory invoice repository.
package memory

import (
	"context"
	"sync"

	"bchpay/pkg/invoice"
)

// Repository provides an in-memory implementation of invoice.Repository.
// A single mutex serializes every operation, reads included.
type Repository struct {
	mu       sync.Mutex
	invoices []invoice.Invoice
}

// New creates a new in-memory repository.
func New() *Repository {
	return &Repository{}
}

// Add appends the invoice.
func (r *Repository) Add(ctx context.Context, inv invoice.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoices = append(r.invoices, inv)
	return nil
}

// MarkPaid flips the first invoice matching id to paid.
func (r *Repository) MarkPaid(ctx context.Context, id, requestedStatus string) (invoice.Invoice, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.invoices {
		if r.invoices[i].ID == id && requestedStatus == string(invoice.StatusPaid) {
			r.invoices[i].Status = invoice.StatusPaid
			return r.invoices[i], true, nil
		}
	}
	return invoice.Invoice{}, false, nil
}

// Get retrieves the first invoice with the given id.
func (r *Repository) Get(ctx context.Context, id string) (invoice.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, inv := range r.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return invoice.Invoice{}, invoice.ErrNotFound
}

// List returns a copy of all invoices.
func (r *Repository) List(ctx context.Context) ([]invoice.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]invoice.Invoice, len(r.invoices))
	copy(out, r.invoices)
	return out, nil
}
