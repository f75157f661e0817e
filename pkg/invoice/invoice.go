package invoice

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an invoice.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Invoice is a request for payment of a fixed amount to a fixed address.
type Invoice struct {
	ID             string  `json:"invoice_id"`
	PaymentAddress string  `json:"payment_address"`
	Amount         float64 `json:"amount"`
	Status         Status  `json:"status"`
}

// PaymentCallback is the notification a payment processor sends once it
// believes an invoice has been paid.
type PaymentCallback struct {
	InvoiceID string `json:"invoice_id"`
	Status    string `json:"status"`
	TxID      string `json:"txid"`
}

// Repository defines behavior for storing invoices.
type Repository interface {
	// Add appends inv. Ids are not checked for uniqueness.
	Add(ctx context.Context, inv Invoice) error
	// MarkPaid sets the first invoice with the given id to paid, but only
	// when requestedStatus is "paid". It reports whether an invoice matched
	// and returns that invoice as written.
	MarkPaid(ctx context.Context, id, requestedStatus string) (Invoice, bool, error)
	// Get returns the first invoice with the given id.
	Get(ctx context.Context, id string) (Invoice, error)
	// List returns all invoices in insertion order.
	List(ctx context.Context) ([]Invoice, error)
}

// ErrNotFound indicates the requested invoice does not exist.
var ErrNotFound = errors.New("invoice not found")

// IDGenerator issues invoice identifiers.
type IDGenerator interface {
	NewID() string
}

// FixedID always returns the same identifier.
type FixedID string

func (f FixedID) NewID() string { return string(f) }

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
