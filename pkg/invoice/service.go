package invoice

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"bchpay/pkg/logger"
	"bchpay/pkg/otel"
)

const (
	DefaultPaymentAddress = "bitcoincash:qr3jejs0qn6wnssw8659duv7c3nnx92f6sfsvam05w"
	DefaultAmount         = 0.005
)

// Notifier is told about every invoice a callback marks paid.
type Notifier interface {
	Publish(ctx context.Context, inv Invoice, txid string) error
}

// ServiceConfig holds the collaborators of a Service. Zero values fall back
// to UUID ids, the default address and amount, no notifications and a
// discarding logger.
type ServiceConfig struct {
	Repo           Repository
	IDs            IDGenerator
	Notifier       Notifier
	Log            *logger.Logger
	PaymentAddress string
	Amount         float64
}

// Service issues invoices and applies payment callbacks to them.
type Service struct {
	repo     Repository
	ids      IDGenerator
	notifier Notifier
	log      *logger.Logger
	address  string
	amount   float64
}

// NewService returns a Service backed by cfg.Repo.
func NewService(cfg ServiceConfig) *Service {
	s := &Service{
		repo:     cfg.Repo,
		ids:      cfg.IDs,
		notifier: cfg.Notifier,
		log:      cfg.Log,
		address:  cfg.PaymentAddress,
		amount:   cfg.Amount,
	}
	if s.ids == nil {
		s.ids = UUIDGenerator{}
	}
	if s.address == "" {
		s.address = DefaultPaymentAddress
	}
	if s.amount == 0 {
		s.amount = DefaultAmount
	}
	if s.log == nil {
		s.log = logger.New(io.Discard, logger.LevelError, "invoice", nil)
	}
	return s
}

// Create issues a pending invoice and stores it.
func (s *Service) Create(ctx context.Context) (Invoice, error) {
	ctx, span := otel.AddSpan(ctx, "invoice.Create")
	defer span.End()

	inv := Invoice{
		ID:             s.ids.NewID(),
		PaymentAddress: s.address,
		Amount:         s.amount,
		Status:         StatusPending,
	}
	span.SetAttributes(attribute.String("invoice.id", inv.ID))
	if err := s.repo.Add(ctx, inv); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "add invoice")
		return Invoice{}, err
	}
	s.log.Info(ctx, "invoice created", "invoice_id", inv.ID, "amount", inv.Amount)
	return inv, nil
}

// ApplyCallback marks the invoice named by cb paid when cb reports status
// "paid". It returns false when no invoice was updated; the caller cannot
// tell an unknown id from a wrong status. cb.TxID is only logged and
// forwarded to the Notifier.
func (s *Service) ApplyCallback(ctx context.Context, cb PaymentCallback) (bool, error) {
	ctx, span := otel.AddSpan(ctx, "invoice.ApplyCallback",
		attribute.String("invoice.id", cb.InvoiceID),
		attribute.String("payment.status", cb.Status),
		attribute.String("payment.txid", cb.TxID),
	)
	defer span.End()

	s.log.Info(ctx, "payment callback received", "invoice_id", cb.InvoiceID, "status", cb.Status, "txid", cb.TxID)

	inv, updated, err := s.repo.MarkPaid(ctx, cb.InvoiceID, cb.Status)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "mark paid")
		return false, err
	}
	if !updated {
		s.log.Warn(ctx, "payment callback rejected", "invoice_id", cb.InvoiceID, "status", cb.Status)
		return false, nil
	}

	s.log.Info(ctx, "invoice updated", "invoice_id", inv.ID, "status", inv.Status,
		"payment_address", inv.PaymentAddress, "amount", inv.Amount)

	if s.notifier != nil {
		if err := s.notifier.Publish(ctx, inv, cb.TxID); err != nil {
			s.log.Warn(ctx, "publish paid invoice", "invoice_id", inv.ID, "error", err)
		}
	}
	return true, nil
}

// Get returns the invoice with the given id.
func (s *Service) Get(ctx context.Context, id string) (Invoice, error) {
	ctx, span := otel.AddSpan(ctx, "invoice.Get", attribute.String("invoice.id", id))
	defer span.End()
	return s.repo.Get(ctx, id)
}

// List returns every invoice in issue order.
func (s *Service) List(ctx context.Context) ([]Invoice, error) {
	ctx, span := otel.AddSpan(ctx, "invoice.List")
	defer span.End()
	return s.repo.List(ctx)
}
