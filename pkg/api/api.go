// Package api exposes the invoice service over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	_ "bchpay/docs"
	"bchpay/pkg/invoice"
	"bchpay/pkg/logger"
	"bchpay/pkg/otel"
)

const (
	MsgPaymentConfirmed = "payment confirmed, status updated"
	MsgPaymentRejected  = "payment verification failed or invalid status"
	MsgInvalidCallback  = "invalid callback body"
)

// InvoiceService is the behavior the handlers need from invoice.Service.
type InvoiceService interface {
	Create(ctx context.Context) (invoice.Invoice, error)
	ApplyCallback(ctx context.Context, cb invoice.PaymentCallback) (bool, error)
	Get(ctx context.Context, id string) (invoice.Invoice, error)
	List(ctx context.Context) ([]invoice.Invoice, error)
}

// Handler serves the invoice endpoints.
type Handler struct {
	svc      InvoiceService
	log      *logger.Logger
	validate *validator.Validate
}

// NewHandler returns a Handler for svc.
func NewHandler(svc InvoiceService, log *logger.Logger) *Handler {
	return &Handler{svc: svc, log: log, validate: validator.New()}
}

// NewRouter registers the handler routes and the swagger UI.
func NewRouter(h *Handler, tracer trace.Tracer) *mux.Router {
	r := mux.NewRouter()
	r.Use(traceMiddleware(tracer))
	r.HandleFunc("/generate_invoice", h.generateInvoice).Methods(http.MethodGet)
	r.HandleFunc("/payment_callback", h.paymentCallback).Methods(http.MethodPost)
	r.HandleFunc("/invoice/{id}", h.getInvoice).Methods(http.MethodGet)
	r.HandleFunc("/check_payment/{id}", h.checkPayment).Methods(http.MethodGet)
	r.HandleFunc("/invoices", h.listInvoices).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

// callbackRequest is the wire form of invoice.PaymentCallback. Pointers
// tell a missing field apart from an empty one.
type callbackRequest struct {
	InvoiceID *string `json:"invoice_id" validate:"required"`
	Status    *string `json:"status" validate:"required"`
	TxID      *string `json:"txid" validate:"required"`
}

// paymentStatus is returned by checkPayment.
type paymentStatus struct {
	InvoiceID string         `json:"invoice_id"`
	Status    invoice.Status `json:"status"`
	Paid      bool           `json:"paid"`
}

// generateInvoice issues a new invoice.
// @Summary Generate invoice
// @Produce json
// @Success 200 {object} invoice.Invoice
// @Router /generate_invoice [get]
func (h *Handler) generateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "generateInvoiceHandler")
	defer span.End()

	inv, err := h.svc.Create(ctx)
	if err != nil {
		h.log.Error(ctx, "generate invoice", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// paymentCallback marks an invoice paid.
// @Summary Payment callback
// @Accept json
// @Produce plain
// @Param callback body callbackRequest true "Callback"
// @Success 200 {string} string
// @Failure 400 {string} string
// @Router /payment_callback [post]
func (h *Handler) paymentCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "paymentCallbackHandler")
	defer span.End()

	var req callbackRequest
	if err := decodeSingle(r.Body, &req); err != nil {
		h.log.Warn(ctx, "decode payment callback", "error", err)
		writeText(w, http.StatusBadRequest, MsgInvalidCallback)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.log.Warn(ctx, "validate payment callback", "error", err)
		writeText(w, http.StatusBadRequest, MsgInvalidCallback)
		return
	}

	ok, err := h.svc.ApplyCallback(ctx, invoice.PaymentCallback{
		InvoiceID: *req.InvoiceID,
		Status:    *req.Status,
		TxID:      *req.TxID,
	})
	if err != nil {
		h.log.Error(ctx, "apply payment callback", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		writeText(w, http.StatusBadRequest, MsgPaymentRejected)
		return
	}
	writeText(w, http.StatusOK, MsgPaymentConfirmed)
}

// getInvoice retrieves an invoice by ID.
// @Summary Get invoice
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} invoice.Invoice
// @Failure 404
// @Router /invoice/{id} [get]
func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "getInvoiceHandler")
	defer span.End()

	inv, ok := h.lookup(ctx, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// checkPayment reports whether an invoice has been paid.
// @Summary Check payment
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} paymentStatus
// @Failure 404
// @Router /check_payment/{id} [get]
func (h *Handler) checkPayment(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "checkPaymentHandler")
	defer span.End()

	inv, ok := h.lookup(ctx, w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, paymentStatus{
		InvoiceID: inv.ID,
		Status:    inv.Status,
		Paid:      inv.Status == invoice.StatusPaid,
	})
}

// listInvoices lists invoices in issue order.
// @Summary List invoices
// @Produce json
// @Success 200 {array} invoice.Invoice
// @Router /invoices [get]
func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "listInvoicesHandler")
	defer span.End()

	invoices, err := h.svc.List(ctx)
	if err != nil {
		h.log.Error(ctx, "list invoices", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (h *Handler) lookup(ctx context.Context, w http.ResponseWriter, r *http.Request) (invoice.Invoice, bool) {
	id := mux.Vars(r)["id"]
	inv, err := h.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.NotFound(w, r)
			return invoice.Invoice{}, false
		}
		h.log.Error(ctx, "get invoice", "invoice_id", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return invoice.Invoice{}, false
	}
	return inv, true
}

// decodeSingle decodes exactly one JSON value from body and rejects anything
// after it.
func decodeSingle(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func traceMiddleware(tracer trace.Tracer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := otel.InjectTracing(r.Context(), tracer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	io.WriteString(w, msg)
}
