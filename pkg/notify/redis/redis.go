// Package redis publishes paid-invoice notifications over Redis pub/sub.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"bchpay/pkg/invoice"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "invoice.paid"

// Client is the subset of the go-redis client the Publisher needs.
type Client interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Message is the JSON payload sent on the channel.
type Message struct {
	InvoiceID string         `json:"invoice_id"`
	Status    invoice.Status `json:"status"`
	Amount    float64        `json:"amount"`
	TxID      string         `json:"txid"`
	PaidAt    time.Time      `json:"paid_at"`
}

var _ invoice.Notifier = (*Publisher)(nil)

// Publisher implements invoice.Notifier.
type Publisher struct {
	client  Client
	channel string
	now     func() time.Time
}

// New creates a Publisher on channel, or DefaultChannel when it is empty.
func New(client Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: client, channel: channel, now: time.Now}
}

// Publish sends inv and txid to subscribers.
func (p *Publisher) Publish(ctx context.Context, inv invoice.Invoice, txid string) error {
	b, err := json.Marshal(Message{
		InvoiceID: inv.ID,
		Status:    inv.Status,
		Amount:    inv.Amount,
		TxID:      txid,
		PaidAt:    p.now().UTC(),
	})
	if err != nil {
		return err
	}
	if err := p.client.Publish(ctx, p.channel, b).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}
	return nil
}
