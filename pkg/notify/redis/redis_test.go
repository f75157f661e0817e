package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"bchpay/pkg/invoice"
)

type fakeClient struct {
	channel string
	payload []byte
	err     error
}

func (f *fakeClient) Publish(ctx context.Context, channel string, message any) *redis.IntCmd {
	f.channel = channel
	f.payload, _ = message.([]byte)
	cmd := redis.NewIntCmd(ctx)
	if f.err != nil {
		cmd.SetErr(f.err)
	} else {
		cmd.SetVal(1)
	}
	return cmd
}

func TestPublish(t *testing.T) {
	client := &fakeClient{}
	p := New(client, "")
	paidAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return paidAt }

	inv := invoice.Invoice{ID: "invoice123", Amount: 0.005, Status: invoice.StatusPaid}
	require.NoError(t, p.Publish(context.Background(), inv, "abc"))
	require.Equal(t, DefaultChannel, client.channel)

	var msg Message
	require.NoError(t, json.Unmarshal(client.payload, &msg))
	require.Equal(t, Message{InvoiceID: "invoice123", Status: invoice.StatusPaid, Amount: 0.005, TxID: "abc", PaidAt: paidAt}, msg)
}

func TestPublishError(t *testing.T) {
	p := New(&fakeClient{err: errors.New("connection refused")}, "payments")
	err := p.Publish(context.Background(), invoice.Invoice{ID: "x"}, "")
	require.ErrorContains(t, err, "publish to payments")
	require.ErrorContains(t, err, "connection refused")
}
