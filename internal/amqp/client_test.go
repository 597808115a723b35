package amqp

import (
	"context"
	"errors"
	"testing"

	"github.com/rabbitmq/amqp091-go"

	"github.com/jiangdengke/qq-bot/internal/bot"
)

// ackRecorder records the acknowledgement outcome of one delivery.
type ackRecorder struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (a *ackRecorder) Ack(tag uint64, multiple bool) error {
	a.acked = true
	return nil
}

func (a *ackRecorder) Nack(tag uint64, multiple, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func (a *ackRecorder) Reject(tag uint64, requeue bool) error {
	a.nacked = true
	a.requeue = requeue
	return nil
}

func TestHandleDelivery(t *testing.T) {
	validEvent := []byte(`{"messageId":"m1","userId":1001,"text":"overtime 2.5","timestamp":"2025-09-01T08:00:00Z"}`)

	cases := []struct {
		name        string
		body        []byte
		handler     Handler
		publishErr  error
		wantAck     bool
		wantNack    bool
		wantRequeue bool
		wantPublish bool
	}{
		{
			name: "malformed event is dropped without requeue",
			body: []byte(`{not json`),
			handler: func(ctx context.Context, event *MessageEvent) ([]bot.Reply, error) {
				t.Error("handler must not run for malformed events")
				return nil, nil
			},
			wantNack: true,
		},
		{
			name: "handler failure is requeued",
			body: validEvent,
			handler: func(ctx context.Context, event *MessageEvent) ([]bot.Reply, error) {
				return nil, errors.New("storage down")
			},
			wantNack:    true,
			wantRequeue: true,
		},
		{
			name: "publish failure is requeued",
			body: validEvent,
			handler: func(ctx context.Context, event *MessageEvent) ([]bot.Reply, error) {
				return []bot.Reply{{Text: "ok"}}, nil
			},
			publishErr:  errors.New("channel closed"),
			wantNack:    true,
			wantRequeue: true,
			wantPublish: true,
		},
		{
			name: "replies are published then acked",
			body: validEvent,
			handler: func(ctx context.Context, event *MessageEvent) ([]bot.Reply, error) {
				return []bot.Reply{{Text: "ok"}}, nil
			},
			wantAck:     true,
			wantPublish: true,
		},
		{
			name: "no replies is a silent ack",
			body: validEvent,
			handler: func(ctx context.Context, event *MessageEvent) ([]bot.Reply, error) {
				return nil, nil
			},
			wantAck: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var published *ReplyMessage
			c := &Client{
				publish: func(ctx context.Context, msg *ReplyMessage) error {
					published = msg
					return tc.publishErr
				},
			}

			rec := &ackRecorder{}
			delivery := amqp091.Delivery{
				Acknowledger: rec,
				DeliveryTag:  1,
				Body:         tc.body,
			}

			c.handleDelivery(context.Background(), delivery, tc.handler)

			if rec.acked != tc.wantAck {
				t.Errorf("acked = %v, want %v", rec.acked, tc.wantAck)
			}
			if rec.nacked != tc.wantNack {
				t.Errorf("nacked = %v, want %v", rec.nacked, tc.wantNack)
			}
			if rec.nacked && rec.requeue != tc.wantRequeue {
				t.Errorf("requeue = %v, want %v", rec.requeue, tc.wantRequeue)
			}
			if (published != nil) != tc.wantPublish {
				t.Errorf("publish called = %v, want %v", published != nil, tc.wantPublish)
			}
			if published != nil {
				if published.MessageID != "m1" || published.UserID != 1001 {
					t.Errorf("published for %q/%d, want m1/1001", published.MessageID, published.UserID)
				}
			}
		})
	}
}
