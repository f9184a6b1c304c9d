package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Email is a queued outbound message.
type Email struct {
	To      string
	Subject string
	Body    string
}

// Mailer accepts mail for best-effort delivery. Enqueue never blocks the
// request path and never reports delivery failures back to the caller.
type Mailer interface {
	Enqueue(msg Email)
}

// EmailDispatcher drains a buffered queue on a background goroutine.
// Delivery failures are logged and dropped; when the queue is full new
// messages are dropped rather than stalling a request.
type EmailDispatcher struct {
	sender EmailSender
	queue  chan Email
}

func NewEmailDispatcher(sender EmailSender, buffer int) *EmailDispatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &EmailDispatcher{
		sender: sender,
		queue:  make(chan Email, buffer),
	}
}

// Start launches the delivery worker. It stops when ctx is cancelled.
func (d *EmailDispatcher) Start(ctx context.Context) {
	go func() {
		zap.L().Info("email dispatcher started", zap.Int("buffer", cap(d.queue)))
		for {
			select {
			case <-ctx.Done():
				zap.L().Info("email dispatcher stopping")
				return
			case msg := <-d.queue:
				sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
				_, err := d.sender.SendEmail(sendCtx, msg.To, msg.Subject, msg.Body)
				cancel()
				if err != nil {
					zap.L().Warn("email delivery failed",
						zap.String("to", msg.To),
						zap.String("subject", msg.Subject),
						zap.Error(err),
					)
				}
			}
		}
	}()
}

func (d *EmailDispatcher) Enqueue(msg Email) {
	select {
	case d.queue <- msg:
	default:
		zap.L().Warn("email queue full, dropping message", zap.String("to", msg.To))
	}
}
