package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/northcourt/club-api/internal/domain/registration"
	"github.com/northcourt/club-api/internal/platform/money"
)

const (
	defaultPoolSize = 8
	sendTimeout     = 10 * time.Second
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers one message; the mail client satisfies this.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Dispatcher sends notifications best-effort on a worker pool. Enqueue
// never blocks the caller and send failures are logged, never returned:
// registration and payment success must not depend on deliverability.
type Dispatcher struct {
	pool     *ants.Pool
	sender   Sender
	logger   *slog.Logger
	inFlight sync.WaitGroup
}

func NewDispatcher(sender Sender, logger *slog.Logger) (*Dispatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	pool, err := ants.NewPool(defaultPoolSize, ants.WithNonblocking(true))
	if err != nil {
		return nil, fmt.Errorf("create notification pool: %w", err)
	}

	return &Dispatcher{
		pool:   pool,
		sender: sender,
		logger: logger,
	}, nil
}

// Dispatch enqueues each message independently; one failed enqueue or
// send never affects the others.
func (d *Dispatcher) Dispatch(msgs ...Message) {
	if d == nil {
		return
	}
	if d.sender == nil {
		d.logger.Warn("mail is not configured, dropping notifications", "count", len(msgs))
		return
	}

	for _, msg := range msgs {
		msg := msg
		d.inFlight.Add(1)
		err := d.pool.Submit(func() {
			defer d.inFlight.Done()
			d.send(msg)
		})
		if err != nil {
			d.inFlight.Done()
			d.logger.Warn("notification enqueue failed",
				"to", msg.To,
				"subject", msg.Subject,
				"error", err,
			)
		}
	}
}

func (d *Dispatcher) send(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.Warn("notification send failed",
			"to", msg.To,
			"subject", msg.Subject,
			"error", err,
		)
		return
	}

	d.logger.Debug("notification sent", "to", msg.To, "subject", msg.Subject)
}

// Close drains in-flight sends and releases the pool.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.inFlight.Wait()
	d.pool.Release()
}

// RegistrationConfirmation is the message sent to the submitter after a
// successful registration.
func RegistrationConfirmation(item registration.Registration, programName string, priceCents int64) Message {
	body := fmt.Sprintf(
		"Hi %s,\n\nWe received the registration for %s in %s.\nAmount due: $%s.\n\nSee you on the court!",
		item.ParentName, item.PlayerName, programName, money.FormatMajor(priceCents),
	)
	return Message{
		To:      item.Email,
		Subject: "Registration received: " + item.PlayerName,
		Body:    body,
	}
}

// AdminRegistrationAlert is the message sent to the club inbox for each
// new registration.
func AdminRegistrationAlert(adminEmail string, item registration.Registration, teamLabel string) Message {
	body := fmt.Sprintf(
		"New registration.\n\nPlayer: %s\nParent: %s\nEmail: %s\nPhone: %s\nTeam: %s\nWaiver accepted: %t",
		item.PlayerName, item.ParentName, item.Email, item.Phone, teamLabel, item.WaiverAccepted,
	)
	return Message{
		To:      adminEmail,
		Subject: "New registration: " + item.PlayerName,
		Body:    body,
	}
}
