package worker

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"intelimed/internal/model"
	"intelimed/internal/observability"
	"intelimed/internal/platform/rabbitmq"
)

// ContactLister returns a user's emergency contacts, primary ones first.
type ContactLister interface {
	ListByUser(ctx context.Context, userID string) ([]model.EmergencyContact, error)
}

// Notifier delivers a risk alert to one emergency contact.
type Notifier interface {
	Notify(ctx context.Context, contact model.EmergencyContact, alert model.RiskAlert) error
}

type RiskAlertWorker struct {
	conn      *amqp.Connection
	contacts  ContactLister
	notifier  Notifier
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRiskAlertWorker(conn *amqp.Connection, contacts ContactLister, notifier Notifier, queueName string) *RiskAlertWorker {
	return &RiskAlertWorker{
		conn:      conn,
		contacts:  contacts,
		notifier:  notifier,
		queueName: queueName,
	}
}

func (w *RiskAlertWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	if _, err := ch.QueueDeclare(w.queueName, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}
	if err := ch.Qos(8, 0, false); err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("set worker qos failed: %w", err)
	}

	deliveries, err := ch.Consume(w.queueName, "", false, false, false, false, nil)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	log := observability.WithFields("component", "risk_alert_worker", "queue", w.queueName)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				if err := w.process(workerCtx, d.Body); err != nil {
					log.Error("handle risk alert failed", "message_id", d.MessageId, "error", err)
					_ = d.Nack(false, false)
					continue
				}
				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

// process notifies every contact of the alerted user. It fails only when
// the body is unreadable or contacts cannot be loaded; individual delivery
// failures are logged and skipped.
func (w *RiskAlertWorker) process(ctx context.Context, body []byte) error {
	alert, err := rabbitmq.DecodeRiskAlert(body)
	if err != nil {
		return err
	}
	log := observability.WithFields("assessment_id", alert.AssessmentID, "user_id", alert.UserID)

	contacts, err := w.contacts.ListByUser(ctx, alert.UserID)
	if err != nil {
		return fmt.Errorf("load emergency contacts failed: %w", err)
	}
	if len(contacts) == 0 {
		log.Warn("risk alert dropped, user has no emergency contacts")
		return nil
	}

	notified := 0
	for _, c := range contacts {
		if err := w.notifier.Notify(ctx, c, alert); err != nil {
			log.Error("notify emergency contact failed", "contact_id", c.ID, "error", err)
			continue
		}
		notified++
	}
	log.Info("risk alert delivered", "notified", notified, "contacts", len(contacts))
	return nil
}

func (w *RiskAlertWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
