package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"intelimed/internal/model"
)

type RiskAlertPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewRiskAlertPublisher(conn *amqp.Connection, queueName string) *RiskAlertPublisher {
	return &RiskAlertPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *RiskAlertPublisher) PublishRiskAlert(ctx context.Context, alert model.RiskAlert) error {
	payload, err := EncodeRiskAlert(alert)
	if err != nil {
		return err
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
			MessageId:    alert.AssessmentID,
			Timestamp:    alert.RaisedAt,
			Type:         "risk_alert",
		},
	); err != nil {
		return fmt.Errorf("publish risk alert failed: %w", err)
	}
	return nil
}

func EncodeRiskAlert(alert model.RiskAlert) ([]byte, error) {
	payload, err := json.Marshal(alert)
	if err != nil {
		return nil, fmt.Errorf("marshal risk alert failed: %w", err)
	}
	return payload, nil
}

func DecodeRiskAlert(body []byte) (model.RiskAlert, error) {
	var alert model.RiskAlert
	if err := json.Unmarshal(body, &alert); err != nil {
		return model.RiskAlert{}, fmt.Errorf("decode risk alert failed: %w", err)
	}
	if alert.UserID == "" {
		return model.RiskAlert{}, fmt.Errorf("decode risk alert failed: missing userId")
	}
	return alert, nil
}
