package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
)

// EventMessage тело события. Поля необязательные, решение принимается по routing key.
type EventMessage struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

func (l *EventListener) startEventQueue(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}
	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMQ.Binding,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if err := l.processEventMessage(msg); err != nil {
					l.logger.Warn("events.message.rejected", out.LogFields{
						"routingKey": msg.RoutingKey,
						"error":      err.Error(),
					})
					// Без повторной постановки в очередь
					_ = msg.Nack(false, false)
					continue
				}
				_ = msg.Ack(false)
			}
		}
	}()

	return nil
}

func (l *EventListener) processEventMessage(msg amqp.Delivery) error {
	routingKey, err := parseEventRoutingKey(msg.RoutingKey)
	if err != nil {
		return err
	}

	switch routingKey.ResourceType {
	case EventResourceTypeAppointment, EventResourceTypeShift, EventResourceTypeRoom, EventResourceTypeStaff:
	default:
		l.logger.Debug("events.message.skipped", out.LogFields{
			"routingKey": msg.RoutingKey,
		})
		return nil
	}

	fields := out.LogFields{
		"resourceType": routingKey.ResourceType,
		"resourceId":   routingKey.ResourceID,
		"action":       routingKey.Action,
		"source":       routingKey.Source,
	}

	var body EventMessage
	if len(msg.Body) > 0 {
		if err := json.Unmarshal(msg.Body, &body); err != nil {
			fields["bodyError"] = err.Error()
		} else if body.Status != "" {
			fields["status"] = body.Status
		}
	}

	l.logger.Info("events.message.received", fields)

	l.requestReconcile()
	return nil
}
