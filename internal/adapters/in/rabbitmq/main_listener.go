package rabbitmq

import (
	"context"
	"fmt"
	"strings"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/staff-roster-scheduler/internal/config"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/in"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/out"
)

// EventListener слушает события об изменениях во внешней системе и запускает Reconcile.
// Подряд идущие события схлопываются в одну перезагрузку снапшота.
type EventListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.RosterUseCase
	cfg     *config.Config
	logger  out.LoggerPort

	reconcileRequests chan struct{}
	wg                sync.WaitGroup
}

type (
	EventResourceType string
	EventAction       string
)

type EventRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType EventResourceType
	ResourceID   string
	Action       EventAction
}

const (
	EventResourceTypeAppointment EventResourceType = "appointment"
	EventResourceTypeShift       EventResourceType = "shift"
	EventResourceTypeRoom        EventResourceType = "room"
	EventResourceTypeStaff       EventResourceType = "staff"
)

const (
	EventActionCreated   EventAction = "created"
	EventActionUpdated   EventAction = "updated"
	EventActionCancelled EventAction = "cancelled"
	EventActionDeleted   EventAction = "deleted"
)

func NewEventListener(useCase in.RosterUseCase, cfg *config.Config, logger out.LoggerPort) (*EventListener, error) {
	logger = logger.WithModule("EventListener")

	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return newEventListener(conn, channel, useCase, cfg, logger), nil
}

func newEventListener(conn *amqp.Connection, channel *amqp.Channel, useCase in.RosterUseCase, cfg *config.Config, logger out.LoggerPort) *EventListener {
	return &EventListener{
		conn:              conn,
		channel:           channel,
		useCase:           useCase,
		cfg:               cfg,
		logger:            logger,
		reconcileRequests: make(chan struct{}, 1),
	}
}

func (l *EventListener) Start(ctx context.Context) error {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.runReconciler(ctx)
	}()

	if err := l.startEventQueue(ctx); err != nil {
		return err
	}
	l.logger.Info("events.queue.started", out.LogFields{
		"queue":    l.cfg.RabbitMQ.Queue,
		"exchange": l.cfg.RabbitMQ.Exchange,
		"binding":  l.cfg.RabbitMQ.Binding,
	})

	return nil
}

func (l *EventListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	if err := l.conn.Close(); err != nil {
		return err
	}

	l.wg.Wait()
	return nil
}

// requestReconcile не блокирует: если запрос уже ждет в очереди, новый не нужен
func (l *EventListener) requestReconcile() {
	select {
	case l.reconcileRequests <- struct{}{}:
	default:
	}
}

func (l *EventListener) runReconciler(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.reconcileRequests:
			snap, err := l.useCase.Reconcile(ctx)
			if err != nil {
				l.logger.Error("events.reconcile.failed", out.LogFields{
					"error": err.Error(),
				})
				continue
			}
			l.logger.Info("events.reconcile.completed", out.LogFields{
				"version": snap.Version,
			})
		}
	}
}

// Пример routingKey:
// console.roster-svc.appointment.8f14e45f.created
// console.roster-svc.appointment.8f14e45f.cancelled
// console.roster-svc.shift.c9f0f895.updated
func parseEventRoutingKey(routingKey string) (EventRoutingKey, error) {
	parts := strings.Split(routingKey, ".")

	if len(parts) < 5 {
		return EventRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return EventRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: EventResourceType(parts[2]),
		ResourceID:   parts[3],
		Action:       EventAction(parts[4]),
	}, nil
}
