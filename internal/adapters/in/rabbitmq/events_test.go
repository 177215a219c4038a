package rabbitmq

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/staff-roster-scheduler/internal/adapters/out/logger"
	"github.com/suchimauz/staff-roster-scheduler/internal/config"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/domain"
	"github.com/suchimauz/staff-roster-scheduler/internal/core/ports/in"
)

type reconcileCounter struct {
	in.RosterUseCase
	calls atomic.Int32
}

func (r *reconcileCounter) Reconcile(ctx context.Context) (*domain.Snapshot, error) {
	r.calls.Add(1)
	return domain.NewSnapshot(), nil
}

func newTestListener(useCase in.RosterUseCase) *EventListener {
	return newEventListener(nil, nil, useCase, &config.Config{}, logger.NewNopLogger())
}

func TestParseEventRoutingKey(t *testing.T) {
	key, err := parseEventRoutingKey("console.roster-svc.appointment.8f14e45f.cancelled")
	require.NoError(t, err)

	assert.Equal(t, "console", key.Source)
	assert.Equal(t, "roster-svc", key.Receiver)
	assert.Equal(t, EventResourceTypeAppointment, key.ResourceType)
	assert.Equal(t, "8f14e45f", key.ResourceID)
	assert.Equal(t, EventActionCancelled, key.Action)

	_, err = parseEventRoutingKey("console.appointment.cancelled")
	assert.Error(t, err)
}

func TestProcessEventMessage_RequestsReconcile(t *testing.T) {
	listener := newTestListener(&reconcileCounter{})

	err := listener.processEventMessage(amqp.Delivery{
		RoutingKey: "console.roster-svc.appointment.a1.cancelled",
		Body:       []byte(`{"id":"a1","status":"cancelled"}`),
	})
	require.NoError(t, err)
	assert.Len(t, listener.reconcileRequests, 1)
}

func TestProcessEventMessage_CoalescesBursts(t *testing.T) {
	listener := newTestListener(&reconcileCounter{})

	for i := 0; i < 10; i++ {
		require.NoError(t, listener.processEventMessage(amqp.Delivery{
			RoutingKey: "console.roster-svc.appointment.a1.updated",
		}))
	}
	assert.Len(t, listener.reconcileRequests, 1)
}

func TestProcessEventMessage_SkipsForeignResources(t *testing.T) {
	listener := newTestListener(&reconcileCounter{})

	err := listener.processEventMessage(amqp.Delivery{
		RoutingKey: "console.roster-svc.invoice.i1.created",
	})
	require.NoError(t, err)
	assert.Empty(t, listener.reconcileRequests)
}

func TestProcessEventMessage_InvalidKey(t *testing.T) {
	listener := newTestListener(&reconcileCounter{})

	err := listener.processEventMessage(amqp.Delivery{RoutingKey: "garbage"})
	assert.Error(t, err)
	assert.Empty(t, listener.reconcileRequests)
}

func TestProcessEventMessage_BadBodyStillReconciles(t *testing.T) {
	listener := newTestListener(&reconcileCounter{})

	err := listener.processEventMessage(amqp.Delivery{
		RoutingKey: "console.roster-svc.shift.s1.deleted",
		Body:       []byte(`not json`),
	})
	require.NoError(t, err)
	assert.Len(t, listener.reconcileRequests, 1)
}

func TestRunReconciler(t *testing.T) {
	counter := &reconcileCounter{}
	listener := newTestListener(counter)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		listener.runReconciler(ctx)
	}()

	listener.requestReconcile()
	assert.Eventually(t, func() bool { return counter.calls.Load() == 1 }, time.Second, 10*time.Millisecond)

	cancel()
	<-done
}
