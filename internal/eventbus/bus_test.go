package eventbus

import (
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_DeliversBothWays(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToCore(RejectRequestEvent{ID: "1", Code: "BR-1", Reason: "Cannot fulfill at this time"}))
	require.NoError(t, eb.SendToUI(RequestRejectedEvent{Code: "BR-1"}))

	assert.Equal(t, RejectRequestEvent{ID: "1", Code: "BR-1", Reason: "Cannot fulfill at this time"}, <-eb.UIToCore())
	assert.Equal(t, RequestRejectedEvent{Code: "BR-1"}, <-eb.CoreToUI())
}

func TestEventBus_BacklogReportsAndTripsBreaker(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(err EventBusError) {
		reported = append(reported, err)
	})

	for i := 0; i < channelBuffer; i++ {
		require.NoError(t, eb.SendToCore(RefreshRequestsEvent{}))
	}
	for i := 0; i < breakerMaxFailures; i++ {
		assert.ErrorIs(t, eb.SendToCore(RefreshRequestsEvent{}), ErrCoreBacklog)
	}

	assert.Equal(t, gobreaker.StateOpen, eb.GetCircuitBreakerState())
	assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), gobreaker.ErrOpenState)

	require.Len(t, reported, breakerMaxFailures+1)
	assert.Equal(t, "SendToCore", reported[0].Operation)
	assert.Equal(t, "SendToUI", reported[breakerMaxFailures].Operation)
	assert.Contains(t, reported[0].Error(), "UI to Core channel is full")
}

func TestEventBus_SendAfterClose(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	eb.Close()

	assert.ErrorIs(t, eb.SendToCore(RefreshRequestsEvent{}), ErrBusClosed)
	assert.ErrorIs(t, eb.SendToUI(StateUpdateEvent{}), ErrBusClosed)

	_, ok := <-eb.UIToCore()
	assert.False(t, ok)
	_, ok = <-eb.CoreToUI()
	assert.False(t, ok)
}
