package backend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/BloodDesk/internal/models"
)

func TestMemoryBackend_ListPendingOldestFirst(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	mb := NewDemoBackend(now)

	requests, err := mb.ListPending(context.Background())

	require.NoError(t, err)
	require.Len(t, requests, 4)
	for i, r := range requests {
		assert.Equal(t, models.StatusPending, r.Status)
		if i > 0 {
			assert.False(t, r.RequestedAt.Before(requests[i-1].RequestedAt))
		}
	}
	assert.Equal(t, "BR-1003", requests[0].Code)
}

func TestMemoryBackend_Reject(t *testing.T) {
	mb := NewDemoBackend(time.Now())

	require.NoError(t, mb.Reject(context.Background(), "BR-1002", "Incorrect blood group specified"))

	r, ok := mb.Get("BR-1002")
	require.True(t, ok)
	assert.Equal(t, models.StatusRejected, r.Status)
	assert.Equal(t, "Incorrect blood group specified", r.RejectionReason)

	requests, err := mb.ListPending(context.Background())
	require.NoError(t, err)
	assert.Len(t, requests, 3)

	err = mb.Reject(context.Background(), "BR-1002", "again")
	assert.ErrorIs(t, err, ErrNotPending)

	err = mb.Reject(context.Background(), "BR-0998", "approved already")
	assert.ErrorIs(t, err, ErrNotPending)

	err = mb.Reject(context.Background(), "BR-404", "missing")
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

func TestMemoryBackend_HonoursContext(t *testing.T) {
	mb := NewMemoryBackend()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mb.ListPending(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, mb.Reject(ctx, "x", "y"), context.Canceled)
}
