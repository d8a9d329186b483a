package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/BloodDesk/internal/models"
)

func TestWaiting(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "-", waiting(time.Time{}, now))
	assert.Equal(t, "just now", waiting(now.Add(-30*time.Second), now))
	assert.Equal(t, "25m", waiting(now.Add(-25*time.Minute), now))
	assert.Equal(t, "5h", waiting(now.Add(-5*time.Hour), now))
	assert.Equal(t, "3d", waiting(now.Add(-72*time.Hour), now))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Northgat…", truncate("Northgate Trauma Center", 9))
}

func TestRenderRequests(t *testing.T) {
	now := time.Now()
	out := RenderRequests([]models.BloodRequest{
		{Code: "BR-1001", Hospital: "St. Mary's General", BloodGroup: "O-", Units: 4, Urgency: models.UrgencyEmergency, RequestedAt: now.Add(-25 * time.Minute)},
	}, 0, now)

	assert.Contains(t, out, "BR-1001")
	assert.Contains(t, out, "St. Mary's General")
	assert.Contains(t, out, "emergency")
	assert.Contains(t, out, "25m")

	assert.Contains(t, RenderRequests(nil, 0, now), "No pending requests")
}

func TestRenderActivityKeepsLast(t *testing.T) {
	out := RenderActivity([]models.Activity{
		{Content: "first"}, {Content: "second"}, {Content: "third"},
	}, 2)

	assert.NotContains(t, out, "first")
	assert.Contains(t, out, "second")
	assert.Contains(t, out, "third")
	assert.Equal(t, "", RenderNotice(nil))
}
