package backend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Rorical/BloodDesk/internal/models"
)

// MemoryBackend keeps requests in process. It backs profiles without a base
// URL and the tests.
type MemoryBackend struct {
	mu       sync.RWMutex
	requests map[string]models.BloodRequest
}

func NewMemoryBackend(requests ...models.BloodRequest) *MemoryBackend {
	mb := &MemoryBackend{requests: make(map[string]models.BloodRequest, len(requests))}
	for _, r := range requests {
		mb.requests[r.Code] = r
	}
	return mb
}

// NewDemoBackend returns a MemoryBackend seeded with a handful of pending requests.
func NewDemoBackend(now time.Time) *MemoryBackend {
	return NewMemoryBackend(
		models.BloodRequest{Code: "BR-1001", Hospital: "St. Mary's General", BloodGroup: "O-", Units: 4, Urgency: models.UrgencyEmergency, Status: models.StatusPending, RequestedAt: now.Add(-25 * time.Minute)},
		models.BloodRequest{Code: "BR-1002", Hospital: "City Children's Hospital", BloodGroup: "A+", Units: 2, Urgency: models.UrgencyUrgent, Status: models.StatusPending, RequestedAt: now.Add(-2 * time.Hour)},
		models.BloodRequest{Code: "BR-1003", Hospital: "Riverside Clinic", BloodGroup: "AB-", Units: 12, Urgency: models.UrgencyRoutine, Status: models.StatusPending, RequestedAt: now.Add(-5 * time.Hour)},
		models.BloodRequest{Code: "BR-1004", Hospital: "Northgate Trauma Center", BloodGroup: "B+", Units: 6, Urgency: models.UrgencyUrgent, Status: models.StatusPending, RequestedAt: now.Add(-40 * time.Minute)},
		models.BloodRequest{Code: "BR-0998", Hospital: "Riverside Clinic", BloodGroup: "O+", Units: 1, Urgency: models.UrgencyRoutine, Status: models.StatusApproved, RequestedAt: now.Add(-26 * time.Hour)},
	)
}

// ListPending returns pending requests, oldest first.
func (mb *MemoryBackend) ListPending(ctx context.Context) ([]models.BloodRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	mb.mu.RLock()
	defer mb.mu.RUnlock()

	result := make([]models.BloodRequest, 0, len(mb.requests))
	for _, r := range mb.requests {
		if r.IsPending() {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RequestedAt.Equal(result[j].RequestedAt) {
			return result[i].Code < result[j].Code
		}
		return result[i].RequestedAt.Before(result[j].RequestedAt)
	})
	return result, nil
}

func (mb *MemoryBackend) Reject(ctx context.Context, code, reason string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mb.mu.Lock()
	defer mb.mu.Unlock()

	r, exists := mb.requests[code]
	if !exists {
		return fmt.Errorf("reject %s: %w", code, ErrRequestNotFound)
	}
	if !r.IsPending() {
		return fmt.Errorf("reject %s (%s): %w", code, r.Status, ErrNotPending)
	}
	r.Status = models.StatusRejected
	r.RejectionReason = reason
	mb.requests[code] = r
	return nil
}

// Get returns a request by code, whatever its status.
func (mb *MemoryBackend) Get(code string) (models.BloodRequest, bool) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	r, ok := mb.requests[code]
	return r, ok
}
