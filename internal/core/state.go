package core

import (
	"sync"
	"time"

	"github.com/Rorical/BloodDesk/internal/models"
)

const maxActivity = 200

// RequestState manages the desk state for event-driven architecture
type RequestState struct {
	mu           sync.RWMutex
	requests     []models.BloodRequest // Single source of truth for the pending list
	activity     []models.Activity
	activityBase int // Number of entries trimmed from the front of activity
	isProcessing bool
	lastError    error
	now          func() time.Time
}

func NewRequestState() *RequestState {
	return &RequestState{
		requests: make([]models.BloodRequest, 0),
		activity: make([]models.Activity, 0),
		now:      time.Now,
	}
}

func (rs *RequestState) GetRequests() []models.BloodRequest {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	result := make([]models.BloodRequest, len(rs.requests))
	copy(result, rs.requests)
	return result
}

// ActivitySince returns entries added after the first `seen` ones, together
// with the new total. Entries trimmed in between are skipped.
func (rs *RequestState) ActivitySince(seen int) ([]models.Activity, int) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	total := rs.activityBase + len(rs.activity)
	start := seen - rs.activityBase
	if start < 0 {
		start = 0
	}
	if start > len(rs.activity) {
		start = len(rs.activity)
	}
	result := make([]models.Activity, len(rs.activity)-start)
	copy(result, rs.activity[start:])
	return result, total
}

func (rs *RequestState) IsProcessing() bool {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.isProcessing
}

func (rs *RequestState) GetLastError() error {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.lastError
}

func (rs *RequestState) AddActivity(kind models.ActivityType, content string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.addActivityLocked(kind, content)
}

func (rs *RequestState) addActivityLocked(kind models.ActivityType, content string) {
	rs.activity = append(rs.activity, models.Activity{
		Content: content,
		Type:    kind,
		At:      rs.now(),
	})
	if over := len(rs.activity) - maxActivity; over > 0 {
		rs.activity = append([]models.Activity(nil), rs.activity[over:]...)
		rs.activityBase += over
	}
}

// Atomic operations for event ordering
func (rs *RequestState) StartProcessing() {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.isProcessing = true
	rs.lastError = nil
}

// FinishRefresh replaces the pending list, or keeps the old one on error.
func (rs *RequestState) FinishRefresh(requests []models.BloodRequest, err error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.isProcessing = false
	rs.lastError = err
	if err != nil {
		return
	}
	rs.requests = make([]models.BloodRequest, 0, len(requests))
	for _, r := range requests {
		if r.IsPending() {
			rs.requests = append(rs.requests, r)
		}
	}
}

// FinishRejection records the outcome of a rejection and drops the request
// from the pending list when the backend accepted it.
func (rs *RequestState) FinishRejection(code, reason string, err error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	rs.isProcessing = false
	rs.lastError = err
	if err != nil {
		rs.addActivityLocked(models.Failure, "Rejecting "+code+" failed: "+err.Error())
		return
	}
	for i, r := range rs.requests {
		if r.Code == code {
			rs.requests = append(rs.requests[:i:i], rs.requests[i+1:]...)
			break
		}
	}
	rs.addActivityLocked(models.Success, "Rejected "+code+": "+reason)
}
