package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Rorical/BloodDesk/internal/backend"
	"github.com/Rorical/BloodDesk/internal/eventbus"
	"github.com/Rorical/BloodDesk/internal/models"
	"github.com/Rorical/BloodDesk/internal/rejection"
)

var ErrServiceStopped = errors.New("request service stopped")

type RequestService struct {
	backend         backend.Backend
	state           *RequestState
	eventBus        *eventbus.EventBus
	logger          *slog.Logger
	ctx             context.Context
	cancel          context.CancelFunc
	lastSentCount   int                   // Activity entries already pushed to UI
	pendingRejects  map[string]chan error // Confirmers waiting on a rejection result
	pendingMutex    sync.RWMutex          // Protect pendingRejects map
	backendDescribe string
}

// NewRequestService wires the service to a backend and the bus. describe is
// shown in the activity log, e.g. the profile name and backend URL.
func NewRequestService(be backend.Backend, eb *eventbus.EventBus, logger *slog.Logger, describe string) *RequestService {
	if logger == nil {
		logger = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())

	service := &RequestService{
		backend:         be,
		state:           NewRequestState(),
		eventBus:        eb,
		logger:          logger,
		ctx:             ctx,
		cancel:          cancel,
		pendingRejects:  make(map[string]chan error),
		backendDescribe: describe,
	}
	service.addWelcomeActivity()
	return service
}

// Start runs the core logic in a goroutine and triggers the first load
func (rs *RequestService) Start() {
	rs.pushStateToUI()
	go rs.eventLoop()
	if err := rs.eventBus.SendToCore(eventbus.RefreshRequestsEvent{}); err != nil {
		rs.logger.Warn("initial refresh not queued", "error", err)
	}
}

func (rs *RequestService) Stop() {
	rs.cancel()
}

func (rs *RequestService) IsReady() bool {
	return rs.backend != nil
}

func (rs *RequestService) eventLoop() {
	for {
		select {
		case <-rs.ctx.Done():
			return
		case event, ok := <-rs.eventBus.UIToCore():
			if !ok {
				return
			}
			rs.handleUIEvent(event)
		}
	}
}

func (rs *RequestService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.RefreshRequestsEvent:
		rs.refresh()
	case eventbus.RejectRequestEvent:
		rs.reject(e)
	}
}

func (rs *RequestService) refresh() {
	rs.state.StartProcessing()
	rs.pushStateToUI()

	requests, err := rs.backend.ListPending(rs.ctx)
	if err != nil {
		rs.logger.Error("loading pending requests failed", "error", err)
		err = fmt.Errorf("loading pending requests: %w", err)
		rs.state.AddActivity(models.Failure, err.Error())
	}
	rs.state.FinishRefresh(requests, err)
	rs.pushStateToUI()
}

func (rs *RequestService) reject(e eventbus.RejectRequestEvent) {
	rs.state.StartProcessing()
	rs.pushStateToUI()

	err := rs.backend.Reject(rs.ctx, e.Code, e.Reason)
	rs.state.FinishRejection(e.Code, e.Reason, err)
	if err == nil {
		rs.logger.Info("request rejected", "request", e.Code, "reason_length", len(e.Reason))
		if sendErr := rs.eventBus.SendToUI(eventbus.RequestRejectedEvent{Code: e.Code, Reason: e.Reason}); sendErr != nil {
			rs.logger.Warn("rejection notice not delivered", "request", e.Code, "error", sendErr)
		}
	}
	rs.pushStateToUI()
	rs.deliverResult(e.ID, err)
}

func (rs *RequestService) pushStateToUI() {
	// Only send new activity to reduce resource usage
	activity, total := rs.state.ActivitySince(rs.lastSentCount)
	rs.lastSentCount = total

	if err := rs.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Requests:     rs.state.GetRequests(),
		Activity:     activity,
		IsProcessing: rs.state.IsProcessing(),
		Error:        rs.state.GetLastError(),
	}); err != nil {
		rs.logger.Warn("error sending state to UI", "error", err)
	}
}

func (rs *RequestService) addWelcomeActivity() {
	rs.state.AddActivity(models.Info, "-- BLOODDESK --")
	rs.state.AddActivity(models.Info, "Backend: "+rs.backendDescribe)
	rs.state.AddActivity(models.Info, "Select a request and press x to reject it, r to refresh, q to quit")
}

// ConfirmerFor returns the confirmer the rejection workflow of request code
// delegates to.
func (rs *RequestService) ConfirmerFor(code string) rejection.Confirmer {
	return rejection.ConfirmFunc(func(ctx context.Context, reason string) error {
		return rs.RequestRejection(ctx, code, reason)
	})
}

// RequestRejection sends a rejection to the core loop and waits for its result
func (rs *RequestService) RequestRejection(ctx context.Context, code, reason string) error {
	id := uuid.NewString()
	resultChan := make(chan error, 1)

	rs.pendingMutex.Lock()
	rs.pendingRejects[id] = resultChan
	rs.pendingMutex.Unlock()

	defer func() {
		rs.pendingMutex.Lock()
		delete(rs.pendingRejects, id)
		rs.pendingMutex.Unlock()
	}()

	if err := rs.eventBus.SendToCore(eventbus.RejectRequestEvent{
		ID:     id,
		Code:   code,
		Reason: reason,
	}); err != nil {
		return fmt.Errorf("queue rejection of %s: %w", code, err)
	}

	select {
	case err := <-resultChan:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-rs.ctx.Done():
		return ErrServiceStopped
	}
}

func (rs *RequestService) deliverResult(id string, err error) {
	rs.pendingMutex.RLock()
	resultChan, exists := rs.pendingRejects[id]
	rs.pendingMutex.RUnlock()

	if exists {
		select {
		case resultChan <- err:
		default:
			// Channel already holds a result, ignore
		}
	}
}
