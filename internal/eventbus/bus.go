package eventbus

import (
	"errors"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/Rorical/BloodDesk/internal/models"
)

// UIEvent represents events sent from UI to Core
type UIEvent interface {
	UIEvent()
}

// CoreEvent represents events sent from Core to UI
type CoreEvent interface {
	CoreEvent()
}

// RefreshRequestsEvent - UI asks core to reload pending requests from the backend
type RefreshRequestsEvent struct{}

func (e RefreshRequestsEvent) UIEvent() {}

// RejectRequestEvent - UI asks core to reject a request with a validated reason
type RejectRequestEvent struct {
	ID     string // Correlates the RejectionResult sent back to the waiting confirmer
	Code   string // Request code
	Reason string // Trimmed, validated reason
}

func (e RejectRequestEvent) UIEvent() {}

// StateUpdateEvent - Core pushes state changes to UI
type StateUpdateEvent struct {
	Requests     []models.BloodRequest // Full pending list
	Activity     []models.Activity     // Only entries not sent before
	IsProcessing bool
	Error        error
}

func (e StateUpdateEvent) CoreEvent() {}

// RequestRejectedEvent - Core reports that the backend accepted a rejection
type RequestRejectedEvent struct {
	Code   string
	Reason string
}

func (e RequestRejectedEvent) CoreEvent() {}

// EventBusError represents errors in event processing
type EventBusError struct {
	Operation string
	Err       error
	Timestamp time.Time
}

func (e EventBusError) Error() string {
	return e.Operation + ": " + e.Err.Error()
}

var (
	ErrBusClosed   = errors.New("event bus is closed")
	ErrCoreBacklog = errors.New("UI to Core channel is full")
	ErrUIBacklog   = errors.New("Core to UI channel is full")
)

const (
	breakerMaxFailures = 5
	breakerTimeout     = 30 * time.Second
	channelBuffer      = 100
)

// EventBus handles communication between UI and Core with circuit breaker
type EventBus struct {
	mu             sync.RWMutex
	closed         bool
	uiToCore       chan UIEvent
	coreToUI       chan CoreEvent
	errorCallback  func(EventBusError)
	circuitBreaker *gobreaker.CircuitBreaker[struct{}]
}

func NewEventBus() *EventBus {
	return &EventBus{
		uiToCore: make(chan UIEvent, channelBuffer),
		coreToUI: make(chan CoreEvent, channelBuffer),
		circuitBreaker: gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
			Name:        "eventbus",
			MaxRequests: 1,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerMaxFailures
			},
		}),
	}
}

func (eb *EventBus) SetErrorCallback(callback func(EventBusError)) {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	eb.errorCallback = callback
}

func (eb *EventBus) reportError(operation string, err error) {
	if eb.errorCallback != nil {
		eb.errorCallback(EventBusError{
			Operation: operation,
			Err:       err,
			Timestamp: time.Now(),
		})
	}
}

func (eb *EventBus) SendToCore(event UIEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	_, err := eb.circuitBreaker.Execute(func() (struct{}, error) {
		if eb.closed {
			return struct{}{}, ErrBusClosed
		}
		select {
		case eb.uiToCore <- event:
			return struct{}{}, nil
		default:
			return struct{}{}, ErrCoreBacklog
		}
	})
	if err != nil {
		eb.reportError("SendToCore", err)
	}
	return err
}

func (eb *EventBus) SendToUI(event CoreEvent) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	_, err := eb.circuitBreaker.Execute(func() (struct{}, error) {
		if eb.closed {
			return struct{}{}, ErrBusClosed
		}
		select {
		case eb.coreToUI <- event:
			return struct{}{}, nil
		default:
			return struct{}{}, ErrUIBacklog
		}
	})
	if err != nil {
		eb.reportError("SendToUI", err)
	}
	return err
}

func (eb *EventBus) UIToCore() <-chan UIEvent {
	return eb.uiToCore
}

func (eb *EventBus) CoreToUI() <-chan CoreEvent {
	return eb.coreToUI
}

func (eb *EventBus) GetCircuitBreakerState() gobreaker.State {
	return eb.circuitBreaker.State()
}

// Close closes both channels. Sends after Close fail with ErrBusClosed.
func (eb *EventBus) Close() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.closed {
		return
	}
	eb.closed = true
	close(eb.uiToCore)
	close(eb.coreToUI)
}
