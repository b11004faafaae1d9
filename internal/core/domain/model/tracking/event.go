package tracking

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// EventName is a standard Meta event.
type EventName string

const (
	ViewContent      EventName = "ViewContent"
	AddToCart        EventName = "AddToCart"
	InitiateCheckout EventName = "InitiateCheckout"
	Purchase         EventName = "Purchase"
)

func (n EventName) Validate() error {
	if !slices.Contains([]EventName{ViewContent, AddToCart, InitiateCheckout, Purchase}, n) {
		return errs.NewValueIsInvalidErrorWithCause("event_name", fmt.Errorf("%q is not supported", n))
	}
	return nil
}

// DeliveryStatus is the outbox state of an event.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "PENDING"
	DeliverySent    DeliveryStatus = "SENT"
	DeliveryFailed  DeliveryStatus = "FAILED"
	DeliverySkipped DeliveryStatus = "SKIPPED"
)

var ErrEventIsNotConstructed = errors.New("ConversionEvent must be created via NewConversionEvent or RestoreConversionEvent")

// ConversionEvent is one outbox entry.
type ConversionEvent struct {
	id         kernel.UUID
	name       EventName
	eventID    string
	eventTime  time.Time
	sourceURL  string
	userData   UserData
	customData CustomData
	status     DeliveryStatus
	attempts   int
	lastError  string
	guard      guard.ConstructorGuard
}

// EventState carries persisted event fields back into the domain.
type EventState struct {
	ID         kernel.UUID
	Name       EventName
	EventID    string
	EventTime  time.Time
	SourceURL  string
	UserData   UserData
	CustomData CustomData
	Status     DeliveryStatus
	Attempts   int
	LastError  string
}

// NewConversionEvent creates a PENDING event. eventID deduplicates browser and
// server events on Meta's side; sourceURL must be an absolute http(s) URL.
func NewConversionEvent(
	name EventName,
	eventID, sourceURL string,
	at time.Time,
	user UserData,
	custom CustomData,
) (*ConversionEvent, error) {
	return RestoreConversionEvent(EventState{
		ID:         kernel.NewUUID(),
		Name:       name,
		EventID:    eventID,
		EventTime:  at.UTC(),
		SourceURL:  sourceURL,
		UserData:   user.Normalized(),
		CustomData: custom,
		Status:     DeliveryPending,
	})
}

func RestoreConversionEvent(s EventState) (*ConversionEvent, error) {
	var eventIDErr error
	if strings.TrimSpace(s.EventID) == "" {
		eventIDErr = errs.NewValueIsRequiredError("event_id")
	}
	if err := errors.Join(s.ID.Validate(), s.Name.Validate(), eventIDErr, ValidateSourceURL(s.SourceURL)); err != nil {
		return nil, err
	}
	return &ConversionEvent{
		id:         s.ID,
		name:       s.Name,
		eventID:    strings.TrimSpace(s.EventID),
		eventTime:  s.EventTime,
		sourceURL:  s.SourceURL,
		userData:   s.UserData,
		customData: s.CustomData,
		status:     s.Status,
		attempts:   s.Attempts,
		lastError:  s.LastError,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ValidateSourceURL requires an absolute http(s) URL.
func ValidateSourceURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("url", fmt.Errorf("%q is not an absolute URL", raw))
	}
	return nil
}

func (e *ConversionEvent) Validate() error {
	if e == nil {
		return ErrEventIsNotConstructed
	}
	return e.guard.Validate(ErrEventIsNotConstructed)
}

func (e *ConversionEvent) ID() kernel.UUID { return e.id }
func (e *ConversionEvent) Name() EventName { return e.name }
func (e *ConversionEvent) EventID() string { return e.eventID }
func (e *ConversionEvent) EventTime() time.Time { return e.eventTime }
func (e *ConversionEvent) SourceURL() string { return e.sourceURL }
func (e *ConversionEvent) UserData() UserData { return e.userData }
func (e *ConversionEvent) CustomData() CustomData { return e.customData }
func (e *ConversionEvent) Status() DeliveryStatus { return e.status }
func (e *ConversionEvent) Attempts() int { return e.attempts }
func (e *ConversionEvent) LastError() string { return e.lastError }

func (e *ConversionEvent) MarkSent() {
	e.status = DeliverySent
	e.attempts++
	e.lastError = ""
}

// MarkSkipped is used when delivery is disabled.
func (e *ConversionEvent) MarkSkipped(reason string) {
	e.status = DeliverySkipped
	e.lastError = reason
}

// RecordFailure counts a failed attempt; after maxAttempts the event is FAILED and
// no longer picked up.
func (e *ConversionEvent) RecordFailure(cause error, maxAttempts int) {
	e.attempts++
	e.lastError = cause.Error()
	if e.attempts >= maxAttempts {
		e.status = DeliveryFailed
	}
}
