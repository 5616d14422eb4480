package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

const (
	maxCarrierLength        = 100
	maxTrackingNumberLength = 100
	maxNoteLength           = 500
)

var ErrTrackingEventIsNotConstructed = errors.New("TrackingEvent must be created via NewTrackingEvent constructor")

// TrackingDetails carries the optional metadata of a tracking event.
// Empty strings mean "not provided".
type TrackingDetails struct {
	Carrier        string
	TrackingNumber string
	Note           string
}

// TrackingEvent is one immutable entry of an order's tracking ledger.
type TrackingEvent struct {
	status         Status
	timestamp      time.Time
	carrier        string
	trackingNumber string
	note           string

	guard guard.ConstructorGuard
}

// NewTrackingEvent validates an event. The timestamp is stored in UTC.
func NewTrackingEvent(status Status, timestamp time.Time, details TrackingDetails) (TrackingEvent, error) {
	e := TrackingEvent{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		e.setStatus(status),
		e.setTimestamp(timestamp),
		setBounded(&e.carrier, "carrier", details.Carrier, maxCarrierLength),
		setBounded(&e.trackingNumber, "trackingNumber", details.TrackingNumber, maxTrackingNumberLength),
		setBounded(&e.note, "note", details.Note, maxNoteLength),
	); err != nil {
		return TrackingEvent{}, err
	}

	return e, nil
}

func (e TrackingEvent) Validate() error {
	return e.guard.Validate(ErrTrackingEventIsNotConstructed)
}

func (e TrackingEvent) Status() Status {
	return e.status
}

func (e TrackingEvent) Timestamp() time.Time {
	return e.timestamp
}

func (e TrackingEvent) Carrier() string {
	return e.carrier
}

func (e TrackingEvent) TrackingNumber() string {
	return e.trackingNumber
}

func (e TrackingEvent) Note() string {
	return e.note
}

// Details returns the optional metadata in the form accepted by NewTrackingEvent.
func (e TrackingEvent) Details() TrackingDetails {
	return TrackingDetails{
		Carrier:        e.carrier,
		TrackingNumber: e.trackingNumber,
		Note:           e.note,
	}
}

func (e *TrackingEvent) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	e.status = status
	return nil
}

func (e *TrackingEvent) setTimestamp(timestamp time.Time) error {
	if timestamp.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}
	e.timestamp = timestamp.UTC()
	return nil
}

func setBounded(dst *string, name, value string, maxLength int) error {
	value = strings.TrimSpace(value)
	if n := len([]rune(value)); n > maxLength {
		return errs.NewValueIsOutOfRangeErrorWithCause(
			name, n, 0, maxLength,
			fmt.Errorf("%s is longer than %d characters", name, maxLength),
		)
	}
	*dst = value
	return nil
}
