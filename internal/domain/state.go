package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrUnknownState возвращается при разборе неизвестной корзины
var ErrUnknownState = errors.New("unknown state")

// BookingState корзина, по которой фильтруется список бронирований
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// AllStates список всех корзин в порядке объявления
var AllStates = []BookingState{
	StateAll,
	StateCurrent,
	StatePast,
	StateFuture,
	StateWaiting,
	StateRejected,
}

// ParseBookingState разбирает строку без учёта регистра.
// Пустая строка означает ALL.
func ParseBookingState(raw string) (BookingState, error) {
	if raw == "" {
		return StateAll, nil
	}
	for _, s := range AllStates {
		if strings.EqualFold(string(s), raw) {
			return s, nil
		}
	}
	return "", ErrUnknownState
}

// StatusFilter returns the status a status-based bucket selects
func (s BookingState) StatusFilter() (BookingStatus, bool) {
	switch s {
	case StateWaiting:
		return StatusWaiting, true
	case StateRejected:
		return StatusRejected, true
	}
	return "", false
}

// Matches classifies the booking relative to now.
// Comparisons are strict: a booking ending exactly at now is neither PAST nor CURRENT.
func (s BookingState) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll, "":
		return true
	case StateCurrent:
		return b.IsCurrent(now)
	case StatePast:
		return b.IsPast(now)
	case StateFuture:
		return b.IsFuture(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	}
	return false
}
