package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// IsValid returns true if the status is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// DecisionStatus returns the status an owner decision leads to
func DecisionStatus(approved bool) BookingStatus {
	if approved {
		return StatusApproved
	}
	return StatusRejected
}

// Booking represents a reservation of an item for a time interval
type Booking struct {
	ID       int64
	ItemID   int64
	BookerID int64
	// ItemOwnerID снимок владельца вещи на момент создания, используется в выборках владельца
	ItemOwnerID int64
	Start       time.Time
	End         time.Time
	Status      BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeDecided returns true if the owner may still approve or reject the booking.
// APPROVED is terminal, REJECTED may be decided again.
func (b *Booking) CanBeDecided() bool {
	return b.Status != StatusApproved
}

// IsPast returns true if the booking ended before now
func (b *Booking) IsPast(now time.Time) bool {
	return b.End.Before(now)
}

// IsCurrent returns true if now lies strictly inside the booking interval
func (b *Booking) IsCurrent(now time.Time) bool {
	return b.Start.Before(now) && b.End.After(now)
}

// IsFuture returns true if the booking starts after now
func (b *Booking) IsFuture(now time.Time) bool {
	return b.Start.After(now)
}

// IsBooker returns true if the user requested this booking
func (b *Booking) IsBooker(userID int64) bool {
	return b.BookerID == userID
}

// BookingsFilter фильтр выборки бронирований.
// BookerID и OwnerID задают роль, State - временную/статусную корзину.
type BookingsFilter struct {
	BookerID *int64
	OwnerID  *int64
	ItemID   *int64
	Status   *BookingStatus
	State    BookingState
	Now      time.Time
	Page     *PageRequest // nil - без пагинации
}

// Matches checks the booking against every condition of the filter
func (f BookingsFilter) Matches(b *Booking) bool {
	if f.BookerID != nil && b.BookerID != *f.BookerID {
		return false
	}
	if f.OwnerID != nil && b.ItemOwnerID != *f.OwnerID {
		return false
	}
	if f.ItemID != nil && b.ItemID != *f.ItemID {
		return false
	}
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	return f.State.Matches(b, f.Now)
}
