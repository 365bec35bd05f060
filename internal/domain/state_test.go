package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseBookingState(t *testing.T) {
	tests := []struct {
		raw  string
		want BookingState
	}{
		{"", StateAll},
		{"ALL", StateAll},
		{"all", StateAll},
		{"Current", StateCurrent},
		{"PAST", StatePast},
		{"future", StateFuture},
		{"WAITING", StateWaiting},
		{"rejected", StateRejected},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseBookingState(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseBookingState_Unknown(t *testing.T) {
	for _, raw := range []string{"BOGUS", "UNSUPPORTED_STATUS", "APPROVED", " ALL"} {
		_, err := ParseBookingState(raw)
		assert.ErrorIs(t, err, ErrUnknownState, raw)
	}
}

func TestBookingState_Matches_Boundaries(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	endsNow := &Booking{Start: now.Add(-time.Hour), End: now, Status: StatusApproved}
	startsNow := &Booking{Start: now, End: now.Add(time.Hour), Status: StatusApproved}

	// end == now: ни PAST, ни CURRENT
	assert.False(t, StatePast.Matches(endsNow, now))
	assert.False(t, StateCurrent.Matches(endsNow, now))
	assert.False(t, StateFuture.Matches(endsNow, now))

	// start == now: ни CURRENT, ни FUTURE
	assert.False(t, StateCurrent.Matches(startsNow, now))
	assert.False(t, StateFuture.Matches(startsNow, now))
	assert.False(t, StatePast.Matches(startsNow, now))

	assert.True(t, StateAll.Matches(endsNow, now))
	assert.True(t, StateAll.Matches(startsNow, now))
}

func TestBookingState_Matches_StatusBuckets(t *testing.T) {
	now := time.Now()
	waiting := &Booking{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Status: StatusWaiting}
	rejected := &Booking{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Status: StatusRejected}

	assert.True(t, StateWaiting.Matches(waiting, now))
	assert.False(t, StateWaiting.Matches(rejected, now))
	assert.True(t, StateRejected.Matches(rejected, now))
	assert.False(t, StateRejected.Matches(waiting, now))

	status, ok := StateWaiting.StatusFilter()
	assert.True(t, ok)
	assert.Equal(t, StatusWaiting, status)

	_, ok = StatePast.StatusFilter()
	assert.False(t, ok)
}

// Временные корзины не пересекаются, а интервал с start < end, не касающийся now,
// попадает ровно в одну из них.
func TestBookingState_TemporalBucketsArePartition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := time.Unix(1_800_000_000, 0)
		startOffset := rapid.Int64Range(-1000, 1000).Draw(t, "startOffset")
		length := rapid.Int64Range(1, 1000).Draw(t, "length")

		b := &Booking{
			Start:  now.Add(time.Duration(startOffset) * time.Minute),
			End:    now.Add(time.Duration(startOffset+length) * time.Minute),
			Status: StatusWaiting,
		}

		matched := 0
		for _, s := range []BookingState{StatePast, StateCurrent, StateFuture} {
			if s.Matches(b, now) {
				matched++
			}
		}

		touchesNow := b.Start.Equal(now) || b.End.Equal(now)
		if touchesNow {
			if matched != 0 {
				t.Fatalf("interval touching now matched %d buckets", matched)
			}
			return
		}
		if matched != 1 {
			t.Fatalf("interval matched %d buckets, want 1", matched)
		}
	})
}

func TestBooking_CanBeDecided(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusWaiting}).CanBeDecided())
	assert.True(t, (&Booking{Status: StatusRejected}).CanBeDecided())
	assert.False(t, (&Booking{Status: StatusApproved}).CanBeDecided())

	assert.Equal(t, StatusApproved, DecisionStatus(true))
	assert.Equal(t, StatusRejected, DecisionStatus(false))
}

func TestBookingsFilter_Matches(t *testing.T) {
	now := time.Now()
	booker, owner, item := int64(1), int64(2), int64(3)
	b := &Booking{
		ItemID:      item,
		BookerID:    booker,
		ItemOwnerID: owner,
		Start:       now.Add(-2 * time.Hour),
		End:         now.Add(-time.Hour),
		Status:      StatusApproved,
	}

	assert.True(t, BookingsFilter{BookerID: &booker, State: StatePast, Now: now}.Matches(b))
	assert.True(t, BookingsFilter{OwnerID: &owner, State: StateAll, Now: now}.Matches(b))
	assert.False(t, BookingsFilter{OwnerID: &booker, State: StateAll, Now: now}.Matches(b))
	assert.False(t, BookingsFilter{BookerID: &booker, State: StateFuture, Now: now}.Matches(b))

	approved := StatusApproved
	other := int64(99)
	assert.True(t, BookingsFilter{ItemID: &item, Status: &approved, State: StateAll, Now: now}.Matches(b))
	assert.False(t, BookingsFilter{ItemID: &other, State: StateAll, Now: now}.Matches(b))
}
