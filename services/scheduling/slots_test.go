package scheduling

import (
	"context"
	"testing"
	"time"

	"timebridge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAvailableSlotsSkipsBookedIntervals(t *testing.T) {
	svc, sr, wr := newTestService(sunday, approvedProvider("prov-1"))
	wr.windows = append(wr.windows, mondayWindow("prov-1", 9*60, 17*60))
	sr.sessions = append(sr.sessions, models.Session{
		ID:             "sess-1",
		ProviderID:     "prov-1",
		ScheduledStart: at(monday, 10, 0),
		ScheduledEnd:   at(monday, 11, 0),
		Status:         models.SessionScheduled,
	})

	slots, err := svc.GetAvailableSlots(context.Background(), "prov-1", monday, 60)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	// 15 half-hour starts fit a 60-minute slot into 09:00-17:00; the three
	// colliding with the 10:00-11:00 booking drop out.
	assert.Len(t, slots, 12)
	assert.Equal(t, at(monday, 9, 0), slots[0].Start)
	assert.Equal(t, at(monday, 11, 0), slots[1].Start)

	for _, s := range slots {
		assert.Equal(t, time.Hour, s.End.Sub(s.Start))
		assert.False(t, s.Start.Before(at(monday, 9, 0)))
		assert.False(t, s.End.After(at(monday, 17, 0)))
		assert.False(t, sr.sessions[0].Overlaps(s.Start, s.End), "slot %v collides with booking", s.Start)
	}
}

func TestGetAvailableSlotsSkipsPastStarts(t *testing.T) {
	midday := at(monday, 12, 10)
	svc, _, wr := newTestService(midday, approvedProvider("prov-1"))
	wr.windows = append(wr.windows, mondayWindow("prov-1", 9*60, 17*60))

	slots, err := svc.GetAvailableSlots(context.Background(), "prov-1", monday, 60)
	require.NoError(t, err)
	require.NotEmpty(t, slots)
	assert.Equal(t, at(monday, 12, 30), slots[0].Start)
	for _, s := range slots {
		assert.True(t, s.Start.After(midday))
	}
}

func TestGetAvailableSlotsShortDurationSteps(t *testing.T) {
	svc, _, wr := newTestService(sunday, approvedProvider("prov-1"))
	wr.windows = append(wr.windows, mondayWindow("prov-1", 9*60, 10*60))

	slots, err := svc.GetAvailableSlots(context.Background(), "prov-1", monday, 20)
	require.NoError(t, err)
	require.True(t, len(slots) >= 2)
	assert.Equal(t, 20*time.Minute, slots[1].Start.Sub(slots[0].Start))
}

func TestGetAvailableSlotsNoWindows(t *testing.T) {
	svc, _, _ := newTestService(sunday, approvedProvider("prov-1"))

	slots, err := svc.GetAvailableSlots(context.Background(), "prov-1", monday, 60)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestGetAvailableSlotsDurationLongerThanWindow(t *testing.T) {
	svc, _, wr := newTestService(sunday, approvedProvider("prov-1"))
	wr.windows = append(wr.windows, mondayWindow("prov-1", 9*60, 10*60))

	slots, err := svc.GetAvailableSlots(context.Background(), "prov-1", monday, 90)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
