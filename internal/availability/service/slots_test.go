package service

import (
	"testing"
	"time"
)

var dayStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestAvailableSlots_EmptyCalendar(t *testing.T) {
	windowEnd := dayStart.Add(2 * time.Hour)

	slots := AvailableSlots(dayStart, windowEnd, 30*time.Minute, 30*time.Minute, nil, dayStart.Add(-time.Hour))

	if len(slots) != 4 {
		t.Fatalf("expected 4 slots in a 2 hour window, got %d", len(slots))
	}
	if !slots[0].Equal(dayStart) {
		t.Errorf("expected first slot at %v, got %v", dayStart, slots[0])
	}
	if !slots[3].Equal(dayStart.Add(90 * time.Minute)) {
		t.Errorf("expected last slot at %v, got %v", dayStart.Add(90*time.Minute), slots[3])
	}
}

func TestAvailableSlots_BusyIntervalBlocksSlot(t *testing.T) {
	windowEnd := dayStart.Add(2 * time.Hour)
	busy := []Interval{
		{Start: dayStart.Add(30 * time.Minute), End: dayStart.Add(time.Hour)},
	}

	slots := AvailableSlots(dayStart, windowEnd, 30*time.Minute, 30*time.Minute, busy, dayStart.Add(-time.Hour))

	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	for _, s := range slots {
		if s.Equal(dayStart.Add(30 * time.Minute)) {
			t.Error("busy slot 09:30 should not be offered")
		}
	}
}

func TestAvailableSlots_BackToBackAppointmentsDoNotBlockNeighbours(t *testing.T) {
	windowEnd := dayStart.Add(90 * time.Minute)
	// Half-open windows: an appointment ending at 09:30 leaves 09:30 free.
	busy := []Interval{
		{Start: dayStart, End: dayStart.Add(30 * time.Minute)},
	}

	slots := AvailableSlots(dayStart, windowEnd, 30*time.Minute, 30*time.Minute, busy, dayStart.Add(-time.Hour))

	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if !slots[0].Equal(dayStart.Add(30 * time.Minute)) {
		t.Errorf("expected 09:30 to be free, got %v", slots[0])
	}
}

func TestAvailableSlots_PastSlotsSkipped(t *testing.T) {
	windowEnd := dayStart.Add(2 * time.Hour)
	now := dayStart.Add(45 * time.Minute)

	slots := AvailableSlots(dayStart, windowEnd, 30*time.Minute, 30*time.Minute, nil, now)

	if len(slots) != 2 {
		t.Fatalf("expected 2 future slots, got %d", len(slots))
	}
	if !slots[0].Equal(dayStart.Add(time.Hour)) {
		t.Errorf("expected first future slot at 10:00, got %v", slots[0])
	}
}

func TestAvailableSlots_SlotMustFitInsideWindow(t *testing.T) {
	// A 45 minute slot starting at 09:30 would spill past the 10:00 close.
	windowEnd := dayStart.Add(time.Hour)

	slots := AvailableSlots(dayStart, windowEnd, 45*time.Minute, 30*time.Minute, nil, dayStart.Add(-time.Hour))

	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if !slots[0].Equal(dayStart) {
		t.Errorf("expected the only slot at 09:00, got %v", slots[0])
	}
}

func TestAvailableSlots_DegenerateInputs(t *testing.T) {
	if got := AvailableSlots(dayStart, dayStart, 30*time.Minute, 30*time.Minute, nil, dayStart); got != nil {
		t.Errorf("expected nil for empty window, got %v", got)
	}
	if got := AvailableSlots(dayStart, dayStart.Add(time.Hour), 0, 30*time.Minute, nil, dayStart); got != nil {
		t.Errorf("expected nil for zero duration, got %v", got)
	}
	if got := AvailableSlots(dayStart, dayStart.Add(10*time.Minute), 30*time.Minute, 30*time.Minute, nil, dayStart); got != nil {
		t.Errorf("expected nil when no slot fits, got %v", got)
	}
}
