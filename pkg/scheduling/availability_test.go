package scheduling

import (
	"testing"

	"github.com/google/uuid"
)

func TestBlocksHour(t *testing.T) {
	tests := []struct {
		name          string
		scheduledHour int
		hour          int
		expected      bool
	}{
		{"scheduled hour itself", 9, 9, true},
		{"second hour of visit", 9, 10, true},
		{"travel buffer hour", 9, 11, true},
		{"freed after buffer", 9, 12, false},
		{"hour before visit", 9, 8, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blocksHour(tt.scheduledHour, tt.hour); got != tt.expected {
				t.Errorf("blocksHour(%d, %d) = %v, expected %v",
					tt.scheduledHour, tt.hour, got, tt.expected)
			}
		})
	}
}

// Single technician with one visit at 09:00: hours 9-11 report allBusy, hour
// 12 is free again.
func TestComputeHourlySlotsSingleTechnician(t *testing.T) {
	tech := uuid.New()
	slots := ComputeHourlySlots([]uuid.UUID{tech}, map[uuid.UUID][]int{tech: {9}})

	if len(slots) != LastSlotHour-FirstSlotHour+1 {
		t.Fatalf("got %d slots, expected %d", len(slots), LastSlotHour-FirstSlotHour+1)
	}

	byHour := make(map[int]HourSlot, len(slots))
	for _, s := range slots {
		byHour[s.Hour] = s
	}

	for _, h := range []int{9, 10, 11} {
		if !byHour[h].AllBusy || byHour[h].IsAvailable {
			t.Errorf("hour %d: expected allBusy, got %+v", h, byHour[h])
		}
	}
	for _, h := range []int{7, 8, 12, 18} {
		if byHour[h].AllBusy || !byHour[h].IsAvailable {
			t.Errorf("hour %d: expected available, got %+v", h, byHour[h])
		}
	}
}

// A slot is unavailable only when every technician conflicts.
func TestComputeHourlySlotsAllBusyRule(t *testing.T) {
	t1, t2 := uuid.New(), uuid.New()

	// Only t1 busy at 9: slot stays available.
	slots := ComputeHourlySlots([]uuid.UUID{t1, t2}, map[uuid.UUID][]int{t1: {9}})
	for _, s := range slots {
		if s.Hour == 9 && (!s.IsAvailable || s.AllBusy) {
			t.Errorf("hour 9 with one free technician: got %+v", s)
		}
	}

	// Both busy at 9: slot unavailable.
	slots = ComputeHourlySlots([]uuid.UUID{t1, t2}, map[uuid.UUID][]int{t1: {9}, t2: {8}})
	for _, s := range slots {
		if s.Hour == 9 && (s.IsAvailable || !s.AllBusy) {
			t.Errorf("hour 9 with both technicians blocked: got %+v", s)
		}
		// t2's 8 o'clock visit also blocks 10, t1's 9 o'clock too
		if s.Hour == 10 && s.IsAvailable {
			t.Errorf("hour 10 with both technicians blocked: got %+v", s)
		}
		// at 11 only t1 is still blocked (t2 freed after 10)
		if s.Hour == 11 && !s.IsAvailable {
			t.Errorf("hour 11 with t2 free: got %+v", s)
		}
	}
}

// An empty roster never reports allBusy; there is nobody to conflict.
func TestComputeHourlySlotsNoTechnicians(t *testing.T) {
	slots := ComputeHourlySlots(nil, nil)
	for _, s := range slots {
		if s.AllBusy {
			t.Errorf("hour %d: empty roster reported allBusy", s.Hour)
		}
	}
}

func TestTechnicianFreeAt(t *testing.T) {
	hours := []int{9, 14}
	busy := []int{9, 10, 11, 14, 15, 16}
	free := []int{7, 8, 12, 13, 17, 18}

	for _, h := range busy {
		if TechnicianFreeAt(hours, h) {
			t.Errorf("hour %d: expected busy", h)
		}
	}
	for _, h := range free {
		if !TechnicianFreeAt(hours, h) {
			t.Errorf("hour %d: expected free", h)
		}
	}
}
