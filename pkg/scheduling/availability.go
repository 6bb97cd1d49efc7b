// Package scheduling owns the maintenance workflow and the technician
// availability model.
package scheduling

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"mundosolar.mx/backend/models"
	"mundosolar.mx/backend/utils"
)

// A visit blocks the technician for the maintenance duration plus the travel
// buffer, starting at the scheduled hour.
const (
	MaintenanceDurationHours = 2
	TravelBufferHours        = 1
	TotalBlockingHours       = MaintenanceDurationHours + TravelBufferHours

	FirstSlotHour = 7
	LastSlotHour  = 18
)

// HourSlot is one client-visible hourly slot.
type HourSlot struct {
	Hour        int  `json:"hour"`
	IsAvailable bool `json:"isAvailable"`
	AllBusy     bool `json:"allBusy"`
}

// blocksHour reports whether a maintenance scheduled at scheduledHour blocks
// the given hour: scheduledHour <= hour < scheduledHour + TotalBlockingHours.
func blocksHour(scheduledHour, hour int) bool {
	return scheduledHour <= hour && hour < scheduledHour+TotalBlockingHours
}

// technicianBusyAt reports whether any of the technician's scheduled hours
// block the given hour.
func technicianBusyAt(scheduledHours []int, hour int) bool {
	for _, h := range scheduledHours {
		if blocksHour(h, hour) {
			return true
		}
	}
	return false
}

// ComputeHourlySlots derives the client-facing slot list for hours 7..18.
// busyHours maps each active technician to the scheduled hours of their
// non-terminal maintenances that day; a slot is unavailable only when every
// technician conflicts.
func ComputeHourlySlots(technicianIDs []uuid.UUID, busyHours map[uuid.UUID][]int) []HourSlot {
	slots := make([]HourSlot, 0, LastSlotHour-FirstSlotHour+1)
	for hour := FirstSlotHour; hour <= LastSlotHour; hour++ {
		allBusy := len(technicianIDs) > 0
		for _, techID := range technicianIDs {
			if !technicianBusyAt(busyHours[techID], hour) {
				allBusy = false
				break
			}
		}
		slots = append(slots, HourSlot{
			Hour:        hour,
			IsAvailable: !allBusy,
			AllBusy:     allBusy,
		})
	}
	return slots
}

// TechnicianFreeAt is the admin-side check for one specific technician.
func TechnicianFreeAt(scheduledHours []int, hour int) bool {
	return !technicianBusyAt(scheduledHours, hour)
}

// AvailabilityService loads the day's assignments and derives slots.
type AvailabilityService struct {
	db *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{db: db}
}

// busyHoursFor collects, per technician, the scheduled hours of active
// maintenances on the given date. Cancelled and completed visits do not
// block anyone.
func (s *AvailabilityService) busyHoursFor(date time.Time) ([]uuid.UUID, map[uuid.UUID][]int, error) {
	var technicians []models.Technician
	if err := s.db.Where("is_active = ?", true).Find(&technicians).Error; err != nil {
		return nil, nil, err
	}
	techIDs := make([]uuid.UUID, len(technicians))
	for i, t := range technicians {
		techIDs[i] = t.ID
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var records []models.MaintenanceRecord
	err := s.db.Preload("Assignments").
		Where("scheduled_date >= ? AND scheduled_date < ?", dayStart, dayEnd).
		Where("status NOT IN ?", []models.MaintenanceStatus{models.MaintenanceCancelled, models.MaintenanceCompleted}).
		Find(&records).Error
	if err != nil {
		return nil, nil, err
	}

	busy := make(map[uuid.UUID][]int)
	for _, rec := range records {
		if rec.ScheduledDate == nil {
			continue
		}
		hour := rec.ScheduledDate.Hour()
		for _, a := range rec.Assignments {
			busy[a.TechnicianID] = append(busy[a.TechnicianID], hour)
		}
	}
	return techIDs, busy, nil
}

// HourlyAvailability returns the client-facing slot list for a date.
func (s *AvailabilityService) HourlyAvailability(date time.Time) ([]HourSlot, error) {
	techIDs, busy, err := s.busyHoursFor(date)
	if err != nil {
		return nil, err
	}
	return ComputeHourlySlots(techIDs, busy), nil
}

// TechnicianAvailability returns, for one technician, which hours of the
// date are free.
func (s *AvailabilityService) TechnicianAvailability(technicianID uuid.UUID, date time.Time) ([]HourSlot, error) {
	_, busy, err := s.busyHoursFor(date)
	if err != nil {
		return nil, err
	}
	hours := busy[technicianID]
	slots := make([]HourSlot, 0, LastSlotHour-FirstSlotHour+1)
	for hour := FirstSlotHour; hour <= LastSlotHour; hour++ {
		free := TechnicianFreeAt(hours, hour)
		slots = append(slots, HourSlot{Hour: hour, IsAvailable: free, AllBusy: !free})
	}
	return slots, nil
}

// TechnicianSuggestion ranks free technicians by travel distance to a
// client's installation site.
type TechnicianSuggestion struct {
	TechnicianID uuid.UUID `json:"technicianId"`
	Name         string    `json:"name"`
	Specialty    string    `json:"specialty"`
	DistanceKM   float64   `json:"distanceKm"`
}

// SuggestTechnicians returns technicians free at the requested hour, nearest
// first. Technicians without a home base sort last.
func (s *AvailabilityService) SuggestTechnicians(date time.Time, hour int, site utils.Coordinate) ([]TechnicianSuggestion, error) {
	var technicians []models.Technician
	if err := s.db.Preload("User").Where("is_active = ?", true).Find(&technicians).Error; err != nil {
		return nil, err
	}

	_, busy, err := s.busyHoursFor(date)
	if err != nil {
		return nil, err
	}

	var suggestions []TechnicianSuggestion
	for _, tech := range technicians {
		if !TechnicianFreeAt(busy[tech.ID], hour) {
			continue
		}
		sug := TechnicianSuggestion{
			TechnicianID: tech.ID,
			Specialty:    tech.Specialty,
			DistanceKM:   -1,
		}
		if tech.User != nil {
			sug.Name = tech.User.Name
		}
		home := utils.Coordinate{Lat: tech.HomeLat, Lng: tech.HomeLng}
		if utils.ValidCoordinate(home) && utils.ValidCoordinate(site) {
			sug.DistanceKM = utils.DistanceKM(home, site)
		}
		suggestions = append(suggestions, sug)
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		di, dj := suggestions[i].DistanceKM, suggestions[j].DistanceKM
		if di < 0 {
			return false
		}
		if dj < 0 {
			return true
		}
		return di < dj
	})
	return suggestions, nil
}
