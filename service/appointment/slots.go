package appointment

import (
	"time"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"github.com/ekaya0/FitCenter-server/cmd/utils"
	"gorm.io/gorm"
)

const (
	reasonOutsideHours  = "trainer is not available at this time slot"
	reasonAlreadyBooked = "this time slot is already booked"
)

// WithinWindow reports whether the start time falls inside any of the given
// availability windows. Only the start is checked against the window, the
// computed end time may run past the window's end. That matches the booking
// behaviour this service has always had; windows use zero-padded "HH:mm"
// strings so the comparison is a plain string compare.
func WithinWindow(windows []models.TrainerAvailability, start string) bool {
	for _, w := range windows {
		if w.StartTime <= start && w.EndTime >= start {
			return true
		}
	}
	return false
}

// Overlaps reports whether two half-open minute intervals intersect.
// Touching boundaries do not conflict: an appointment ending at 10:00 can
// coexist with one starting at 10:00.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// HasConflict checks a candidate [start, end) interval against existing
// appointments for the same trainer and date. Each existing appointment's
// end is derived from its own service's duration, so a later change to a
// service does not rewrite history.
func HasConflict(existing []models.Appointment, startMin, endMin int) bool {
	for _, a := range existing {
		if a.Service == nil {
			continue
		}
		exStart, err := utils.ParseHHMM(a.StartTime)
		if err != nil {
			continue
		}
		if Overlaps(exStart, exStart+a.Service.Duration, startMin, endMin) {
			return true
		}
	}
	return false
}

// CheckSlot decides whether (trainer, service, date, start) is bookable.
// It is read-only; BookAppointment re-runs it inside the booking
// transaction to close the check-then-act window.
func CheckSlot(db *gorm.DB, trainerID, serviceID uint, date time.Time, start string) (bool, string, error) {
	dayOfWeek := int(date.Weekday())

	var windows []models.TrainerAvailability
	if err := db.Where("trainer_id = ? AND day_of_week = ? AND is_active = ?",
		trainerID, dayOfWeek, true).Find(&windows).Error; err != nil {
		return false, "", err
	}

	if !WithinWindow(windows, start) {
		return false, reasonOutsideHours, nil
	}

	var service models.Service
	if err := db.First(&service, serviceID).Error; err != nil {
		return false, "", err
	}

	startMin, err := utils.ParseHHMM(start)
	if err != nil {
		return false, "", err
	}
	endMin := startMin + service.Duration

	var existing []models.Appointment
	if err := db.Preload("Service").
		Where("trainer_id = ? AND appointment_date = ? AND status != ?",
			trainerID, date.Format("2006-01-02"), models.StatusCancelled).
		Find(&existing).Error; err != nil {
		return false, "", err
	}

	if HasConflict(existing, startMin, endMin) {
		return false, reasonAlreadyBooked, nil
	}

	return true, "", nil
}
