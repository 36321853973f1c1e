package appointment

import (
	"testing"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"github.com/stretchr/testify/assert"
)

func TestWithinWindow(t *testing.T) {
	windows := []models.TrainerAvailability{
		{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", IsActive: true},
	}

	tests := []struct {
		name  string
		start string
		want  bool
	}{
		{name: "inside window", start: "10:00", want: true},
		{name: "at window start", start: "09:00", want: true},
		{name: "at window end", start: "18:00", want: true},
		{name: "before window", start: "08:59", want: false},
		{name: "after window", start: "18:01", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithinWindow(windows, tt.start))
		})
	}
}

func TestWithinWindowNoWindows(t *testing.T) {
	assert.False(t, WithinWindow(nil, "10:00"))
}

func TestWithinWindowMultipleWindows(t *testing.T) {
	windows := []models.TrainerAvailability{
		{StartTime: "09:00", EndTime: "12:00"},
		{StartTime: "14:00", EndTime: "18:00"},
	}

	assert.True(t, WithinWindow(windows, "10:00"))
	assert.True(t, WithinWindow(windows, "15:00"))
	assert.False(t, WithinWindow(windows, "13:00"))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{name: "full overlap", aStart: 600, aEnd: 660, bStart: 600, bEnd: 660, want: true},
		{name: "partial overlap", aStart: 600, aEnd: 660, bStart: 630, bEnd: 690, want: true},
		{name: "contained", aStart: 600, aEnd: 660, bStart: 615, bEnd: 645, want: true},
		{name: "touching boundary does not conflict", aStart: 600, aEnd: 660, bStart: 660, bEnd: 720, want: false},
		{name: "disjoint", aStart: 600, aEnd: 660, bStart: 720, bEnd: 780, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestHasConflict(t *testing.T) {
	// Existing booking at 10:00 for a 60-minute service.
	existing := []models.Appointment{
		{
			StartTime: "10:00",
			Status:    models.StatusPending,
			Service:   &models.Service{Duration: 60},
		},
	}

	tests := []struct {
		name     string
		startMin int
		endMin   int
		want     bool
	}{
		{name: "10:30 for 30 minutes conflicts", startMin: 630, endMin: 660, want: true},
		{name: "11:00 for 30 minutes is free", startMin: 660, endMin: 690, want: false},
		{name: "09:30 ending at existing start is free", startMin: 570, endMin: 600, want: false},
		{name: "09:30 running into existing conflicts", startMin: 570, endMin: 630, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasConflict(existing, tt.startMin, tt.endMin))
		})
	}
}

func TestHasConflictSkipsAppointmentsWithoutService(t *testing.T) {
	existing := []models.Appointment{
		{StartTime: "10:00", Service: nil},
	}
	assert.False(t, HasConflict(existing, 600, 660))
}

func TestDecideCancel(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   cancelOutcome
	}{
		{name: "pending can be cancelled", status: models.StatusPending, want: cancelOK},
		{name: "confirmed can be cancelled", status: models.StatusConfirmed, want: cancelOK},
		{name: "cancelled again is informational", status: models.StatusCancelled, want: cancelAlreadyCancelled},
		{name: "completed cannot be cancelled", status: models.StatusCompleted, want: cancelRejected},
		{name: "unknown status is rejected", status: "Unknown", want: cancelRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decideCancel(tt.status))
		})
	}
}

func TestHasConflictUsesEachAppointmentsOwnDuration(t *testing.T) {
	existing := []models.Appointment{
		{StartTime: "09:00", Service: &models.Service{Duration: 30}},
		{StartTime: "10:00", Service: &models.Service{Duration: 90}},
	}

	// 09:30 to 10:00 sits exactly between the two bookings.
	assert.False(t, HasConflict(existing, 570, 600))
	// 11:00 still collides with the 90-minute booking ending at 11:30.
	assert.True(t, HasConflict(existing, 660, 690))
}
