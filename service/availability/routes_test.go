package availability

import (
	"testing"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"github.com/stretchr/testify/assert"
)

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name    string
		window  models.TrainerAvailability
		wantErr bool
	}{
		{
			name:   "valid weekday window",
			window: models.TrainerAvailability{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00"},
		},
		{
			name:   "valid sunday window",
			window: models.TrainerAvailability{DayOfWeek: 0, StartTime: "10:00", EndTime: "14:00"},
		},
		{
			name:    "day out of range",
			window:  models.TrainerAvailability{DayOfWeek: 7, StartTime: "09:00", EndTime: "18:00"},
			wantErr: true,
		},
		{
			name:    "malformed start time",
			window:  models.TrainerAvailability{DayOfWeek: 1, StartTime: "9am", EndTime: "18:00"},
			wantErr: true,
		},
		{
			name:    "unpadded start time",
			window:  models.TrainerAvailability{DayOfWeek: 1, StartTime: "9:00", EndTime: "18:00"},
			wantErr: true,
		},
		{
			name:    "malformed end time",
			window:  models.TrainerAvailability{DayOfWeek: 1, StartTime: "09:00", EndTime: "25:00"},
			wantErr: true,
		},
		{
			name:    "end before start",
			window:  models.TrainerAvailability{DayOfWeek: 1, StartTime: "18:00", EndTime: "09:00"},
			wantErr: true,
		},
		{
			name:    "zero length window",
			window:  models.TrainerAvailability{DayOfWeek: 1, StartTime: "09:00", EndTime: "09:00"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason := validateWindow(&tt.window)
			if tt.wantErr {
				assert.NotEmpty(t, reason)
			} else {
				assert.Empty(t, reason)
			}
		})
	}
}
