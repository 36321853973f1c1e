package appointment

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"github.com/ekaya0/FitCenter-server/cmd/utils"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_URL")
	if dsn == "" {
		t.Skip("TEST_DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Skipf("test database unavailable: %v", err)
	}

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Trainer{},
		&models.TrainerService{},
		&models.TrainerAvailability{},
		&models.Appointment{},
	))

	t.Cleanup(func() {
		db.Exec("DELETE FROM appointments")
		db.Exec("DELETE FROM trainer_availabilities")
		db.Exec("DELETE FROM trainer_services")
		db.Exec("DELETE FROM trainers")
		db.Exec("DELETE FROM services")
		db.Exec("DELETE FROM users")
	})

	return db
}

func asMember(req *http.Request, memberID uint) *http.Request {
	ctx := context.WithValue(req.Context(), utils.UserIDKey, memberID)
	ctx = context.WithValue(ctx, utils.RoleKey, models.RoleMember)
	return req.WithContext(ctx)
}

func TestCheckAvailabilityUnknownTrainer(t *testing.T) {
	db := setupTestDB(t)
	h := NewAppointmentHandler(db)

	req := httptest.NewRequest("GET",
		"/appointments/check?trainer_id=9999&service_id=1&date=2026-09-01&time=10:00", nil)
	rec := httptest.NewRecorder()

	h.CheckAvailability(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Trainer not found")
}

func TestCancelAppointmentStatusHandling(t *testing.T) {
	db := setupTestDB(t)
	h := NewAppointmentHandler(db)

	member := models.User{
		FullName: "Test Member", Email: "cancel-test@example.com",
		PasswordHash: "x", Role: models.RoleMember, RegistrationDate: time.Now(),
	}
	require.NoError(t, db.Create(&member).Error)
	trainer := models.Trainer{Name: "Test Trainer", Email: "trainer@example.com", IsAvailable: true}
	require.NoError(t, db.Create(&trainer).Error)
	service := models.Service{Name: "Test Service", Duration: 60, Price: 100, IsActive: true}
	require.NoError(t, db.Create(&service).Error)

	makeAppointment := func(status string) models.Appointment {
		a := models.Appointment{
			MemberID:        member.ID,
			TrainerID:       trainer.ID,
			ServiceID:       service.ID,
			AppointmentDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			StartTime:       "10:00",
			Status:          status,
		}
		require.NoError(t, db.Create(&a).Error)
		return a
	}

	cancel := func(a models.Appointment) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", fmt.Sprintf("/appointments/%d/cancel", a.ID), nil)
		req = mux.SetURLVars(req, map[string]string{"id": fmt.Sprint(a.ID)})
		req = asMember(req, member.ID)
		rec := httptest.NewRecorder()
		h.CancelAppointment(rec, req)
		return rec
	}

	t.Run("pending is cancelled", func(t *testing.T) {
		a := makeAppointment(models.StatusPending)
		rec := cancel(a)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "cancelled successfully")

		var reloaded models.Appointment
		require.NoError(t, db.First(&reloaded, a.ID).Error)
		assert.Equal(t, models.StatusCancelled, reloaded.Status)
	})

	t.Run("already cancelled is an informational no-op", func(t *testing.T) {
		a := makeAppointment(models.StatusCancelled)
		rec := cancel(a)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "already cancelled")

		var reloaded models.Appointment
		require.NoError(t, db.First(&reloaded, a.ID).Error)
		assert.Equal(t, models.StatusCancelled, reloaded.Status)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		a := makeAppointment(models.StatusCompleted)
		rec := cancel(a)

		assert.Equal(t, http.StatusConflict, rec.Code)

		var reloaded models.Appointment
		require.NoError(t, db.First(&reloaded, a.ID).Error)
		assert.Equal(t, models.StatusCompleted, reloaded.Status)
	})
}
