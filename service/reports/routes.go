package reports

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// ReportsHandler serves the read-only JSON reporting endpoints consumed by
// the admin dashboard and external clients. Dates are rendered as
// YYYY-MM-DD, times as HH:mm.
type ReportsHandler struct {
	db *gorm.DB
}

func NewReportsHandler(db *gorm.DB) *ReportsHandler {
	return &ReportsHandler{db: db}
}

func (h *ReportsHandler) RegisterRoutes(router *mux.Router) {
	reports := router.PathPrefix("/reports").Subrouter()
	reports.HandleFunc("/available-trainers", h.GetAvailableTrainers).Methods("GET")
	reports.HandleFunc("/appointments", h.GetAllAppointments).Methods("GET")
	reports.HandleFunc("/statistics", h.GetAppointmentStatistics).Methods("GET")
	reports.HandleFunc("/service-appointments", h.GetServiceAppointments).Methods("GET")
	reports.HandleFunc("/trainer-schedule", h.GetTrainerSchedule).Methods("GET")
}

type serviceSummary struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration int     `json:"duration"`
}

type windowSummary struct {
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func dayName(day int) string {
	return time.Weekday(day).String()
}

// GetAvailableTrainers lists available trainers that have an active window
// on the given date's weekday, optionally filtered by offered service.
func (h *ReportsHandler) GetAvailableTrainers(w http.ResponseWriter, r *http.Request) {
	targetDate := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		targetDate = parsed
	}
	dayOfWeek := int(targetDate.Weekday())

	query := h.db.Model(&models.Trainer{}).
		Preload("TrainerServices.Service").
		Preload("Availabilities", "day_of_week = ? AND is_active = ?", dayOfWeek, true).
		Where("is_available = ?", true)

	if serviceIDStr := r.URL.Query().Get("service_id"); serviceIDStr != "" {
		serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid service ID", http.StatusBadRequest)
			return
		}
		query = query.Where("id IN (?)",
			h.db.Model(&models.TrainerService{}).Select("trainer_id").Where("service_id = ?", serviceID))
	}

	var trainers []models.Trainer
	if err := query.Find(&trainers).Error; err != nil {
		http.Error(w, "Error retrieving trainers", http.StatusInternalServerError)
		return
	}

	result := make([]map[string]interface{}, 0, len(trainers))
	for _, t := range trainers {
		if len(t.Availabilities) == 0 {
			continue
		}

		services := make([]serviceSummary, 0, len(t.TrainerServices))
		for _, ts := range t.TrainerServices {
			if ts.Service == nil {
				continue
			}
			services = append(services, serviceSummary{
				ID:       ts.Service.ID,
				Name:     ts.Service.Name,
				Price:    ts.Service.Price,
				Duration: ts.Service.Duration,
			})
		}

		windows := make([]windowSummary, 0, len(t.Availabilities))
		for _, a := range t.Availabilities {
			windows = append(windows, windowSummary{
				DayOfWeek: dayName(a.DayOfWeek),
				StartTime: a.StartTime,
				EndTime:   a.EndTime,
			})
		}

		result = append(result, map[string]interface{}{
			"id":             t.ID,
			"name":           t.Name,
			"email":          t.Email,
			"biography":      t.Biography,
			"services":       services,
			"availabilities": windows,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *ReportsHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	query := h.db.Model(&models.Appointment{}).
		Preload("Member").Preload("Trainer").Preload("Service")

	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		query = query.Where("appointment_date >= ?", startDate)
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		query = query.Where("appointment_date <= ?", endDate)
	}
	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date DESC, start_time DESC").
		Find(&appointments).Error; err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	data := make([]map[string]interface{}, 0, len(appointments))
	for _, a := range appointments {
		row := map[string]interface{}{
			"id":               a.ID,
			"appointment_date": a.AppointmentDate.Format("2006-01-02"),
			"appointment_time": a.StartTime,
			"status":           a.Status,
			"notes":            a.Notes,
			"created_date":     a.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if a.Member != nil {
			row["member"] = map[string]interface{}{
				"id":    a.Member.ID,
				"name":  a.Member.FullName,
				"email": a.Member.Email,
			}
		}
		if a.Trainer != nil {
			row["trainer"] = map[string]interface{}{
				"id":    a.Trainer.ID,
				"name":  a.Trainer.Name,
				"email": a.Trainer.Email,
			}
		}
		if a.Service != nil {
			row["service"] = serviceSummary{
				ID:       a.Service.ID,
				Name:     a.Service.Name,
				Price:    a.Service.Price,
				Duration: a.Service.Duration,
			}
		}
		data = append(data, row)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_count": len(data),
		"data":        data,
	})
}

type countByStatus struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Cancelled int64 `json:"cancelled"`
	Completed int64 `json:"completed"`
}

type topTrainerRow struct {
	TrainerID        uint   `json:"trainer_id"`
	TrainerName      string `json:"trainer_name"`
	AppointmentCount int64  `json:"appointment_count"`
}

type topServiceRow struct {
	ServiceID        uint   `json:"service_id"`
	ServiceName      string `json:"service_name"`
	AppointmentCount int64  `json:"appointment_count"`
}

func (h *ReportsHandler) GetAppointmentStatistics(w http.ResponseWriter, r *http.Request) {
	var total int64
	h.db.Model(&models.Appointment{}).Count(&total)

	var breakdown countByStatus
	h.db.Model(&models.Appointment{}).Where("status = ?", models.StatusPending).Count(&breakdown.Pending)
	h.db.Model(&models.Appointment{}).Where("status = ?", models.StatusConfirmed).Count(&breakdown.Confirmed)
	h.db.Model(&models.Appointment{}).Where("status = ?", models.StatusCancelled).Count(&breakdown.Cancelled)
	h.db.Model(&models.Appointment{}).Where("status = ?", models.StatusCompleted).Count(&breakdown.Completed)

	var topTrainers []topTrainerRow
	if err := h.db.Model(&models.Appointment{}).
		Select("appointments.trainer_id, trainers.name AS trainer_name, COUNT(*) AS appointment_count").
		Joins("JOIN trainers ON trainers.id = appointments.trainer_id").
		Group("appointments.trainer_id, trainers.name").
		Order("appointment_count DESC").
		Limit(5).
		Scan(&topTrainers).Error; err != nil {
		http.Error(w, "Error computing trainer statistics", http.StatusInternalServerError)
		return
	}

	var topServices []topServiceRow
	if err := h.db.Model(&models.Appointment{}).
		Select("appointments.service_id, services.name AS service_name, COUNT(*) AS appointment_count").
		Joins("JOIN services ON services.id = appointments.service_id").
		Group("appointments.service_id, services.name").
		Order("appointment_count DESC").
		Limit(5).
		Scan(&topServices).Error; err != nil {
		http.Error(w, "Error computing service statistics", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_appointments": total,
		"status_breakdown":   breakdown,
		"top_trainers":       topTrainers,
		"top_services":       topServices,
	})
}

func (h *ReportsHandler) GetServiceAppointments(w http.ResponseWriter, r *http.Request) {
	var services []models.Service
	if err := h.db.Preload("Appointments.Trainer").
		Where("is_active = ?", true).Find(&services).Error; err != nil {
		http.Error(w, "Error retrieving services", http.StatusInternalServerError)
		return
	}

	result := make([]map[string]interface{}, 0, len(services))
	for _, s := range services {
		var pending, confirmed, completed int
		for _, a := range s.Appointments {
			switch a.Status {
			case models.StatusPending:
				pending++
			case models.StatusConfirmed:
				confirmed++
			case models.StatusCompleted:
				completed++
			}
		}

		// Latest 10 appointments, newest date first
		sorted := make([]models.Appointment, len(s.Appointments))
		copy(sorted, s.Appointments)
		for i := 0; i < len(sorted); i++ {
			for j := i + 1; j < len(sorted); j++ {
				if sorted[j].AppointmentDate.After(sorted[i].AppointmentDate) {
					sorted[i], sorted[j] = sorted[j], sorted[i]
				}
			}
		}
		if len(sorted) > 10 {
			sorted = sorted[:10]
		}

		recent := make([]map[string]interface{}, 0, len(sorted))
		for _, a := range sorted {
			row := map[string]interface{}{
				"id":               a.ID,
				"appointment_date": a.AppointmentDate.Format("2006-01-02"),
				"appointment_time": a.StartTime,
				"status":           a.Status,
			}
			if a.Trainer != nil {
				row["trainer_name"] = a.Trainer.Name
			}
			recent = append(recent, row)
		}

		result = append(result, map[string]interface{}{
			"service_id":             s.ID,
			"service_name":           s.Name,
			"price":                  s.Price,
			"duration":               s.Duration,
			"total_appointments":     len(s.Appointments),
			"pending_appointments":   pending,
			"confirmed_appointments": confirmed,
			"completed_appointments": completed,
			"total_revenue":          float64(completed) * s.Price,
			"appointments":           recent,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"total_services": len(result),
		"services":       result,
	})
}

// GetTrainerSchedule assembles each trainer's week: appointments in the week
// containing the target date plus the trainer's active weekly windows.
// Weeks start on Sunday.
func (h *ReportsHandler) GetTrainerSchedule(w http.ResponseWriter, r *http.Request) {
	targetDate := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		targetDate = parsed
	}

	startOfWeek := targetDate.AddDate(0, 0, -int(targetDate.Weekday()))
	endOfWeek := startOfWeek.AddDate(0, 0, 7)
	weekRange := startOfWeek.Format("2006-01-02") + " - " + endOfWeek.Format("2006-01-02")

	query := h.db.Model(&models.Trainer{}).
		Preload("Availabilities", "is_active = ?", true).
		Where("is_available = ?", true)

	if trainerIDStr := r.URL.Query().Get("trainer_id"); trainerIDStr != "" {
		trainerID, err := strconv.ParseUint(trainerIDStr, 10, 64)
		if err != nil {
			http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
			return
		}
		query = query.Where("id = ?", trainerID)
	}

	var trainers []models.Trainer
	if err := query.Find(&trainers).Error; err != nil {
		http.Error(w, "Error retrieving trainers", http.StatusInternalServerError)
		return
	}

	result := make([]map[string]interface{}, 0, len(trainers))
	for _, t := range trainers {
		var appointments []models.Appointment
		if err := h.db.Preload("Member").Preload("Service").
			Where("trainer_id = ? AND appointment_date >= ? AND appointment_date < ?",
				t.ID, startOfWeek.Format("2006-01-02"), endOfWeek.Format("2006-01-02")).
			Order("appointment_date, start_time").
			Find(&appointments).Error; err != nil {
			http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
			return
		}

		weekly := make([]map[string]interface{}, 0, len(appointments))
		for _, a := range appointments {
			row := map[string]interface{}{
				"id":          a.ID,
				"date":        a.AppointmentDate.Format("2006-01-02"),
				"day_of_week": a.AppointmentDate.Weekday().String(),
				"time":        a.StartTime,
				"status":      a.Status,
			}
			if a.Member != nil {
				row["member_name"] = a.Member.FullName
			}
			if a.Service != nil {
				row["service_name"] = a.Service.Name
				row["duration"] = a.Service.Duration
			}
			weekly = append(weekly, row)
		}

		windows := make([]windowSummary, 0, len(t.Availabilities))
		for _, a := range t.Availabilities {
			windows = append(windows, windowSummary{
				DayOfWeek: dayName(a.DayOfWeek),
				StartTime: a.StartTime,
				EndTime:   a.EndTime,
			})
		}

		result = append(result, map[string]interface{}{
			"trainer_id":                t.ID,
			"trainer_name":              t.Name,
			"email":                     t.Email,
			"weekly_appointments":       weekly,
			"weekly_availability":       windows,
			"total_weekly_appointments": len(weekly),
			"week_range":                weekRange,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"week_range":     weekRange,
		"total_trainers": len(result),
		"trainers":       result,
	})
}
