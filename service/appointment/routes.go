package appointment

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"github.com/ekaya0/FitCenter-server/cmd/utils"
	"github.com/gorilla/mux"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

type AppointmentHandler struct {
	db *gorm.DB
}

func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{db: db}
}

func (h *AppointmentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/services/{serviceId}/trainers", h.GetTrainersByService).Methods("GET")

	authed := router.PathPrefix("/appointments").Subrouter()
	authed.Use(utils.AuthMiddleware)
	authed.HandleFunc("/book", h.BookAppointment).Methods("POST")
	authed.HandleFunc("/check", h.CheckAvailability).Methods("GET")
	authed.HandleFunc("/my", h.GetMyAppointments).Methods("GET")
	authed.HandleFunc("/{id:[0-9]+}", h.GetAppointment).Methods("GET")
	authed.HandleFunc("/{id:[0-9]+}/cancel", h.CancelAppointment).Methods("POST")

	admin := router.PathPrefix("/appointments").Subrouter()
	admin.Use(utils.AuthMiddleware, utils.AdminMiddleware)
	admin.HandleFunc("", h.GetAllAppointments).Methods("GET")
	admin.HandleFunc("/{id:[0-9]+}/status", h.UpdateStatus).Methods("PATCH")
}

// GetTrainersByService lists available trainers offering the given service.
func (h *AppointmentHandler) GetTrainersByService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseUint(vars["serviceId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}

	var links []models.TrainerService
	if err := h.db.Preload("Trainer").Where("service_id = ?", serviceID).Find(&links).Error; err != nil {
		http.Error(w, "Error retrieving trainers", http.StatusInternalServerError)
		return
	}

	trainers := make([]map[string]interface{}, 0, len(links))
	for _, link := range links {
		if link.Trainer == nil || !link.Trainer.IsAvailable {
			continue
		}
		trainers = append(trainers, map[string]interface{}{
			"id":        link.TrainerID,
			"name":      link.Trainer.Name,
			"biography": link.Trainer.Biography,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trainers)
}

// CheckAvailability is the read-only pre-booking check used by the booking
// form. The same check runs again inside BookAppointment.
func (h *AppointmentHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	trainerID, err := strconv.ParseUint(r.URL.Query().Get("trainer_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}
	serviceID, err := strconv.ParseUint(r.URL.Query().Get("service_id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	start := r.URL.Query().Get("time")
	if _, err := utils.ParseHHMM(start); err != nil {
		http.Error(w, "Invalid time format. Use HH:mm", http.StatusBadRequest)
		return
	}

	var trainer models.Trainer
	if err := h.db.First(&trainer, trainerID).Error; err != nil {
		http.Error(w, "Trainer not found", http.StatusNotFound)
		return
	}

	ok, reason, err := CheckSlot(h.db, uint(trainerID), uint(serviceID), date, start)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error checking availability", http.StatusInternalServerError)
		return
	}

	message := "The time slot is available"
	if !ok {
		message = reason
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"available": ok,
		"message":   message,
	})
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	memberID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var bookingRequest struct {
		TrainerID uint   `json:"trainer_id"`
		ServiceID uint   `json:"service_id"`
		Date      string `json:"date"`
		StartTime string `json:"start_time"`
		Notes     string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&bookingRequest); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse("2006-01-02", bookingRequest.Date)
	if err != nil {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	if _, err := utils.ParseHHMM(bookingRequest.StartTime); err != nil {
		http.Error(w, "Invalid time format. Use HH:mm", http.StatusBadRequest)
		return
	}
	if len(bookingRequest.Notes) > 500 {
		http.Error(w, "Notes must be at most 500 characters", http.StatusBadRequest)
		return
	}

	var trainer models.Trainer
	if err := h.db.First(&trainer, bookingRequest.TrainerID).Error; err != nil {
		http.Error(w, "Trainer not found", http.StatusNotFound)
		return
	}

	tx := h.db.Begin()

	// Re-run the slot check inside the transaction. Two concurrent bookings
	// for overlapping slots can still both pass; see DESIGN.md.
	ok, reason, err := CheckSlot(tx, bookingRequest.TrainerID, bookingRequest.ServiceID, date, bookingRequest.StartTime)
	if err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Service not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Error checking availability", http.StatusInternalServerError)
		return
	}
	if !ok {
		tx.Rollback()
		http.Error(w, reason, http.StatusConflict)
		return
	}

	appointment := models.Appointment{
		MemberID:        memberID,
		TrainerID:       bookingRequest.TrainerID,
		ServiceID:       bookingRequest.ServiceID,
		AppointmentDate: date,
		StartTime:       bookingRequest.StartTime,
		Status:          models.StatusPending,
		Notes:           bookingRequest.Notes,
	}

	if err := tx.Create(&appointment).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error creating appointment", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error completing booking", http.StatusInternalServerError)
		return
	}

	h.db.Preload("Trainer").Preload("Service").First(&appointment, appointment.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appointment)
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	memberID, err := utils.GetUserIDFromContext(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var appointments []models.Appointment
	if err := h.db.Preload("Trainer").Preload("Service").
		Where("member_id = ?", memberID).
		Order("appointment_date DESC, start_time DESC").
		Find(&appointments).Error; err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointments)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	var appointment models.Appointment
	if err := h.db.Preload("Member").Preload("Trainer").Preload("Service").
		First(&appointment, appointmentID).Error; err != nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	memberID, _ := utils.GetUserIDFromContext(r)
	role, _ := utils.GetRoleFromContext(r)
	if role != models.RoleAdmin && appointment.MemberID != memberID {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(appointment)
}

func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	pageSize := 100

	query := h.db.Model(&models.Appointment{}).Preload("Member").Preload("Trainer").Preload("Service")

	if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := r.URL.Query().Get("date"); date != "" {
		query = query.Where("appointment_date = ?", date)
	}

	var total int64
	query.Count(&total)

	var appointments []models.Appointment
	if err := query.Offset((page - 1) * pageSize).Limit(pageSize).
		Order("appointment_date DESC, start_time DESC").Find(&appointments).Error; err != nil {
		http.Error(w, "Error retrieving appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
		"total_pages":  (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

type cancelOutcome int

const (
	cancelOK cancelOutcome = iota
	cancelAlreadyCancelled
	cancelRejected
)

// decideCancel classifies a cancellation attempt by current status.
// Cancelled is handled before the transition guard: re-cancelling is an
// informational no-op, not a rejected transition.
func decideCancel(status string) cancelOutcome {
	switch {
	case status == models.StatusCancelled:
		return cancelAlreadyCancelled
	case models.CanTransition(status, models.StatusCancelled):
		return cancelOK
	default:
		return cancelRejected
	}
}

// CancelAppointment lets the owning member (or an admin) cancel. Cancelling
// an already-cancelled appointment is a no-op with an informational message.
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	memberID, _ := utils.GetUserIDFromContext(r)
	role, _ := utils.GetRoleFromContext(r)

	var appointment models.Appointment
	if err := h.db.First(&appointment, appointmentID).Error; err != nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	if role != models.RoleAdmin && appointment.MemberID != memberID {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	switch decideCancel(appointment.Status) {
	case cancelAlreadyCancelled:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Appointment is already cancelled",
		})
		return
	case cancelRejected:
		http.Error(w, fmt.Sprintf("Cannot cancel a %s appointment", appointment.Status), http.StatusConflict)
		return
	}

	appointment.Status = models.StatusCancelled
	if err := h.db.Save(&appointment).Error; err != nil {
		http.Error(w, "Error cancelling appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Appointment cancelled successfully",
	})
}

// UpdateStatus is the administrative confirm/cancel/complete action.
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid appointment ID", http.StatusBadRequest)
		return
	}

	var statusUpdate struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&statusUpdate); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	switch statusUpdate.Status {
	case models.StatusPending, models.StatusConfirmed, models.StatusCancelled, models.StatusCompleted:
	default:
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	var appointment models.Appointment
	if err := h.db.First(&appointment, appointmentID).Error; err != nil {
		http.Error(w, "Appointment not found", http.StatusNotFound)
		return
	}

	if appointment.Status == models.StatusCancelled && statusUpdate.Status == models.StatusCancelled {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Appointment is already cancelled",
		})
		return
	}

	if !models.CanTransition(appointment.Status, statusUpdate.Status) {
		http.Error(w, fmt.Sprintf("Cannot change status from %s to %s", appointment.Status, statusUpdate.Status), http.StatusConflict)
		return
	}

	appointment.Status = statusUpdate.Status
	if err := h.db.Save(&appointment).Error; err != nil {
		http.Error(w, "Error updating appointment", http.StatusInternalServerError)
		return
	}

	if appointment.Status == models.StatusConfirmed {
		go func(a models.Appointment) {
			if err := h.sendConfirmationEmail(a); err != nil {
				log.Printf("Error sending confirmation email for appointment %d: %v", a.ID, err)
			}
		}(appointment)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Appointment status updated successfully",
		"status":  appointment.Status,
	})
}

// sendConfirmationEmail notifies the member that an admin confirmed their
// appointment. Failures are logged, never surfaced to the API caller.
func (h *AppointmentHandler) sendConfirmationEmail(appointment models.Appointment) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	if smtpHost == "" {
		return nil
	}

	var member models.User
	if err := h.db.First(&member, appointment.MemberID).Error; err != nil {
		return err
	}
	var trainer models.Trainer
	if err := h.db.First(&trainer, appointment.TrainerID).Error; err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", member.Email)
	m.SetHeader("Subject", "Appointment Confirmed")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your appointment with %s on %s at %s has been confirmed.",
		trainer.Name, appointment.AppointmentDate.Format("2006-01-02"), appointment.StartTime))

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		return fmt.Errorf("invalid SMTP port: %v", err)
	}
	d := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return d.DialAndSend(m)
}
