package availability

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"github.com/ekaya0/FitCenter-server/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type AvailabilityHandler struct {
	db *gorm.DB
}

func NewAvailabilityHandler(db *gorm.DB) *AvailabilityHandler {
	return &AvailabilityHandler{db: db}
}

func (h *AvailabilityHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/trainers/{trainerId}/availability", h.GetAvailabilities).Methods("GET")

	admin := router.PathPrefix("/trainers/{trainerId}/availability").Subrouter()
	admin.Use(utils.AuthMiddleware, utils.AdminMiddleware)
	admin.HandleFunc("", h.CreateAvailability).Methods("POST")
	admin.HandleFunc("/{id}", h.UpdateAvailability).Methods("PUT")
	admin.HandleFunc("/{id}", h.DeleteAvailability).Methods("DELETE")
}

func (h *AvailabilityHandler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseUint(vars["trainerId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	var window models.TrainerAvailability
	if err := json.NewDecoder(r.Body).Decode(&window); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if reason := validateWindow(&window); reason != "" {
		http.Error(w, reason, http.StatusBadRequest)
		return
	}

	var trainer models.Trainer
	if err := h.db.First(&trainer, trainerID).Error; err != nil {
		http.Error(w, "Trainer not found", http.StatusNotFound)
		return
	}

	window.ID = 0
	window.TrainerID = uint(trainerID)

	if err := h.db.Create(&window).Error; err != nil {
		http.Error(w, "Error creating availability", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(window)
}

func (h *AvailabilityHandler) GetAvailabilities(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseUint(vars["trainerId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	query := h.db.Where("trainer_id = ?", trainerID)
	if day := r.URL.Query().Get("day_of_week"); day != "" {
		query = query.Where("day_of_week = ?", day)
	}
	if active := r.URL.Query().Get("is_active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var windows []models.TrainerAvailability
	if err := query.Order("day_of_week, start_time").Find(&windows).Error; err != nil {
		http.Error(w, "Error retrieving availabilities", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(windows)
}

// UpdateAvailability replaces a window's schedule fields; flipping is_active
// is how individual windows are deactivated without losing them.
func (h *AvailabilityHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseUint(vars["trainerId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}
	windowID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid availability ID", http.StatusBadRequest)
		return
	}

	var updateData models.TrainerAvailability
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if reason := validateWindow(&updateData); reason != "" {
		http.Error(w, reason, http.StatusBadRequest)
		return
	}

	var window models.TrainerAvailability
	if err := h.db.Where("id = ? AND trainer_id = ?", windowID, trainerID).First(&window).Error; err != nil {
		http.Error(w, "Availability not found", http.StatusNotFound)
		return
	}

	window.DayOfWeek = updateData.DayOfWeek
	window.StartTime = updateData.StartTime
	window.EndTime = updateData.EndTime
	window.IsActive = updateData.IsActive

	if err := h.db.Save(&window).Error; err != nil {
		http.Error(w, "Error updating availability", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(window)
}

func (h *AvailabilityHandler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseUint(vars["trainerId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}
	windowID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid availability ID", http.StatusBadRequest)
		return
	}

	result := h.db.Where("id = ? AND trainer_id = ?", windowID, trainerID).Delete(&models.TrainerAvailability{})
	if result.Error != nil {
		http.Error(w, "Error deleting availability", http.StatusInternalServerError)
		return
	}

	if result.RowsAffected == 0 {
		http.Error(w, "Availability not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Availability deleted successfully",
	})
}

func validateWindow(window *models.TrainerAvailability) string {
	if window.DayOfWeek < 0 || window.DayOfWeek > 6 {
		return "Day of week must be between 0 (Sunday) and 6 (Saturday)"
	}
	if _, err := utils.ParseHHMM(window.StartTime); err != nil {
		return "Invalid start time. Use HH:mm"
	}
	if _, err := utils.ParseHHMM(window.EndTime); err != nil {
		return "Invalid end time. Use HH:mm"
	}
	if window.StartTime >= window.EndTime {
		return "End time must be after start time"
	}
	return ""
}
