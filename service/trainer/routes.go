package trainer

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"github.com/ekaya0/FitCenter-server/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type TrainerHandler struct {
	db *gorm.DB
}

func NewTrainerHandler(db *gorm.DB) *TrainerHandler {
	return &TrainerHandler{db: db}
}

func (h *TrainerHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/trainers", h.GetTrainers).Methods("GET")
	router.HandleFunc("/trainers/{id:[0-9]+}", h.GetTrainer).Methods("GET")

	admin := router.PathPrefix("/trainers").Subrouter()
	admin.Use(utils.AuthMiddleware, utils.AdminMiddleware)
	admin.HandleFunc("", h.CreateTrainer).Methods("POST")
	admin.HandleFunc("/{id:[0-9]+}", h.UpdateTrainer).Methods("PUT")
	admin.HandleFunc("/{id:[0-9]+}", h.DeleteTrainer).Methods("DELETE")
	admin.HandleFunc("/{id:[0-9]+}/services", h.AssignService).Methods("POST")
	admin.HandleFunc("/{id:[0-9]+}/services/{serviceId:[0-9]+}", h.UnassignService).Methods("DELETE")
	admin.HandleFunc("/{id:[0-9]+}/photo", h.UploadPhoto).Methods("POST")
}

type trainerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Biography   string `json:"biography"`
	ImageURL    string `json:"image_url"`
	IsAvailable *bool  `json:"is_available"`
	ServiceIDs  []uint `json:"service_ids"`
}

func (req *trainerRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" || len(req.Name) > 100 {
		return "Name is required and must be at most 100 characters"
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return "A valid email is required"
	}
	if len(req.Biography) > 1000 {
		return "Biography must be at most 1000 characters"
	}
	return ""
}

func (h *TrainerHandler) CreateTrainer(w http.ResponseWriter, r *http.Request) {
	var req trainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if reason := req.validate(); reason != "" {
		http.Error(w, reason, http.StatusBadRequest)
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	tx := h.db.Begin()

	trainer := models.Trainer{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Biography:   req.Biography,
		ImageURL:    req.ImageURL,
		IsAvailable: available,
	}

	if err := tx.Create(&trainer).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error creating trainer", http.StatusInternalServerError)
		return
	}

	for _, serviceID := range req.ServiceIDs {
		ts := models.TrainerService{
			TrainerID:    trainer.ID,
			ServiceID:    serviceID,
			AssignedDate: time.Now(),
		}
		if err := tx.Create(&ts).Error; err != nil {
			tx.Rollback()
			http.Error(w, "Error assigning services", http.StatusInternalServerError)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error completing trainer creation", http.StatusInternalServerError)
		return
	}

	h.db.Preload("TrainerServices.Service").First(&trainer, trainer.ID)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(trainer)
}

func (h *TrainerHandler) GetTrainers(w http.ResponseWriter, r *http.Request) {
	query := h.db.Model(&models.Trainer{}).Preload("TrainerServices.Service")

	if available := r.URL.Query().Get("available"); available != "" {
		query = query.Where("is_available = ?", available == "true")
	}

	var trainers []models.Trainer
	if err := query.Order("name").Find(&trainers).Error; err != nil {
		http.Error(w, "Error retrieving trainers", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trainers)
}

func (h *TrainerHandler) GetTrainer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	var trainer models.Trainer
	if err := h.db.Preload("TrainerServices.Service").Preload("Availabilities").
		First(&trainer, trainerID).Error; err != nil {
		http.Error(w, "Trainer not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trainer)
}

func (h *TrainerHandler) UpdateTrainer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	var req trainerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if reason := req.validate(); reason != "" {
		http.Error(w, reason, http.StatusBadRequest)
		return
	}

	var trainer models.Trainer
	if err := h.db.First(&trainer, trainerID).Error; err != nil {
		http.Error(w, "Trainer not found", http.StatusNotFound)
		return
	}

	trainer.Name = req.Name
	trainer.Email = req.Email
	trainer.Phone = req.Phone
	trainer.Biography = req.Biography
	trainer.ImageURL = req.ImageURL
	if req.IsAvailable != nil {
		trainer.IsAvailable = *req.IsAvailable
	}

	if err := h.db.Save(&trainer).Error; err != nil {
		http.Error(w, "Error updating trainer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(trainer)
}

// DeleteTrainer removes a trainer together with their service links and
// availability windows. Trainers with appointments on record cannot be
// deleted; the appointment history must stay intact.
func (h *TrainerHandler) DeleteTrainer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	var trainer models.Trainer
	if err := h.db.First(&trainer, trainerID).Error; err != nil {
		http.Error(w, "Trainer not found", http.StatusNotFound)
		return
	}

	var appointmentCount int64
	h.db.Model(&models.Appointment{}).Where("trainer_id = ?", trainerID).Count(&appointmentCount)
	if appointmentCount > 0 {
		http.Error(w, "Cannot delete a trainer with existing appointments", http.StatusConflict)
		return
	}

	tx := h.db.Begin()

	if err := tx.Where("trainer_id = ?", trainerID).Delete(&models.TrainerService{}).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error deleting trainer services", http.StatusInternalServerError)
		return
	}
	if err := tx.Where("trainer_id = ?", trainerID).Delete(&models.TrainerAvailability{}).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error deleting trainer availability", http.StatusInternalServerError)
		return
	}
	if err := tx.Unscoped().Delete(&trainer).Error; err != nil {
		tx.Rollback()
		http.Error(w, "Error deleting trainer", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit().Error; err != nil {
		http.Error(w, "Error completing deletion", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Trainer deleted successfully",
	})
}

// UploadPhoto replaces the trainer's profile photo. The previous file is
// removed from disk once the new URL is persisted.
func (h *TrainerHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	var trainer models.Trainer
	if err := h.db.First(&trainer, trainerID).Error; err != nil {
		http.Error(w, "Trainer not found", http.StatusNotFound)
		return
	}

	if err := r.ParseMultipartForm(utils.MaxImageSize); err != nil {
		http.Error(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, "Photo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	imageURL, err := utils.SaveImage(file, header)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	oldURL := trainer.ImageURL
	trainer.ImageURL = imageURL
	if err := h.db.Save(&trainer).Error; err != nil {
		utils.DeleteImage(imageURL)
		http.Error(w, "Error updating trainer photo", http.StatusInternalServerError)
		return
	}
	if oldURL != "" {
		utils.DeleteImage(oldURL)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"image_url": imageURL,
	})
}

func (h *TrainerHandler) AssignService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}

	var req struct {
		ServiceID uint `json:"service_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var trainer models.Trainer
	if err := h.db.First(&trainer, trainerID).Error; err != nil {
		http.Error(w, "Trainer not found", http.StatusNotFound)
		return
	}
	var service models.Service
	if err := h.db.First(&service, req.ServiceID).Error; err != nil {
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}

	var existing models.TrainerService
	err = h.db.Where("trainer_id = ? AND service_id = ?", trainerID, req.ServiceID).First(&existing).Error
	if err == nil {
		http.Error(w, "Service already assigned to trainer", http.StatusConflict)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	ts := models.TrainerService{
		TrainerID:    uint(trainerID),
		ServiceID:    req.ServiceID,
		AssignedDate: time.Now(),
	}
	if err := h.db.Create(&ts).Error; err != nil {
		http.Error(w, "Error assigning service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ts)
}

func (h *TrainerHandler) UnassignService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid trainer ID", http.StatusBadRequest)
		return
	}
	serviceID, err := strconv.ParseUint(vars["serviceId"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}

	result := h.db.Where("trainer_id = ? AND service_id = ?", trainerID, serviceID).
		Delete(&models.TrainerService{})
	if result.Error != nil {
		http.Error(w, "Error removing service assignment", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Service assignment not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Service assignment removed successfully",
	})
}
