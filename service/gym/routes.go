package gym

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"github.com/ekaya0/FitCenter-server/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type GymHandler struct {
	db *gorm.DB
}

func NewGymHandler(db *gorm.DB) *GymHandler {
	return &GymHandler{db: db}
}

func (h *GymHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/gyms", h.GetGyms).Methods("GET")

	admin := router.PathPrefix("/gyms").Subrouter()
	admin.Use(utils.AuthMiddleware, utils.AdminMiddleware)
	admin.HandleFunc("", h.CreateGym).Methods("POST")
	admin.HandleFunc("/{id:[0-9]+}", h.UpdateGym).Methods("PUT")
}

func (h *GymHandler) GetGyms(w http.ResponseWriter, r *http.Request) {
	var gyms []models.Gym
	if err := h.db.Find(&gyms).Error; err != nil {
		http.Error(w, "Error retrieving gyms", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gyms)
}

func (h *GymHandler) CreateGym(w http.ResponseWriter, r *http.Request) {
	var gym models.Gym
	if err := json.NewDecoder(r.Body).Decode(&gym); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if gym.Name == "" || gym.Location == "" {
		http.Error(w, "Name and location are required", http.StatusBadRequest)
		return
	}

	gym.ID = 0
	if err := h.db.Create(&gym).Error; err != nil {
		http.Error(w, "Error creating gym", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(gym)
}

func (h *GymHandler) UpdateGym(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	gymID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid gym ID", http.StatusBadRequest)
		return
	}

	var updateData models.Gym
	if err := json.NewDecoder(r.Body).Decode(&updateData); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var gym models.Gym
	if err := h.db.First(&gym, gymID).Error; err != nil {
		http.Error(w, "Gym not found", http.StatusNotFound)
		return
	}

	gym.Name = updateData.Name
	gym.Location = updateData.Location
	gym.WorkingHoursStart = updateData.WorkingHoursStart
	gym.WorkingHoursEnd = updateData.WorkingHoursEnd
	gym.Description = updateData.Description
	gym.ContactPhone = updateData.ContactPhone

	if err := h.db.Save(&gym).Error; err != nil {
		http.Error(w, "Error updating gym", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(gym)
}
