package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"github.com/ekaya0/FitCenter-server/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// CatalogHandler manages the service offerings members can book.
type CatalogHandler struct {
	db *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/services", h.GetServices).Methods("GET")
	router.HandleFunc("/services/{id:[0-9]+}", h.GetService).Methods("GET")

	admin := router.PathPrefix("/services").Subrouter()
	admin.Use(utils.AuthMiddleware, utils.AdminMiddleware)
	admin.HandleFunc("", h.CreateService).Methods("POST")
	admin.HandleFunc("/{id:[0-9]+}", h.UpdateService).Methods("PUT")
	admin.HandleFunc("/{id:[0-9]+}", h.DeleteService).Methods("DELETE")
}

type serviceRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	IsActive    *bool   `json:"is_active"`
}

func (req *serviceRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" || len(req.Name) > 100 {
		return "Name is required and must be at most 100 characters"
	}
	if req.Duration < 15 || req.Duration > 180 {
		return "Duration must be between 15 and 180 minutes"
	}
	if req.Price < 0.01 || req.Price > 10000 {
		return "Price must be between 0.01 and 10000"
	}
	if len(req.Description) > 500 {
		return "Description must be at most 500 characters"
	}
	return ""
}

func (h *CatalogHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if reason := req.validate(); reason != "" {
		http.Error(w, reason, http.StatusBadRequest)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		IsActive:    active,
	}

	if err := h.db.Create(&service).Error; err != nil {
		http.Error(w, "Error creating service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(service)
}

// GetServices lists services; by default only active ones, matching what the
// booking form shows. Pass all=true for the admin view.
func (h *CatalogHandler) GetServices(w http.ResponseWriter, r *http.Request) {
	query := h.db.Model(&models.Service{})
	if r.URL.Query().Get("all") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var services []models.Service
	if err := query.Order("name").Find(&services).Error; err != nil {
		http.Error(w, "Error retrieving services", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(services)
}

func (h *CatalogHandler) GetService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}

	var service models.Service
	if err := h.db.First(&service, serviceID).Error; err != nil {
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(service)
}

func (h *CatalogHandler) UpdateService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}

	var req serviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if reason := req.validate(); reason != "" {
		http.Error(w, reason, http.StatusBadRequest)
		return
	}

	var service models.Service
	if err := h.db.First(&service, serviceID).Error; err != nil {
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Duration = req.Duration
	service.Price = req.Price
	if req.IsActive != nil {
		service.IsActive = *req.IsActive
	}

	if err := h.db.Save(&service).Error; err != nil {
		http.Error(w, "Error updating service", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(service)
}

// DeleteService deactivates rather than removes: appointments keep deriving
// their duration from the service row.
func (h *CatalogHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, "Invalid service ID", http.StatusBadRequest)
		return
	}

	result := h.db.Model(&models.Service{}).Where("id = ?", serviceID).Update("is_active", false)
	if result.Error != nil {
		http.Error(w, "Error deactivating service", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Service not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Service deactivated successfully",
	})
}
