package dashboard

import (
	"encoding/json"
	"net/http"

	"github.com/ekaya0/FitCenter-server/cmd/models"
	"github.com/ekaya0/FitCenter-server/cmd/utils"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

type DashboardStats struct {
	TotalMembers        int64 `json:"total_members"`
	TotalTrainers       int64 `json:"total_trainers"`
	TotalServices       int64 `json:"total_services"`
	TotalAppointments   int64 `json:"total_appointments"`
	PendingAppointments int64 `json:"pending_appointments"`
}

func (h *DashboardHandler) RegisterRoutes(router *mux.Router) {
	dashboardRouter := router.PathPrefix("/dashboard").Subrouter()
	dashboardRouter.Use(utils.AuthMiddleware, utils.AdminMiddleware)
	dashboardRouter.HandleFunc("/stats", h.GetDashboardStats).Methods("GET")
}

func (h *DashboardHandler) GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	var stats DashboardStats

	h.db.Model(&models.User{}).Where("role = ?", models.RoleMember).Count(&stats.TotalMembers)
	h.db.Model(&models.Trainer{}).Count(&stats.TotalTrainers)
	h.db.Model(&models.Service{}).Where("is_active = ?", true).Count(&stats.TotalServices)
	h.db.Model(&models.Appointment{}).Count(&stats.TotalAppointments)
	h.db.Model(&models.Appointment{}).Where("status = ?", models.StatusPending).Count(&stats.PendingAppointments)

	var recent []models.Appointment
	if err := h.db.Preload("Member").Preload("Trainer").Preload("Service").
		Order("created_at DESC").Limit(10).Find(&recent).Error; err != nil {
		http.Error(w, "Error retrieving recent appointments", http.StatusInternalServerError)
		return
	}

	recentRows := make([]map[string]interface{}, 0, len(recent))
	for _, a := range recent {
		row := map[string]interface{}{
			"id":               a.ID,
			"appointment_date": a.AppointmentDate.Format("2006-01-02"),
			"appointment_time": a.StartTime,
			"status":           a.Status,
		}
		if a.Member != nil {
			row["member_name"] = a.Member.FullName
		}
		if a.Trainer != nil {
			row["trainer_name"] = a.Trainer.Name
		}
		if a.Service != nil {
			row["service_name"] = a.Service.Name
		}
		recentRows = append(recentRows, row)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"stats":               stats,
		"recent_appointments": recentRows,
	})
}
