package api

import (
	"log"
	"net/http"
	"os"

	"github.com/ekaya0/FitCenter-server/cmd/utils"
	"github.com/ekaya0/FitCenter-server/service/aiplan"
	"github.com/ekaya0/FitCenter-server/service/appointment"
	"github.com/ekaya0/FitCenter-server/service/availability"
	"github.com/ekaya0/FitCenter-server/service/catalog"
	"github.com/ekaya0/FitCenter-server/service/dashboard"
	"github.com/ekaya0/FitCenter-server/service/gym"
	"github.com/ekaya0/FitCenter-server/service/reports"
	"github.com/ekaya0/FitCenter-server/service/trainer"
	"github.com/ekaya0/FitCenter-server/service/user"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
}

func NewApiServer(address string, db *gorm.DB) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	userHandler := user.NewHandler(s.db)
	userHandler.RegisterRoutes(subrouter)

	trainerHandler := trainer.NewTrainerHandler(s.db)
	trainerHandler.RegisterRoutes(subrouter)

	availabilityHandler := availability.NewAvailabilityHandler(s.db)
	availabilityHandler.RegisterRoutes(subrouter)

	catalogHandler := catalog.NewCatalogHandler(s.db)
	catalogHandler.RegisterRoutes(subrouter)

	gymHandler := gym.NewGymHandler(s.db)
	gymHandler.RegisterRoutes(subrouter)

	appointmentHandler := appointment.NewAppointmentHandler(s.db)
	appointmentHandler.RegisterRoutes(subrouter)

	reportsHandler := reports.NewReportsHandler(s.db)
	reportsHandler.RegisterRoutes(subrouter)

	dashboardHandler := dashboard.NewDashboardHandler(s.db)
	dashboardHandler.RegisterRoutes(subrouter)

	planHandler := aiplan.NewPlanHandler()
	planHandler.RegisterRoutes(subrouter)

	router.PathPrefix("/images/").Handler(
		http.StripPrefix("/images/", http.FileServer(http.Dir(utils.ImagePath))))

	allowedOrigins := handlers.AllowedOrigins([]string{"*"})
	allowedMethods := handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	allowedHeaders := handlers.AllowedHeaders([]string{"Content-Type", "Authorization"})

	handler := handlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)(router)
	handler = handlers.LoggingHandler(os.Stdout, handler)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, handler)
}
