package aiplan

import (
	"encoding/json"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/ekaya0/FitCenter-server/cmd/utils"
	"github.com/gorilla/mux"
)

type PlanHandler struct {
	generator *Generator
}

func NewPlanHandler() *PlanHandler {
	return &PlanHandler{
		generator: NewGenerator(os.Getenv("GEMINI_API_KEY")),
	}
}

func (h *PlanHandler) RegisterRoutes(router *mux.Router) {
	ai := router.PathPrefix("/ai").Subrouter()
	ai.Use(utils.AuthMiddleware)
	ai.HandleFunc("/plan", h.GeneratePlan).Methods("POST")
}

type planRequest struct {
	Weight   float64 `json:"weight"`
	Height   float64 `json:"height"`
	Goal     string  `json:"goal"`
	Age      *int    `json:"age,omitempty"`
	BodyType string  `json:"body_type,omitempty"`
}

func (req *planRequest) validate() string {
	if req.Weight < 30 || req.Weight > 300 {
		return "Weight must be between 30 and 300 kg"
	}
	if req.Height < 100 || req.Height > 250 {
		return "Height must be between 100 and 250 cm"
	}
	if strings.TrimSpace(req.Goal) == "" {
		return "Goal is required"
	}
	if req.Age != nil && (*req.Age < 10 || *req.Age > 100) {
		return "Age must be between 10 and 100"
	}
	return ""
}

func (h *PlanHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if reason := req.validate(); reason != "" {
		http.Error(w, reason, http.StatusBadRequest)
		return
	}

	plan := h.generator.Generate(r.Context(), req.Weight, req.Height, req.Goal, req.Age, req.BodyType)
	bmi := req.Weight / ((req.Height / 100) * (req.Height / 100))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"bmi":  math.Round(bmi*100) / 100,
		"plan": plan,
	})
}
