package projects

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/TaskHive/TH-Backend/internal/db"
	"github.com/TaskHive/TH-Backend/internal/teams"
	"github.com/TaskHive/TH-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type createProjectRequest struct {
	Name     string    `json:"name"`
	Details  string    `json:"details"`
	Deadline time.Time `json:"deadline"`
	TeamID   string    `json:"team_id"`
}

func ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var projects []Project
	err := db.DB.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		http.Error(w, "Failed to fetch projects", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"projects": projects})
}

// CreateProjectHandler assigns a project to one of the company's teams. A
// team carries at most one project; the unique index on team_id backs the
// same rule the handler checks first for a friendlier message.
func CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Details == "" || req.Deadline.IsZero() || req.TeamID == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	var team teams.Team
	if err := db.DB.First(&team, "id = ? AND company_id = ?", req.TeamID, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Team not found or does not belong to this company", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to verify team", http.StatusInternalServerError)
		return
	}

	var existing Project
	if err := db.DB.First(&existing, "team_id = ?", req.TeamID).Error; err == nil {
		http.Error(w, "This team is already assigned to another project", http.StatusBadRequest)
		return
	}

	project := Project{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Details:   req.Details,
		Deadline:  req.Deadline,
		CompanyID: companyID,
		TeamID:    req.TeamID,
	}
	if err := db.DB.Create(&project).Error; err != nil {
		http.Error(w, "Failed to create project", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"project": project})
}

func DeleteProjectHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	projectID := chi.URLParam(r, "id")

	result := db.DB.Where("id = ? AND company_id = ?", projectID, companyID).Delete(&Project{})
	if result.Error != nil {
		http.Error(w, "Failed to delete project", http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, "Project not found", http.StatusNotFound)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Project deleted"})
}
