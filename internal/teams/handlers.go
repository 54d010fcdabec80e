package teams

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/TaskHive/TH-Backend/internal/db"
	"github.com/TaskHive/TH-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type createTeamRequest struct {
	Name      string   `json:"name"`
	Employees []string `json:"employees"`
}

// ListTeamsHandler returns the authenticated company's teams with member
// details, newest first.
func ListTeamsHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var teams []Team
	err := db.DB.Preload("Members").
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		http.Error(w, "Failed to fetch teams", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"teams": teams})
}

// CreateTeamHandler creates a team from a list of employee ids. Every
// employee must belong to the company and not already be on a team. Team
// creation and the members' team assignment commit or roll back together.
func CreateTeamHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Team name is required", http.StatusBadRequest)
		return
	}
	if len(req.Employees) == 0 {
		http.Error(w, "At least one employee is required", http.StatusBadRequest)
		return
	}

	var count int64
	err := db.DB.Model(&accounts.CompanyUser{}).
		Where("id IN ? AND company_id = ?", req.Employees, companyID).
		Count(&count).Error
	if err != nil {
		http.Error(w, "Failed to verify employees", http.StatusInternalServerError)
		return
	}
	if int(count) != len(req.Employees) {
		http.Error(w, "One or more employees do not belong to this company", http.StatusBadRequest)
		return
	}

	var teamed int64
	if err := db.DB.Model(&TeamMember{}).Where("user_id IN ?", req.Employees).Count(&teamed).Error; err != nil {
		http.Error(w, "Failed to verify employees", http.StatusInternalServerError)
		return
	}
	if teamed > 0 {
		http.Error(w, "One or more employees are already in a team", http.StatusBadRequest)
		return
	}

	team := Team{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CompanyID: companyID,
	}
	for _, userID := range req.Employees {
		team.Members = append(team.Members, TeamMember{TeamID: team.ID, UserID: userID})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		return tx.Model(&accounts.CompanyUser{}).
			Where("id IN ?", req.Employees).
			Update("team", team.Name).Error
	})
	if err != nil {
		http.Error(w, "Failed to create team", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"team": team})
}

// DeleteTeamHandler removes a company's team and detaches its members.
func DeleteTeamHandler(w http.ResponseWriter, r *http.Request) {
	companyID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	teamID := chi.URLParam(r, "id")

	var team Team
	if err := db.DB.Preload("Members").First(&team, "id = ? AND company_id = ?", teamID, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Team not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch team", http.StatusInternalServerError)
		return
	}

	memberIDs := make([]string, 0, len(team.Members))
	for _, m := range team.Members {
		memberIDs = append(memberIDs, m.UserID)
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", team.ID).Delete(&TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&team).Error; err != nil {
			return err
		}
		if len(memberIDs) == 0 {
			return nil
		}
		return tx.Model(&accounts.CompanyUser{}).
			Where("id IN ?", memberIDs).
			Update("team", gorm.Expr("NULL")).Error
	})
	if err != nil {
		http.Error(w, "Failed to delete team", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Team deleted"})
}

// MyTeamHandler returns the manager's own team and its members. Reached
// only through the manager-only route group.
func MyTeamHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var membership TeamMember
	if err := db.DB.First(&membership, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Team not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch team", http.StatusInternalServerError)
		return
	}

	var team Team
	if err := db.DB.Preload("Members").First(&team, "id = ?", membership.TeamID).Error; err != nil {
		http.Error(w, "Failed to fetch team", http.StatusInternalServerError)
		return
	}

	var members []accounts.CompanyUser
	memberIDs := make([]string, 0, len(team.Members))
	for _, m := range team.Members {
		memberIDs = append(memberIDs, m.UserID)
	}
	if err := db.DB.Where("id IN ?", memberIDs).Find(&members).Error; err != nil {
		http.Error(w, "Failed to fetch team members", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"team_id":      team.ID,
		"team_name":    team.Name,
		"team_members": members,
	})
}
