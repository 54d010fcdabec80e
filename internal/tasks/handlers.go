package tasks

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/TaskHive/TH-Backend/internal/db"
	"github.com/TaskHive/TH-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	AssignedTo  string     `json:"assigned_to"`
	TeamID      string     `json:"team_id"`
	DueDate     *time.Time `json:"due_date"`
}

// CreateTaskHandler lets a manager assign a task to a team member. Reached
// only through the manager-only route group.
func CreateTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}
	if req.Title == "" || req.Description == "" || req.Priority == "" || req.AssignedTo == "" || req.TeamID == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}
	if !ValidPriority(req.Priority) {
		http.Error(w, "Invalid priority", http.StatusBadRequest)
		return
	}

	task := Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		TeamID:      req.TeamID,
		Status:      StatusPending,
		CreatedBy:   userID,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Comments:    []string{},
	}
	if err := db.DB.Create(&task).Error; err != nil {
		http.Error(w, "Failed to create task", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"task": task})
}

// ListTasksHandler returns tasks the manager created, filtered by team,
// assignee, and priority, soonest due date first.
func ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	teamID := r.URL.Query().Get("teamId")
	memberID := r.URL.Query().Get("memberId")
	priority := r.URL.Query().Get("priority")
	if teamID == "" || memberID == "" || priority == "" {
		http.Error(w, "Missing required query parameters", http.StatusBadRequest)
		return
	}

	var tasks []Task
	err := db.DB.Where("team_id = ? AND assigned_to = ? AND priority = ? AND created_by = ?",
		teamID, memberID, priority, userID).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		http.Error(w, "Failed to fetch tasks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"tasks": tasks})
}

// MyTasksHandler returns the tasks assigned to the current employee.
func MyTasksHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var tasks []Task
	err := db.DB.Where("assigned_to = ?", userID).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		http.Error(w, "Failed to fetch tasks", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

type updateTaskRequest struct {
	Status string `json:"status"`
}

// UpdateMyTaskHandler lets an employee move their own task through the
// status flow. The assignee filter in the update keeps anyone from touching
// tasks that are not theirs.
func UpdateMyTaskHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	taskID := chi.URLParam(r, "id")

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}
	if !ValidStatus(req.Status) {
		http.Error(w, "Invalid status", http.StatusBadRequest)
		return
	}

	var task Task
	if err := db.DB.First(&task, "id = ? AND assigned_to = ?", taskID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Task not found or not authorized", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch task", http.StatusInternalServerError)
		return
	}

	if err := db.DB.Model(&task).Update("status", req.Status).Error; err != nil {
		http.Error(w, "Failed to update task status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// DashboardStatsHandler aggregates task counts for the current employee.
func DashboardStatsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var created, assigned, completed, pending int64
	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&created, db.DB.Model(&Task{}).Where("created_by = ?", userID)},
		{&assigned, db.DB.Model(&Task{}).Where("assigned_to = ?", userID)},
		{&completed, db.DB.Model(&Task{}).Where("assigned_to = ? AND status = ?", userID, StatusDone)},
		{&pending, db.DB.Model(&Task{}).Where("assigned_to = ? AND status <> ?", userID, StatusDone)},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			http.Error(w, "Failed to fetch stats", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int64{
		"created_count":   created,
		"assigned_count":  assigned,
		"completed_count": completed,
		"pending_count":   pending,
	})
}
