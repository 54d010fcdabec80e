package tasks

import (
	"time"

	"github.com/lib/pq"
)

const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusDone       = "done"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type Task struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	AssignedTo  string         `gorm:"not null;index" json:"assigned_to"`
	TeamID      string         `gorm:"not null;index" json:"team_id"`
	Status      string         `gorm:"not null;default:'pending'" json:"status"`
	CreatedBy   string         `gorm:"not null;index" json:"created_by"`
	DueDate     *time.Time     `json:"due_date"`
	Priority    string         `gorm:"not null;default:'Medium'" json:"priority"`
	Comments    pq.StringArray `gorm:"type:text[]" json:"comments"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func (Task) TableName() string { return "workspace.tasks" }

func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusDone
}

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
