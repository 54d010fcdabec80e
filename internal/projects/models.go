package projects

import "time"

type Project struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Details   string    `gorm:"not null" json:"details"`
	Deadline  time.Time `gorm:"not null" json:"deadline"`
	CompanyID string    `gorm:"not null;index" json:"company_id"`
	// One project per team at a time.
	TeamID    string    `gorm:"not null;uniqueIndex" json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string { return "workspace.projects" }
