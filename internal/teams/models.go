package teams

import "time"

type Team struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	CompanyID string    `gorm:"not null;index" json:"company_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}

// TeamMember links an employee to a team. The unique index on UserID is the
// one-team-per-employee rule.
type TeamMember struct {
	TeamID string `gorm:"primaryKey" json:"team_id"`
	UserID string `gorm:"primaryKey;uniqueIndex" json:"user_id"`
}

func (Team) TableName() string       { return "workspace.teams" }
func (TeamMember) TableName() string { return "workspace.team_members" }
