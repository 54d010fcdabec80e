package accounts

import "time"

// Account kinds. Every authenticated principal is exactly one of these.
const (
	KindCompany = "company"
	KindUser    = "user"
)

// Roles a CompanyUser can hold within a team.
const (
	RoleGeneral        = "General"
	RoleDeveloper      = "Developer"
	RoleProjectManager = "Project Manager"
	RoleQA             = "QA"
	RoleDesigner       = "Designer"
	RoleTeamLead       = "Team Lead"
	RoleScrumMaster    = "Scrum Master"
)

// Account is the uniform surface the session layer works against. Company
// and CompanyUser both implement it; kind-specific fields (role, owning
// company) are reached by narrowing to the concrete type.
type Account interface {
	AccountID() string
	AccountEmail() string
	PasswordHash() string
	DisplayName() string
	Kind() string

	// CurrentSessionToken returns the stored active-session token, or nil
	// when the account is signed out. Only the token stored here validates.
	CurrentSessionToken() *string

	// setActiveSession is unexported so the only implementations are the two
	// kinds in this package and the only writers are the Store session ops.
	setActiveSession(token *string, issuedAt *time.Time)
}

type Company struct {
	ID             string `gorm:"primaryKey" json:"id"`
	Email          string `gorm:"not null;unique" json:"email"`
	CompanyName    string `gorm:"not null" json:"company_name"`
	NameKey        string `gorm:"not null;unique" json:"-"`
	Address        string `gorm:"not null" json:"address"`
	PhoneNumber    string `gorm:"not null" json:"phone_number"`
	Website        string `json:"website"`
	Password       string `json:"password" gorm:"-"`
	HashedPassword string `json:"-"`
	AccountType    string `gorm:"default:'company'" json:"account_type"`

	ActiveSessionToken *string    `json:"-"`
	SessionIssuedAt    *time.Time `json:"-"`

	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
}

type CompanyUser struct {
	ID             string `gorm:"primaryKey" json:"id"`
	FirstName      string `gorm:"not null" json:"first_name"`
	LastName       string `gorm:"not null" json:"last_name"`
	Number         string `gorm:"not null" json:"number"`
	CompanyName    string `gorm:"not null" json:"company_name"`
	Email          string `gorm:"not null;unique" json:"email"`
	Password       string `json:"password" gorm:"-"`
	HashedPassword string `json:"-"`
	AccountType    string `gorm:"default:'user'" json:"account_type"`
	Team           *string `json:"team"`
	Role           string  `gorm:"default:'General'" json:"role"`
	CompanyID      string  `gorm:"not null" json:"company_id"`

	ActiveSessionToken *string    `json:"-"`
	SessionIssuedAt    *time.Time `json:"-"`

	ResetPasswordToken   *string    `json:"-"`
	ResetPasswordExpires *time.Time `json:"-"`
}

func (Company) TableName() string     { return "app_accounts.companies" }
func (CompanyUser) TableName() string { return "app_accounts.company_users" }

func (c *Company) AccountID() string                 { return c.ID }
func (c *Company) AccountEmail() string              { return c.Email }
func (c *Company) PasswordHash() string              { return c.HashedPassword }
func (c *Company) DisplayName() string               { return c.CompanyName }
func (c *Company) Kind() string                      { return KindCompany }
func (c *Company) CurrentSessionToken() *string      { return c.ActiveSessionToken }

func (c *Company) setActiveSession(token *string, issuedAt *time.Time) {
	c.ActiveSessionToken = token
	c.SessionIssuedAt = issuedAt
}

func (u *CompanyUser) AccountID() string            { return u.ID }
func (u *CompanyUser) AccountEmail() string         { return u.Email }
func (u *CompanyUser) PasswordHash() string         { return u.HashedPassword }
func (u *CompanyUser) DisplayName() string          { return u.FirstName + " " + u.LastName }
func (u *CompanyUser) Kind() string                 { return KindUser }
func (u *CompanyUser) CurrentSessionToken() *string { return u.ActiveSessionToken }

func (u *CompanyUser) setActiveSession(token *string, issuedAt *time.Time) {
	u.ActiveSessionToken = token
	u.SessionIssuedAt = issuedAt
}

// RoleOf returns the role claim for an account: the team role for a
// CompanyUser, empty for a Company.
func RoleOf(a Account) string {
	if u, ok := a.(*CompanyUser); ok {
		return u.Role
	}
	return ""
}
