package accounts

import (
	"errors"
	"time"

	"github.com/TaskHive/TH-Backend/internal/db"
	"github.com/TaskHive/TH-Backend/internal/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUnknownKind = errors.New("unknown account kind")

// Store is the gorm-backed lookup and session-mutation surface for both
// account kinds. The active-session pair is only ever written through
// IssueSession and ClearSession, always as a full overwrite of both fields.
type Store struct{}

func (Store) FindByEmail(kind, email string) (Account, error) {
	switch kind {
	case KindCompany:
		var company Company
		if err := db.DB.First(&company, "email = ?", email).Error; err != nil {
			return nil, err
		}
		return &company, nil
	case KindUser:
		var user CompanyUser
		if err := db.DB.First(&user, "email = ?", email).Error; err != nil {
			return nil, err
		}
		return &user, nil
	default:
		return nil, ErrUnknownKind
	}
}

func (Store) FindByID(kind, id string) (Account, error) {
	switch kind {
	case KindCompany:
		var company Company
		if err := db.DB.First(&company, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &company, nil
	case KindUser:
		var user CompanyUser
		if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &user, nil
	default:
		return nil, ErrUnknownKind
	}
}

func (Store) FindCompanyByName(name string) (*Company, error) {
	var company Company
	if err := db.DB.First(&company, "name_key = ?", utils.NameKey(name)).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// IssueSession overwrites the account's active-session pair with a fresh
// token. Whatever token was stored before stops validating the moment the
// write lands; concurrent logins race at the database and the last write
// wins. On a write failure no token is issued.
func (Store) IssueSession(a Account) (string, error) {
	token := uuid.NewString()
	now := time.Now()

	err := db.DB.Model(a).Updates(map[string]interface{}{
		"active_session_token": token,
		"session_issued_at":    now,
	}).Error
	if err != nil {
		return "", err
	}

	a.setActiveSession(&token, &now)
	return token, nil
}

// ClearSession nulls the active-session pair, invalidating every artifact
// issued for this account.
func (Store) ClearSession(a Account) error {
	err := db.DB.Model(a).Updates(map[string]interface{}{
		"active_session_token": gorm.Expr("NULL"),
		"session_issued_at":    gorm.Expr("NULL"),
	}).Error
	if err != nil {
		return err
	}

	a.setActiveSession(nil, nil)
	return nil
}

func (Store) CreateCompany(company *Company) error {
	return db.DB.Create(company).Error
}

func (Store) CreateCompanyUser(user *CompanyUser) error {
	return db.DB.Create(user).Error
}

func (Store) UsersByCompany(companyID string) ([]CompanyUser, error) {
	var users []CompanyUser
	if err := db.DB.Where("company_id = ?", companyID).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (Store) Delete(a Account) error {
	return db.DB.Delete(a).Error
}
