package oauth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/TaskHive/TH-Backend/internal/db"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrNoCompanyMatch = errors.New("no company matches this sign-in")

// CompleteSignIn maps a provider-verified profile onto a CompanyUser,
// provisioning one on first sign-in. The owning company is resolved from
// the company-name hint (the login page the user came from), falling back
// to matching the email domain against company emails. With no company
// match the sign-in is rejected.
func CompleteSignIn(profile *Profile, companyHint string) (accounts.Account, error) {
	store := accounts.Store{}

	var existing accounts.CompanyUser
	err := db.DB.First(&existing, "email = ?", profile.Email).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	company, err := resolveCompany(store, profile.Email, companyHint)
	if err != nil {
		return nil, err
	}

	// Provisioned accounts get an unguessable password; credential login
	// stays possible only after a password reset.
	password, err := randomPassword()
	if err != nil {
		return nil, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	firstName, lastName := splitName(profile.Name)
	user := accounts.CompanyUser{
		ID:             uuid.NewString(),
		FirstName:      firstName,
		LastName:       lastName,
		Number:         "N/A",
		CompanyName:    company.CompanyName,
		Email:          profile.Email,
		HashedPassword: string(hashed),
		AccountType:    accounts.KindUser,
		Role:           accounts.RoleGeneral,
		CompanyID:      company.ID,
	}
	if err := store.CreateCompanyUser(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func resolveCompany(store accounts.Store, email, hint string) (*accounts.Company, error) {
	if hint != "" {
		company, err := store.FindCompanyByName(hint)
		if err == nil {
			return company, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return nil, ErrNoCompanyMatch
	}
	domain := email[at+1:]

	var company accounts.Company
	err := db.DB.First(&company, "email LIKE ?", "%@"+domain).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCompanyMatch
		}
		return nil, err
	}
	return &company, nil
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "-", "-"
	case 1:
		return parts[0], "-"
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

func randomPassword() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
