package seeds

import (
	"fmt"
	"log"
	"os"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/TaskHive/TH-Backend/internal/db"
	"github.com/TaskHive/TH-Backend/internal/utils"
	"github.com/goccy/go-yaml"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixtures struct {
	Companies []companyFixture `yaml:"companies"`
	Users     []userFixture    `yaml:"users"`
}

type companyFixture struct {
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	CompanyName string `yaml:"company_name"`
	Address     string `yaml:"address"`
	PhoneNumber string `yaml:"phone_number"`
	Website     string `yaml:"website"`
}

type userFixture struct {
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	Number      string `yaml:"number"`
	CompanyName string `yaml:"company_name"`
	Role        string `yaml:"role"`
}

// SeedAll loads the YAML fixture file and inserts any company or user not
// already present. Existing records are skipped, so reruns are safe.
func SeedAll(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}

	var f fixtures
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := seedCompanies(f.Companies); err != nil {
		return err
	}
	return seedUsers(f.Users)
}

func seedCompanies(companies []companyFixture) error {
	store := accounts.Store{}
	created := 0

	for _, c := range companies {
		var existing accounts.Company
		err := db.DB.First(&existing, "email = ?", c.Email).Error
		if err == nil {
			log.Printf("⚠️ Company exists, skipping: %s", c.CompanyName)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on company %s: %w", c.CompanyName, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		company := accounts.Company{
			ID:             uuid.NewString(),
			Email:          c.Email,
			CompanyName:    c.CompanyName,
			NameKey:        utils.NameKey(c.CompanyName),
			Address:        c.Address,
			PhoneNumber:    c.PhoneNumber,
			Website:        c.Website,
			HashedPassword: string(hashed),
			AccountType:    accounts.KindCompany,
		}
		if err := store.CreateCompany(&company); err != nil {
			return fmt.Errorf("failed to create company %s: %w", c.CompanyName, err)
		}
		created++
	}

	log.Printf("✅ Seeded %d companies", created)
	return nil
}

func seedUsers(users []userFixture) error {
	store := accounts.Store{}
	created := 0

	for _, u := range users {
		var existing accounts.CompanyUser
		err := db.DB.First(&existing, "email = ?", u.Email).Error
		if err == nil {
			log.Printf("⚠️ User exists, skipping: %s", u.Email)
			continue
		} else if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("DB error on user %s: %w", u.Email, err)
		}

		company, err := store.FindCompanyByName(u.CompanyName)
		if err != nil {
			return fmt.Errorf("company %s for user %s: %w", u.CompanyName, u.Email, err)
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		role := u.Role
		if role == "" {
			role = accounts.RoleGeneral
		}

		user := accounts.CompanyUser{
			ID:             uuid.NewString(),
			FirstName:      u.FirstName,
			LastName:       u.LastName,
			Number:         u.Number,
			CompanyName:    company.CompanyName,
			Email:          u.Email,
			HashedPassword: string(hashed),
			AccountType:    accounts.KindUser,
			Role:           role,
			CompanyID:      company.ID,
		}
		if err := store.CreateCompanyUser(&user); err != nil {
			return fmt.Errorf("failed to create user %s: %w", u.Email, err)
		}
		created++
	}

	log.Printf("✅ Seeded %d users", created)
	return nil
}
