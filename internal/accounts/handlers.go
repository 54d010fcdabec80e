package accounts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TaskHive/TH-Backend/internal/db"
	"github.com/TaskHive/TH-Backend/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var store = Store{}

func SignupCompanyHandler(w http.ResponseWriter, r *http.Request) {
	var company Company

	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if company.Email == "" || company.Password == "" || company.CompanyName == "" {
		http.Error(w, "Company name, email and password are required", http.StatusBadRequest)
		return
	}

	// Reject a duplicate email or a duplicate name, case-insensitively.
	nameKey := utils.NameKey(company.CompanyName)
	var existing Company
	err := db.DB.First(&existing, "email = ? OR name_key = ?", company.Email, nameKey).Error
	if err == nil {
		http.Error(w, "Company already exists", http.StatusConflict)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(company.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	company.ID = uuid.NewString()
	company.NameKey = nameKey
	company.HashedPassword = string(hashed)
	company.Password = ""
	company.AccountType = KindCompany

	if err := store.CreateCompany(&company); err != nil {
		http.Error(w, "Failed to create company", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"id":           company.ID,
		"company_name": company.CompanyName,
	})
}

func SignupCompanyUserHandler(w http.ResponseWriter, r *http.Request) {
	var user CompanyUser

	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if user.Email == "" || user.Password == "" || user.FirstName == "" || user.CompanyName == "" {
		http.Error(w, "Name, company, email and password are required", http.StatusBadRequest)
		return
	}

	var existing CompanyUser
	if err := db.DB.First(&existing, "email = ?", user.Email).Error; err == nil {
		http.Error(w, "User already exists", http.StatusConflict)
		return
	}

	// Employees can only sign up under a company that exists.
	company, err := store.FindCompanyByName(user.CompanyName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Company not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to look up company", http.StatusInternalServerError)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	user.ID = uuid.NewString()
	user.HashedPassword = string(hashed)
	user.Password = ""
	user.AccountType = KindUser
	user.CompanyID = company.ID
	user.CompanyName = company.CompanyName
	if user.Role == "" {
		user.Role = RoleGeneral
	}

	if err := store.CreateCompanyUser(&user); err != nil {
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"id":    user.ID,
		"email": user.Email,
	})
}

// CheckCompanyHandler answers the pre-login company lookup used by the
// per-company login page.
func CheckCompanyHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("companyName")
	if name == "" {
		http.Error(w, "Missing companyName parameter", http.StatusBadRequest)
		return
	}

	company, err := store.FindCompanyByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Company not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to look up company", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"exists":       true,
		"company_name": company.CompanyName,
	})
}

// DeleteAccountHandler removes the authenticated account. Any outstanding
// session artifact dies with the record: the next validation finds no
// account and reports unauthenticated.
func DeleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	kind, ok := utils.GetAccountTypeFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	account, err := store.FindByID(kind, id)
	if err != nil {
		http.Error(w, "Account not found", http.StatusNotFound)
		return
	}

	if err := store.Delete(account); err != nil {
		http.Error(w, "Failed to delete account", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Account deleted"})
}

// ListCompanyUsersHandler returns every employee of the authenticated
// company, passwords excluded by the model's json tags.
func ListCompanyUsersHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	users, err := store.UsersByCompany(id)
	if err != nil {
		http.Error(w, "Failed to fetch users", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"users": users})
}
