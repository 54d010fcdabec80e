package passwordreset

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/TaskHive/TH-Backend/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var mailer Mailer = logMailer{}

const tokenTTL = time.Hour

const neutralMessage = "If an account with that email exists, a password reset link has been sent."

type forgotRequest struct {
	Email       string `json:"email"`
	AccountType string `json:"account_type"`
}

// ForgotPasswordHandler stores a reset token and hands it to the mailer.
// The response is identical whether or not the account exists.
func ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req forgotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}
	if req.AccountType == "" {
		req.AccountType = accounts.KindCompany
	}

	account, err := accounts.Store{}.FindByEmail(req.AccountType, req.Email)
	if err == nil {
		token, genErr := randomToken()
		if genErr == nil {
			expires := time.Now().Add(tokenTTL)
			updErr := db.DB.Model(account).Updates(map[string]interface{}{
				"reset_password_token":   token,
				"reset_password_expires": expires,
			}).Error
			if updErr == nil {
				if mailErr := mailer.SendPasswordReset(account.AccountEmail(), token); mailErr != nil {
					log.Printf("send reset mail: %v", mailErr)
				}
			} else {
				log.Printf("store reset token: %v", updErr)
			}
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("forgot-password lookup: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": neutralMessage})
}

type resetRequest struct {
	Token       string `json:"token"`
	Password    string `json:"password"`
	AccountType string `json:"account_type"`
}

func ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}
	if req.Token == "" || req.Password == "" {
		http.Error(w, "Token and password are required", http.StatusBadRequest)
		return
	}
	if req.AccountType == "" {
		req.AccountType = accounts.KindCompany
	}

	account, err := findByResetToken(req.AccountType, req.Token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.Error(w, "Invalid or expired token", http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to reset password", http.StatusInternalServerError)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}

	err = db.DB.Model(account).Updates(map[string]interface{}{
		"hashed_password":        string(hashed),
		"reset_password_token":   gorm.Expr("NULL"),
		"reset_password_expires": gorm.Expr("NULL"),
	}).Error
	if err != nil {
		http.Error(w, "Failed to reset password", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Password reset successful"})
}

func findByResetToken(kind, token string) (accounts.Account, error) {
	now := time.Now()
	switch kind {
	case accounts.KindCompany:
		var company accounts.Company
		err := db.DB.First(&company, "reset_password_token = ? AND reset_password_expires > ?", token, now).Error
		if err != nil {
			return nil, err
		}
		return &company, nil
	case accounts.KindUser:
		var user accounts.CompanyUser
		err := db.DB.First(&user, "reset_password_token = ? AND reset_password_expires > ?", token, now).Error
		if err != nil {
			return nil, err
		}
		return &user, nil
	default:
		return nil, accounts.ErrUnknownKind
	}
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
