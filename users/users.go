package users

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode"

	"github.com/jrsteele09/go-auth-console/internal/errors"
	"golang.org/x/crypto/bcrypt"
)

// TenantUser is an end user that belongs to one tenant.
type TenantUser struct {
	ID        string     `json:"id,omitempty"`
	TenantID  string     `json:"tenant_id,omitempty"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Password  string     `json:"password,omitempty"` // Only sent on create
	FirstName string     `json:"first_name,omitempty"`
	LastName  string     `json:"last_name,omitempty"`
	IsActive  bool       `json:"is_active"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// SystemAdmin is an operator account of the identity server itself.
type SystemAdmin struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// Profile is the caller's own account as returned by {base}/me.
type Profile struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	UserType  string  `json:"user_type"`
	IsAdmin   bool    `json:"is_admin"`
	TenantID  *string `json:"tenant_id,omitempty"`
}

// ProfileUpdate is the body of PUT {base}/profile. Empty fields are left unchanged.
type ProfileUpdate struct {
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

// PasswordReset is the result of a reset-password call.
type PasswordReset struct {
	TemporaryPassword string `json:"temporary_password,omitempty"`
	Message           string `json:"message,omitempty"`
}

// DisplayName prefers "First Last" and falls back to the username.
func (u *TenantUser) DisplayName() string {
	return displayName(u.FirstName, u.LastName, u.Username)
}

func (p *Profile) DisplayName() string {
	return displayName(p.FirstName, p.LastName, p.Username)
}

func displayName(first, last, username string) string {
	if full := strings.TrimSpace(first + " " + last); full != "" {
		return full
	}
	return username
}

// Validate checks the form fields before a create or update is sent. The password is only
// checked when present, since updates never carry one.
func (u *TenantUser) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return errors.Validationf("username is required")
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.Password != "" {
		if err := ValidatePasswordStrength(u.Password); err != nil {
			return errors.Validationf("%s", err.Error())
		}
	}
	return nil
}

// Validate checks a profile update before it is sent.
func (p *ProfileUpdate) Validate() error {
	if p.Email != "" {
		if err := ValidateEmail(p.Email); err != nil {
			return err
		}
	}
	if p.NewPassword != "" {
		if p.CurrentPassword == "" {
			return errors.Validationf("current password is required to set a new password")
		}
		if err := ValidatePasswordStrength(p.NewPassword); err != nil {
			return errors.Validationf("%s", err.Error())
		}
	}
	return nil
}

func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.Validationf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.Validationf("email %q is not valid", email)
	}
	return nil
}

// ValidatePasswordStrength checks if password meets security requirements:
// - At least 8 characters long
// - Contains uppercase and lowercase letters
// - Contains at least one number
func ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}

	var (
		hasUpper  bool
		hasLower  bool
		hasNumber bool
	)

	for _, char := range password {
		if unicode.IsUpper(char) {
			hasUpper = true
		} else if unicode.IsLower(char) {
			hasLower = true
		} else if unicode.IsDigit(char) {
			hasNumber = true
		}
	}

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
