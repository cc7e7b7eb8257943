package models

import (
	"fmt"
	"strings"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID       ID     `json:"id"`
	Name     string `json:"name"`
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	GoogleID string `json:"google_id,omitempty"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Session is the one persisted auth blob per browser. A zero Token means
// anonymous.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s Session) Anonymous() bool { return s.Token == "" }

// CanCreateRecipe mirrors the recipe list view: plain users and admins only.
func (s Session) CanCreateRecipe() bool {
	return !s.Anonymous() && (s.User.Role == RoleUser || s.User.Role == RoleAdmin)
}

// CanUseAI requires any signed in user.
func (s Session) CanUseAI() bool { return !s.Anonymous() }

// CanEditRecipe: the owner always, admins unless the recipe came from the AI.
func (s Session) CanEditRecipe(r Recipe) bool {
	if s.Anonymous() {
		return false
	}
	if r.OwnedBy(s.User.ID) {
		return true
	}
	return s.User.IsAdmin() && !r.IsAIGenerated()
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" || c.Password == "" {
		return fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	return nil
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (r Registration) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.UserName) == "" || r.Password == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	return nil
}

type GoogleCredential struct {
	Token string `json:"token"`
}

type AuthResponse struct {
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message,omitempty"`
}

type UserUpdate struct {
	Name            string `json:"name"`
	UserName        string `json:"userName"`
	Email           string `json:"email"`
	UserID          ID     `json:"user_id"`
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

func (u UserUpdate) Validate() error {
	if strings.TrimSpace(u.Name) == "" || strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if u.NewPassword != "" {
		if u.CurrentPassword == "" {
			return fmt.Errorf("%w: current password is required", ErrValidation)
		}
		if u.NewPassword != u.ConfirmPassword {
			return fmt.Errorf("%w: passwords do not match", ErrValidation)
		}
	}
	return nil
}

type UserUpdateResponse struct {
	User    User   `json:"user"`
	Message string `json:"message,omitempty"`
}
