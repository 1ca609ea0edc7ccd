package models

import (
	"fmt"
	"strings"
)

// Admin is a back office account
type Admin struct {
	ID       string `json:"id" bson:"id,omitempty"`
	Name     string `json:"name" bson:"name"`
	Email    string `json:"email" bson:"email"`
	Password string `json:"-" bson:"password"`
	UserType string `json:"userType" bson:"userType"`
}

func (a *Admin) Normalize() error {
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	if a.Email == "" {
		return fmt.Errorf("%w: admin %s has no email", ErrInvalidRecord, a.ID)
	}
	if a.UserType == "" {
		a.UserType = "admin"
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}
