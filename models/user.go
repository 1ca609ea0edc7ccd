package models

import (
	"fmt"
	"strings"
)

// UserProfile is a storefront user. Only IsWholesaleApproved is written by
// this service.
type UserProfile struct {
	ID                  string `json:"id,omitempty" bson:"id,omitempty"`
	UserID              string `json:"userId" bson:"userId"`
	Name                string `json:"name" bson:"name"`
	Email               string `json:"email" bson:"email"`
	IsWholesaleApproved bool   `json:"isWholesaleApproved" bson:"isWholesaleApproved"`
}

// UnknownUser stands in for a userId that has no profile
func UnknownUser(userID string) UserProfile {
	return UserProfile{UserID: userID, Name: "Unknown", Email: ""}
}

func (u *UserProfile) Normalize() error {
	u.UserID = strings.TrimSpace(u.UserID)
	if u.UserID == "" {
		return fmt.Errorf("%w: user %s has no userId", ErrInvalidRecord, u.ID)
	}
	u.Email = strings.TrimSpace(u.Email)
	return nil
}
