package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/HSouheill/barrim_admin/middleware"
	"github.com/HSouheill/barrim_admin/models"
	"github.com/HSouheill/barrim_admin/repositories"
	"github.com/HSouheill/barrim_admin/security"
)

// AuthService authenticates back office admins
type AuthService struct {
	admins    *repositories.AdminRepository
	jwtSecret string
}

func NewAuthService(admins *repositories.AdminRepository, jwtSecret string) *AuthService {
	return &AuthService{admins: admins, jwtSecret: jwtSecret}
}

// Login checks the credentials and issues a session token. Unknown emails
// and wrong passwords fail the same way.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	admin, err := s.admins.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
		}
		return nil, err
	}
	if !security.CheckPassword(admin.Password, req.Password) {
		logrus.WithField("email", admin.Email).Warn("Failed admin login attempt")
		return nil, fmt.Errorf("%w: invalid email or password", models.ErrUnauthorized)
	}

	token, err := middleware.GenerateJWT(s.jwtSecret, admin.ID, admin.Email, admin.UserType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &models.LoginResponse{Token: token, Admin: admin}, nil
}

// EnsureAdmin creates the bootstrap admin account when the email is unused
func (s *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) error {
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.admins.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	admin, err := s.admins.Create(ctx, models.Admin{Name: name, Email: email, Password: hash, UserType: "admin"})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	logrus.WithField("email", admin.Email).Info("Created bootstrap admin")
	return nil
}
