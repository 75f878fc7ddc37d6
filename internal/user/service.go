package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"quiltshop-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Register(ctx context.Context, name, email, password string) (string, *User, error)
	Login(ctx context.Context, email, password string) (string, *User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// ValidationError marks bad registration input so the transport layer can
// report it as a client error.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func validateRegistration(name, email, password string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return &ValidationError{Msg: "name required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Msg: "valid email required"}
	}
	if len(password) < 8 {
		return &ValidationError{Msg: "password min 8 chars"}
	}
	return nil
}

func (s *service) Register(ctx context.Context, name, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	if err := validateRegistration(name, email, password); err != nil {
		return "", nil, err
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", nil, err
	}

	u, err := s.repo.Create(ctx, strings.TrimSpace(name), email, hashed, RoleUser)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return "", nil, ErrEmailExists
		}
		log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		return "", nil, err
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email, u.Name)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(u.ID)), zap.Error(err))
		return "", nil, err
	}

	log.Info("register completed",
		zap.String("user_id", fmt.Sprint(u.ID)),
		zap.String("email", email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, *User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		// Same generic error as a password mismatch so the response
		// never reveals which of the two was wrong.
		log.Debug("login: email not found", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Debug("login: password mismatch", zap.String("email", email))
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, string(u.Role), u.Email, u.Name)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

func (s *service) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.FindByEmail(ctx, email)
}
