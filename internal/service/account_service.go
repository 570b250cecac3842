package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/model"
)

type AccountService struct {
	users  UserStore
	hasher PasswordHasher
	tokens TokenIssuer
	log    zerolog.Logger
}

func NewAccountService(users UserStore, hasher PasswordHasher, tokens TokenIssuer, log zerolog.Logger) *AccountService {
	return &AccountService{users: users, hasher: hasher, tokens: tokens, log: log}
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      model.User
}

func (s *AccountService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !s.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(*user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: *user}, nil
}

type SignUpInput struct {
	Username        string
	FirstName       string
	LastName        string
	Email           string
	Password        string
	PasswordConfirm string
	Permissions     []string
}

// SignUp registers an inactive account; an administrator activates it later.
func (s *AccountService) SignUp(ctx context.Context, input SignUpInput) (*model.User, error) {
	var v violations
	input.Username = strings.TrimSpace(input.Username)
	v.required("username", input.Username, 150)
	v.maxLength("first_name", input.FirstName, 150)
	v.maxLength("last_name", input.LastName, 150)
	v.email("email", input.Email, 254)
	if err := ValidateNewPassword(SignUpPasswordFields, input.Password, input.PasswordConfirm); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			v = append(v, verr.Violations...)
		}
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, input.Username); err == nil {
		return nil, &ValidationError{Violations: []Violation{{Field: "username", Message: "a user with that username already exists"}}}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     input.Username,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		IsActive:     false,
		Permissions:  input.Permissions,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &ValidationError{Violations: []Violation{{Field: "username", Message: "a user with that username already exists"}}}
		}
		return nil, err
	}
	s.log.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

func (s *AccountService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword, confirm string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var v violations
	if !s.hasher.Verify(user.PasswordHash, oldPassword) {
		v.add("old_password", "your old password was entered incorrectly")
	}
	if err := ValidateNewPassword(NewPasswordFields, newPassword, confirm); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			v = append(v, verr.Violations...)
		}
	}
	if err := v.err(); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}
	s.log.Info().Uint("user_id", userID).Msg("password changed")
	return nil
}

func (s *AccountService) ListEmployees(ctx context.Context, query string) ([]model.User, error) {
	return s.users.List(ctx, strings.TrimSpace(query))
}
