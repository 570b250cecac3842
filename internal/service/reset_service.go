package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/employeehub/internal/session"
)

// resetState is the pending-reset entry kept under one reset token.
type resetState struct {
	UserID         uint `json:"user_id"`
	AnswerVerified bool `json:"answer_verified"`
}

// PasswordResetService drives the three-step reset: identify the user,
// answer the security question, set a new password.
type PasswordResetService struct {
	users    UserStore
	profiles ProfileStore
	sessions session.Store
	hasher   PasswordHasher
	ttl      time.Duration
	log      zerolog.Logger
}

func NewPasswordResetService(
	users UserStore,
	profiles ProfileStore,
	sessions session.Store,
	hasher PasswordHasher,
	ttl time.Duration,
	log zerolog.Logger,
) *PasswordResetService {
	return &PasswordResetService{
		users:    users,
		profiles: profiles,
		sessions: sessions,
		hasher:   hasher,
		ttl:      ttl,
		log:      log,
	}
}

// Identify records username as the pending user for token and returns the token to use
// for the next steps. token is reused only when it already has pending state;
// otherwise a fresh one is minted.
func (s *PasswordResetService) Identify(ctx context.Context, token, username string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", &ValidationError{Violations: []Violation{{Field: "username", Message: "this field is required"}}}
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if _, err := s.load(ctx, token); err != nil {
		if !errors.Is(err, ErrResetNotStarted) {
			return "", err
		}
		token = uuid.NewString()
	}
	if err := s.save(ctx, token, resetState{UserID: user.ID}); err != nil {
		return "", err
	}
	return token, nil
}

// Question returns the security question of the pending user.
func (s *PasswordResetService) Question(ctx context.Context, token string) (string, error) {
	state, err := s.load(ctx, token)
	if err != nil {
		return "", err
	}
	profile, err := s.profiles.GetByUserID(ctx, state.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return profile.QuestionText(), nil
}

// Answer verifies the security answer. Any failure is reported as ErrIncorrectAnswer.
func (s *PasswordResetService) Answer(ctx context.Context, token, answer string) error {
	state, err := s.load(ctx, token)
	if err != nil {
		return err
	}

	profile, err := s.profiles.GetByUserID(ctx, state.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIncorrectAnswer
		}
		return err
	}
	if !profile.CheckSecurityAnswer(answer) {
		s.log.Info().Uint("user_id", state.UserID).Msg("security answer mismatch")
		return ErrIncorrectAnswer
	}

	state.AnswerVerified = true
	return s.save(ctx, token, state)
}

// Pending reports whether token has an identified user waiting to answer.
func (s *PasswordResetService) Pending(ctx context.Context, token string) error {
	_, err := s.load(ctx, token)
	return err
}

// Verified reports whether token may proceed to the new-password step.
func (s *PasswordResetService) Verified(ctx context.Context, token string) error {
	state, err := s.load(ctx, token)
	if err != nil {
		return err
	}
	if !state.AnswerVerified {
		return ErrAnswerNotVerified
	}
	return nil
}

// SetPassword finishes the flow and clears the pending state.
func (s *PasswordResetService) SetPassword(ctx context.Context, token, password, confirm string) error {
	state, err := s.load(ctx, token)
	if err != nil {
		return err
	}
	if !state.AnswerVerified {
		return ErrAnswerNotVerified
	}
	if err := ValidateNewPassword(NewPasswordFields, password, confirm); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, state.UserID, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.sessions.Delete(ctx, resetKey(token))
			return ErrUserNotFound
		}
		return err
	}
	if err := s.sessions.Delete(ctx, resetKey(token)); err != nil {
		return err
	}
	s.log.Info().Uint("user_id", state.UserID).Msg("password reset completed")
	return nil
}

func (s *PasswordResetService) load(ctx context.Context, token string) (resetState, error) {
	if _, err := uuid.Parse(token); err != nil {
		return resetState{}, ErrResetNotStarted
	}
	raw, err := s.sessions.Get(ctx, resetKey(token))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return resetState{}, ErrResetNotStarted
		}
		return resetState{}, err
	}
	var state resetState
	if err := json.Unmarshal(raw, &state); err != nil || state.UserID == 0 {
		return resetState{}, ErrResetNotStarted
	}
	return state, nil
}

func (s *PasswordResetService) save(ctx context.Context, token string, state resetState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.sessions.Set(ctx, resetKey(token), raw, s.ttl)
}

func resetKey(token string) string {
	return "reset:" + token
}
