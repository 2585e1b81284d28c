package services

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/yigit/uniconnect/internal/app/gateway"
	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/pkg/auth"
)

// Navigation targets returned in results
const (
	RouteHome   = "/"
	RouteLogin  = "/login"
	RouteSignup = "/signup"
	RouteOtp    = "/otp"
)

// SignupPayload returns the signup pending OTP confirmation, if any
func (s *SessionStore) SignupPayload() (models.SignupPayload, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.signup == nil {
		return models.SignupPayload{}, false
	}
	return *s.signup, true
}

// SetSignupPayload records the signup pending OTP confirmation
func (s *SessionStore) SetSignupPayload(payload models.SignupPayload) {
	s.mu.Lock()
	s.signup = &payload
	s.mu.Unlock()
}

// ClearSignupPayload abandons a pending signup
func (s *SessionStore) ClearSignupPayload() {
	s.mu.Lock()
	s.signup = nil
	s.mu.Unlock()
}

// Signup submits the registration and, on success, keeps the payload until
// the OTP is confirmed.
func (s *SessionStore) Signup(ctx context.Context, payload models.SignupPayload) Result[Empty] {
	ctx, cancel := s.scoped(ctx)
	defer cancel()

	if err := s.gateway.Signup(ctx, payload); err != nil {
		s.logger.Warn().Err(err).Str("email", payload.Email).Msg("Signup failed")
		return failFrom[Empty](err, "Signup failed. Please try again.")
	}

	s.SetSignupPayload(payload)
	return Result[Empty]{Success: true, Message: "OTP sent to your email", Redirect: RouteOtp}
}

// VerifyOtp confirms the pending signup. Without a pending signup the
// backend is not called and the caller is sent back to the signup form.
func (s *SessionStore) VerifyOtp(ctx context.Context, otp string) Result[models.User] {
	otp = strings.TrimSpace(otp)
	if otp == "" {
		return fail[models.User]("OTP is required")
	}

	pending, ok := s.SignupPayload()
	if !ok {
		s.logger.Warn().Msg("OTP submitted without a pending signup")
		return Result[models.User]{Message: "Please sign up first", Redirect: RouteSignup}
	}

	scoped, cancel := s.scoped(ctx)
	defer cancel()

	user, err := s.gateway.VerifyOtp(scoped, pending.Email, otp)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", pending.Email).Msg("OTP verification failed")
		return failFrom[models.User](err, "OTP verification failed")
	}

	s.Login(ctx, user)
	s.mu.Lock()
	if s.signup != nil && s.signup.Email == pending.Email {
		s.signup = nil
	}
	s.mu.Unlock()

	if s.legacyOffline {
		s.rememberRegisteredUser(ctx, *user, pending.Password)
	}

	return Result[models.User]{Success: true, Record: *user, Redirect: RouteHome}
}

// SignIn logs in with email and password. When the backend is unreachable
// and legacy offline login is enabled, locally remembered users are tried.
func (s *SessionStore) SignIn(ctx context.Context, email, password string) Result[models.User] {
	scoped, cancel := s.scoped(ctx)
	defer cancel()

	user, err := s.gateway.Login(scoped, email, password)
	if err != nil {
		if s.legacyOffline && gateway.IsUnreachable(err) {
			if legacy, ok := s.legacySignIn(ctx, email, password); ok {
				s.logger.Info().Str("email", email).Msg("Signed in from remembered users while offline")
				s.Login(ctx, &legacy)
				return Result[models.User]{Success: true, Record: legacy, Redirect: RouteHome}
			}
		}
		s.logger.Warn().Err(err).Str("email", email).Msg("Login failed")
		return failFrom[models.User](err, "Invalid email or password")
	}

	s.Login(ctx, user)
	return Result[models.User]{Success: true, Record: *user, Redirect: RouteHome}
}

// registeredUser is one entry of the legacy registeredUsers list
type registeredUser struct {
	User         models.User `json:"user"`
	PasswordHash string      `json:"passwordHash"`
}

func (s *SessionStore) loadRegisteredUsers(ctx context.Context) []registeredUser {
	value, ok, err := s.repo.Get(ctx, repositories.KeyRegisteredUsers)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Could not read registered users")
		return nil
	}
	if !ok || value == "" {
		return nil
	}
	var users []registeredUser
	if err := json.Unmarshal([]byte(value), &users); err != nil {
		s.logger.Warn().Err(err).Msg("Discarding unreadable registered users")
		return nil
	}
	return users
}

// rememberRegisteredUser stores user with a bcrypt hash of password,
// replacing an earlier entry for the same email.
func (s *SessionStore) rememberRegisteredUser(ctx context.Context, user models.User, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Could not hash password for offline login")
		return
	}

	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	users := s.loadRegisteredUsers(ctx)
	entry := registeredUser{User: user, PasswordHash: hash}
	replaced := false
	for i := range users {
		if strings.EqualFold(users[i].User.Email, user.Email) {
			users[i] = entry
			replaced = true
		}
	}
	if !replaced {
		users = append(users, entry)
	}

	encoded, err := json.Marshal(users)
	if err != nil {
		s.logger.Error().Err(err).Msg("Could not encode registered users")
		return
	}
	if err := s.repo.Set(ctx, repositories.KeyRegisteredUsers, string(encoded)); err != nil {
		s.logger.Warn().Err(err).Msg("Could not persist registered users")
	}
}

func (s *SessionStore) legacySignIn(ctx context.Context, email, password string) (models.User, bool) {
	s.persistMu.Lock()
	users := s.loadRegisteredUsers(ctx)
	s.persistMu.Unlock()

	for _, u := range users {
		if strings.EqualFold(u.User.Email, email) && auth.CheckPassword(u.PasswordHash, password) {
			return u.User, true
		}
	}
	return models.User{}, false
}
