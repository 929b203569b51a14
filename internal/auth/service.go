package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cse-nriit/tt-backend/internal/mailer"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// touchAfter limits how often a session row is rewritten for the sliding
// expiry. Activity inside the window reuses the current expiry.
const touchAfter = 24 * time.Hour

// sendTimeout bounds the SMTP dispatch so a stuck mail server cannot hang a
// request.
const sendTimeout = 10 * time.Second

// Service implements the auth flows: registration, login, logout, session
// resolution, and the password-reset lifecycle. It never logs passwords,
// reset tokens, or session ids.
type Service struct {
	store      *Store
	mail       mailer.Sender
	clientURL  string
	sessionTTL time.Duration
	log        zerolog.Logger
}

func NewService(store *Store, mail mailer.Sender, clientURL string, sessionTTL time.Duration, log zerolog.Logger) *Service {
	return &Service{
		store:      store,
		mail:       mail,
		clientURL:  strings.TrimRight(clientURL, "/"),
		sessionTTL: sessionTTL,
		log:        log,
	}
}

func (s *Service) newSession(ctx context.Context, userID string) (Session, error) {
	now := time.Now()
	session := Session{
		SessionID:     uuid.NewString(),
		UserID:        userID,
		CreatedAt:     now,
		LastTouchedAt: now,
		ExpiresAt:     now.Add(s.sessionTTL),
	}
	if err := s.store.CreateSession(ctx, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

// Register creates a user with the default role and logs them straight in.
// The auto-login is a UX choice carried over from the original product, not
// a security boundary.
func (s *Service) Register(ctx context.Context, fullName, email, password string) (User, Session, error) {
	if fullName == "" || email == "" || password == "" {
		return User{}, Session{}, fmt.Errorf("%w: All fields are required", ErrValidation)
	}
	if err := ValidateEmail(email); err != nil {
		return User{}, Session{}, err
	}
	if err := ValidatePassword(password); err != nil {
		return User{}, Session{}, err
	}

	if _, err := s.store.FindUserByEmail(ctx, email); err == nil {
		return User{}, Session{}, ErrEmailTaken
	} else if !errors.Is(err, ErrEmailNotFound) {
		return User{}, Session{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, Session{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		UserID:         uuid.NewString(),
		FullName:       fullName,
		Email:          email,
		HashedPassword: string(hashed),
		Role:           "user",
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return User{}, Session{}, err
	}

	session, err := s.newSession(ctx, user.UserID)
	if err != nil {
		return User{}, Session{}, err
	}

	s.log.Info().Str("user_id", user.UserID).Msg("user registered")
	return user, session, nil
}

// Login validates credentials and opens a fresh session. Unknown emails and
// wrong passwords are reported as distinct errors, matching the original
// product's behavior; the account-enumeration tradeoff is deliberate.
func (s *Service) Login(ctx context.Context, email, password string) (User, Session, error) {
	if email == "" || password == "" {
		return User{}, Session{}, fmt.Errorf("%w: Email and password are required", ErrValidation)
	}

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return User{}, Session{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return User{}, Session{}, ErrWrongPassword
	}

	session, err := s.newSession(ctx, user.UserID)
	if err != nil {
		return User{}, Session{}, err
	}

	s.log.Info().Str("user_id", user.UserID).Msg("user logged in")
	return user, session, nil
}

// Logout destroys the session. Destroying an absent session is not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	return s.store.DeleteSession(ctx, sessionID)
}

// CurrentUser resolves the session to its live user. Absent or expired
// sessions, and sessions whose user record is gone, all fail with
// ErrUnauthenticated. Activity extends the sliding expiry at most once per
// touch window.
func (s *Service) CurrentUser(ctx context.Context, sessionID string) (User, error) {
	if sessionID == "" {
		return User{}, ErrUnauthenticated
	}

	session, err := s.store.FindSession(ctx, sessionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrUnauthenticated
	}
	if err != nil {
		return User{}, err
	}

	now := time.Now()
	if session.ExpiresAt.Before(now) {
		// Expired rows are garbage; clear them as we reject.
		_ = s.store.DeleteSession(ctx, sessionID)
		return User{}, ErrUnauthenticated
	}

	user, err := s.store.FindUserByID(ctx, session.UserID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// A session with no matching live user is invalid, not anonymous.
		_ = s.store.DeleteSession(ctx, sessionID)
		return User{}, ErrUnauthenticated
	}
	if err != nil {
		return User{}, err
	}

	if now.Sub(session.LastTouchedAt) > touchAfter {
		_ = s.store.TouchSession(ctx, sessionID, now.Add(s.sessionTTL), now)
	}

	return user, nil
}

// UpdatePassword changes an authenticated user's password after verifying
// the current one.
func (s *Service) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return fmt.Errorf("%w: Current and new password are required", ErrValidation)
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.store.FindUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUnauthenticated
	}
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.store.UpdatePassword(ctx, userID, string(hashed)); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID).Msg("password updated")
	return nil
}

// RequestPasswordReset issues a time-boxed reset token and mails the link.
// Unknown emails surface as ErrEmailNotFound; the existence leak is a known
// tradeoff inherited from the original product.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: Email is required", ErrValidation)
	}

	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(ResetTokenTTL)
	if err := s.store.SetResetToken(ctx, user.UserID, token, expiresAt); err != nil {
		return err
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	err = s.mail.SendPasswordReset(sendCtx, user.Email, mailer.ResetData{
		FullName:     user.FullName,
		ResetURL:     s.clientURL + "/reset/" + token,
		ValidMinutes: int(ResetTokenTTL.Minutes()),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotification, err)
	}

	s.log.Info().Str("user_id", user.UserID).Msg("password reset requested")
	return nil
}

// ResetPassword consumes a reset token and installs the new password. The
// token is cleared in the same store operation that writes the hash, so a
// concurrent consumer of the same token loses with ErrInvalidToken. No
// session is created; the user logs in with the new password.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return fmt.Errorf("%w: Password is required", ErrValidation)
	}
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	now := time.Now()
	user, err := s.store.FindUserByResetToken(ctx, token, now)
	if err != nil {
		return err
	}

	// Same hashing comparison used for login.
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(newPassword)); err == nil {
		return ErrSamePassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.store.ConsumeResetToken(ctx, token, string(hashed), now); err != nil {
		return err
	}

	s.log.Info().Str("user_id", user.UserID).Msg("password reset completed")
	return nil
}
