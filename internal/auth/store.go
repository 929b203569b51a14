package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store owns the users and sessions tables. All methods run under the
// caller's context so request timeouts bound every query.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the auth tables.
func (s *Store) Migrate() error {
	if err := s.db.AutoMigrate(&User{}, &Session{}); err != nil {
		return fmt.Errorf("auto-migrate auth tables: %w", err)
	}
	return nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStorage, op, err)
}

// isUniqueViolation reports whether err is a Postgres duplicate-key error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return storageErr("create user", err)
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrEmailNotFound
	}
	if err != nil {
		return User{}, storageErr("find user by email", err)
	}
	return user, nil
}

func (s *Store) FindUserByID(ctx context.Context, userID string) (User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, gorm.ErrRecordNotFound
	}
	if err != nil {
		return User{}, storageErr("find user by id", err)
	}
	return user, nil
}

func (s *Store) UpdatePassword(ctx context.Context, userID, hashed string) error {
	err := s.db.WithContext(ctx).Model(&User{}).
		Where("user_id = ?", userID).
		Update("hashed_password", hashed).Error
	if err != nil {
		return storageErr("update password", err)
	}
	return nil
}

// SetResetToken stamps a pending reset on the user record. Any previous
// token is overwritten; only the latest link works.
func (s *Store) SetResetToken(ctx context.Context, userID, token string, expiresAt time.Time) error {
	err := s.db.WithContext(ctx).Model(&User{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"reset_token":            token,
			"reset_token_expires_at": expiresAt,
		}).Error
	if err != nil {
		return storageErr("set reset token", err)
	}
	return nil
}

// FindUserByResetToken returns the user holding token, provided the token
// has not expired as of now.
func (s *Store) FindUserByResetToken(ctx context.Context, token string, now time.Time) (User, error) {
	var user User
	err := s.db.WithContext(ctx).
		First(&user, "reset_token = ? AND reset_token_expires_at > ?", token, now).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return User{}, ErrInvalidToken
	}
	if err != nil {
		return User{}, storageErr("find user by reset token", err)
	}
	return user, nil
}

// ConsumeResetToken installs the new password hash and clears the token in a
// single conditional UPDATE. The WHERE clause re-checks the token and its
// expiry, so of two concurrent consumers exactly one sees RowsAffected == 1;
// the loser gets ErrInvalidToken.
func (s *Store) ConsumeResetToken(ctx context.Context, token, hashed string, now time.Time) error {
	res := s.db.WithContext(ctx).Model(&User{}).
		Where("reset_token = ? AND reset_token_expires_at > ?", token, now).
		Updates(map[string]any{
			"hashed_password":        hashed,
			"reset_token":            nil,
			"reset_token_expires_at": nil,
		})
	if res.Error != nil {
		return storageErr("consume reset token", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrInvalidToken
	}
	return nil
}

func (s *Store) CreateSession(ctx context.Context, session *Session) error {
	if err := s.db.WithContext(ctx).Create(session).Error; err != nil {
		return storageErr("create session", err)
	}
	return nil
}

func (s *Store) FindSession(ctx context.Context, sessionID string) (Session, error) {
	var session Session
	err := s.db.WithContext(ctx).First(&session, "session_id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Session{}, gorm.ErrRecordNotFound
	}
	if err != nil {
		return Session{}, storageErr("find session", err)
	}
	return session, nil
}

// DeleteSession is idempotent: deleting an absent session is not an error.
func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&Session{}).Error
	if err != nil {
		return storageErr("delete session", err)
	}
	return nil
}

// TouchSession extends the sliding expiry.
func (s *Store) TouchSession(ctx context.Context, sessionID string, expiresAt, touchedAt time.Time) error {
	err := s.db.WithContext(ctx).Model(&Session{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]any{
			"expires_at":      expiresAt,
			"last_touched_at": touchedAt,
		}).Error
	if err != nil {
		return storageErr("touch session", err)
	}
	return nil
}
