package auth

import (
	"context"
	"time"

	"github.com/cse-nriit/tt-backend/internal/utils"
)

// SessionInfo adapts the Store to the middleware's SessionFetcher interface.
// A session whose user record is gone resolves as an error, never as an
// anonymous request.
type SessionInfo struct {
	store *Store
	ttl   time.Duration
}

func NewSessionInfo(store *Store, sessionTTL time.Duration) SessionInfo {
	return SessionInfo{store: store, ttl: sessionTTL}
}

func (si SessionInfo) FindSessionByID(ctx context.Context, id string) (utils.SessionData, error) {
	session, err := si.store.FindSession(ctx, id)
	if err != nil {
		return utils.SessionData{}, err
	}

	user, err := si.store.FindUserByID(ctx, session.UserID)
	if err != nil {
		return utils.SessionData{}, err
	}

	now := time.Now()
	if session.ExpiresAt.After(now) && now.Sub(session.LastTouchedAt) > touchAfter {
		_ = si.store.TouchSession(ctx, id, now.Add(si.ttl), now)
	}

	return utils.SessionData{
		UserID:    user.UserID,
		Role:      user.Role,
		ExpiresAt: session.ExpiresAt,
	}, nil
}
