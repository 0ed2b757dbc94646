package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

type UserRepository struct {
	s   *Store
	now func() time.Time
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{s: s, now: time.Now}
}

func (r *UserRepository) Create(_ context.Context, _ database.Handle, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[u.ID]; exists {
		return fmt.Errorf("create user: duplicate id %s", u.ID)
	}
	if u.Username != "" && r.usernameTakenLocked(u.Username, u.ID) {
		return fmt.Errorf("create user: duplicate username %s", u.Username)
	}
	now := r.now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.s.users[u.ID] = u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, _ database.Handle, userID string) (user.User, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[userID]
	return u, ok, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, _ database.Handle, username string) (user.User, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username != "" && strings.EqualFold(u.Username, username) {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) GetByAccount(_ context.Context, _ database.Handle, provider user.Provider, providerAccountID string) (user.User, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, account := range r.s.accounts {
		if account.Provider == provider && account.ProviderAccountID == providerAccountID {
			u, ok := r.s.users[account.UserID]
			return u, ok, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) Update(_ context.Context, _ database.Handle, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[u.ID]
	if !ok {
		return fmt.Errorf("update user: not found")
	}
	if u.Username != "" && r.usernameTakenLocked(u.Username, u.ID) {
		return fmt.Errorf("update user: duplicate username %s", u.Username)
	}
	u.CreatedAt = current.CreatedAt
	u.UpdatedAt = r.now()
	r.s.users[u.ID] = u
	return nil
}

func (r *UserRepository) Delete(_ context.Context, _ database.Handle, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.deleteUserLocked(userID)
	return nil
}

func (r *UserRepository) usernameTakenLocked(username, exceptID string) bool {
	for id, u := range r.s.users {
		if id != exceptID && strings.EqualFold(u.Username, username) {
			return true
		}
	}
	return false
}

type AccountRepository struct {
	s *Store
}

func NewAccountRepository(s *Store) *AccountRepository {
	return &AccountRepository{s: s}
}

func (r *AccountRepository) Upsert(_ context.Context, _ database.Handle, account user.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, existing := range r.s.accounts {
		if existing.Provider == account.Provider && existing.ProviderAccountID == account.ProviderAccountID {
			existing.AccessToken = account.AccessToken
			existing.RefreshToken = account.RefreshToken
			existing.ExpiresAt = account.ExpiresAt
			r.s.accounts[id] = existing
			return nil
		}
	}
	r.s.accounts[account.ID] = account
	return nil
}

type SessionRepository struct {
	s *Store
}

func NewSessionRepository(s *Store) *SessionRepository {
	return &SessionRepository{s: s}
}

func (r *SessionRepository) Create(_ context.Context, _ database.Handle, session user.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.sessions[session.Token]; exists {
		return fmt.Errorf("create session: duplicate token")
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	r.s.sessions[session.Token] = session
	return nil
}

func (r *SessionRepository) GetByToken(_ context.Context, _ database.Handle, token string) (user.Session, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	session, ok := r.s.sessions[token]
	return session, ok, nil
}

func (r *SessionRepository) Delete(_ context.Context, _ database.Handle, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.sessions, token)
	return nil
}

func (r *SessionRepository) DeleteExpired(_ context.Context, _ database.Handle, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for token, session := range r.s.sessions {
		if session.Expired(now) {
			delete(r.s.sessions, token)
			n++
		}
	}
	return n, nil
}
