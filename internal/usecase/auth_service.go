package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	idgen "github.com/picksleagues/picks-leagues/internal/platform/id"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
)

const DefaultSessionTTL = 30 * 24 * time.Hour

// Identity is what an OAuth provider tells us about the signed-in person.
type Identity struct {
	Provider     user.Provider
	AccountID    string
	Email        string
	FirstName    string
	LastName     string
	ImageURL     string
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}

type IdentityProvider interface {
	Name() user.Provider
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (Identity, error)
}

// MobileTokens issues and verifies the bearer tokens of the mobile API.
type MobileTokens interface {
	Issue(userID string) (token string, expiresAt time.Time, err error)
	Verify(token string) (userID string, err error)
}

type AuthService struct {
	tx         database.Transactor
	repos      Repositories
	providers  map[user.Provider]IdentityProvider
	mobile     MobileTokens
	idGen      idgen.Generator
	sessionTTL time.Duration
	logger     *logging.Logger
	now        func() time.Time
}

func NewAuthService(
	tx database.Transactor,
	repos Repositories,
	providers []IdentityProvider,
	mobile MobileTokens,
	idGen idgen.Generator,
	sessionTTL time.Duration,
	logger *logging.Logger,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	if logger == nil {
		logger = logging.Default()
	}
	byName := make(map[user.Provider]IdentityProvider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &AuthService{
		tx:         tx,
		repos:      repos,
		providers:  byName,
		mobile:     mobile,
		idGen:      idGen,
		sessionTTL: sessionTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AuthService) provider(name string) (IdentityProvider, error) {
	p, ok := s.providers[user.Provider(strings.ToLower(strings.TrimSpace(name)))]
	if !ok {
		return nil, NotFound("unknown sign-in provider")
	}
	return p, nil
}

// BeginSignIn returns the provider redirect URL and the state the callback
// must echo back.
func (s *AuthService) BeginSignIn(providerName string) (redirectURL, state string, err error) {
	p, err := s.provider(providerName)
	if err != nil {
		return "", "", err
	}
	state, err = idgen.NewToken(16)
	if err != nil {
		return "", "", fmt.Errorf("generate oauth state: %w", err)
	}
	return p.AuthCodeURL(state), state, nil
}

// CompleteSignIn exchanges the code, creates the user on first sign-in, links
// the provider account and opens a session.
func (s *AuthService) CompleteSignIn(ctx context.Context, providerName, code string) (user.Session, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.CompleteSignIn")
	var err error
	defer func() { endSpan(span, err) }()

	p, err := s.provider(providerName)
	if err != nil {
		return user.Session{}, err
	}
	if strings.TrimSpace(code) == "" {
		err = fieldError("code", "authorization code is required")
		return user.Session{}, err
	}

	identity, err := p.Exchange(ctx, code)
	if err != nil {
		err = fmt.Errorf("%w: exchange %s code: %v", ErrUnauthorized, providerName, err)
		return user.Session{}, err
	}
	if identity.AccountID == "" {
		err = fmt.Errorf("%w: %s returned no account id", ErrUnauthorized, providerName)
		return user.Session{}, err
	}

	var session user.Session
	err = s.tx.InTx(ctx, func(ctx context.Context, db database.Handle) error {
		now := s.now().UTC()
		u, ok, err := s.repos.Users.GetByAccount(ctx, db, p.Name(), identity.AccountID)
		if err != nil {
			return fmt.Errorf("get user by account: %w", err)
		}
		if !ok {
			if u.ID, err = s.idGen.NewID(); err != nil {
				return fmt.Errorf("generate user id: %w", err)
			}
			u.FirstName = identity.FirstName
			u.LastName = identity.LastName
			u.Email = identity.Email
			u.ImageURL = identity.ImageURL
			u.Timezone = user.DefaultTimezone
			u.CreatedAt = now
			u.UpdatedAt = now
			if err := s.repos.Users.Create(ctx, db, u); err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			s.logger.InfoContext(ctx, "user created on first sign-in", "user_id", u.ID, "provider", p.Name())
		}

		accountID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate account id: %w", err)
		}
		account := user.Account{
			ID:                accountID,
			UserID:            u.ID,
			Provider:          p.Name(),
			ProviderAccountID: identity.AccountID,
			AccessToken:       identity.AccessToken,
			RefreshToken:      identity.RefreshToken,
			ExpiresAt:         identity.ExpiresAt,
		}
		if err := s.repos.Accounts.Upsert(ctx, db, account); err != nil {
			return fmt.Errorf("upsert account: %w", err)
		}

		session, err = s.newSession(u.ID, now)
		if err != nil {
			return err
		}
		if err := s.repos.Sessions.Create(ctx, db, session); err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		return nil
	})
	if err != nil {
		return user.Session{}, err
	}
	return session, nil
}

func (s *AuthService) newSession(userID string, now time.Time) (user.Session, error) {
	id, err := s.idGen.NewID()
	if err != nil {
		return user.Session{}, fmt.Errorf("generate session id: %w", err)
	}
	token, err := idgen.NewToken(32)
	if err != nil {
		return user.Session{}, fmt.Errorf("generate session token: %w", err)
	}
	return user.Session{
		ID:        id,
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}, nil
}

func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	if err := s.repos.Sessions.Delete(ctx, s.tx.Conn(), token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a session token to its principal. Missing, expired
// and orphaned sessions are ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: missing session", ErrUnauthorized)
	}

	db := s.tx.Conn()
	session, ok, err := s.repos.Sessions.GetByToken(ctx, db, token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get session: %w", err)
	}
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown session", ErrUnauthorized)
	}
	if session.Expired(s.now()) {
		if err := s.repos.Sessions.Delete(ctx, db, token); err != nil {
			s.logger.WarnContext(ctx, "delete expired session failed", "session_id", session.ID, "error", err)
		}
		return user.Principal{}, fmt.Errorf("%w: session expired", ErrUnauthorized)
	}

	principal, err := s.principalFor(ctx, session.UserID)
	if err != nil {
		return user.Principal{}, err
	}
	principal.SessionID = session.ID
	return principal, nil
}

func (s *AuthService) principalFor(ctx context.Context, userID string) (user.Principal, error) {
	u, ok, err := s.repos.Users.GetByID(ctx, s.tx.Conn(), userID)
	if err != nil {
		return user.Principal{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: user no longer exists", ErrUnauthorized)
	}
	return user.Principal{UserID: u.ID, Username: u.Username}, nil
}

func (s *AuthService) IssueMobileToken(ctx context.Context, principal user.Principal) (string, time.Time, error) {
	if s.mobile == nil {
		return "", time.Time{}, fmt.Errorf("%w: mobile tokens are not configured", ErrDependencyUnavailable)
	}
	token, expiresAt, err := s.mobile.Issue(principal.UserID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issue mobile token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *AuthService) AuthenticateMobile(ctx context.Context, token string) (user.Principal, error) {
	if s.mobile == nil {
		return user.Principal{}, fmt.Errorf("%w: mobile tokens are not configured", ErrUnauthorized)
	}
	userID, err := s.mobile.Verify(token)
	if err != nil {
		return user.Principal{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return s.principalFor(ctx, userID)
}

func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	n, err := s.repos.Sessions.DeleteExpired(ctx, s.tx.Conn(), s.now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return n, nil
}
