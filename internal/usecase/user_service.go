package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	"github.com/picksleagues/picks-leagues/internal/platform/logging"
)

const usernameAttempts = 10

type UpdateProfileInput struct {
	Username  *string
	FirstName *string
	LastName  *string
	Timezone  *string
	ImageURL  *string
}

type UserService struct {
	tx     database.Transactor
	repos  Repositories
	logger *logging.Logger
	now    func() time.Time

	fakerMu sync.Mutex
	faker   *gofakeit.Faker
}

func NewUserService(tx database.Transactor, repos Repositories, logger *logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Default()
	}
	return &UserService{
		tx:     tx,
		repos:  repos,
		logger: logger,
		now:    time.Now,
		faker:  gofakeit.New(0),
	}
}

func (s *UserService) Get(ctx context.Context, userID string) (user.User, error) {
	u, ok, err := s.repos.Users.GetByID(ctx, s.tx.Conn(), userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return user.User{}, NotFound("user not found")
	}
	return u, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, principal user.Principal, in UpdateProfileInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.UpdateProfile")
	var err error
	defer func() { endSpan(span, err) }()

	var updated user.User
	err = s.tx.InTx(ctx, func(ctx context.Context, db database.Handle) error {
		u, ok, err := s.repos.Users.GetByID(ctx, db, principal.UserID)
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		if !ok {
			return NotFound("user not found")
		}

		if in.Username != nil {
			username := strings.TrimSpace(*in.Username)
			if !user.ValidUsername(username) {
				return fieldError("username", "username must be 3 to 20 letters, digits or underscores")
			}
			if err := s.ensureUsernameFree(ctx, db, u.ID, username); err != nil {
				return err
			}
			u.Username = username
		}
		if in.FirstName != nil {
			u.FirstName = strings.TrimSpace(*in.FirstName)
		}
		if in.LastName != nil {
			u.LastName = strings.TrimSpace(*in.LastName)
		}
		if in.Timezone != nil {
			tz := strings.TrimSpace(*in.Timezone)
			if tz == "" {
				tz = user.DefaultTimezone
			}
			if _, err := time.LoadLocation(tz); err != nil {
				return fieldError("timezone", "unknown timezone")
			}
			u.Timezone = tz
		}
		if in.ImageURL != nil {
			u.ImageURL = strings.TrimSpace(*in.ImageURL)
		}

		u.UpdatedAt = s.now().UTC()
		if err := s.repos.Users.Update(ctx, db, u); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		updated = u
		return nil
	})
	if err != nil {
		return user.User{}, err
	}
	return updated, nil
}

func (s *UserService) ensureUsernameFree(ctx context.Context, db database.Handle, userID, username string) error {
	other, ok, err := s.repos.Users.GetByUsername(ctx, db, username)
	if err != nil {
		return fmt.Errorf("get user by username: %w", err)
	}
	if ok && other.ID != userID {
		return fieldError("username", "username is taken")
	}
	return nil
}

// GenerateUsername assigns a random free username.
func (s *UserService) GenerateUsername(ctx context.Context, principal user.Principal) (user.User, error) {
	for attempt := 0; attempt < usernameAttempts; attempt++ {
		candidate := s.randomUsername()
		u, err := s.UpdateProfile(ctx, principal, UpdateProfileInput{Username: &candidate})
		if err == nil {
			return u, nil
		}
		appErr, ok := AsApplicationError(err)
		if !ok || appErr.Fields["username"] == "" {
			return user.User{}, err
		}
		s.logger.DebugContext(ctx, "generated username rejected", "candidate", candidate, "reason", appErr.Message)
	}
	return user.User{}, fmt.Errorf("no free username after %d attempts", usernameAttempts)
}

func (s *UserService) randomUsername() string {
	s.fakerMu.Lock()
	raw := s.faker.Username()
	suffix := s.faker.Numerify("##")
	s.fakerMu.Unlock()

	var b strings.Builder
	for _, r := range raw {
		if r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))) {
			b.WriteRune(r)
		}
	}
	name := b.String()
	if len(name) > 18 {
		name = name[:18]
	}
	return name + suffix
}

// Delete removes the account. It is refused while the user is the only
// commissioner of a league that still has other members; leagues the user is
// alone in are deleted with the account.
func (s *UserService) Delete(ctx context.Context, principal user.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Delete")
	var err error
	defer func() { endSpan(span, err) }()

	err = s.tx.InTx(ctx, func(ctx context.Context, db database.Handle) error {
		memberships, err := s.repos.Members.ListByUser(ctx, db, principal.UserID)
		if err != nil {
			return fmt.Errorf("list memberships: %w", err)
		}

		var solo []string
		for _, m := range memberships {
			count, err := s.repos.Members.Count(ctx, db, m.LeagueID)
			if err != nil {
				return fmt.Errorf("count members: %w", err)
			}
			if count <= 1 {
				solo = append(solo, m.LeagueID)
				continue
			}
			if !m.IsCommissioner() {
				continue
			}
			commissioners, err := s.repos.Members.CountByRole(ctx, db, m.LeagueID, picksleague.RoleCommissioner)
			if err != nil {
				return fmt.Errorf("count commissioners: %w", err)
			}
			if commissioners <= 1 {
				return fieldError("role", "make another member commissioner of your leagues before deleting your account")
			}
		}

		for _, leagueID := range solo {
			if err := s.repos.Leagues.Delete(ctx, db, leagueID); err != nil {
				return fmt.Errorf("delete league %s: %w", leagueID, err)
			}
		}
		if err := s.repos.Users.Delete(ctx, db, principal.UserID); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	return err
}
