package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	qb "github.com/picksleagues/picks-leagues/internal/platform/querybuilder"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, db database.Handle, u user.User) error {
	query, args, err := qb.InsertModel("users", userInsertModel{
		ID:        u.ID,
		Username:  nullString(u.Username),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Timezone:  u.Timezone,
		ImageURL:  u.ImageURL,
	}, "")
	if err != nil {
		return fmt.Errorf("build create user query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, db database.Handle, userID string) (user.User, bool, error) {
	return r.getOne(ctx, db, "get user by id", qb.Eq("id", userID))
}

func (r *UserRepository) GetByUsername(ctx context.Context, db database.Handle, username string) (user.User, bool, error) {
	return r.getOne(ctx, db, "get user by username", qb.Expr("LOWER(username) = LOWER(?)", username))
}

func (r *UserRepository) GetByAccount(ctx context.Context, db database.Handle, provider user.Provider, providerAccountID string) (user.User, bool, error) {
	query, args, err := qb.Select("u.*").
		From("users u").
		Join("JOIN accounts a ON a.user_id = u.id").
		Where(qb.Eq("a.provider", string(provider)), qb.Eq("a.provider_account_id", providerAccountID)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by account query: %w", err)
	}

	var row userTableModel
	if err := sqlx.GetContext(ctx, db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by account: %w", err)
	}
	return userFromRow(row), true, nil
}

func (r *UserRepository) Update(ctx context.Context, db database.Handle, u user.User) error {
	query, args, err := qb.Update("users").
		Set("username", nullString(u.Username)).
		Set("first_name", u.FirstName).
		Set("last_name", u.LastName).
		Set("timezone", u.Timezone).
		Set("image_url", u.ImageURL).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", u.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, db database.Handle, userID string) error {
	query, args, err := qb.DeleteFrom("users").Where(qb.Eq("id", userID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete user query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, db database.Handle, op string, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").Where(cond).ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row userTableModel
	if err := sqlx.GetContext(ctx, db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return userFromRow(row), true, nil
}

type AccountRepository struct{}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

func (r *AccountRepository) Upsert(ctx context.Context, db database.Handle, account user.Account) error {
	query, args, err := qb.InsertModel("accounts", accountInsertModel{
		ID:                account.ID,
		UserID:            account.UserID,
		Provider:          string(account.Provider),
		ProviderAccountID: account.ProviderAccountID,
		AccessToken:       account.AccessToken,
		RefreshToken:      account.RefreshToken,
		ExpiresAt:         nullTime(account.ExpiresAt),
	}, qb.OnConflictUpdate([]string{"provider", "provider_account_id"}, "access_token", "refresh_token", "expires_at")+", updated_at = NOW()")
	if err != nil {
		return fmt.Errorf("build upsert account query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert account: %w", err)
	}
	return nil
}

type SessionRepository struct{}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{}
}

func (r *SessionRepository) Create(ctx context.Context, db database.Handle, session user.Session) error {
	query, args, err := qb.InsertModel("sessions", sessionInsertModel{
		ID:        session.ID,
		Token:     session.Token,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create session query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, db database.Handle, token string) (user.Session, bool, error) {
	query, args, err := qb.Select("*").From("sessions").Where(qb.Eq("token", token)).ToSQL()
	if err != nil {
		return user.Session{}, false, fmt.Errorf("build get session query: %w", err)
	}

	var row sessionTableModel
	if err := sqlx.GetContext(ctx, db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.Session{}, false, nil
		}
		return user.Session{}, false, fmt.Errorf("get session: %w", err)
	}
	return sessionFromRow(row), true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, db database.Handle, token string) error {
	query, args, err := qb.DeleteFrom("sessions").Where(qb.Eq("token", token)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete session query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, db database.Handle, now time.Time) (int64, error) {
	query, args, err := qb.DeleteFrom("sessions").Where(qb.Lte("expires_at", now)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete expired sessions query: %w", err)
	}
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected delete expired sessions: %w", err)
	}
	return affected, nil
}
