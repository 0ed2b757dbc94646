package user

import (
	"context"
	"time"

	"github.com/picksleagues/picks-leagues/internal/platform/database"
)

type Repository interface {
	Create(ctx context.Context, db database.Handle, u User) error
	GetByID(ctx context.Context, db database.Handle, userID string) (User, bool, error)
	GetByUsername(ctx context.Context, db database.Handle, username string) (User, bool, error)
	GetByAccount(ctx context.Context, db database.Handle, provider Provider, providerAccountID string) (User, bool, error)
	Update(ctx context.Context, db database.Handle, u User) error
	Delete(ctx context.Context, db database.Handle, userID string) error
}

type AccountRepository interface {
	Upsert(ctx context.Context, db database.Handle, account Account) error
}

type SessionRepository interface {
	Create(ctx context.Context, db database.Handle, session Session) error
	GetByToken(ctx context.Context, db database.Handle, token string) (Session, bool, error)
	Delete(ctx context.Context, db database.Handle, token string) error
	DeleteExpired(ctx context.Context, db database.Handle, now time.Time) (int64, error)
}
