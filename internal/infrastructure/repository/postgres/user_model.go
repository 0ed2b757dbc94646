package postgres

import (
	"database/sql"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/user"
)

type userTableModel struct {
	ID        string         `db:"id"`
	Username  sql.NullString `db:"username"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Email     string         `db:"email"`
	Timezone  string         `db:"timezone"`
	ImageURL  string         `db:"image_url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type userInsertModel struct {
	ID        string         `db:"id"`
	Username  sql.NullString `db:"username"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Email     string         `db:"email"`
	Timezone  string         `db:"timezone"`
	ImageURL  string         `db:"image_url"`
}

type accountInsertModel struct {
	ID                string       `db:"id"`
	UserID            string       `db:"user_id"`
	Provider          string       `db:"provider"`
	ProviderAccountID string       `db:"provider_account_id"`
	AccessToken       string       `db:"access_token"`
	RefreshToken      string       `db:"refresh_token"`
	ExpiresAt         sql.NullTime `db:"expires_at"`
}

type sessionTableModel struct {
	ID        string    `db:"id"`
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

type sessionInsertModel struct {
	ID        string    `db:"id"`
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:        row.ID,
		Username:  row.Username.String,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Email:     row.Email,
		Timezone:  row.Timezone,
		ImageURL:  row.ImageURL,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func sessionFromRow(row sessionTableModel) user.Session {
	return user.Session{
		ID:        row.ID,
		Token:     row.Token,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}
}
