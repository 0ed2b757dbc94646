package user

import (
	"regexp"
	"time"
)

const DefaultTimezone = "America/New_York"

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)

// User is an account holder. Username stays empty until profile setup.
type User struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Email     string
	Timezone  string
	ImageURL  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) HasProfile() bool {
	return u.Username != ""
}

func ValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

type Provider string

const (
	ProviderGoogle  Provider = "google"
	ProviderDiscord Provider = "discord"
)

// Account links a user to an identity at an OAuth provider.
type Account struct {
	ID                string
	UserID            string
	Provider          Provider
	ProviderAccountID string
	AccessToken       string
	RefreshToken      string
	ExpiresAt         *time.Time
}

type Session struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Principal is the authenticated caller every service operation acts for.
type Principal struct {
	UserID    string
	Username  string
	SessionID string
}

func (p Principal) HasProfile() bool {
	return p.Username != ""
}
