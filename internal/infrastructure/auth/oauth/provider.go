// Package oauth signs users in with the OAuth2 authorization code flow and
// reads their profile from the provider's userinfo endpoint.
package oauth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/usecase"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const (
	googleUserInfoURL  = "https://openidconnect.googleapis.com/v1/userinfo"
	discordUserInfoURL = "https://discord.com/api/users/@me"
	discordAvatarURL   = "https://cdn.discordapp.com/avatars/%s/%s.png"

	maxUserInfoBytes = 1 << 20
	defaultTimeout   = 10 * time.Second
)

type ProviderConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Endpoint and UserInfoURL override the provider defaults.
	Endpoint    *oauth2.Endpoint
	UserInfoURL string
	HTTPClient  *http.Client
}

// Provider implements usecase.IdentityProvider for one OAuth2 provider.
type Provider struct {
	name        user.Provider
	config      *oauth2.Config
	userInfoURL string
	httpClient  *http.Client
	identity    func(body []byte) (usecase.Identity, error)
}

var _ usecase.IdentityProvider = (*Provider)(nil)

func NewGoogle(cfg ProviderConfig) *Provider {
	return newProvider(user.ProviderGoogle, cfg, endpoints.Google, googleUserInfoURL,
		[]string{"openid", "email", "profile"}, googleIdentity)
}

func NewDiscord(cfg ProviderConfig) *Provider {
	return newProvider(user.ProviderDiscord, cfg, endpoints.Discord, discordUserInfoURL,
		[]string{"identify", "email"}, discordIdentity)
}

func newProvider(
	name user.Provider,
	cfg ProviderConfig,
	endpoint oauth2.Endpoint,
	userInfoURL string,
	scopes []string,
	identity func([]byte) (usecase.Identity, error),
) *Provider {
	if cfg.Endpoint != nil {
		endpoint = *cfg.Endpoint
	}
	if cfg.UserInfoURL != "" {
		userInfoURL = cfg.UserInfoURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Provider{
		name: name,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       scopes,
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
		httpClient:  httpClient,
		identity:    identity,
	}
}

func (p *Provider) Name() user.Provider {
	return p.name
}

func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (p *Provider) Exchange(ctx context.Context, code string) (usecase.Identity, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)

	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return usecase.Identity{}, fmt.Errorf("exchange %s code: %w", p.name, err)
	}

	body, err := p.fetchUserInfo(ctx, token)
	if err != nil {
		return usecase.Identity{}, err
	}
	identity, err := p.identity(body)
	if err != nil {
		return usecase.Identity{}, fmt.Errorf("decode %s userinfo: %w", p.name, err)
	}

	identity.Provider = p.name
	identity.AccessToken = token.AccessToken
	identity.RefreshToken = token.RefreshToken
	if !token.Expiry.IsZero() {
		expiry := token.Expiry.UTC()
		identity.ExpiresAt = &expiry
	}
	return identity, nil
}

func (p *Provider) fetchUserInfo(ctx context.Context, token *oauth2.Token) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s userinfo request: %w", p.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s userinfo: %w", p.name, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUserInfoBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s userinfo: %w", p.name, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s userinfo status=%d body=%s", p.name, resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

type googleUserInfo struct {
	Sub        string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Picture    string `json:"picture"`
}

func googleIdentity(body []byte) (usecase.Identity, error) {
	var info googleUserInfo
	if err := sonic.Unmarshal(body, &info); err != nil {
		return usecase.Identity{}, err
	}
	return usecase.Identity{
		AccountID: info.Sub,
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
		ImageURL:  info.Picture,
	}, nil
}

type discordUserInfo struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
}

func discordIdentity(body []byte) (usecase.Identity, error) {
	var info discordUserInfo
	if err := sonic.Unmarshal(body, &info); err != nil {
		return usecase.Identity{}, err
	}
	identity := usecase.Identity{
		AccountID: info.ID,
		Email:     info.Email,
		FirstName: info.GlobalName,
	}
	if identity.FirstName == "" {
		identity.FirstName = info.Username
	}
	if info.Avatar != "" {
		identity.ImageURL = fmt.Sprintf(discordAvatarURL, info.ID, info.Avatar)
	}
	return identity, nil
}
