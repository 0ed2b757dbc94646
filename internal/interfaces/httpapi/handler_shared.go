package httpapi

import (
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/picksleagues/picks-leagues/internal/domain/invite"
	"github.com/picksleagues/picks-leagues/internal/domain/pick"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/domain/user"
	"github.com/picksleagues/picks-leagues/internal/usecase"
)

type updateProfileRequest struct {
	Username  *string `json:"username" validate:"omitempty,max=20"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Timezone  *string `json:"timezone" validate:"omitempty,max=64"`
	ImageURL  *string `json:"imageUrl" validate:"omitempty,max=2048"`
}

type createLeagueRequest struct {
	Name          string `json:"name" validate:"required"`
	Size          int    `json:"size"`
	PickType      string `json:"pickType" validate:"required"`
	PicksPerWeek  int    `json:"picksPerWeek"`
	LogoURL       string `json:"logoUrl" validate:"omitempty,url"`
	SportLeagueID string `json:"sportLeagueId" validate:"required"`
	StartWeekID   string `json:"startWeekId" validate:"required"`
	EndWeekID     string `json:"endWeekId" validate:"required"`
}

type updateLeagueRequest struct {
	Name         *string `json:"name"`
	Size         *int    `json:"size"`
	PickType     *string `json:"pickType"`
	PicksPerWeek *int    `json:"picksPerWeek"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
	StartWeekID  *string `json:"startWeekId"`
	EndWeekID    *string `json:"endWeekId"`
}

type updateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type createInviteRequest struct {
	Role   string `json:"role"`
	UserID string `json:"userId"`
}

type submitPicksRequest struct {
	Picks []pickRequest `json:"picks" validate:"required,dive"`
}

type pickRequest struct {
	GameID string `json:"gameId" validate:"required"`
	TeamID string `json:"teamId" validate:"required"`
}

type userDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Timezone  string    `json:"timezone"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

type mobileTokenDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type sportLeagueDTO struct {
	ID           string `json:"id"`
	Sport        string `json:"sport"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	LogoURL      string `json:"logoUrl"`
}

type seasonDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type weekDTO struct {
	ID         string    `json:"id"`
	SeasonID   string    `json:"seasonId"`
	SeasonType int       `json:"seasonType"`
	Number     int       `json:"number"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"startTime"`
	EndTime    time.Time `json:"endTime"`
}

type seasonWeeksDTO struct {
	Season *seasonDTO `json:"season"`
	Weeks  []weekDTO  `json:"weeks"`
}

type leagueDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Size          int       `json:"size"`
	PickType      string    `json:"pickType"`
	PicksPerWeek  int       `json:"picksPerWeek"`
	LogoURL       string    `json:"logoUrl"`
	SportLeagueID string    `json:"sportLeagueId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type leagueStatusDTO struct {
	InSeason              bool `json:"inSeason"`
	CanEditSeasonSettings bool `json:"canEditSeasonSettings"`
}

type weekNavigationDTO struct {
	Previous *weekDTO `json:"previous"`
	Next     *weekDTO `json:"next"`
}

type memberDTO struct {
	LeagueID  string    `json:"leagueId"`
	UserID    string    `json:"userId"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
	Username  string    `json:"username,omitempty"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty"`
}

type inviteDTO struct {
	ID         string    `json:"id"`
	LeagueID   string    `json:"leagueId"`
	LeagueName string    `json:"leagueName,omitempty"`
	Role       string    `json:"role"`
	UserID     string    `json:"userId,omitempty"`
	Status     string    `json:"status,omitempty"`
	ExpiresAt  time.Time `json:"expiresAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

type pickDTO struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	WeekID    string    `json:"weekId"`
	GameID    string    `json:"gameId"`
	TeamID    string    `json:"teamId"`
	Spread    *float64  `json:"spread"`
	CreatedAt time.Time `json:"createdAt"`
}

type standingDTO struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ImageURL  string `json:"imageUrl"`
	Wins      int    `json:"wins"`
	Losses    int    `json:"losses"`
	Pushes    int    `json:"pushes"`
}

type ingestionRunDTO struct {
	ID         string     `json:"id"`
	Entity     string     `json:"entity"`
	Trigger    string     `json:"trigger"`
	Status     string     `json:"status"`
	Upserted   int        `json:"upserted"`
	Skipped    int        `json:"skipped"`
	Error      string     `json:"error,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	FinishedAt *time.Time `json:"finishedAt"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Timezone:  u.Timezone,
		ImageURL:  u.ImageURL,
		CreatedAt: u.CreatedAt,
	}
}

func sportLeagueToDTO(l sport.League) sportLeagueDTO {
	return sportLeagueDTO{
		ID:           l.ID,
		Sport:        l.Sport,
		Slug:         l.Slug,
		Name:         l.Name,
		Abbreviation: l.Abbreviation,
		LogoURL:      l.LogoURL,
	}
}

func weekToDTO(w sport.Week) weekDTO {
	return weekDTO{
		ID:         w.ID,
		SeasonID:   w.SeasonID,
		SeasonType: w.SeasonType,
		Number:     w.Number,
		Name:       w.Name,
		StartTime:  w.StartTime,
		EndTime:    w.EndTime,
	}
}

func optionalWeekToDTO(w *sport.Week) *weekDTO {
	if w == nil {
		return nil
	}
	dto := weekToDTO(*w)
	return &dto
}

func seasonWeeksToDTO(sw usecase.SeasonWeeks) seasonWeeksDTO {
	out := seasonWeeksDTO{Weeks: make([]weekDTO, 0, len(sw.Weeks))}
	if sw.Season.ID != "" {
		out.Season = &seasonDTO{
			ID:        sw.Season.ID,
			Name:      sw.Season.Name,
			StartTime: sw.Season.StartTime,
			EndTime:   sw.Season.EndTime,
		}
	}
	for _, w := range sw.Weeks {
		out.Weeks = append(out.Weeks, weekToDTO(w))
	}
	return out
}

func leagueToDTO(l picksleague.League) leagueDTO {
	return leagueDTO{
		ID:            l.ID,
		Name:          l.Name,
		Size:          l.Size,
		PickType:      string(l.PickType),
		PicksPerWeek:  l.PicksPerWeek,
		LogoURL:       l.LogoURL,
		SportLeagueID: l.SportLeagueID,
		CreatedAt:     l.CreatedAt,
	}
}

func memberToDTO(m picksleague.Member) memberDTO {
	return memberDTO{
		LeagueID: m.LeagueID,
		UserID:   m.UserID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt,
	}
}

func memberProfileToDTO(m picksleague.MemberProfile) memberDTO {
	dto := memberToDTO(m.Member)
	dto.Username = m.Username
	dto.FirstName = m.FirstName
	dto.LastName = m.LastName
	dto.ImageURL = m.ImageURL
	return dto
}

func inviteToDTO(inv invite.Invite) inviteDTO {
	return inviteDTO{
		ID:        inv.ID,
		LeagueID:  inv.LeagueID,
		Role:      string(inv.Role),
		UserID:    inv.UserID,
		ExpiresAt: inv.ExpiresAt,
		CreatedAt: inv.CreatedAt,
	}
}

func inviteDetailsToDTO(d usecase.InviteDetails) inviteDTO {
	dto := inviteToDTO(d.Invite)
	dto.LeagueName = d.LeagueName
	dto.Status = string(d.Status)
	return dto
}

func pickToDTO(p pick.Pick) pickDTO {
	return pickDTO{
		ID:        p.ID,
		UserID:    p.UserID,
		WeekID:    p.WeekID,
		GameID:    p.GameID,
		TeamID:    p.TeamID,
		Spread:    p.Spread,
		CreatedAt: p.CreatedAt,
	}
}

func standingToDTO(s usecase.Standing) standingDTO {
	return standingDTO{
		UserID:    s.UserID,
		Username:  s.Username,
		FirstName: s.FirstName,
		LastName:  s.LastName,
		ImageURL:  s.ImageURL,
		Wins:      s.Wins,
		Losses:    s.Losses,
		Pushes:    s.Pushes,
	}
}

func runToDTO(r ingestionrun.Run) ingestionRunDTO {
	return ingestionRunDTO{
		ID:         r.ID,
		Entity:     string(r.Entity),
		Trigger:    string(r.Trigger),
		Status:     string(r.Status),
		Upserted:   r.Upserted,
		Skipped:    r.Skipped,
		Error:      r.Error,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}

func mapSlice[T, D any](items []T, fn func(T) D) []D {
	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
