package espn

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/sport"
	"github.com/picksleagues/picks-leagues/internal/usecase"
)

var _ usecase.SportDataProvider = (*Client)(nil)

func (c *Client) FetchLeague(ctx context.Context, target sport.SyncTarget) (usecase.ExternalLeague, error) {
	return c.leagues.GetOrLoad(ctx, target.Key(), func(ctx context.Context) (usecase.ExternalLeague, error) {
		res, err := fetch[leagueResource](ctx, c, c.leagueURL(target.Sport, target.League))
		if err != nil {
			return usecase.ExternalLeague{}, fmt.Errorf("fetch league %s: %w", target.Key(), err)
		}
		return usecase.ExternalLeague{
			ESPNID:       res.ID,
			Sport:        target.Sport,
			Slug:         firstNonEmpty(res.Slug, target.League),
			Name:         res.Name,
			Abbreviation: res.Abbreviation,
			LogoURL:      pickLogo(res.Logos),
		}, nil
	})
}

func (c *Client) FetchSeasons(ctx context.Context, target sport.SyncTarget, minYear int) ([]usecase.ExternalSeason, error) {
	refs, err := c.listRefs(ctx, c.leagueURL(target.Sport, target.League)+"/seasons")
	if err != nil {
		return nil, fmt.Errorf("list seasons %s: %w", target.Key(), err)
	}

	refs = slices.DeleteFunc(refs, func(ref string) bool {
		year, ok := yearFromRef(ref)
		return ok && year < minYear
	})

	resources, err := resolveRefs(ctx, c, refs, func(ctx context.Context, ref string) (seasonResource, error) {
		return fetch[seasonResource](ctx, c, ref)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve seasons %s: %w", target.Key(), err)
	}

	out := make([]usecase.ExternalSeason, 0, len(resources))
	for _, res := range resources {
		if res.Year < minYear {
			continue
		}
		start, err := parseTime(res.StartDate)
		if err != nil {
			return nil, fmt.Errorf("season %d start: %w", res.Year, err)
		}
		end, err := parseTime(res.EndDate)
		if err != nil {
			return nil, fmt.Errorf("season %d end: %w", res.Year, err)
		}
		out = append(out, usecase.ExternalSeason{
			Year:      strconv.Itoa(res.Year),
			Name:      firstNonEmpty(res.DisplayName, strconv.Itoa(res.Year)),
			StartTime: start,
			EndTime:   end,
		})
	}
	return out, nil
}

func (c *Client) FetchTeams(ctx context.Context, target sport.SyncTarget, seasonYear string) ([]usecase.ExternalTeam, error) {
	listURL := fmt.Sprintf("%s/seasons/%s/teams", c.leagueURL(target.Sport, target.League), url.PathEscape(seasonYear))
	refs, err := c.listRefs(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("list teams %s %s: %w", target.Key(), seasonYear, err)
	}

	resources, err := resolveRefs(ctx, c, refs, func(ctx context.Context, ref string) (teamResource, error) {
		return fetch[teamResource](ctx, c, ref)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve teams %s %s: %w", target.Key(), seasonYear, err)
	}

	out := make([]usecase.ExternalTeam, 0, len(resources))
	for _, res := range resources {
		out = append(out, usecase.ExternalTeam{
			ESPNID:       res.ID,
			Name:         firstNonEmpty(res.Name, res.DisplayName),
			Location:     res.Location,
			Abbreviation: res.Abbreviation,
			LogoURL:      pickLogo(res.Logos),
		})
	}
	return out, nil
}

func (c *Client) FetchWeeks(ctx context.Context, target sport.SyncTarget, seasonYear string, seasonType int) ([]usecase.ExternalWeek, error) {
	listURL := fmt.Sprintf("%s/seasons/%s/types/%d/weeks",
		c.leagueURL(target.Sport, target.League), url.PathEscape(seasonYear), seasonType)
	refs, err := c.listRefs(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("list weeks %s %s type=%d: %w", target.Key(), seasonYear, seasonType, err)
	}

	resources, err := resolveRefs(ctx, c, refs, func(ctx context.Context, ref string) (weekResource, error) {
		return fetch[weekResource](ctx, c, ref)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve weeks %s %s type=%d: %w", target.Key(), seasonYear, seasonType, err)
	}

	out := make([]usecase.ExternalWeek, 0, len(resources))
	for _, res := range resources {
		start, err := parseTime(res.StartDate)
		if err != nil {
			return nil, fmt.Errorf("week %d start: %w", res.Number, err)
		}
		end, err := parseTime(res.EndDate)
		if err != nil {
			return nil, fmt.Errorf("week %d end: %w", res.Number, err)
		}
		out = append(out, usecase.ExternalWeek{
			SeasonType: seasonType,
			Number:     res.Number,
			Name:       firstNonEmpty(res.Text, fmt.Sprintf("Week %d", res.Number)),
			StartTime:  start,
			EndTime:    end,
		})
	}
	return out, nil
}

func (c *Client) FetchGames(ctx context.Context, target sport.SyncTarget, seasonYear string, seasonType, week int) ([]usecase.ExternalGame, error) {
	listURL := fmt.Sprintf("%s/seasons/%s/types/%d/weeks/%d/events",
		c.leagueURL(target.Sport, target.League), url.PathEscape(seasonYear), seasonType, week)
	refs, err := c.listRefs(ctx, listURL)
	if err != nil {
		return nil, fmt.Errorf("list events %s %s week=%d-%d: %w", target.Key(), seasonYear, seasonType, week, err)
	}

	games, err := resolveRefs(ctx, c, refs, func(ctx context.Context, ref string) (usecase.ExternalGame, error) {
		return c.resolveEvent(ctx, ref)
	})
	if err != nil {
		return nil, fmt.Errorf("resolve events %s %s week=%d-%d: %w", target.Key(), seasonYear, seasonType, week, err)
	}
	for i := range games {
		games[i].SeasonType = seasonType
		games[i].WeekNumber = week
	}
	return games, nil
}

// resolveEvent follows an event's competition, its score refs and its status ref.
func (c *Client) resolveEvent(ctx context.Context, ref string) (usecase.ExternalGame, error) {
	event, err := fetch[eventResource](ctx, c, ref)
	if err != nil {
		return usecase.ExternalGame{}, err
	}
	if len(event.Competitions) == 0 {
		return usecase.ExternalGame{}, fmt.Errorf("event %s has no competitions", event.ID)
	}
	competition := event.Competitions[0]

	start, err := parseTime(firstNonEmpty(competition.Date, event.Date))
	if err != nil {
		return usecase.ExternalGame{}, fmt.Errorf("event %s date: %w", event.ID, err)
	}

	game := usecase.ExternalGame{
		EventID:   event.ID,
		Status:    sport.GameStatusScheduled,
		StartTime: start,
	}
	for _, competitor := range competition.Competitors {
		score := 0
		if competitor.Score.Ref != "" {
			res, err := fetch[scoreResource](ctx, c, c.normalizeRef(competitor.Score.Ref))
			if err != nil {
				return usecase.ExternalGame{}, fmt.Errorf("event %s score: %w", event.ID, err)
			}
			score = int(res.Value)
		}
		switch competitor.HomeAway {
		case "home":
			game.HomeTeamESPNID = competitor.ID
			game.HomeScore = score
		case "away":
			game.AwayTeamESPNID = competitor.ID
			game.AwayScore = score
		}
	}
	if game.HomeTeamESPNID == "" || game.AwayTeamESPNID == "" {
		return usecase.ExternalGame{}, fmt.Errorf("event %s is missing a home or away competitor", event.ID)
	}

	if competition.Status.Ref != "" {
		status, err := fetch[statusResource](ctx, c, c.normalizeRef(competition.Status.Ref))
		if err != nil {
			return usecase.ExternalGame{}, fmt.Errorf("event %s status: %w", event.ID, err)
		}
		game.Status = mapStatus(status)
		game.Clock = status.DisplayClock
		game.Period = status.Period
	}
	return game, nil
}

func (c *Client) FetchOdds(ctx context.Context, target sport.SyncTarget, eventID string) ([]usecase.ExternalOdds, error) {
	id := url.PathEscape(eventID)
	listURL := fmt.Sprintf("%s/events/%s/competitions/%s/odds", c.leagueURL(target.Sport, target.League), id, id)
	items, err := listPages[oddsResource](ctx, c, listURL)
	if err != nil {
		return nil, fmt.Errorf("list odds %s event=%s: %w", target.Key(), eventID, err)
	}

	out := make([]usecase.ExternalOdds, 0, len(items))
	for _, item := range items {
		if item.Provider.ID == "" {
			continue
		}
		out = append(out, usecase.ExternalOdds{
			EventID:        eventID,
			ProviderESPNID: item.Provider.ID,
			ProviderName:   item.Provider.Name,
			Spread:         item.Spread,
			OverUnder:      item.OverUnder,
			HomeFavorite:   item.HomeTeamOdds.Favorite,
			AwayFavorite:   item.AwayTeamOdds.Favorite,
		})
	}
	return out, nil
}

func mapStatus(s statusResource) sport.GameStatus {
	switch s.Type.Name {
	case "STATUS_SCHEDULED":
		return sport.GameStatusScheduled
	case "STATUS_FINAL", "STATUS_FINAL_OVERTIME":
		return sport.GameStatusFinal
	case "STATUS_POSTPONED", "STATUS_DELAYED":
		return sport.GameStatusPostponed
	case "STATUS_CANCELED", "STATUS_FORFEIT":
		return sport.GameStatusCanceled
	}
	switch {
	case s.Type.Completed || s.Type.State == "post":
		return sport.GameStatusFinal
	case s.Type.State == "in":
		return sport.GameStatusInProgress
	default:
		return sport.GameStatusScheduled
	}
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05.000Z07:00",
}

func parseTime(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", raw)
}

// yearFromRef reads the season year from refs like .../seasons/2025?lang=en.
func yearFromRef(ref string) (int, bool) {
	parsed, err := url.Parse(ref)
	if err != nil {
		return 0, false
	}
	year, err := strconv.Atoi(path.Base(parsed.Path))
	if err != nil {
		return 0, false
	}
	return year, true
}

func pickLogo(logos []logo) string {
	for _, l := range logos {
		if slices.Contains(l.Rel, "default") {
			return l.Href
		}
	}
	if len(logos) > 0 {
		return logos[0].Href
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
