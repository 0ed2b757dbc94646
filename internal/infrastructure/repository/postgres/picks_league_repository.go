package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/picksleagues/picks-leagues/internal/domain/picksleague"
	"github.com/picksleagues/picks-leagues/internal/platform/database"
	qb "github.com/picksleagues/picks-leagues/internal/platform/querybuilder"
)

type PicksLeagueRepository struct{}

func NewPicksLeagueRepository() *PicksLeagueRepository {
	return &PicksLeagueRepository{}
}

func (r *PicksLeagueRepository) Create(ctx context.Context, db database.Handle, league picksleague.League) error {
	query, args, err := qb.InsertModel("picks_leagues", picksLeagueInsertModel{
		ID:            league.ID,
		Name:          league.Name,
		Size:          league.Size,
		PickType:      string(league.PickType),
		PicksPerWeek:  league.PicksPerWeek,
		LogoURL:       league.LogoURL,
		SportLeagueID: league.SportLeagueID,
	}, "")
	if err != nil {
		return fmt.Errorf("build create picks league query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create picks league: %w", err)
	}
	return nil
}

func (r *PicksLeagueRepository) GetByID(ctx context.Context, db database.Handle, leagueID string) (picksleague.League, bool, error) {
	return r.get(ctx, db, leagueID, false)
}

func (r *PicksLeagueRepository) GetByIDForUpdate(ctx context.Context, db database.Handle, leagueID string) (picksleague.League, bool, error) {
	return r.get(ctx, db, leagueID, true)
}

func (r *PicksLeagueRepository) get(ctx context.Context, db database.Handle, leagueID string, lock bool) (picksleague.League, bool, error) {
	builder := qb.Select("*").From("picks_leagues").Where(qb.Eq("id", leagueID))
	if lock {
		builder = builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return picksleague.League{}, false, fmt.Errorf("build get picks league query: %w", err)
	}

	var row picksLeagueTableModel
	if err := sqlx.GetContext(ctx, db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return picksleague.League{}, false, nil
		}
		return picksleague.League{}, false, fmt.Errorf("get picks league: %w", err)
	}
	return picksLeagueFromRow(row), true, nil
}

func (r *PicksLeagueRepository) ListByUser(ctx context.Context, db database.Handle, userID string) ([]picksleague.League, error) {
	query, args, err := qb.Select("pl.*").
		From("picks_leagues pl").
		Join("JOIN picks_league_members m ON m.league_id = pl.id").
		Where(qb.Eq("m.user_id", userID)).
		OrderBy("pl.name ASC", "pl.id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks leagues by user query: %w", err)
	}

	var rows []picksLeagueTableModel
	if err := sqlx.SelectContext(ctx, db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list picks leagues by user: %w", err)
	}

	out := make([]picksleague.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, picksLeagueFromRow(row))
	}
	return out, nil
}

func (r *PicksLeagueRepository) Update(ctx context.Context, db database.Handle, league picksleague.League) error {
	query, args, err := qb.Update("picks_leagues").
		Set("name", league.Name).
		Set("size", league.Size).
		Set("pick_type", string(league.PickType)).
		Set("picks_per_week", league.PicksPerWeek).
		Set("logo_url", league.LogoURL).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", league.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update picks league query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update picks league: %w", err)
	}
	return nil
}

func (r *PicksLeagueRepository) Delete(ctx context.Context, db database.Handle, leagueID string) error {
	query, args, err := qb.DeleteFrom("picks_leagues").Where(qb.Eq("id", leagueID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete picks league query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete picks league: %w", err)
	}
	return nil
}

type PicksLeagueMemberRepository struct{}

func NewPicksLeagueMemberRepository() *PicksLeagueMemberRepository {
	return &PicksLeagueMemberRepository{}
}

func (r *PicksLeagueMemberRepository) Create(ctx context.Context, db database.Handle, member picksleague.Member) error {
	query, args, err := qb.InsertModel("picks_league_members", memberInsertModel{
		LeagueID: member.LeagueID,
		UserID:   member.UserID,
		Role:     string(member.Role),
		JoinedAt: member.JoinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build create member query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create member: %w", err)
	}
	return nil
}

func (r *PicksLeagueMemberRepository) Get(ctx context.Context, db database.Handle, leagueID, userID string) (picksleague.Member, bool, error) {
	query, args, err := qb.Select("*").
		From("picks_league_members").
		Where(qb.Eq("league_id", leagueID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return picksleague.Member{}, false, fmt.Errorf("build get member query: %w", err)
	}

	var row memberTableModel
	if err := sqlx.GetContext(ctx, db, &row, query, args...); err != nil {
		if isNotFound(err) {
			return picksleague.Member{}, false, nil
		}
		return picksleague.Member{}, false, fmt.Errorf("get member: %w", err)
	}
	return memberFromRow(row), true, nil
}

func (r *PicksLeagueMemberRepository) List(ctx context.Context, db database.Handle, leagueID string) ([]picksleague.MemberProfile, error) {
	query, args, err := qb.Select("m.league_id", "m.user_id", "m.role", "m.joined_at", "u.username", "u.first_name", "u.last_name", "u.image_url").
		From("picks_league_members m").
		Join("JOIN users u ON u.id = m.user_id").
		Where(qb.Eq("m.league_id", leagueID)).
		OrderBy("m.joined_at ASC", "m.user_id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list members query: %w", err)
	}

	var rows []memberProfileModel
	if err := sqlx.SelectContext(ctx, db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	out := make([]picksleague.MemberProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, picksleague.MemberProfile{
			Member:    memberFromRow(row.memberTableModel),
			Username:  row.Username.String,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			ImageURL:  row.ImageURL,
		})
	}
	return out, nil
}

func (r *PicksLeagueMemberRepository) ListByUser(ctx context.Context, db database.Handle, userID string) ([]picksleague.Member, error) {
	query, args, err := qb.Select("*").
		From("picks_league_members").
		Where(qb.Eq("user_id", userID)).
		OrderBy("joined_at ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships query: %w", err)
	}

	var rows []memberTableModel
	if err := sqlx.SelectContext(ctx, db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	out := make([]picksleague.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, memberFromRow(row))
	}
	return out, nil
}

func (r *PicksLeagueMemberRepository) Count(ctx context.Context, db database.Handle, leagueID string) (int, error) {
	return r.count(ctx, db, qb.Eq("league_id", leagueID))
}

func (r *PicksLeagueMemberRepository) CountByRole(ctx context.Context, db database.Handle, leagueID string, role picksleague.Role) (int, error) {
	return r.count(ctx, db, qb.Eq("league_id", leagueID), qb.Eq("role", string(role)))
}

func (r *PicksLeagueMemberRepository) count(ctx context.Context, db database.Handle, conds ...qb.Condition) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From("picks_league_members").Where(conds...).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count members query: %w", err)
	}
	var n int
	if err := sqlx.GetContext(ctx, db, &n, query, args...); err != nil {
		return 0, fmt.Errorf("count members: %w", err)
	}
	return n, nil
}

func (r *PicksLeagueMemberRepository) UpdateRole(ctx context.Context, db database.Handle, leagueID, userID string, role picksleague.Role) error {
	query, args, err := qb.Update("picks_league_members").
		Set("role", string(role)).
		Where(qb.Eq("league_id", leagueID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update member role query: %w", err)
	}
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update member role: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected update member role: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update member role: not found")
	}
	return nil
}

func (r *PicksLeagueMemberRepository) Delete(ctx context.Context, db database.Handle, leagueID, userID string) error {
	query, args, err := qb.DeleteFrom("picks_league_members").
		Where(qb.Eq("league_id", leagueID), qb.Eq("user_id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete member query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete member: %w", err)
	}
	return nil
}
