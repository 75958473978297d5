package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	qb "github.com/riskibarqy/prediction-league/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListByWeek(ctx context.Context, mode string, week int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(
			qb.Eq("mode", mode),
			qb.Eq("week", week),
		).
		OrderBy("kickoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by week query: %w", err)
	}

	return r.list(ctx, query, args, "select fixtures by week")
}

func (r *FixtureRepository) ListByMode(ctx context.Context, mode string) ([]fixture.Fixture, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(qb.Eq("mode", mode)).
		OrderBy("week", "kickoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select fixtures by mode query: %w", err)
	}

	return r.list(ctx, query, args, "select fixtures by mode")
}

func (r *FixtureRepository) GetByID(ctx context.Context, mode, fixtureID string) (fixture.Fixture, bool, error) {
	query, args, err := qb.Select(fixtureColumns...).From("fixtures").
		Where(
			qb.Eq("mode", mode),
			qb.Eq("public_id", fixtureID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return fixture.Fixture{}, false, fmt.Errorf("build get fixture query: %w", err)
	}

	var row fixtureTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fixture.Fixture{}, false, nil
		}
		return fixture.Fixture{}, false, fmt.Errorf("get fixture: %w", err)
	}

	return fixtureFromRow(row), true, nil
}

func (r *FixtureRepository) list(ctx context.Context, query string, args []any, op string) ([]fixture.Fixture, error) {
	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixtureFromRow(row))
	}
	return out, nil
}

func fixtureFromRow(row fixtureTableModel) fixture.Fixture {
	return fixture.Fixture{
		ID:        row.PublicID,
		Mode:      row.Mode,
		Week:      row.Week,
		HomeTeam:  row.HomeTeam,
		AwayTeam:  row.AwayTeam,
		KickoffAt: row.KickoffAt,
		Venue:     row.Venue.String,
		Status:    fixture.NormalizeStatus(row.Status),
		Outcome:   fixture.Outcome(row.Result.String),
		HomeScore: nullInt64ToIntPtr(row.HomeScore),
		AwayScore: nullInt64ToIntPtr(row.AwayScore),
	}
}
