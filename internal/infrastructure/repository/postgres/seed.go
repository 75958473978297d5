package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/repository/memory"
)

const insertSeedFixtureSQL = `
INSERT INTO fixtures (public_id, mode, week, home_team, away_team, kickoff_at, venue, status, result, home_score, away_score)
VALUES (:public_id, :mode, :week, :home_team, :away_team, :kickoff_at, :venue, :status, :result, :home_score, :away_score)
ON CONFLICT (mode, public_id) DO NOTHING`

// BootstrapSeed loads the demo catalog into an empty fixtures table. A table that already
// holds fixtures is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, now time.Time) (int, error) {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM fixtures`); err != nil {
		return 0, fmt.Errorf("count fixtures for bootstrap seed: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	items := memory.SeedFixtures(now)
	for _, item := range items {
		sqlQuery, args, err := sqlx.Named(insertSeedFixtureSQL, fixtureToRow(item))
		if err != nil {
			return 0, fmt.Errorf("bind seed fixture %s query: %w", item.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return 0, fmt.Errorf("seed fixture %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed tx: %w", err)
	}

	return len(items), nil
}

func fixtureToRow(item fixture.Fixture) fixtureTableModel {
	return fixtureTableModel{
		PublicID:  item.ID,
		Mode:      item.Mode,
		Week:      item.Week,
		HomeTeam:  item.HomeTeam,
		AwayTeam:  item.AwayTeam,
		KickoffAt: item.KickoffAt.UTC(),
		Venue:     sql.NullString{String: item.Venue, Valid: item.Venue != ""},
		Status:    fixture.NormalizeStatus(item.Status),
		Result:    sql.NullString{String: string(item.Outcome), Valid: item.Outcome != fixture.OutcomeUnknown},
		HomeScore: intPtrToNullInt64(item.HomeScore),
		AwayScore: intPtrToNullInt64(item.AwayScore),
	}
}
