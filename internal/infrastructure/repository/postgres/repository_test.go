package postgres

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return sqlx.NewDb(mockDB, "postgres"), mock
}

func TestFixtureRepository_ListByWeek(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFixtureRepository(db)
	kickoff := time.Date(2023, 8, 19, 16, 30, 0, 0, time.UTC)

	rows := sqlmock.NewRows(fixtureColumns).
		AddRow("test-w01-01", "test", 1, "Inter", "Monza", kickoff, "San Siro", "finished", nil, 2, 0).
		AddRow("test-w01-02", "test", 1, "Lecce", "Lazio", kickoff.Add(time.Hour), nil, "SCHEDULED", nil, nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT public_id, mode, week, home_team, away_team, kickoff_at, venue, status, result, home_score, away_score FROM fixtures WHERE mode = $1 AND week = $2 ORDER BY kickoff_at, public_id",
	)).WithArgs("test", 1).WillReturnRows(rows)

	got, err := repo.ListByWeek(t.Context(), "test", 1)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, fixture.StatusFinished, got[0].Status)
	assert.Equal(t, fixture.OutcomeHome, got[0].Result())
	assert.Equal(t, "San Siro", got[0].Venue)
	assert.Nil(t, got[1].HomeScore)
	assert.Equal(t, fixture.OutcomeUnknown, got[1].Result())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFixtureRepository_GetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFixtureRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM fixtures WHERE mode = $1 AND public_id = $2 LIMIT 1")).
		WithArgs("live", "missing").
		WillReturnError(sql.ErrNoRows)

	_, exists, err := repo.GetByID(t.Context(), "live", "missing")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPredictionRepository(db)
	created := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(2 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta(
		"INSERT INTO predictions (public_id, mode, user_id, fixture_public_id, week, choice, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (mode, user_id, fixture_public_id)",
	)).
		WithArgs("new-id", "live", "user-1", "live-w01-01", 1, "X", updated, updated).
		WillReturnRows(sqlmock.NewRows(predictionColumns).
			AddRow("orig-id", "live", "user-1", "live-w01-01", 1, "X", created, updated))

	got, err := repo.Upsert(t.Context(), prediction.Prediction{
		ID:        "new-id",
		Mode:      "live",
		UserID:    "user-1",
		FixtureID: "live-w01-01",
		Week:      1,
		Choice:    prediction.ChoiceDraw,
		CreatedAt: updated,
		UpdatedAt: updated,
	})
	require.NoError(t, err)

	assert.Equal(t, "orig-id", got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, prediction.ChoiceDraw, got.Choice)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionRepository_UpsertGuardedAgainstPickWithdrawal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPredictionRepository(db)
	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE NOT (predictions.choice <> 'SKIP' AND EXCLUDED.choice = 'SKIP')",
	)).
		WithArgs("new-id", "live", "user-1", "live-w01-01", 1, "SKIP", at, at).
		WillReturnRows(sqlmock.NewRows(predictionColumns))

	_, err := repo.Upsert(t.Context(), prediction.Prediction{
		ID:        "new-id",
		Mode:      "live",
		UserID:    "user-1",
		FixtureID: "live-w01-01",
		Week:      1,
		Choice:    prediction.ChoiceSkip,
		CreatedAt: at,
		UpdatedAt: at,
	})
	require.ErrorIs(t, err, prediction.ErrPickWithdrawn)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionRepository_ListByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPredictionRepository(db)
	at := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM predictions WHERE mode = $1 AND user_id = $2 ORDER BY week, fixture_public_id")).
		WithArgs("test", "user-1").
		WillReturnRows(sqlmock.NewRows(predictionColumns).
			AddRow("p-1", "test", "user-1", "test-w01-01", 1, "1", at, at).
			AddRow("p-2", "test", "user-1", "test-w02-01", 2, "SKIP", at, at))

	got, err := repo.ListByUser(t.Context(), "test", "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, prediction.ChoiceSkip, got[1].Choice)
	assert.Equal(t, 2, got[1].Week)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionRepository_DeleteByUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPredictionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM predictions WHERE mode = $1 AND user_id = $2")).
		WithArgs("test", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 7))

	removed, err := repo.DeleteByUser(t.Context(), "test", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 7, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPredictionRepository_GetPropagatesErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPredictionRepository(db)
	boom := errors.New("connection reset by peer")

	mock.ExpectQuery(regexp.QuoteMeta("FROM predictions WHERE mode = $1 AND user_id = $2 AND fixture_public_id = $3 LIMIT 1")).
		WithArgs("live", "user-1", "fx-1").
		WillReturnError(boom)

	_, _, err := repo.Get(t.Context(), "live", "user-1", "fx-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
