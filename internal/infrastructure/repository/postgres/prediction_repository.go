package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
	qb "github.com/riskibarqy/prediction-league/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Get(ctx context.Context, mode, userID, fixtureID string) (prediction.Prediction, bool, error) {
	query, args, err := qb.Select(predictionColumns...).From("predictions").
		Where(
			qb.Eq("mode", mode),
			qb.Eq("user_id", userID),
			qb.Eq("fixture_public_id", fixtureID),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return prediction.Prediction{}, false, fmt.Errorf("build get prediction query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, false, nil
		}
		return prediction.Prediction{}, false, fmt.Errorf("get prediction: %w", err)
	}

	return predictionFromRow(row), true, nil
}

// Upsert relies on the (mode, user_id, fixture_public_id) unique key; an existing row keeps
// its public_id and created_at. A stored pick is never overwritten by a skip: the guarded
// update returns no row and Upsert reports prediction.ErrPickWithdrawn.
func (r *PredictionRepository) Upsert(ctx context.Context, item prediction.Prediction) (prediction.Prediction, error) {
	insertModel := predictionTableModel{
		PublicID:  item.ID,
		Mode:      item.Mode,
		UserID:    item.UserID,
		FixtureID: item.FixtureID,
		Week:      item.Week,
		Choice:    string(item.Choice),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}

	query, args, err := qb.InsertModel("predictions", insertModel, `ON CONFLICT (mode, user_id, fixture_public_id)
DO UPDATE SET
    choice = EXCLUDED.choice,
    week = EXCLUDED.week,
    updated_at = EXCLUDED.updated_at
WHERE NOT (predictions.choice <> 'SKIP' AND EXCLUDED.choice = 'SKIP')
RETURNING `+strings.Join(predictionColumns, ", "))
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("build prediction upsert query: %w", err)
	}

	var row predictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return prediction.Prediction{}, fmt.Errorf("upsert prediction fixture=%s: %w", item.FixtureID, prediction.ErrPickWithdrawn)
		}
		if isUniqueViolation(err) {
			return prediction.Prediction{}, fmt.Errorf("upsert prediction: public id %s already taken: %w", item.ID, err)
		}
		return prediction.Prediction{}, fmt.Errorf("upsert prediction: %w", err)
	}

	return predictionFromRow(row), nil
}

func (r *PredictionRepository) ListByUserAndWeek(ctx context.Context, mode, userID string, week int) ([]prediction.Prediction, error) {
	query, args, err := qb.Select(predictionColumns...).From("predictions").
		Where(
			qb.Eq("mode", mode),
			qb.Eq("user_id", userID),
			qb.Eq("week", week),
		).
		OrderBy("fixture_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by week query: %w", err)
	}

	return r.list(ctx, query, args, "select predictions by week")
}

func (r *PredictionRepository) ListByUser(ctx context.Context, mode, userID string) ([]prediction.Prediction, error) {
	query, args, err := qb.Select(predictionColumns...).From("predictions").
		Where(
			qb.Eq("mode", mode),
			qb.Eq("user_id", userID),
		).
		OrderBy("week", "fixture_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions by user query: %w", err)
	}

	return r.list(ctx, query, args, "select predictions by user")
}

func (r *PredictionRepository) DeleteByUser(ctx context.Context, mode, userID string) (int, error) {
	query, args, err := qb.DeleteFrom("predictions").
		Where(
			qb.Eq("mode", mode),
			qb.Eq("user_id", userID),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete predictions query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete predictions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read deleted predictions count: %w", err)
	}

	return int(affected), nil
}

func (r *PredictionRepository) list(ctx context.Context, query string, args []any, op string) ([]prediction.Prediction, error) {
	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, predictionFromRow(row))
	}
	return out, nil
}

func predictionFromRow(row predictionTableModel) prediction.Prediction {
	return prediction.Prediction{
		ID:        row.PublicID,
		Mode:      row.Mode,
		UserID:    row.UserID,
		FixtureID: row.FixtureID,
		Week:      row.Week,
		Choice:    prediction.Choice(row.Choice),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
