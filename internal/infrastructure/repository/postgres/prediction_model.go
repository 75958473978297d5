package postgres

import "time"

type predictionTableModel struct {
	PublicID  string    `db:"public_id"`
	Mode      string    `db:"mode"`
	UserID    string    `db:"user_id"`
	FixtureID string    `db:"fixture_public_id"`
	Week      int       `db:"week"`
	Choice    string    `db:"choice"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

var predictionColumns = []string{
	"public_id",
	"mode",
	"user_id",
	"fixture_public_id",
	"week",
	"choice",
	"created_at",
	"updated_at",
}
