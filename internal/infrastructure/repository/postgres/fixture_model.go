package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	PublicID  string         `db:"public_id"`
	Mode      string         `db:"mode"`
	Week      int            `db:"week"`
	HomeTeam  string         `db:"home_team"`
	AwayTeam  string         `db:"away_team"`
	KickoffAt time.Time      `db:"kickoff_at"`
	Venue     sql.NullString `db:"venue"`
	Status    string         `db:"status"`
	Result    sql.NullString `db:"result"`
	HomeScore sql.NullInt64  `db:"home_score"`
	AwayScore sql.NullInt64  `db:"away_score"`
}

var fixtureColumns = []string{
	"public_id",
	"mode",
	"week",
	"home_team",
	"away_team",
	"kickoff_at",
	"venue",
	"status",
	"result",
	"home_score",
	"away_score",
}
