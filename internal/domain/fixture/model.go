package fixture

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// Outcome is the final 1X2 result of a match.
type Outcome string

const (
	OutcomeUnknown Outcome = ""
	OutcomeHome    Outcome = "1"
	OutcomeDraw    Outcome = "X"
	OutcomeAway    Outcome = "2"
)

// Fixture represents one scheduled match of a week in a game mode partition.
type Fixture struct {
	ID        string
	Mode      string
	Week      int
	HomeTeam  string
	AwayTeam  string
	KickoffAt time.Time
	Venue     string
	Status    string
	Outcome   Outcome
	HomeScore *int
	AwayScore *int
}

// Result returns the final outcome, or OutcomeUnknown while the match is not played.
// An explicit outcome wins; otherwise it is derived from the final score of a finished match.
func (f Fixture) Result() Outcome {
	if outcome, ok := ParseOutcome(string(f.Outcome)); ok && outcome != OutcomeUnknown {
		return outcome
	}
	if !IsFinishedStatus(f.Status) || f.HomeScore == nil || f.AwayScore == nil {
		return OutcomeUnknown
	}

	switch {
	case *f.HomeScore > *f.AwayScore:
		return OutcomeHome
	case *f.HomeScore < *f.AwayScore:
		return OutcomeAway
	default:
		return OutcomeDraw
	}
}

func ParseOutcome(value string) (Outcome, bool) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "":
		return OutcomeUnknown, true
	case "1", "HOME":
		return OutcomeHome, true
	case "X", "DRAW":
		return OutcomeDraw, true
	case "2", "AWAY":
		return OutcomeAway, true
	default:
		return OutcomeUnknown, false
	}
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, "IN_PLAY", "HT", "1H", "2H", "ET":
		return true
	default:
		return false
	}
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}

func IsCancelledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusCancelled, StatusPostponed, "ABANDONED":
		return true
	default:
		return false
	}
}
