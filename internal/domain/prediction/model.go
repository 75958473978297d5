package prediction

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidChoice = errors.New("invalid prediction choice")
	ErrInvalidMode   = errors.New("invalid game mode")
	// ErrPickWithdrawn is returned by Repository.Upsert when a stored 1X2 pick would be
	// replaced by a skip.
	ErrPickWithdrawn = errors.New("a pick cannot be turned into a skip")
)

// Choice is a user's pick for one fixture.
type Choice string

const (
	ChoiceHome Choice = "1"
	ChoiceDraw Choice = "X"
	ChoiceAway Choice = "2"
	ChoiceSkip Choice = "SKIP"
)

// IsPick reports whether the choice is a real 1X2 pick, as opposed to a skipped turn.
func (c Choice) IsPick() bool {
	switch c {
	case ChoiceHome, ChoiceDraw, ChoiceAway:
		return true
	default:
		return false
	}
}

func ParseChoice(value string) (Choice, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "1", "HOME":
		return ChoiceHome, nil
	case "X", "DRAW":
		return ChoiceDraw, nil
	case "2", "AWAY":
		return ChoiceAway, nil
	case "SKIP":
		return ChoiceSkip, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidChoice, value)
	}
}

const (
	ModeLive = "live"
	ModeTest = "test"
)

// ParseMode validates a game mode. Live and test are fully independent data partitions.
func ParseMode(value string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(value))
	switch mode {
	case ModeLive, ModeTest:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, value)
	}
}

// Prediction is the single stored choice of a user for a fixture in one mode.
type Prediction struct {
	ID        string
	Mode      string
	UserID    string
	FixtureID string
	Week      int
	Choice    Choice
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Prediction) ValidateBasic() error {
	if p.ID == "" {
		return fmt.Errorf("prediction id is required")
	}
	if _, err := ParseMode(p.Mode); err != nil {
		return err
	}
	if p.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if p.FixtureID == "" {
		return fmt.Errorf("fixture id is required")
	}
	if p.Week <= 0 {
		return fmt.Errorf("week must be greater than zero")
	}
	if _, err := ParseChoice(string(p.Choice)); err != nil {
		return err
	}

	return nil
}
