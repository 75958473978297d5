package usecase

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
)

func normalizeMode(value string) (string, error) {
	mode, err := prediction.ParseMode(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return mode, nil
}

func normalizeUserID(value string) (string, error) {
	userID := strings.TrimSpace(value)
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return userID, nil
}

func validateWeek(week, maxWeek int) error {
	if week < 1 || (maxWeek > 0 && week > maxWeek) {
		return fmt.Errorf("%w: week must be between 1 and %d", ErrInvalidInput, maxWeek)
	}
	return nil
}
