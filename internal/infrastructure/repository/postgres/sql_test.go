package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get fixture: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation fixtures does not exist")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		if isUniqueViolation(&pq.Error{Code: "40P01"}) {
			t.Fatalf("expected false for deadlock")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fakeErr("duplicate key")) {
			t.Fatalf("expected false for non pq error")
		}
	})
}

func TestNullInt64ToIntPtr(t *testing.T) {
	if got := nullInt64ToIntPtr(sql.NullInt64{}); got != nil {
		t.Fatalf("expected nil for null, got %d", *got)
	}
	got := nullInt64ToIntPtr(sql.NullInt64{Int64: 3, Valid: true})
	if got == nil || *got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
