package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	domain "github.com/BruksfildServices01/saloon-scheduler/internal/domain/appointment"
)

func TestClassifyInsert(t *testing.T) {
	overlap := fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeExclusionViolation, ConstraintName: noOverlapConstraint})
	otherExclusion := &pgconn.PgError{Code: codeExclusionViolation, ConstraintName: "rooms_no_overlap"}
	duplicate := &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "appointments_pkey"}
	plain := errors.New("boom")

	if got := classifyInsert(overlap); !errors.Is(got, domain.ErrConflict) {
		t.Errorf("overlap -> %v", got)
	}
	if got := classifyInsert(otherExclusion); errors.Is(got, domain.ErrConflict) {
		t.Errorf("foreign exclusion constraint mapped to conflict")
	}
	if got := classifyInsert(duplicate); !errors.Is(got, domain.ErrIdempotencyConflict) {
		t.Errorf("duplicate -> %v", got)
	}
	if got := classifyInsert(plain); got != plain {
		t.Errorf("plain -> %v", got)
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&pgconn.PgError{Code: codeSerializationFailure}, true},
		{fmt.Errorf("tx: %w", &pgconn.PgError{Code: codeDeadlockDetected}), true},
		{&pgconn.PgError{Code: codeUniqueViolation}, false},
		{errors.New("network"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := isRetryable(tt.err); got != tt.want {
			t.Errorf("isRetryable(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestStoreFault(t *testing.T) {
	if storeFault(nil) != nil {
		t.Fatal("nil must stay nil")
	}
	for _, err := range []error{domain.ErrConflict, domain.ErrIdempotencyConflict, context.Canceled, context.DeadlineExceeded} {
		if got := storeFault(err); got != err {
			t.Errorf("storeFault(%v) = %v, want passthrough", err, got)
		}
	}

	wrapped := storeFault(errors.New("connection refused"))
	if !errors.Is(wrapped, domain.ErrStoreUnavailable) {
		t.Fatalf("got %v", wrapped)
	}
	if again := storeFault(wrapped); again != wrapped {
		t.Fatal("already wrapped faults must not be wrapped twice")
	}
}
