package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{&ValidationError{Field: "date", Reason: "expected DD/MM/YYYY"}, "validation"},
		{&NotFoundError{Resource: "pilot", ID: "P9"}, "not_found"},
		{fmt.Errorf("wrapped: %w", &ConflictError{Resource: "aircraft", Date: "01/06/2025"}), "conflict"},
		{&InUseError{Resource: "aircraft", ID: "A1", References: 2}, "in_use"},
		{&DuplicateError{Resource: "airport", ID: "LHR"}, "duplicate"},
		{&PersistenceError{Op: "insert flight", Err: errors.New("locked")}, "persistence"},
		{errors.New("boom"), "internal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.kind, ErrorKind(tt.err), tt.err.Error())
	}
}

func TestConflictError_Message(t *testing.T) {
	err := &ConflictError{Resource: "pilot", ID: "P2", Date: "01/06/2025", Candidates: []string{"P1", "P3"}}
	assert.Equal(t, `pilot "P2" is already assigned on 01/06/2025 (available: P1, P3)`, err.Error())

	err.Candidates = nil
	assert.Equal(t, `pilot "P2" is already assigned on 01/06/2025 and no other pilot is available`, err.Error())
}

func TestPersistenceError_KeepsCause(t *testing.T) {
	cause := errors.New("database is locked")
	err := &PersistenceError{Op: "insert flight", Err: cause}

	assert.Equal(t, "flight rejected: insert flight failed", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrPersistence))
}
