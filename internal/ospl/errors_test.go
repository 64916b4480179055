package ospl_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"ospl-go/internal/ospl"
)

func TestError_Is(t *testing.T) {
	err := fmt.Errorf("outer: %w", &ospl.Error{Kind: ospl.KindNotFound, Op: "load photo", Err: errors.New("id 3")})

	assert.ErrorIs(t, err, ospl.ErrNotFound)
	assert.NotErrorIs(t, err, ospl.ErrAlreadyExists)
	assert.Equal(t, ospl.KindNotFound, ospl.KindOf(err))
	assert.Equal(t, ospl.KindOther, ospl.KindOf(errors.New("plain")))
}

func TestStepError(t *testing.T) {
	cause := &ospl.Error{Kind: ospl.KindIO, Op: "place album", Err: errors.New("disk full")}
	err := &ospl.StepError{Op: "create album", Outcome: ospl.RelationalOnly, ID: 7, Err: cause}

	assert.ErrorIs(t, err, ospl.ErrIO)
	assert.Contains(t, err.Error(), "id 7")
	assert.Contains(t, err.Error(), "relational only")
	assert.Equal(t, ospl.RelationalOnly, ospl.OutcomeOf(fmt.Errorf("wrapped: %w", err)))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "not applied", ospl.NotApplied.String())
	assert.Equal(t, "filesystem only", ospl.FilesystemOnly.String())
	assert.Equal(t, "applied", ospl.Applied.String())
	assert.Equal(t, "outcome(9)", ospl.Outcome(9).String())
}
