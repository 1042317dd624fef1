package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil error is clean", err: nil, want: ExitClean},
		{name: "violation", err: NewViolationError([]string{"f:1:token=SECRETKEY"}), want: ExitViolation},
		{name: "engine fault", err: NewEngineFaultError(errors.New("bad pattern")), want: ExitEngineFault},
		{name: "wrapped engine fault stays a fault", err: WrapError(NewEngineFaultError(errors.New("bad pattern")), "compiling"), want: ExitEngineFault},
		{name: "repository absent is a refusal", err: ErrRepositoryAbsent, want: ExitViolation},
		{name: "plain error", err: errors.New("boom"), want: ExitViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "context"))

	base := errors.New("base")
	wrapped := WrapError(base, "context")
	assert.True(t, errors.Is(wrapped, base))
	assert.Equal(t, "context: base", wrapped.Error())

	formatted := WrapErrorf(base, "op %s", "add")
	assert.True(t, errors.Is(formatted, base))
	assert.Equal(t, "op add: base", formatted.Error())
}

func TestViolationError_Message(t *testing.T) {
	err := NewViolationError([]string{"a:1:x", "b:2:y"})
	assert.Equal(t, "matched 2 prohibited line(s)", err.Error())
}

func TestEngineFaultError_Unwrap(t *testing.T) {
	base := errors.New("regexp: missing closing ]")
	fault := NewEngineFaultError(base)
	assert.True(t, errors.Is(fault, base))
}
