package qubosat_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/qubo-toolkit/qubosat"
)

func TestWrap_NilPassesThrough(t *testing.T) {
	assert.NoError(t, qubosat.Wrap(qubosat.InputIo, nil))
}

func TestWrap_KindOfRoundTrips(t *testing.T) {
	cause := errors.New("boom")
	err := qubosat.Wrap(qubosat.Verification, cause)

	kind, ok := qubosat.KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, qubosat.Verification, kind)
	assert.True(t, errors.Is(err, cause))
}

func TestKindOf_NonQubosatError(t *testing.T) {
	_, ok := qubosat.KindOf(errors.New("plain"))
	assert.False(t, ok)
}
