package bookings

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var referencePattern = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)

func TestGenerateReference_Format(t *testing.T) {
	for i := 0; i < 1000; i++ {
		ref, err := generateReference()
		require.NoError(t, err)
		assert.Regexp(t, referencePattern, ref)
	}
}

func TestGenerateReference_LettersRoughlyUniform(t *testing.T) {
	// 60000 references give 180000 letter draws, ~6923 expected per letter.
	// A byte-modulo draw would pull W-Z down to ~6330; the floor sits well
	// between the two.
	const refs = 60000
	counts := make(map[byte]int, 26)
	for i := 0; i < refs; i++ {
		ref, err := generateReference()
		require.NoError(t, err)
		for j := 0; j < 3; j++ {
			counts[ref[j]]++
		}
	}

	for c := byte('A'); c <= 'Z'; c++ {
		assert.Greater(t, counts[c], 6550, "letter %c drawn too rarely", c)
	}
}

func TestNewUniqueReference_RetriesOnCollision(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, reference string) (bool, error) {
		calls++
		return calls < 3, nil // first two references are taken
	}

	ref, err := newUniqueReference(context.Background(), exists)
	require.NoError(t, err)
	assert.Regexp(t, referencePattern, ref)
	assert.Equal(t, 3, calls)
}

func TestNewUniqueReference_BoundedAttempts(t *testing.T) {
	calls := 0
	exists := func(ctx context.Context, reference string) (bool, error) {
		calls++
		return true, nil // everything is taken
	}

	_, err := newUniqueReference(context.Background(), exists)
	assert.ErrorIs(t, err, ErrReferenceExhausted)
	assert.Equal(t, referenceAttempts, calls)
}
