package bookings

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	referenceLetters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	referenceDigits   = "0123456789"
	referenceAttempts = 10
)

// generateReference produces a code matching ^[A-Z]{3}[0-9]{3}$. Each
// character is drawn uniformly via crypto/rand. The code is a human-facing
// label only; it is never used as a primary key.
func generateReference() (string, error) {
	out := make([]byte, 6)
	for i := 0; i < 3; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceLetters))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random letter: %w", err)
		}
		out[i] = referenceLetters[n.Int64()]
	}
	for i := 3; i < 6; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(referenceDigits))))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		out[i] = referenceDigits[n.Int64()]
	}
	return string(out), nil
}

// referenceExists is satisfied by the repository.
type referenceExists func(ctx context.Context, reference string) (bool, error)

// newUniqueReference generates references until one is unused, with a bounded
// number of attempts. The DB unique constraint remains the final backstop
// against a race between check and insert.
func newUniqueReference(ctx context.Context, exists referenceExists) (string, error) {
	for attempt := 0; attempt < referenceAttempts; attempt++ {
		ref, err := generateReference()
		if err != nil {
			return "", err
		}

		taken, err := exists(ctx, ref)
		if err != nil {
			return "", fmt.Errorf("failed to check reference uniqueness: %w", err)
		}
		if !taken {
			return ref, nil
		}
	}
	return "", ErrReferenceExhausted
}
