package workflows

import (
	"context"
	"unicode/utf8"

	"github.com/PolarWolf314/gitops-secrets/internal/masterkey"

	"github.com/google/uuid"
)

// KeyCheckOptions configures the key check workflow.
type KeyCheckOptions struct {
	// Guard supplies the key. Nil reads the environment.
	Guard *masterkey.Guard
}

// KeyCheckResult reports on the master key without revealing it.
type KeyCheckResult struct {
	Length int
}

// KeyCheck validates the master key the way every cryptographic operation
// does.
//
// Returns ErrConfiguration if the key is missing or too short.
func KeyCheck(ctx context.Context, opts KeyCheckOptions) (*KeyCheckResult, error) {
	guard := opts.Guard
	if guard == nil {
		guard = masterkey.NewGuard(nil)
	}

	key, err := guard.MasterKey()
	if err != nil {
		return nil, err
	}
	return &KeyCheckResult{Length: utf8.RuneCount(key)}, nil
}

// KeyGenerate returns a new random master key. Keys are version 4 UUIDs,
// which satisfy the minimum length.
func KeyGenerate(ctx context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
