package rng

import (
	"context"
	"math/rand"
)

// StreamAdapter implements the RNGPort interface over math/rand
type StreamAdapter struct{}

// NewStreamAdapter creates a new seeded-stream adapter
func NewStreamAdapter() *StreamAdapter {
	return &StreamAdapter{}
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *StreamAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if name != "" {
		seed += int64(hashString(name))
	}
	return rand.New(rand.NewSource(seed)), nil
}

// Stream creates a deterministic RNG stream for a specific run/group pair.
// Hashing runID and group into the seed ensures the control and treatment
// draws of one run consume independent randomness, while re-running with the
// same identifiers reproduces the exact sequences.
func (a *StreamAdapter) Stream(ctx context.Context, runID, group string, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	if runID != "" {
		seed += int64(hashString(runID))
	}
	if group != "" {
		seed += int64(hashString(group))
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c) // djb2 algorithm
	}
	return hash
}
