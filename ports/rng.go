package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic draws
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream creates a deterministic RNG stream for a specific run/group pair.
	// This ensures re-drawing a group for the same run produces identical outcomes.
	Stream(ctx context.Context, runID, group string, baseSeed int64) (*rand.Rand, error)
}
