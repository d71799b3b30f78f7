// Package rng provides deterministic random number generation for
// property-style fixture generation.
//
// # Overview
//
// The RNG type lets a fuzz or property test derive reproducible,
// independent random streams from a single master seed by naming each
// stream. Re-running with the same master seed and stream names always
// reproduces the same sequence, so a failing case can be pinned to a seed
// and replayed.
//
// # Sub-Seed Derivation
//
// Each RNG derives its seed using SHA-256:
//
//	seed_stream = H(masterSeed, streamName, configHash)
//
// where:
//   - masterSeed: top-level seed for the whole generation run
//   - streamName: identifies what the stream is used for (e.g. "segments")
//   - configHash: hash of whatever parameters shaped the generation
//
// This ensures:
//  1. Same inputs always produce the same RNG sequence (determinism)
//  2. Different streams get independent random sequences (isolation)
//  3. Parameter changes result in different sequences (sensitivity)
//
// # Usage
//
//	configHash := sha256.Sum256([]byte(paramsJSON))
//	segRNG := rng.NewRNG(masterSeed, "segments", configHash[:])
//	dimRNG := rng.NewRNG(masterSeed, "dimensions", configHash[:])
//
// # Thread Safety
//
// RNG instances are NOT thread-safe. Each goroutine should use its own RNG
// instance.
package rng
