// Package randutil centralises deterministic seeding so every component
// derives reproducible rand/v2 sources the same way.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. The
// splitmix64 finaliser expands the single int64 into the two 64-bit words
// a PCG source wants, so nearby seeds still produce unrelated streams.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// TrialSeed derives the seed for one trial of a batch. Trials get
// consecutive offsets from the batch seed; retry attempts jump by a large
// stride so a retried trial never collides with another trial's stream.
func TrialSeed(base int64, trial, attempt int) int64 {
	return base + int64(trial) + int64(attempt)<<40
}

// splitmix64 finaliser.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
