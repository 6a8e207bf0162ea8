package engine

import "math/rand"

// Turn-scoped randomness. Battles are persisted between turns, so the
// resolver cannot carry a live PRNG across process restarts. Instead every
// turn derives its own stream from the battle seed and the turn number:
// replaying the same seed and submissions reproduces the outcome log
// exactly, and a battle reloaded from the database resolves identically.

const turnMix = 0x9E3779B97F4A7C15

// NewTurnRand returns the deterministic random source for one turn.
func NewTurnRand(seed int64, turn int) *rand.Rand {
	mixed := uint64(seed) ^ (uint64(turn) * turnMix)
	// splitmix64 finalizer so adjacent turns do not produce correlated streams
	mixed ^= mixed >> 30
	mixed *= 0xBF58476D1CE4E5B9
	mixed ^= mixed >> 27
	mixed *= 0x94D049BB133111EB
	mixed ^= mixed >> 31
	return rand.New(rand.NewSource(int64(mixed)))
}

// rollPercent succeeds when a 1..100 roll is at or under chance.
func rollPercent(rng *rand.Rand, chance int) bool {
	if chance >= 100 {
		return true
	}
	if chance <= 0 {
		return false
	}
	return rng.Intn(100)+1 <= chance
}
