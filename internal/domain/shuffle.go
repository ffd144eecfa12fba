package domain

// Shuffle returns a uniformly random permutation of cards using the provided
// RNG (Fisher-Yates). The input slice is never mutated.
func Shuffle(cards []Card, rng RNG) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
