// internal/grid/letters.go
//
// Weighted random letter draw.
// Letters are sampled proportionally to English letter frequency by
// inverting the cumulative distribution of a fixed 26-entry table.

package grid

import "math/rand"

// FallbackLetter is returned when a roll lands past the end of the
// cumulative table (float rounding can leave the sum slightly under the total).
const FallbackLetter = 'E'

// letterFrequencies holds relative A–Z frequencies (sum ≈ 100).
var letterFrequencies = [26]float64{
	8.167,  // A
	1.492,  // B
	2.782,  // C
	4.253,  // D
	12.702, // E
	2.228,  // F
	2.015,  // G
	6.094,  // H
	6.966,  // I
	0.153,  // J
	0.772,  // K
	4.025,  // L
	2.406,  // M
	6.749,  // N
	7.507,  // O
	1.929,  // P
	0.095,  // Q
	5.987,  // R
	6.327,  // S
	9.056,  // T
	2.758,  // U
	0.978,  // V
	2.360,  // W
	0.150,  // X
	1.974,  // Y
	0.074,  // Z
}

var frequencyTotal = func() float64 {
	var t float64
	for _, f := range letterFrequencies {
		t += f
	}
	return t
}()

// LetterSource hands out letters for freshly spawned tiles.
type LetterSource interface {
	Letter() rune
}

// LetterFromRoll maps a roll in [0, total) onto the frequency table:
// the first letter whose cumulative frequency is >= roll wins.
func LetterFromRoll(roll float64) rune {
	var cumulative float64
	for i, f := range letterFrequencies {
		cumulative += f
		if roll <= cumulative {
			return rune('A' + i)
		}
	}
	return FallbackLetter
}

// Weighted draws letters with a uniform source over [0, 1).
type Weighted struct {
	rng *rand.Rand
}

// NewWeighted returns a weighted letter source seeded with seed.
// Equal seeds produce equal letter sequences (used for the daily board).
func NewWeighted(seed int64) *Weighted {
	return &Weighted{rng: rand.New(rand.NewSource(seed))}
}

// Letter draws one letter.
func (w *Weighted) Letter() rune {
	return LetterFromRoll(w.rng.Float64() * frequencyTotal)
}
