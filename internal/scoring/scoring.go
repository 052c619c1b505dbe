// Package scoring turns an accepted word into points.
//
// score(word) = round(sum(letter values) × length multiplier)
//
// Letter tiers (case-insensitive):
//   - 10: E A I O N R T L S U
//   - 20: D G B C M P F H V W Y
//   - 30: K J X Q Z
//
// Multipliers by word length: 3→1.0, 4→1.1, 5→1.2, 6→1.4, 7→1.7, 8→2.1, 9→2.6, 10+→3.2.
//
// Multipliers are kept in tenths so the product is exact integer math;
// rounding is half away from zero.
package scoring

import "unicode"

// letterValues is indexed by letter - 'A'.
var letterValues = [26]int{
	10, 20, 20, 20, 10, 20, 20, 20, 10, 30, // A–J
	30, 10, 20, 10, 10, 20, 30, 10, 10, 10, // K–T
	10, 20, 20, 30, 20, 30, // U–Z
}

// multiplierTenths is indexed by word length; lengths past the end use the last entry.
var multiplierTenths = []int{10, 10, 10, 10, 11, 12, 14, 17, 21, 26, 32}

// LetterValue returns the point value of r, or 0 for non-letters.
func LetterValue(r rune) int {
	r = unicode.ToUpper(r)
	if r < 'A' || r > 'Z' {
		return 0
	}
	return letterValues[r-'A']
}

// Multiplier returns the length multiplier in tenths (12 means ×1.2).
// Lengths below 3 use ×1.0.
func Multiplier(length int) int {
	if length < 0 {
		length = 0
	}
	if length >= len(multiplierTenths) {
		return multiplierTenths[len(multiplierTenths)-1]
	}
	return multiplierTenths[length]
}

// Score returns the points for word.
func Score(word string) int {
	sum, n := 0, 0
	for _, r := range word {
		if unicode.IsSpace(r) {
			continue
		}
		sum += LetterValue(r)
		n++
	}
	return roundTenths(sum * Multiplier(n))
}

// roundTenths divides by ten rounding half away from zero.
func roundTenths(v int) int {
	if v < 0 {
		return -((-v + 5) / 10)
	}
	return (v + 5) / 10
}
