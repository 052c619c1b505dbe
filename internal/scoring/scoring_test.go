package scoring

import "testing"

func TestScoreExamples(t *testing.T) {
	cases := []struct {
		word string
		want int
	}{
		{"CAT", 40},        // (20+10+10) × 1.0
		{"HELLO", 72},      // 60 × 1.2
		{"hello", 72},      // case-insensitive
		{" cat ", 40},      // surrounding whitespace ignored
		{"QUIZ", 88},       // 80 × 1.1
		{"RATION", 84},     // 60 × 1.4
		{"JUKEBOX", 238},   // 140 × 1.7
		{"STRENGTH", 210},  // 100 × 2.1
		{"DANGEROUS", 286}, // 110 × 2.6
		{"", 0},
	}
	for _, tc := range cases {
		if got := Score(tc.word); got != tc.want {
			t.Fatalf("Score(%q) = %d, want %d", tc.word, got, tc.want)
		}
	}
}

func TestLetterTiers(t *testing.T) {
	tiers := map[int]string{
		10: "EAIONRTLSU",
		20: "DGBCMPFHVWY",
		30: "KJXQZ",
	}
	seen := 0
	for value, letters := range tiers {
		for _, r := range letters {
			seen++
			if got := LetterValue(r); got != value {
				t.Fatalf("LetterValue(%q) = %d, want %d", r, got, value)
			}
			if got := LetterValue(r + ('a' - 'A')); got != value {
				t.Fatalf("LetterValue(%q) = %d, want %d", r+('a'-'A'), got, value)
			}
		}
	}
	if seen != 26 {
		t.Fatalf("tiers cover %d letters, want 26", seen)
	}
	if LetterValue('1') != 0 || LetterValue('-') != 0 {
		t.Fatal("non-letters should score 0")
	}
}

func TestMultiplier(t *testing.T) {
	want := map[int]int{0: 10, 2: 10, 3: 10, 4: 11, 5: 12, 6: 14, 7: 17, 8: 21, 9: 26, 10: 32, 15: 32}
	for n, m := range want {
		if got := Multiplier(n); got != m {
			t.Fatalf("Multiplier(%d) = %d, want %d", n, got, m)
		}
	}
}

func TestLongWordUsesTopMultiplier(t *testing.T) {
	// Ten E's: 100 × 3.2
	if got := Score("EEEEEEEEEE"); got != 320 {
		t.Fatalf("Score(10×E) = %d, want 320", got)
	}
	if got := Score("EEEEEEEEEEEE"); got != 384 {
		t.Fatalf("Score(12×E) = %d, want 384", got)
	}
}

func TestRoundTenths(t *testing.T) {
	cases := map[int]int{0: 0, 4: 0, 5: 1, 14: 1, 15: 2, -5: -1, -14: -1}
	for in, want := range cases {
		if got := roundTenths(in); got != want {
			t.Fatalf("roundTenths(%d) = %d, want %d", in, got, want)
		}
	}
}
