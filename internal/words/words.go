// internal/words/words.go
//
// Dictionary used to validate traced words.
//
// Responsibilities:
//   - Load a newline-delimited word source (file or embedded default).
//   - Normalize every entry (trim + uppercase), drop blanks, sort by byte order.
//   - Answer membership queries with a binary search.
//
// Source format:
//   - One word per line; \n, \r\n and bare \r line endings are all accepted.
//   - Case-insensitive and in any order.
//
// Environment (see internal/config):
//   WORDS_FILE=/path/to/words.txt   (empty → embedded assets/words.txt)
//   MIN_WORD_LENGTH=3

package words

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/robalobadob/wordgrid/assets"
)

// DefaultMinLength is the shortest word accepted when no minimum is configured.
const DefaultMinLength = 3

// ErrEmpty is returned when a source yields no words.
var ErrEmpty = errors.New("words: dictionary is empty")

// Dictionary is an immutable, sorted set of uppercase words.
// A nil *Dictionary rejects every word.
type Dictionary struct {
	words  []string // sorted, uppercase, unique
	minLen int
}

// Parse builds a dictionary from raw text.
// minLen <= 0 selects DefaultMinLength.
func Parse(text string, minLen int) (*Dictionary, error) {
	list := normalizeLines(text)
	if len(list) == 0 {
		return nil, ErrEmpty
	}
	if minLen <= 0 {
		minLen = DefaultMinLength
	}
	return &Dictionary{words: list, minLen: minLen}, nil
}

// Load reads the whole source from r and parses it.
func Load(r io.Reader, minLen int) (*Dictionary, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("words: read source: %w", err)
	}
	return Parse(string(b), minLen)
}

// Open loads the dictionary from path, or the embedded default list when path is empty.
func Open(path string, minLen int) (*Dictionary, error) {
	if path == "" {
		return Parse(assets.WordList(), minLen)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("words: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f, minLen)
}

// normalizeLines splits on any line ending, trims and uppercases every entry,
// drops blanks, then sorts and de-duplicates.
func normalizeLines(s string) []string {
	lines := strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' })
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if w := normalize(line); w != "" {
			out = append(out, w)
		}
	}
	sort.Strings(out)

	uniq := out[:0]
	for i, w := range out {
		if i == 0 || w != out[i-1] {
			uniq = append(uniq, w)
		}
	}
	return uniq
}

// normalize trims, composes to NFC and uppercases one rune at a time, so a
// word keeps one rune per tile letter (ß stays ß rather than becoming SS).
// Chains keep state, so each call builds its own.
func normalize(w string) string {
	w = strings.TrimSpace(w)
	t := transform.Chain(norm.NFC, runes.Map(unicode.ToUpper))
	out, _, err := transform.String(t, w)
	if err != nil {
		return strings.ToUpper(w)
	}
	return out
}

// IsValid reports whether word (after trim + uppercase) is in the dictionary
// and at least MinLength letters long.
func (d *Dictionary) IsValid(word string) bool {
	if d == nil || len(d.words) == 0 {
		return false
	}
	key := normalize(word)
	if utf8.RuneCountInString(key) < d.minLen {
		return false
	}
	i := sort.SearchStrings(d.words, key)
	return i < len(d.words) && d.words[i] == key
}

// Len returns the number of distinct words loaded.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.words)
}

// MinLength returns the shortest accepted word length.
func (d *Dictionary) MinLength() int {
	if d == nil {
		return DefaultMinLength
	}
	return d.minLen
}
