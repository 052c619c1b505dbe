package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/robalobadob/wordgrid/assets"
)

var (
	// ErrNoLevels is returned when a level list is empty.
	ErrNoLevels = errors.New("game: level list is empty")
	// ErrBadLevel is returned for a level without a positive target or move budget.
	ErrBadLevel = errors.New("game: targetScore and maxMoves must be positive")
)

// ParseLevels decodes a JSON array of {"targetScore","maxMoves"} records.
// Indexes are assigned from array order.
func ParseLevels(data []byte) ([]Level, error) {
	var raw []Level
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("game: parse levels: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNoLevels
	}
	for i := range raw {
		raw[i].Index = i
		if err := raw[i].validate(i); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

func (l Level) validate(i int) error {
	if l.TargetScore <= 0 || l.MaxMoves <= 0 {
		return fmt.Errorf("%w: level %d", ErrBadLevel, i)
	}
	return nil
}

// LoadLevels reads the ladder from path, or the embedded default when path is empty.
func LoadLevels(path string) ([]Level, error) {
	if path == "" {
		return ParseLevels(assets.Levels())
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("game: read levels: %w", err)
	}
	return ParseLevels(b)
}
