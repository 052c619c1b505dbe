// internal/game/types.go
//
// Core type definitions for the word grid game session.
// Defines:
//   - State: session lifecycle (playing / level_complete / won / lost).
//   - Level: one rung of the level ladder (target score + move budget).
//   - Event: notifications for presentation clients.
//   - Verdict: result of a confirm action.
//   - Snapshot/TileView: read-only view of a session for rendering.
//   - Observer/Scheduler: collaborators injected at construction.

package game

import "time"

// State is the session lifecycle state.
type State string

const (
	StatePlaying       State = "playing"
	StateLevelComplete State = "level_complete"
	StateWon           State = "won"
	StateLost          State = "lost"
)

// Terminal reports whether no further play is possible.
func (s State) Terminal() bool { return s == StateWon || s == StateLost }

// Level is one entry of the level ladder. Immutable once loaded.
type Level struct {
	Index       int `json:"index"`
	TargetScore int `json:"targetScore"`
	MaxMoves    int `json:"maxMoves"`
}

// EventKind names a notification.
type EventKind string

const (
	EventTileSelected   EventKind = "tile_selected"
	EventTileDeselected EventKind = "tile_deselected"
	EventWordAccepted   EventKind = "word_accepted"
	EventWordRejected   EventKind = "word_rejected"
	EventTilesCleared   EventKind = "tiles_cleared"
	EventLevelComplete  EventKind = "level_complete"
	EventLevelStarted   EventKind = "level_started"
	EventGameWon        EventKind = "game_won"
	EventGameLost       EventKind = "game_lost"
)

// Event is emitted to the Observer after the core state has changed.
type Event struct {
	Kind    EventKind `json:"kind"`
	GameID  string    `json:"gameId"`
	Word    string    `json:"word,omitempty"`
	Points  int       `json:"points,omitempty"`
	Score   int       `json:"score"`
	Moves   int       `json:"movesLeft"`
	Level   int       `json:"level"`
	TileID  int       `json:"tileId,omitempty"`
	TileIDs []int     `json:"tileIds,omitempty"`
}

// Observer receives events. Implementations must not call back into the session.
type Observer interface {
	Notify(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Notify calls f(e).
func (f ObserverFunc) Notify(e Event) { f(e) }

// Scheduler runs fn once after d.
// Continuations are the only way timed presentation pacing reaches the session.
type Scheduler interface {
	After(d time.Duration, fn func())
}

// Verdict describes the outcome of a confirm action.
type Verdict struct {
	Word      string `json:"word"`
	Accepted  bool   `json:"accepted"`
	Points    int    `json:"points"`
	Score     int    `json:"score"`
	MovesLeft int    `json:"movesLeft"`
	State     State  `json:"state"`
}

// TileView is the renderer's view of one tile.
type TileView struct {
	ID       int     `json:"id"`
	Letter   string  `json:"letter"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	Selected bool    `json:"selected"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Snapshot is a read-only copy of session state.
type Snapshot struct {
	ID         string     `json:"id"`
	State      State      `json:"state"`
	Level      int        `json:"level"`
	Levels     int        `json:"levels"`
	Score      int        `json:"score"`
	TotalScore int        `json:"totalScore"`
	Target     int        `json:"target"`
	MovesLeft  int        `json:"movesLeft"`
	Word       string     `json:"word"`
	Busy       bool       `json:"busy"`
	Rows       int        `json:"rows"`
	Cols       int        `json:"cols"`
	Tiles      []TileView `json:"tiles"`
}
