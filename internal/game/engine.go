// internal/game/engine.go
//
// Core game engine for a single word grid session.
// Responsibilities:
//   - Own the board, the selection path and the level counters.
//   - Route "tile clicked" events into the selection path.
//   - Confirm words: spend a move, validate, score, schedule the board refill.
//   - Track state transitions: playing → level_complete → (next level | won),
//     playing → lost.
//
// Notes:
//   - Score and move changes are committed synchronously by Confirm.
//   - The board clear/refill is deferred until FinishClear is called or the
//     scheduled fallback fires, whichever comes first. Only one refill can be
//     pending; Confirm is refused while it is.
//   - Level completion is checked before move exhaustion, so hitting the
//     target on the final move is a level win.
//   - The session is not safe for concurrent use; callers serialize access
//     (see TimerScheduler).
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/scoring"
	"github.com/robalobadob/wordgrid/internal/selection"
	"github.com/robalobadob/wordgrid/internal/words"
)

const (
	DefaultRows         = 8
	DefaultCols         = 8
	DefaultSpacing      = 1.1
	DefaultClearDelay   = 600 * time.Millisecond
	DefaultAdvanceDelay = 1500 * time.Millisecond
)

var (
	ErrNoSelection     = errors.New("no letters selected")
	ErrSessionOver     = errors.New("game finished")
	ErrLevelTransition = errors.New("level transition in progress")
	ErrBoardBusy       = errors.New("board refill pending")
	ErrLevelOutOfRange = errors.New("level out of range")
	ErrLevelLocked     = errors.New("level not reached yet")
	ErrNoDictionary    = errors.New("game: dictionary not loaded")
	ErrNoScheduler     = errors.New("game: nil scheduler")
)

// Config holds the board and pacing parameters of a session.
type Config struct {
	Rows         int
	Cols         int
	Spacing      float64 // layout spacing passed to grid.Position
	Levels       []Level
	ClearDelay   time.Duration // fallback for the "clear animation finished" signal
	AdvanceDelay time.Duration // pause between level_complete and the next level
}

// Deps are the collaborators a session is built from.
type Deps struct {
	Dictionary *words.Dictionary
	Letters    grid.LetterSource
	Scheduler  Scheduler
	Observer   Observer // optional
}

// Session is one player's run through the level ladder.
type Session struct {
	id    string
	cfg   Config
	dict  *words.Dictionary
	board *grid.Grid
	path  *selection.Path
	sched Scheduler
	obs   Observer

	state  State
	level  int
	score  int
	total  int
	banked []int // final score of each completed level, by index
	moves  int
	used   int // confirms spent across all levels

	pending    []*grid.Tile // tiles waiting for the deferred clear
	refillGen  int64
	advanceGen int64
}

// New constructs a session and starts level 0.
// Configuration problems (bad dimensions, no levels, a level without a
// positive target or move budget, no dictionary) are reported here so a
// session never enters play half-initialized.
func New(cfg Config, deps Deps) (*Session, error) {
	if deps.Dictionary.Len() == 0 {
		return nil, ErrNoDictionary
	}
	if len(cfg.Levels) == 0 {
		return nil, ErrNoLevels
	}
	if deps.Scheduler == nil {
		return nil, ErrNoScheduler
	}
	if cfg.Spacing <= 0 {
		cfg.Spacing = DefaultSpacing
	}
	levels := make([]Level, len(cfg.Levels))
	for i, l := range cfg.Levels {
		if err := l.validate(i); err != nil {
			return nil, err
		}
		l.Index = i
		levels[i] = l
	}
	cfg.Levels = levels

	board, err := grid.Generate(cfg.Rows, cfg.Cols, deps.Letters)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:    randomID(),
		cfg:   cfg,
		dict:  deps.Dictionary,
		board: board,
		sched: deps.Scheduler,
		obs:   deps.Observer,
	}
	s.path = selection.New(s.onSelect)
	s.startLevel(0, false)
	return s, nil
}

// StartLevel restarts the current level, or replays an earlier one, with a
// fresh board: score resets to 0 and moves to the level's budget. Points
// banked on index and later levels no longer count toward the total.
// Levels beyond the current one are never reachable this way, and a
// finished session stays finished.
func (s *Session) StartLevel(index int) error {
	switch {
	case s.state.Terminal():
		return ErrSessionOver
	case index < 0 || index >= len(s.cfg.Levels):
		return fmt.Errorf("%w: %d", ErrLevelOutOfRange, index)
	case index > s.level:
		return fmt.Errorf("%w: %d (current %d)", ErrLevelLocked, index, s.level)
	}
	if index < len(s.banked) {
		s.banked = s.banked[:index]
	}
	s.total = 0
	for _, p := range s.banked {
		s.total += p
	}
	s.startLevel(index, true)
	return nil
}

func (s *Session) startLevel(index int, resetBoard bool) {
	// Drop any continuation still in flight for the previous level.
	s.advanceGen++
	s.refillGen++
	s.pending = nil
	s.path.Clear()
	if resetBoard {
		s.board.ClearAndRefillAll()
	}

	lvl := s.cfg.Levels[index]
	s.level = index
	s.score = 0
	s.moves = lvl.MaxMoves
	s.state = StatePlaying

	log.Debug().Str("game", s.id).Int("level", index).Int("target", lvl.TargetScore).
		Int("moves", lvl.MaxMoves).Msg("level started")
	s.emit(Event{Kind: EventLevelStarted})
}

// Click handles a "tile clicked" event addressed by board coordinates.
// Reports whether the selection changed.
func (s *Session) Click(row, col int) bool {
	return s.click(s.board.Get(row, col))
}

// ClickTile handles a "tile clicked" event addressed by tile ID.
func (s *Session) ClickTile(id int) bool {
	return s.click(s.board.Find(id))
}

func (s *Session) click(t *grid.Tile) bool {
	if t == nil || s.state != StatePlaying || s.pending != nil {
		return false
	}
	return s.path.Click(t)
}

// ClearSelection drops the current path without spending a move.
func (s *Session) ClearSelection() { s.path.Clear() }

// Confirm submits the current word.
//
// Errors (no state change): ErrSessionOver, ErrLevelTransition, ErrBoardBusy,
// ErrNoSelection. Otherwise a move is spent whether or not the word is valid.
func (s *Session) Confirm() (Verdict, error) {
	switch {
	case s.state.Terminal():
		return s.verdict("", false, 0), ErrSessionOver
	case s.state == StateLevelComplete:
		return s.verdict("", false, 0), ErrLevelTransition
	case s.pending != nil:
		return s.verdict("", false, 0), ErrBoardBusy
	}

	word := s.path.Word()
	if word == "" {
		return s.verdict("", false, 0), ErrNoSelection
	}

	s.moves--
	s.used++
	accepted := s.dict.IsValid(word)
	points := 0
	if accepted {
		points = scoring.Score(word)
		s.score += points
		s.total += points
		tiles := s.path.Tiles()
		s.path.Clear()
		s.scheduleRefill(tiles)
		s.emit(Event{Kind: EventWordAccepted, Word: word, Points: points})
	} else {
		s.path.Clear()
		s.emit(Event{Kind: EventWordRejected, Word: word})
	}

	s.evaluate()
	return s.verdict(word, accepted, points), nil
}

func (s *Session) verdict(word string, accepted bool, points int) Verdict {
	return Verdict{
		Word:      word,
		Accepted:  accepted,
		Points:    points,
		Score:     s.score,
		MovesLeft: s.moves,
		State:     s.state,
	}
}

// evaluate applies the level rules after a confirm.
// Completion wins ties with move exhaustion.
func (s *Session) evaluate() {
	lvl := s.cfg.Levels[s.level]
	if s.score >= lvl.TargetScore {
		s.state = StateLevelComplete
		s.banked = append(s.banked, s.score)
		log.Debug().Str("game", s.id).Int("level", s.level).Int("score", s.score).Msg("level complete")
		s.emit(Event{Kind: EventLevelComplete})

		s.advanceGen++
		gen := s.advanceGen
		s.sched.After(s.cfg.AdvanceDelay, func() { s.advance(gen) })
		return
	}
	if s.moves <= 0 {
		s.state = StateLost
		log.Debug().Str("game", s.id).Int("level", s.level).Int("score", s.score).Msg("game lost")
		s.emit(Event{Kind: EventGameLost})
	}
}

func (s *Session) advance(gen int64) {
	if gen != s.advanceGen || s.state != StateLevelComplete {
		return
	}
	if next := s.level + 1; next < len(s.cfg.Levels) {
		s.startLevel(next, true)
		return
	}
	s.state = StateWon
	log.Debug().Str("game", s.id).Int("total", s.total).Msg("game won")
	s.emit(Event{Kind: EventGameWon})
}

func (s *Session) scheduleRefill(tiles []*grid.Tile) {
	s.pending = tiles
	s.refillGen++
	gen := s.refillGen
	s.sched.After(s.cfg.ClearDelay, func() { s.refill(gen) })
}

// FinishClear is the "clear animation finished" signal: it applies the
// pending board refill now. Reports whether a refill was pending.
func (s *Session) FinishClear() bool {
	if s.pending == nil {
		return false
	}
	s.refill(s.refillGen)
	return true
}

func (s *Session) refill(gen int64) {
	if gen != s.refillGen || s.pending == nil {
		return
	}
	tiles := s.pending
	s.pending = nil

	ids := make([]int, len(tiles))
	for i, t := range tiles {
		ids[i] = t.ID
	}
	s.board.ClearAndRefill(tiles)
	s.emit(Event{Kind: EventTilesCleared, TileIDs: ids})
}

func (s *Session) onSelect(t *grid.Tile, selected bool) {
	kind := EventTileDeselected
	if selected {
		kind = EventTileSelected
	}
	s.emit(Event{Kind: kind, TileID: t.ID, Word: s.path.Word()})
}

func (s *Session) emit(e Event) {
	if s.obs == nil {
		return
	}
	e.GameID = s.id
	e.Score = s.score
	e.Moves = s.moves
	e.Level = s.level
	s.obs.Notify(e)
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Score returns the score on the current level.
func (s *Session) Score() int { return s.score }

// TotalScore returns points earned across all levels.
func (s *Session) TotalScore() int { return s.total }

// MovesUsed returns the number of moves spent across all levels.
func (s *Session) MovesUsed() int { return s.used }

// MovesLeft returns the remaining move budget on the current level.
func (s *Session) MovesLeft() int { return s.moves }

// Level returns the current level configuration.
func (s *Session) Level() Level { return s.cfg.Levels[s.level] }

// Word returns the word spelled by the current selection.
func (s *Session) Word() string { return s.path.Word() }

// Busy reports whether a board refill is pending.
func (s *Session) Busy() bool { return s.pending != nil }

// Board exposes the grid (read-only use).
func (s *Session) Board() *grid.Grid { return s.board }

// Snapshot copies the session into a renderable view.
func (s *Session) Snapshot() Snapshot {
	lvl := s.cfg.Levels[s.level]
	rows, cols := s.board.Rows(), s.board.Cols()
	tiles := s.board.Tiles()
	views := make([]TileView, 0, len(tiles))
	for _, t := range tiles {
		x, y := grid.Position(t.Row, t.Col, rows, cols, s.cfg.Spacing)
		views = append(views, TileView{
			ID:       t.ID,
			Letter:   string(t.Letter),
			Row:      t.Row,
			Col:      t.Col,
			Selected: t.Selected(),
			X:        x,
			Y:        y,
		})
	}
	return Snapshot{
		ID:         s.id,
		State:      s.state,
		Level:      s.level,
		Levels:     len(s.cfg.Levels),
		Score:      s.score,
		TotalScore: s.total,
		Target:     lvl.TargetScore,
		MovesLeft:  s.moves,
		Word:       s.path.Word(),
		Busy:       s.pending != nil,
		Rows:       rows,
		Cols:       cols,
		Tiles:      views,
	}
}

// randomID returns a compact 16‑hex‑char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
