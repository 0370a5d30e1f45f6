// Package puzzle implements the match-three starter scene: swap adjacent
// tiles on a small grid to line up runs of three, with cascade scoring and
// a fixed move budget.
package puzzle

import (
	"fmt"
	"math/rand"

	"gameforge/internal/core"
	"gameforge/internal/preset"
	"gameforge/internal/registry"
	"gameforge/internal/sprite"
)

// Scoring and pacing constants
const (
	movesLimit   = 20 // successful swaps per run
	tileValue    = 10 // per cleared tile, multiplied by cascade depth
	cellW        = 2  // board cells are two columns wide
	blinkPeriod  = 6  // ticks per blink phase while clearing
	boardTop     = 3
	noMatchLabel = "NO MATCH"
)

// Scene implements the puzzle starter.
type Scene struct {
	cfg    core.RuntimeConfig
	tuning preset.Preset
	rng    *rand.Rand

	grid  board
	tiles [tileKinds]*sprite.Visual // shared tile visuals, drawn per cell

	cursorX, cursorY int
	selected         bool
	selX, selY       int

	clearing   mask
	clearTicks int // remaining animation ticks, 0 when idle
	cascade    int // chain depth of the current clear cycle

	labels []*sprite.Feedback

	score     int
	movesUsed int
	gameOver  bool
	paused    bool
	tickCount int
}

// New creates a new puzzle scene instance.
func New() *Scene {
	return &Scene{}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return "puzzle"
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Gem Grid"
}

// Reset initializes or restarts the scene.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	s.cfg = cfg
	s.tuning = preset.ForGenre(preset.GenrePuzzle)
	s.rng = rand.New(rand.NewSource(cfg.Seed))

	s.grid = newBoard(s.rng)
	for i := range s.tiles {
		s.tiles[i] = sprite.NewCollectible(0, 0, kindFor(int8(i+1)))
	}

	s.cursorX = boardW / 2
	s.cursorY = boardH / 2
	s.selected = false
	s.clearing = mask{}
	s.clearTicks = 0
	s.cascade = 0
	s.labels = nil
	s.score = 0
	s.movesUsed = 0
	s.gameOver = false
	s.paused = false
	s.tickCount = 0
}

// Step advances the scene by one tick.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	if s.gameOver {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	s.tickCount++

	if s.clearTicks > 0 {
		s.clearTicks--
		if s.clearTicks == 0 {
			s.settle()
		}
		s.advanceLabels()
		return core.StepResult{State: s.State()}
	}

	s.moveCursor(in)
	if in.Has(core.ActionConfirm) || in.Has(core.ActionFire) {
		s.handleSelect()
	}

	s.advanceLabels()
	return core.StepResult{State: s.State()}
}

// moveCursor shifts the cursor one cell per pressed direction, clamped to
// the board.
func (s *Scene) moveCursor(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		s.cursorX--
	}
	if in.Has(core.ActionRight) {
		s.cursorX++
	}
	if in.Has(core.ActionUp) {
		s.cursorY--
	}
	if in.Has(core.ActionDown) {
		s.cursorY++
	}
	s.cursorX = core.Clamp(s.cursorX, 0, boardW-1)
	s.cursorY = core.Clamp(s.cursorY, 0, boardH-1)
}

// handleSelect picks, re-picks, or swaps depending on where the cursor sits
// relative to the current selection.
func (s *Scene) handleSelect() {
	if !s.selected {
		s.selected = true
		s.selX, s.selY = s.cursorX, s.cursorY
		return
	}

	if s.cursorX == s.selX && s.cursorY == s.selY {
		s.selected = false
		return
	}

	if core.Abs(s.cursorX-s.selX)+core.Abs(s.cursorY-s.selY) != 1 {
		s.selX, s.selY = s.cursorX, s.cursorY
		return
	}

	s.trySwap()
}

// trySwap exchanges the selected tile with the cursor tile. A swap that
// makes no match is reverted and costs no move.
func (s *Scene) trySwap() {
	s.grid[s.selY][s.selX], s.grid[s.cursorY][s.cursorX] =
		s.grid[s.cursorY][s.cursorX], s.grid[s.selY][s.selX]
	s.selected = false

	m, n := s.grid.findMatches()
	if n == 0 {
		s.grid[s.selY][s.selX], s.grid[s.cursorY][s.cursorX] =
			s.grid[s.cursorY][s.cursorX], s.grid[s.selY][s.selX]
		lbl := sprite.NewFeedback(s.cellX(s.cursorX)-2, s.cellY(s.cursorY)-1, noMatchLabel, core.ColorGray)
		lbl.SetDuration(sprite.TweenDuration(s.tuning.Polish.Tween))
		s.labels = append(s.labels, lbl)
		return
	}

	s.movesUsed++
	s.cascade = 0
	s.startClear(m)
}

// startClear arms the clearing animation for the marked cells.
func (s *Scene) startClear(m mask) {
	s.clearing = m
	s.clearTicks = sprite.TweenDuration(s.tuning.Polish.Tween)
}

// settle resolves a finished clear: score the marked tiles, drop and refill
// the board, then either chain into the next cascade or come to rest.
func (s *Scene) settle() {
	n := countMask(s.clearing)
	gained := n * tileValue * (s.cascade + 1)
	s.score += gained

	lx, ly := maskAnchor(s.clearing)
	lbl := sprite.NewFeedback(s.cellX(lx), s.cellY(ly), fmt.Sprintf("+%d", gained), core.ColorBrightYellow)
	lbl.SetDuration(sprite.TweenDuration(s.tuning.Polish.Tween))
	s.labels = append(s.labels, lbl)

	s.grid.remove(s.clearing)
	s.grid.collapse()
	s.grid.refill(s.rng)
	s.clearing = mask{}

	if m, next := s.grid.findMatches(); next > 0 {
		s.cascade++
		s.startClear(m)
		return
	}

	s.cascade = 0
	if s.movesUsed >= movesLimit {
		s.gameOver = true
	}
}

// countMask returns the number of marked cells.
func countMask(m mask) int {
	n := 0
	for y := 0; y < boardH; y++ {
		for x := 0; x < boardW; x++ {
			if m[y][x] {
				n++
			}
		}
	}
	return n
}

// maskAnchor returns the first marked cell, used to place the score label.
func maskAnchor(m mask) (int, int) {
	for y := 0; y < boardH; y++ {
		for x := 0; x < boardW; x++ {
			if m[y][x] {
				return x, y
			}
		}
	}
	return boardW / 2, boardH / 2
}

// advanceLabels ages floating labels and drops the finished ones.
func (s *Scene) advanceLabels() {
	live := s.labels[:0]
	for _, f := range s.labels {
		f.Advance()
		if f.Alive() {
			live = append(live, f)
		}
	}
	s.labels = live
}

// boardX returns the left screen column of the board.
func (s *Scene) boardX() int {
	return (s.cfg.ScreenW - boardW*cellW) / 2
}

// cellX converts a board column to its screen column.
func (s *Scene) cellX(x int) int {
	return s.boardX() + x*cellW + 1
}

// cellY converts a board row to its screen row.
func (s *Scene) cellY(y int) int {
	return boardTop + y
}

// Render draws the current scene state to the screen.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()

	frame := core.NewRect(s.boardX()-1, boardTop-1, boardW*cellW+3, boardH+2)
	dst.DrawBox(frame)

	blinkOn := (s.clearTicks/blinkPeriod)%2 == 0
	for y := 0; y < boardH; y++ {
		for x := 0; x < boardW; x++ {
			cx, cy := s.cellX(x), s.cellY(y)
			if s.clearTicks > 0 && s.clearing[y][x] {
				if blinkOn {
					dst.SetColored(cx, cy, '░', core.ColorGray)
				}
				continue
			}
			tile := s.grid[y][x]
			if tile == 0 {
				continue
			}
			s.tiles[tile-1].DrawAt(dst, cx, cy)
		}
	}

	if s.selected {
		dst.SetColored(s.cellX(s.selX)-1, s.cellY(s.selY), '(', core.ColorBrightYellow)
		dst.SetColored(s.cellX(s.selX)+1, s.cellY(s.selY), ')', core.ColorBrightYellow)
	}
	dst.SetColored(s.cellX(s.cursorX)-1, s.cellY(s.cursorY), '[', core.ColorBrightWhite)
	dst.SetColored(s.cellX(s.cursorX)+1, s.cellY(s.cursorY), ']', core.ColorBrightWhite)

	for _, f := range s.labels {
		f.Draw(dst)
	}

	s.drawHUD(dst)

	if s.paused {
		s.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if s.gameOver {
		s.drawCenteredMessage(dst, "OUT OF MOVES", fmt.Sprintf("Score: %d  |  Press R to restart", s.score))
	}
}

// drawHUD draws the score and the remaining move budget.
func (s *Scene) drawHUD(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", s.score))
	moves := fmt.Sprintf(" Moves: %d/%d ", s.movesUsed, movesLimit)
	dst.DrawText(dst.Width()-len(moves)-2, 0, moves)
	dst.DrawTextCentered(dst.Height()-1, "arrows move · enter swaps")
}

// drawCenteredMessage draws a message box in the center of the screen.
func (s *Scene) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// State returns the current scene state.
func (s *Scene) State() core.SceneState {
	return core.SceneState{
		Score:    s.score,
		Lives:    0,
		GameOver: s.gameOver,
		Paused:   s.paused,
	}
}

// Register the scene with the registry
func init() {
	registry.Register("puzzle", func() registry.Scene {
		return New()
	})
}
