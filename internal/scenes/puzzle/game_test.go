package puzzle

import (
	"testing"

	"gameforge/internal/core"
	"gameforge/internal/sprite"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func step(s *Scene, actions ...core.Action) core.StepResult {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return s.Step(in)
}

func boardFrom(rows [boardH]string) board {
	var b board
	for y, row := range rows {
		for x, ch := range row {
			b[y][x] = int8(ch - '0')
		}
	}
	return b
}

// stableBoard has no runs of three anywhere. Swapping (2,1) and (3,1)
// lines up three 1s on row 1; swapping (5,3) and (6,3) matches nothing.
func stableBoard() board {
	return boardFrom([boardH]string{
		"123412341",
		"112123412",
		"341234123",
		"412341234",
		"123412341",
		"234123412",
		"341234123",
	})
}

func TestInitialBoardStable(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		s := New()
		s.Reset(testConfig(seed))
		if _, n := s.grid.findMatches(); n != 0 {
			t.Errorf("seed %d: fresh board has %d matched cells", seed, n)
		}
		if !s.grid.full() {
			t.Errorf("seed %d: fresh board has empty cells", seed)
		}
	}
}

func TestFindMatchesHorizontal(t *testing.T) {
	b := stableBoard()
	b[0][0], b[0][1], b[0][2] = 1, 1, 1

	m, n := b.findMatches()
	if n != 3 {
		t.Fatalf("matched cells = %d, want 3", n)
	}
	for x := 0; x < 3; x++ {
		if !m[0][x] {
			t.Errorf("cell (%d,0) not marked", x)
		}
	}
}

func TestFindMatchesVerticalRun(t *testing.T) {
	b := stableBoard()
	b[2][8], b[3][8], b[4][8] = 2, 2, 2

	// Rows 1 and 5 already hold 2s in that column, so the run spans five.
	m, n := b.findMatches()
	if n != 5 {
		t.Fatalf("matched cells = %d, want 5", n)
	}
	for y := 1; y <= 5; y++ {
		if !m[y][8] {
			t.Errorf("cell (8,%d) not marked", y)
		}
	}
}

func TestCollapseDropsTilesInOrder(t *testing.T) {
	var b board
	b[1][4] = 3
	b[3][4] = 2
	b[5][4] = 1

	b.collapse()

	if b[6][4] != 1 || b[5][4] != 2 || b[4][4] != 3 {
		t.Errorf("column after collapse = %d,%d,%d, want 3,2,1 from row 4 down",
			b[4][4], b[5][4], b[6][4])
	}
	for y := 0; y < 4; y++ {
		if b[y][4] != 0 {
			t.Errorf("row %d should be empty after collapse, got %d", y, b[y][4])
		}
	}
}

func TestSwapClearsScoresAndRefills(t *testing.T) {
	s := New()
	s.Reset(testConfig(9))
	s.grid = stableBoard()

	// Cursor starts at (4,3). Select (2,1), then swap it with (3,1).
	step(s, core.ActionLeft)
	step(s, core.ActionLeft)
	step(s, core.ActionUp)
	step(s, core.ActionUp)
	step(s, core.ActionConfirm)
	step(s, core.ActionRight)
	step(s, core.ActionConfirm)

	if s.movesUsed != 1 {
		t.Fatalf("movesUsed = %d, want 1", s.movesUsed)
	}
	want := sprite.TweenDuration(s.tuning.Polish.Tween)
	if s.clearTicks != want {
		t.Fatalf("clearTicks = %d, want %d", s.clearTicks, want)
	}
	if s.selected {
		t.Error("selection should clear after a swap")
	}

	// Input is ignored while the clear animates.
	cursorBefore := s.cursorX
	step(s, core.ActionLeft)
	if s.cursorX != cursorBefore {
		t.Error("cursor moved during the clear animation")
	}

	for i := 0; i < 600 && s.clearTicks > 0; i++ {
		step(s)
	}

	if s.score < 3*tileValue {
		t.Errorf("score = %d, want at least %d", s.score, 3*tileValue)
	}
	if s.score%tileValue != 0 {
		t.Errorf("score = %d, want a multiple of %d", s.score, tileValue)
	}
	if !s.grid.full() {
		t.Error("board should refill after clearing")
	}
	if _, n := s.grid.findMatches(); n != 0 {
		t.Errorf("board should settle stable, found %d matched cells", n)
	}
	if s.movesUsed != 1 {
		t.Errorf("cascades consumed extra moves: movesUsed = %d", s.movesUsed)
	}
}

func TestSwapWithoutMatchReverts(t *testing.T) {
	s := New()
	s.Reset(testConfig(10))
	s.grid = stableBoard()
	before := s.grid

	// Select (5,3), then try swapping with (6,3).
	step(s, core.ActionRight)
	step(s, core.ActionConfirm)
	step(s, core.ActionRight)
	step(s, core.ActionConfirm)

	if s.grid != before {
		t.Error("board changed after a no-match swap")
	}
	if s.movesUsed != 0 {
		t.Errorf("no-match swap consumed a move: movesUsed = %d", s.movesUsed)
	}
	if s.clearTicks != 0 {
		t.Errorf("no-match swap armed a clear: clearTicks = %d", s.clearTicks)
	}
	if len(s.labels) != 1 {
		t.Errorf("labels = %d, want the no-match hint", len(s.labels))
	}
}

func TestSelectionMovesAndToggles(t *testing.T) {
	s := New()
	s.Reset(testConfig(11))
	s.grid = stableBoard()

	step(s, core.ActionConfirm)
	if !s.selected || s.selX != 4 || s.selY != 3 {
		t.Fatalf("selection = %v (%d,%d), want (4,3)", s.selected, s.selX, s.selY)
	}

	// Re-selecting the same cell deselects.
	step(s, core.ActionConfirm)
	if s.selected {
		t.Error("re-selecting the same cell should deselect")
	}

	// Selecting a non-adjacent cell moves the selection, no swap.
	step(s, core.ActionConfirm)
	step(s, core.ActionLeft)
	step(s, core.ActionLeft)
	step(s, core.ActionConfirm)
	if !s.selected || s.selX != 2 || s.selY != 3 {
		t.Errorf("selection = %v (%d,%d), want (2,3)", s.selected, s.selX, s.selY)
	}
	if s.movesUsed != 0 {
		t.Errorf("moving the selection consumed a move: movesUsed = %d", s.movesUsed)
	}
}

func TestMoveLimitEndsRun(t *testing.T) {
	s := New()
	s.Reset(testConfig(12))
	s.grid = stableBoard()
	s.movesUsed = movesLimit - 1

	step(s, core.ActionLeft)
	step(s, core.ActionLeft)
	step(s, core.ActionUp)
	step(s, core.ActionUp)
	step(s, core.ActionConfirm)
	step(s, core.ActionRight)
	step(s, core.ActionConfirm)

	for i := 0; i < 600 && s.clearTicks > 0; i++ {
		step(s)
	}

	if !s.gameOver {
		t.Fatal("run should end once the move budget is spent")
	}

	tickBefore := s.tickCount
	step(s, core.ActionConfirm)
	if s.tickCount != tickBefore {
		t.Error("scene advanced after game over")
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	s := New()
	s.Reset(testConfig(13))

	for i := 0; i < 30; i++ {
		step(s, core.ActionLeft)
	}
	if s.cursorX != 0 {
		t.Errorf("cursorX = %d, want 0", s.cursorX)
	}
	for i := 0; i < 30; i++ {
		step(s, core.ActionUp)
	}
	if s.cursorY != 0 {
		t.Errorf("cursorY = %d, want 0", s.cursorY)
	}
	for i := 0; i < 30; i++ {
		step(s, core.ActionRight)
	}
	if s.cursorX != boardW-1 {
		t.Errorf("cursorX = %d, want %d", s.cursorX, boardW-1)
	}
	for i := 0; i < 30; i++ {
		step(s, core.ActionDown)
	}
	if s.cursorY != boardH-1 {
		t.Errorf("cursorY = %d, want %d", s.cursorY, boardH-1)
	}
}

func TestSceneDeterminism(t *testing.T) {
	dirs := []core.Action{core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown}

	run := func() (core.SceneState, board, int) {
		s := New()
		s.Reset(testConfig(99))
		for i := 0; i < 400; i++ {
			in := core.NewInputFrame()
			in.Set(dirs[i%len(dirs)])
			if i%7 == 0 {
				in.Set(core.ActionConfirm)
			}
			s.Step(in)
		}
		return s.State(), s.grid, s.movesUsed
	}

	st1, g1, m1 := run()
	st2, g2, m2 := run()

	if st1 != st2 {
		t.Errorf("states differ: %+v vs %+v", st1, st2)
	}
	if g1 != g2 {
		t.Error("boards differ between identical runs")
	}
	if m1 != m2 {
		t.Errorf("movesUsed differ: %d vs %d", m1, m2)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := New()
	s.Reset(testConfig(14))

	step(s, core.ActionPause)
	if !s.paused {
		t.Fatal("scene should be paused")
	}

	cursorBefore := s.cursorX
	tickBefore := s.tickCount
	step(s, core.ActionLeft)
	if s.cursorX != cursorBefore || s.tickCount != tickBefore {
		t.Error("simulation advanced while paused")
	}

	step(s, core.ActionPause)
	if s.paused {
		t.Error("scene should unpause")
	}
}

func TestResetClearsState(t *testing.T) {
	s := New()
	cfg := testConfig(15)
	s.Reset(cfg)
	s.grid = stableBoard()

	step(s, core.ActionLeft)
	step(s, core.ActionLeft)
	step(s, core.ActionUp)
	step(s, core.ActionUp)
	step(s, core.ActionConfirm)
	step(s, core.ActionRight)
	step(s, core.ActionConfirm)

	s.Reset(cfg)

	if s.score != 0 || s.movesUsed != 0 || s.tickCount != 0 {
		t.Errorf("Reset left score/moves/ticks = %d/%d/%d", s.score, s.movesUsed, s.tickCount)
	}
	if s.selected || s.clearTicks != 0 {
		t.Error("Reset left a selection or clear animation pending")
	}
	if s.cursorX != boardW/2 || s.cursorY != boardH/2 {
		t.Errorf("Reset left cursor at (%d,%d)", s.cursorX, s.cursorY)
	}
	if _, n := s.grid.findMatches(); n != 0 {
		t.Errorf("Reset board has %d matched cells", n)
	}
}
