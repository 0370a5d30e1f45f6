package rpg

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

func step(s *Scene, actions ...core.Action) {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	s.Step(in)
}

func TestSceneDeterminism(t *testing.T) {
	dirs := []core.Action{core.ActionRight, core.ActionDown, core.ActionLeft, core.ActionUp}

	run := func() (core.SceneState, float64, float64, float64, int) {
		s := New()
		s.Reset(testConfig(21))
		for i := 0; i < 600; i++ {
			step(s, dirs[(i/40)%len(dirs)])
		}
		px, py := s.player.Position()
		return s.State(), px, py, s.critters[0].x, s.gemsLeft()
	}

	st1, x1, y1, c1, g1 := run()
	st2, x2, y2, c2, g2 := run()

	if st1 != st2 {
		t.Errorf("states differ: %+v vs %+v", st1, st2)
	}
	if x1 != x2 || y1 != y2 {
		t.Errorf("player positions differ: (%f,%f) vs (%f,%f)", x1, y1, x2, y2)
	}
	if c1 != c2 {
		t.Errorf("critter positions differ: %f vs %f", c1, c2)
	}
	if g1 != g2 {
		t.Errorf("remaining gems differ: %d vs %d", g1, g2)
	}
}

func TestGemPickupScores(t *testing.T) {
	s := New()
	s.Reset(testConfig(22))
	s.critters = nil

	gx, gy := s.gems[0].vis.Position()
	s.player.SetPosition(float64(gx), float64(gy))
	step(s)

	if s.score != gemValue {
		t.Errorf("score = %d, want %d", s.score, gemValue)
	}
	if !s.gems[0].taken {
		t.Error("gem should be marked taken")
	}
	if s.gemsLeft() != gemCount-1 {
		t.Errorf("gemsLeft = %d, want %d", s.gemsLeft(), gemCount-1)
	}

	// Standing on the spot must not score again.
	step(s)
	if s.score != gemValue {
		t.Errorf("score = %d after lingering, want %d", s.score, gemValue)
	}
}

func TestHeartHealsButCapsAtPresetHealth(t *testing.T) {
	s := New()
	s.Reset(testConfig(23))
	s.critters = nil
	maxHealth := s.tuning.Player.Health

	hx, hy := s.hearts[0].vis.Position()
	s.player.SetPosition(float64(hx), float64(hy))
	step(s)

	if s.health != maxHealth {
		t.Errorf("health = %d at full, want to stay %d", s.health, maxHealth)
	}
	if !s.hearts[0].taken {
		t.Error("heart should be consumed even at full health")
	}

	s.health = maxHealth - 2
	hx, hy = s.hearts[1].vis.Position()
	s.player.SetPosition(float64(hx), float64(hy))
	step(s)

	if s.health != maxHealth-1 {
		t.Errorf("health = %d after heart, want %d", s.health, maxHealth-1)
	}
}

func TestBiteDamagesOncePerGracePeriod(t *testing.T) {
	s := New()
	s.Reset(testConfig(24))
	startHealth := s.health

	s.critters = s.critters[:1]
	c := &s.critters[0]
	px, py := s.player.Position()
	c.x, c.y = px, py
	c.dx, c.dy = 0, 0
	c.retarget = 100000

	step(s)
	if s.health != startHealth-1 {
		t.Fatalf("health = %d after bite, want %d", s.health, startHealth-1)
	}
	if s.invulnTicks != invulnDuration {
		t.Fatalf("invulnTicks = %d, want %d", s.invulnTicks, invulnDuration)
	}

	// Overlapping through the grace period costs nothing more.
	for i := 0; i < 30; i++ {
		step(s)
	}
	if s.health != startHealth-1 {
		t.Errorf("health = %d during grace period, want %d", s.health, startHealth-1)
	}

	s.invulnTicks = 0
	step(s)
	if s.health != startHealth-2 {
		t.Errorf("health = %d after grace ends, want %d", s.health, startHealth-2)
	}
}

func TestHealthZeroEndsRun(t *testing.T) {
	s := New()
	s.Reset(testConfig(25))
	s.health = 1

	s.critters = s.critters[:1]
	c := &s.critters[0]
	px, py := s.player.Position()
	c.x, c.y = px, py
	c.dx, c.dy = 0, 0
	c.retarget = 100000

	step(s)
	if !s.gameOver {
		t.Error("losing the last heart should end the run")
	}
	if s.completed {
		t.Error("dying is not a quest completion")
	}
}

func TestCollectingAllGemsCompletesQuest(t *testing.T) {
	s := New()
	s.Reset(testConfig(26))
	s.critters = nil

	for i := range s.gems {
		gx, gy := s.gems[i].vis.Position()
		s.player.SetPosition(float64(gx), float64(gy))
		step(s)
	}

	if !s.completed || !s.gameOver {
		t.Fatalf("completed=%v gameOver=%v, want quest complete", s.completed, s.gameOver)
	}
	if s.score != gemCount*gemValue+questBonus {
		t.Errorf("score = %d, want %d", s.score, gemCount*gemValue+questBonus)
	}
}

func TestPlayerStaysInWorld(t *testing.T) {
	s := New()
	s.Reset(testConfig(27))
	s.critters = nil

	for i := 0; i < 2000; i++ {
		step(s, core.ActionLeft, core.ActionUp)
	}
	if x, y := s.player.Position(); x != 0 || y != 0 {
		t.Errorf("player at (%f,%f), want pinned to (0,0)", x, y)
	}

	for i := 0; i < 4000; i++ {
		step(s, core.ActionRight, core.ActionDown)
	}
	x, y := s.player.Position()
	if x != float64(s.worldW-playerW) || y != float64(s.worldH-playerH) {
		t.Errorf("player at (%f,%f), want pinned to the far corner", x, y)
	}
}

func TestGuideDialogRotatesPerVisit(t *testing.T) {
	s := New()
	s.Reset(testConfig(28))
	s.critters = nil

	// Walk up to the guide.
	s.player.SetPosition(float64(s.guideX+4), float64(s.guideY))
	step(s)
	if !s.guideNear {
		t.Fatal("player next to the guide should trigger the dialog")
	}
	if s.dialogIdx != 0 {
		t.Errorf("dialogIdx = %d on first visit, want 0", s.dialogIdx)
	}

	// Walking away advances the line for the next visit.
	sx, sy := s.spawnPoint()
	s.player.SetPosition(float64(sx), float64(sy))
	step(s)
	if s.guideNear {
		t.Fatal("player at spawn should be out of dialog range")
	}
	if s.dialogIdx != 1 {
		t.Errorf("dialogIdx = %d after leaving, want 1", s.dialogIdx)
	}

	s.player.SetPosition(float64(s.guideX+4), float64(s.guideY))
	step(s)
	if !s.guideNear || s.dialogIdx != 1 {
		t.Errorf("second visit should read line 1, got near=%v idx=%d", s.guideNear, s.dialogIdx)
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := New()
	s.Reset(testConfig(29))

	step(s, core.ActionPause)
	if !s.paused {
		t.Fatal("scene should be paused")
	}

	px, py := s.player.Position()
	tickBefore := s.tickCount
	step(s, core.ActionRight)
	if x, y := s.player.Position(); x != px || y != py {
		t.Error("player moved while paused")
	}
	if s.tickCount != tickBefore {
		t.Error("simulation advanced while paused")
	}

	step(s, core.ActionPause)
	if s.paused {
		t.Error("scene should unpause")
	}
}

func TestResetClearsState(t *testing.T) {
	s := New()
	cfg := testConfig(30)
	s.Reset(cfg)
	s.critters = nil

	gx, gy := s.gems[0].vis.Position()
	s.player.SetPosition(float64(gx), float64(gy))
	step(s)
	s.health = 2

	s.Reset(cfg)

	if s.score != 0 || s.tickCount != 0 {
		t.Errorf("Reset left score/ticks = %d/%d", s.score, s.tickCount)
	}
	if s.health != s.tuning.Player.Health {
		t.Errorf("Reset left health = %d", s.health)
	}
	if s.gemsLeft() != gemCount {
		t.Errorf("Reset left %d gems, want %d", s.gemsLeft(), gemCount)
	}
	if len(s.critters) != critterCount {
		t.Errorf("Reset left %d critters, want %d", len(s.critters), critterCount)
	}
	if s.dialogIdx != 0 || s.guideNear {
		t.Error("Reset left guide dialog state")
	}
}

func TestLabelsTrackTheScrolledCamera(t *testing.T) {
	s := New()
	s.Reset(testConfig(41))
	s.critters = nil

	// Center the view in the middle of the meadow so both axes scroll.
	s.cam.SnapTo(float64(s.worldW)/2, float64(s.worldH)/2)
	ox, oy := s.cam.Offset()
	if ox == 0 || oy == 0 {
		t.Fatalf("camera offset = (%d,%d), want scroll on both axes", ox, oy)
	}

	wx, wy := ox+20, oy+8
	lbl := sprite.NewFeedback(wx, wy, "+25", core.ColorBrightYellow)
	lbl.SetDuration(60)
	s.labels = []*sprite.Feedback{lbl}

	dst := core.NewScreen(s.cfg.ScreenW, s.cfg.ScreenH)
	s.Render(dst)

	// screenX = worldX - offsetX, same as every other entity.
	for i, r := range "+25" {
		if got := dst.Get(20+i, 8); got != r {
			t.Errorf("label cell (%d,8) = %q, want %q", 20+i, got, r)
		}
	}
}
