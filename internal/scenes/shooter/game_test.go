package shooter

import (
	"testing"

	"gameforge/internal/core"
	"gameforge/internal/preset"
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

func TestSceneDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 400)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i%2 == 0 {
			inputs[i].Set(core.ActionFire)
		}
		if (i/30)%2 == 0 {
			inputs[i].Set(core.ActionLeft)
		} else {
			inputs[i].Set(core.ActionRight)
		}
	}

	run := func() (core.SceneState, int, int) {
		s := New()
		s.Reset(testConfig(77))
		var st core.SceneState
		for _, in := range inputs {
			st = s.Step(in).State
			if st.GameOver {
				break
			}
		}
		return st, s.wave, s.tickCount
	}

	st1, w1, t1 := run()
	st2, w2, t2 := run()

	if st1 != st2 {
		t.Errorf("states differ: %+v vs %+v", st1, st2)
	}
	if w1 != w2 {
		t.Errorf("waves differ: %d vs %d", w1, w2)
	}
	if t1 != t2 {
		t.Errorf("tick counts differ: %d vs %d", t1, t2)
	}
}

func TestFireCooldownLimitsRate(t *testing.T) {
	s := New()
	s.Reset(testConfig(1))

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)

	// FireRate 5 at 60 ticks/s gives a 12-tick gap: one bullet in the
	// first 12 ticks, the second lands on tick 13.
	for i := 0; i < 12; i++ {
		s.Step(fire)
	}
	if len(s.bullets) != 1 {
		t.Fatalf("bullets after 12 ticks = %d, want 1", len(s.bullets))
	}

	s.Step(fire)
	if len(s.bullets) != 2 {
		t.Errorf("bullets after 13 ticks = %d, want 2", len(s.bullets))
	}
}

func TestBulletKillsCreepAndClearsWave(t *testing.T) {
	s := New()
	s.Reset(testConfig(2))
	s.marchTick = 100000 // hold the formation still

	px, _ := s.ship.Position()
	s.creeps = []creep{{x: int(px), y: 14, alive: true}}

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)
	for i := 0; i < 60 && s.wave == 1; i++ {
		s.Step(fire)
	}

	if s.wave != 2 {
		t.Fatalf("wave = %d, want 2 after clearing", s.wave)
	}
	if s.score != creepValue+waveBonus {
		t.Errorf("score = %d, want %d", s.score, creepValue+waveBonus)
	}
	if len(s.creeps) != creepRows*maxCols {
		t.Errorf("new formation has %d creeps, want %d", len(s.creeps), creepRows*maxCols)
	}
}

func TestBreachCostsLife(t *testing.T) {
	s := New()
	s.Reset(testConfig(3))
	s.marchTick = 100000
	startLives := s.lives

	// A creep far from the ship reaching the ship row is a breach.
	s.creeps = []creep{{x: 5, y: s.shipY(), alive: true}}
	s.Step(core.NewInputFrame())

	if s.lives != startLives-1 {
		t.Errorf("lives = %d, want %d", s.lives, startLives-1)
	}
	if s.gameOver {
		t.Error("a single breach should not end the run")
	}
}

func TestCollisionAtLastLifeEndsRun(t *testing.T) {
	s := New()
	s.Reset(testConfig(4))
	s.marchTick = 100000
	s.lives = 1

	px, _ := s.ship.Position()
	s.creeps = []creep{{x: int(px), y: s.shipY(), alive: true}}
	s.Step(core.NewInputFrame())

	if !s.gameOver {
		t.Error("losing the last life should end the run")
	}
	if s.wave != 1 {
		t.Errorf("no new wave should spawn after game over, wave = %d", s.wave)
	}
}

func TestShipStaysOnScreen(t *testing.T) {
	s := New()
	s.Reset(testConfig(5))

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	for i := 0; i < 300; i++ {
		s.Step(left)
	}
	if x, _ := s.ship.Position(); x < 1 {
		t.Errorf("ship left the screen on the left: x = %f", x)
	}

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	for i := 0; i < 600; i++ {
		s.Step(right)
	}
	if x, _ := s.ship.Position(); x > float64(s.cfg.ScreenW-1-playerW) {
		t.Errorf("ship left the screen on the right: x = %f", x)
	}
}

func TestFormationMarchesAndDrops(t *testing.T) {
	s := New()
	s.Reset(testConfig(6))

	startLo, _ := s.formationSpan()
	startY := s.creeps[0].y

	empty := core.NewInputFrame()
	for i := 0; i < baseMarchEvery; i++ {
		s.Step(empty)
	}
	lo, _ := s.formationSpan()
	if lo == startLo {
		t.Error("formation should have marched sideways")
	}

	// Long enough for at least one edge bounce.
	for i := 0; i < 3000 && s.creeps[0].y == startY; i++ {
		s.Step(empty)
	}
	if s.creeps[0].y == startY {
		t.Error("formation never dropped a row")
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	s := New()
	s.Reset(testConfig(7))

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	s.Step(pause)
	if !s.paused {
		t.Fatal("scene should be paused")
	}

	tickBefore := s.tickCount
	s.Step(core.NewInputFrame())
	if s.tickCount != tickBefore {
		t.Error("simulation advanced while paused")
	}

	s.Step(pause)
	if s.paused {
		t.Error("scene should unpause")
	}
}

func TestResetClearsState(t *testing.T) {
	s := New()
	cfg := testConfig(8)
	s.Reset(cfg)

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)
	for i := 0; i < 100; i++ {
		s.Step(fire)
	}

	s.Reset(cfg)

	if s.score != 0 || s.tickCount != 0 {
		t.Errorf("Reset should clear score and ticks, got %d/%d", s.score, s.tickCount)
	}
	if s.wave != 1 {
		t.Errorf("Reset should restart at wave 1, got %d", s.wave)
	}
	if len(s.bullets) != 0 {
		t.Errorf("Reset should clear bullets, got %d", len(s.bullets))
	}
	if s.lives != s.tuning.Player.Health {
		t.Errorf("Reset should restore lives, got %d", s.lives)
	}
}

func TestDebrisShakesWithTheScene(t *testing.T) {
	s := New()
	s.Reset(testConfig(45))
	s.creeps = nil

	s.shake.Jolt(preset.ShakeBold)
	var shx, shy int
	for i := 0; i < 14; i++ {
		s.shake.Advance()
		shx, shy = s.shake.Offset()
		if shx != 0 || shy != 0 {
			break
		}
	}
	if shx == 0 && shy == 0 {
		t.Fatal("jolt produced no offset")
	}

	s.bursts = []*sprite.Burst{sprite.NewBurst(40, 12, sprite.BurstEmber, 5, 7)}

	dst := core.NewScreen(s.cfg.ScreenW, s.cfg.ScreenH)
	s.Render(dst)

	// Debris shifts with the ship and creeps, not against them.
	if got := dst.Get(40+shx, 12+shy); got != '◆' {
		t.Errorf("debris cell (%d,%d) = %q, want it shifted with the scene", 40+shx, 12+shy, got)
	}
	if shx != 0 || shy != 0 {
		if got := dst.Get(40-shx, 12-shy); got == '◆' {
			t.Error("debris rendered against the shake direction")
		}
	}
}
