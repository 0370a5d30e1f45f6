// Package shooter implements the fixed-screen starter scene: a ship holds
// the bottom of the screen against creep waves that march sideways and
// drop closer on every edge bounce.
package shooter

import (
	"fmt"
	"math/rand"
	"strings"

	"gameforge/internal/actor"
	"gameforge/internal/camera"
	"gameforge/internal/core"
	"gameforge/internal/preset"
	"gameforge/internal/registry"
	"gameforge/internal/sprite"
)

// Combat constants
const (
	playerW     = 3 // ship hitbox width
	playerH     = 2 // ship hitbox height
	bulletSpeed = 34.0
	bulletChar  = '│'
	creepW      = 3
	creepH      = 2
	creepValue  = 20
	waveBonus   = 50
)

// Scene implements the shooter starter.
type Scene struct {
	cfg    core.RuntimeConfig
	tuning preset.Preset
	rng    *rand.Rand
	dt     float64 // seconds per tick

	ship    *actor.Actor
	shipVis *sprite.Visual
	shake   *camera.Shaker

	bullets   []bullet
	creeps    []creep
	creepVis  *sprite.Visual
	wave      int
	marchDir  int // +1 right, -1 left
	marchTick int // ticks until the next march step

	bursts []*sprite.Burst
	labels []*sprite.Feedback

	score     int
	lives     int
	gameOver  bool
	paused    bool
	tickCount int
}

// bullet is a shot travelling up the screen.
type bullet struct {
	x, y float64
}

// creep is one formation member.
type creep struct {
	x, y  int
	alive bool
}

// New creates a new shooter scene instance.
func New() *Scene {
	return &Scene{}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return "shooter"
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Creep Descent"
}

// Reset initializes or restarts the scene.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	s.cfg = cfg
	s.tuning = preset.ForGenre(preset.GenreShooter)
	s.rng = rand.New(rand.NewSource(cfg.Seed))
	s.dt = 1.0 / float64(tickRate)
	s.score = 0
	s.lives = s.tuning.Player.Health
	s.gameOver = false
	s.paused = false
	s.tickCount = 0
	s.bullets = nil
	s.bursts = nil
	s.labels = nil
	s.wave = 0

	shipX := float64(cfg.ScreenW-playerW) / 2
	s.ship = actor.New(shipX, float64(s.shipY()), s.tuning, tickRate)
	s.ship.SetSize(playerW, playerH)
	s.shipVis = sprite.NewCharacter(0, 0, sprite.CharacterShip, nil)
	s.shake = camera.NewShaker(cfg.Seed)

	s.spawnWave()
}

// shipY returns the fixed row the ship sits on.
func (s *Scene) shipY() int {
	return s.cfg.ScreenH - 3
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

	if in.Has(core.ActionLeft) {
		s.ship.MoveX(-1, s.dt)
	}
	if in.Has(core.ActionRight) {
		s.ship.MoveX(1, s.dt)
	}
	s.clampShip()

	if in.Has(core.ActionFire) && s.ship.TryFire() {
		px, _ := s.ship.Position()
		s.bullets = append(s.bullets, bullet{x: px + 1, y: float64(s.shipY() - 1)})
	}

	s.ship.Step(s.dt)
	s.advanceBullets()
	s.march()
	s.resolveHits()
	s.resolveBreaches()

	if s.aliveCreeps() == 0 && !s.gameOver {
		s.score += waveBonus
		s.spawnWave()
		lbl := sprite.NewFeedback(s.cfg.ScreenW/2-4, s.cfg.ScreenH/2, fmt.Sprintf("WAVE %d", s.wave), core.ColorBrightCyan)
		lbl.SetDuration(sprite.TweenDuration(s.tuning.Polish.Tween))
		s.labels = append(s.labels, lbl)
	}

	s.shake.Advance()
	s.advanceEffects()

	return core.StepResult{State: s.State()}
}

// clampShip keeps the ship inside the screen with a one-cell margin.
func (s *Scene) clampShip() {
	x, y := s.ship.Position()
	cx := core.ClampF(x, 1, float64(s.cfg.ScreenW-1-playerW))
	if cx != x {
		s.ship.SetPosition(cx, y)
	}
}

// advanceBullets moves shots upward and culls the ones leaving the screen.
func (s *Scene) advanceBullets() {
	live := s.bullets[:0]
	for _, b := range s.bullets {
		b.y -= bulletSpeed * s.dt
		if b.y >= 0 {
			live = append(live, b)
		}
	}
	s.bullets = live
}

// resolveHits removes creeps struck by bullets and scores them.
func (s *Scene) resolveHits() {
	liveBullets := s.bullets[:0]
	for _, b := range s.bullets {
		hit := false
		for i := range s.creeps {
			c := &s.creeps[i]
			if !c.alive || int(b.y) < c.y || int(b.y) >= c.y+creepH ||
				int(b.x) < c.x || int(b.x) >= c.x+creepW {
				continue
			}
			c.alive = false
			hit = true
			s.score += creepValue

			if s.tuning.Polish.Particles {
				s.bursts = append(s.bursts, sprite.NewBurst(c.x+1, c.y, sprite.BurstSpark, 6, s.rng.Int63()))
			}
			lbl := sprite.NewFeedback(c.x, c.y-1, fmt.Sprintf("+%d", creepValue), core.ColorBrightYellow)
			lbl.SetDuration(sprite.TweenDuration(s.tuning.Polish.Tween))
			s.labels = append(s.labels, lbl)
			break
		}
		if !hit {
			liveBullets = append(liveBullets, b)
		}
	}
	s.bullets = liveBullets
}

// resolveBreaches handles creeps reaching the ship row: a direct collision
// and a breach both cost a life, and both remove the creep.
func (s *Scene) resolveBreaches() {
	shipRect := s.ship.Bounds()
	for i := range s.creeps {
		c := &s.creeps[i]
		if !c.alive || c.y+creepH-1 < s.shipY() {
			continue
		}
		c.alive = false

		creepRect := core.NewRect(c.x, c.y, creepW, creepH)
		if creepRect.Intersects(shipRect) {
			if s.tuning.Polish.Particles {
				s.bursts = append(s.bursts, sprite.NewBurst(c.x+1, c.y, sprite.BurstEmber, 8, s.rng.Int63()))
			}
			s.hitShip("HIT!")
		} else {
			s.hitShip("BREACH!")
		}
	}
}

// hitShip costs a life and ends the run at zero.
func (s *Scene) hitShip(label string) {
	s.lives--
	s.shake.Jolt(s.tuning.Polish.Shake)

	lbl := sprite.NewFeedback(s.cfg.ScreenW/2-3, s.shipY()-2, label, core.ColorBrightRed)
	lbl.SetDuration(sprite.TweenDuration(s.tuning.Polish.Tween))
	s.labels = append(s.labels, lbl)

	if s.lives <= 0 {
		s.gameOver = true
	}
}

// aliveCreeps counts the remaining formation members.
func (s *Scene) aliveCreeps() int {
	n := 0
	for _, c := range s.creeps {
		if c.alive {
			n++
		}
	}
	return n
}

// advanceEffects ages bursts and labels and drops the finished ones.
func (s *Scene) advanceEffects() {
	liveBursts := s.bursts[:0]
	for _, b := range s.bursts {
		b.Advance(s.dt)
		if b.Alive() {
			liveBursts = append(liveBursts, b)
		}
	}
	s.bursts = liveBursts

	liveLabels := s.labels[:0]
	for _, f := range s.labels {
		f.Advance()
		if f.Alive() {
			liveLabels = append(liveLabels, f)
		}
	}
	s.labels = liveLabels
}

// Render draws the current scene state to the screen.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()
	shx, shy := s.shake.Offset()

	for _, c := range s.creeps {
		if !c.alive {
			continue
		}
		s.creepVis.DrawAt(dst, c.x+shx, c.y+shy)
	}

	for _, b := range s.bullets {
		dst.SetColored(int(b.x)+shx, int(b.y)+shy, bulletChar, core.ColorBrightYellow)
	}

	px, py := s.ship.Position()
	s.shipVis.DrawAt(dst, int(px)+shx, int(py)+shy)

	for _, b := range s.bursts {
		b.DrawOffset(dst, shx, shy)
	}
	for _, f := range s.labels {
		f.Draw(dst)
	}

	s.drawHUD(dst)

	if s.paused {
		s.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
	if s.gameOver {
		s.drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.score))
	}
}

// drawHUD draws the score, wave number, and remaining lives.
func (s *Scene) drawHUD(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d   Wave: %d ", s.score, s.wave))
	if s.lives > 0 {
		hearts := strings.TrimRight(strings.Repeat("♥ ", s.lives), " ")
		dst.DrawTextColored(dst.Width()-len([]rune(hearts))-2, 0, hearts, core.ColorBrightRed)
	}
}

// drawCenteredBox draws a centered message box.
func (s *Scene) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))
	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// State returns the current scene state.
func (s *Scene) State() core.SceneState {
	return core.SceneState{
		Score:    s.score,
		Lives:    s.lives,
		GameOver: s.gameOver,
		Paused:   s.paused,
	}
}

// Register the scene with the registry
func init() {
	registry.Register("shooter", func() registry.Scene {
		return New()
	})
}
