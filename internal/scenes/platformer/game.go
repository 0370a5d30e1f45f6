// Package platformer implements the side-scrolling starter scene: a coin
// trail over floating platforms, with pits cut into the ground and a goal
// at the right edge of the world.
package platformer

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

// World layout constants
const (
	worldWidthFactor = 3 // world width as a multiple of the screen
	spawnX           = 3
	playerW          = 3 // hero hitbox width
	playerH          = 2 // hero hitbox height
	coinValue        = 10
	clearBonus       = 100 // awarded for reaching the right edge
)

// Scene implements the platformer starter.
type Scene struct {
	cfg    core.RuntimeConfig
	tuning preset.Preset
	rng    *rand.Rand
	dt     float64 // seconds per tick

	player *actor.Actor
	hero   *sprite.Visual
	cam    *camera.Camera

	worldW, worldH int
	platforms      []*sprite.Visual
	coins          []coin
	bursts         []*sprite.Burst
	labels         []*sprite.Feedback

	score     int
	lives     int
	completed bool // reached the right edge
	gameOver  bool
	paused    bool
	tickCount int
}

// coin is a collectible with a taken flag so pickups are not re-scored.
type coin struct {
	vis   *sprite.Visual
	taken bool
}

// New creates a new platformer scene instance.
func New() *Scene {
	return &Scene{}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return "platformer"
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Coin Trail"
}

// Reset initializes or restarts the scene.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	s.cfg = cfg
	s.tuning = preset.ForGenre(preset.GenrePlatformer)
	s.rng = rand.New(rand.NewSource(cfg.Seed))
	s.dt = 1.0 / float64(tickRate)
	s.worldW = cfg.ScreenW * worldWidthFactor
	s.worldH = cfg.ScreenH
	s.score = 0
	s.lives = s.tuning.Player.Health
	s.completed = false
	s.gameOver = false
	s.paused = false
	s.tickCount = 0
	s.bursts = nil
	s.labels = nil

	s.buildWorld()

	s.player = actor.New(spawnX, 0, s.tuning, tickRate)
	s.player.SetSize(playerW, playerH)
	s.player.Land(float64(s.worldH - 1))
	s.hero = sprite.NewCharacter(spawnX, 0, sprite.CharacterHero, nil)

	s.cam = camera.New(s.tuning.Camera, cfg.ScreenW, cfg.ScreenH, s.worldW, s.worldH, cfg.Seed)
	cx, cy := s.playerCenter()
	s.cam.SnapTo(cx, cy)
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

	// Horizontal movement
	if in.Has(core.ActionLeft) {
		s.player.MoveX(-1, s.dt)
	}
	if in.Has(core.ActionRight) {
		s.player.MoveX(1, s.dt)
	}
	s.clampToWorld()

	// Jump with a dust puff at the feet
	if in.Has(core.ActionJump) && s.player.Jump() && s.tuning.Polish.Particles {
		px, py := s.player.Position()
		s.bursts = append(s.bursts, sprite.NewBurst(int(px)+1, int(py)+playerH, sprite.BurstPuff, 4, s.rng.Int63()))
	}

	// Walking off a platform edge starts a fall
	if s.player.Grounded() && !s.supported() {
		s.player.Airborne()
	}

	_, py := s.player.Position()
	prevFeet := py + playerH
	s.player.Step(s.dt)
	s.landOnPlatforms(prevFeet)

	s.collectCoins()

	// Fell into a pit
	if _, y := s.player.Position(); y > float64(s.worldH) {
		s.loseLife()
	}

	// Reached the goal at the right edge
	if x, _ := s.player.Position(); !s.gameOver && int(x)+playerW >= s.worldW-1 {
		s.completed = true
		s.gameOver = true
		s.score += clearBonus
	}

	cx, cy := s.playerCenter()
	s.cam.Follow(cx, cy)
	s.advanceEffects()

	return core.StepResult{State: s.State()}
}

// playerCenter returns the middle of the hero hitbox in world cells.
func (s *Scene) playerCenter() (float64, float64) {
	x, y := s.player.Position()
	return x + float64(playerW)/2, y + float64(playerH)/2
}

// clampToWorld keeps the player inside the horizontal world bounds.
func (s *Scene) clampToWorld() {
	x, y := s.player.Position()
	cx := core.ClampF(x, 0, float64(s.worldW-playerW))
	if cx != x {
		s.player.SetPosition(cx, y)
	}
}

// supported reports whether the player's feet rest on any platform.
func (s *Scene) supported() bool {
	b := s.player.Bounds()
	feet := b.Y + b.H
	for _, p := range s.platforms {
		pb := p.Bounds()
		if pb.Y == feet && b.X < pb.X+pb.W && b.X+b.W > pb.X {
			return true
		}
	}
	return false
}

// landOnPlatforms snaps the player onto the highest platform whose top the
// feet crossed during this tick. Rising players pass through from below.
func (s *Scene) landOnPlatforms(prevFeet float64) {
	if s.player.Grounded() || !s.player.Falling() {
		return
	}

	b := s.player.Bounds()
	_, py := s.player.Position()
	feet := py + playerH

	bestTop := -1
	for _, p := range s.platforms {
		pb := p.Bounds()
		top := float64(pb.Y)
		if prevFeet <= top && feet >= top && b.X < pb.X+pb.W && b.X+b.W > pb.X {
			if bestTop < 0 || pb.Y < bestTop {
				bestTop = pb.Y
			}
		}
	}
	if bestTop >= 0 {
		s.player.Land(float64(bestTop))
	}
}

// collectCoins scores any coin overlapping the player.
func (s *Scene) collectCoins() {
	pb := s.player.Bounds()
	for i := range s.coins {
		c := &s.coins[i]
		if c.taken || !pb.Intersects(c.vis.Bounds()) {
			continue
		}
		c.taken = true
		s.score += coinValue

		cx, cy := c.vis.Position()
		if s.tuning.Polish.Particles {
			s.bursts = append(s.bursts, sprite.NewBurst(cx, cy, sprite.BurstSpark, 6, s.rng.Int63()))
		}
		lbl := sprite.NewFeedback(cx-1, cy-1, fmt.Sprintf("+%d", coinValue), core.ColorBrightYellow)
		lbl.SetDuration(sprite.TweenDuration(s.tuning.Polish.Tween))
		s.labels = append(s.labels, lbl)
	}
}

// loseLife handles a fall into a pit: respawn while lives remain, game
// over otherwise.
func (s *Scene) loseLife() {
	s.lives--
	s.cam.Jolt(s.tuning.Polish.Shake)

	if s.lives <= 0 {
		s.gameOver = true
		return
	}

	s.player.SetPosition(spawnX, 0)
	s.player.Land(float64(s.worldH - 1))
	cx, cy := s.playerCenter()
	s.cam.SnapTo(cx, cy)

	lbl := sprite.NewFeedback(spawnX, s.worldH-5, "OUCH!", core.ColorBrightRed)
	lbl.SetDuration(sprite.TweenDuration(s.tuning.Polish.Tween))
	s.labels = append(s.labels, lbl)
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
	ox, oy := s.cam.Offset()

	for _, p := range s.platforms {
		if !s.cam.Visible(p.Bounds()) {
			continue
		}
		px, py := p.Position()
		p.DrawAt(dst, px-ox, py-oy)
	}

	for i := range s.coins {
		c := &s.coins[i]
		if c.taken || !s.cam.Visible(c.vis.Bounds()) {
			continue
		}
		cx, cy := c.vis.Position()
		c.vis.DrawAt(dst, cx-ox, cy-oy)
	}

	px, py := s.player.Position()
	s.hero.DrawAt(dst, int(px)-ox, int(py)-oy)

	for _, b := range s.bursts {
		b.DrawOffset(dst, -ox, -oy)
	}
	for _, f := range s.labels {
		f.DrawOffset(dst, -ox, -oy)
	}

	s.drawHUD(dst)

	if s.paused {
		s.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if s.gameOver {
		title := "GAME OVER"
		if s.completed {
			title = "LEVEL CLEAR"
		}
		s.drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  Press R to restart", s.score))
	}
}

// drawHUD draws the score and remaining lives.
func (s *Scene) drawHUD(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", s.score))
	if s.lives > 0 {
		hearts := strings.TrimRight(strings.Repeat("♥ ", s.lives), " ")
		dst.DrawTextColored(dst.Width()-len([]rune(hearts))-2, 0, hearts, core.ColorBrightRed)
	}
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
		Lives:    s.lives,
		GameOver: s.gameOver,
		Paused:   s.paused,
	}
}

// Register the scene with the registry
func init() {
	registry.Register("platformer", func() registry.Scene {
		return New()
	})
}
