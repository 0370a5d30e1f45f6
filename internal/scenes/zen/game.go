// Package zen implements the ambient starter scene: glowing motes drift
// down through a garden on a slow sine wind, and a lantern bearer wanders
// around catching them until the day ends. There is no way to lose.
package zen

import (
	"fmt"
	"math"
	"math/rand"

	"gameforge/internal/actor"
	"gameforge/internal/core"
	"gameforge/internal/preset"
	"gameforge/internal/registry"
	"gameforge/internal/sprite"
)

// Garden constants
const (
	moteCount    = 30
	moteMaxFall  = 3.0  // terminal fall speed in cells/s
	windAmp      = 1.5  // sideways drift in cells/s
	windFreq     = 0.02 // radians per tick
	biasRange    = 12.0 // motes this close drift toward the lantern
	biasStrength = 0.8  // cells/s of pull
	playerW      = 3
	playerH      = 2
	dayTicks     = 60 * 90 // a run lasts a 90 second day
	duskAt       = dayTicks * 2 / 3
)

// moteGlyphs are the twinkle shapes, picked per mote.
var moteGlyphs = []rune{'✻', '·', '❋'}

// dayTints and duskTints color the motes before and after dusk.
var (
	dayTints  = []core.Color{core.ColorBrightYellow, core.ColorBrightWhite, core.ColorBrightCyan}
	duskTints = []core.Color{core.ColorDusk, core.ColorBrightMagenta, core.ColorOrange}
)

// mote is one drifting light.
type mote struct {
	x, y  float64
	vy    float64
	phase float64 // offsets the shared wind sine
	glyph int     // index into moteGlyphs
}

// Scene implements the zen starter.
type Scene struct {
	cfg    core.RuntimeConfig
	tuning preset.Preset
	rng    *rand.Rand
	dt     float64

	player  *actor.Actor
	lantern *sprite.Visual

	motes  []mote
	bursts []*sprite.Burst

	score     int
	gameOver  bool
	paused    bool
	tickCount int
}

// New creates a new zen scene instance.
func New() *Scene {
	return &Scene{}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return "zen"
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Drift Garden"
}

// Reset initializes or restarts the scene.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	s.cfg = cfg
	s.tuning = preset.ForGenre(preset.GenreZen)
	s.rng = rand.New(rand.NewSource(cfg.Seed))
	s.dt = 1.0 / float64(tickRate)
	s.score = 0
	s.gameOver = false
	s.paused = false
	s.tickCount = 0
	s.bursts = nil

	s.player = actor.New(float64(cfg.ScreenW/2), float64(cfg.ScreenH-4), s.tuning, tickRate)
	s.player.SetSize(playerW, playerH)
	s.lantern = sprite.NewCharacter(0, 0, sprite.CharacterHero, &sprite.Style{Tint: core.ColorBrightYellow})

	s.motes = make([]mote, moteCount)
	for i := range s.motes {
		s.motes[i] = s.rollMote()
		// Scatter the opening sky instead of dropping one curtain
		s.motes[i].y = -s.rng.Float64() * float64(cfg.ScreenH)
	}
}

// rollMote returns a fresh mote above the top edge.
func (s *Scene) rollMote() mote {
	return mote{
		x:     s.rng.Float64() * float64(s.cfg.ScreenW-1),
		y:     -1 - s.rng.Float64()*3,
		phase: s.rng.Float64() * 2 * math.Pi,
		glyph: s.rng.Intn(len(moteGlyphs)),
	}
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
		s.player.MoveX(-1, s.dt)
	}
	if in.Has(core.ActionRight) {
		s.player.MoveX(1, s.dt)
	}
	if in.Has(core.ActionUp) {
		s.player.MoveY(-1, s.dt)
	}
	if in.Has(core.ActionDown) {
		s.player.MoveY(1, s.dt)
	}
	s.clampToScreen()

	s.driftMotes()
	s.catchMotes()
	s.advanceBursts()

	// The day winds down on its own. Nothing here can fail.
	if s.tickCount >= dayTicks {
		s.gameOver = true
	}

	return core.StepResult{State: s.State()}
}

// clampToScreen keeps the lantern bearer inside the garden.
func (s *Scene) clampToScreen() {
	x, y := s.player.Position()
	cx := core.ClampF(x, 0, float64(s.cfg.ScreenW-playerW))
	cy := core.ClampF(y, 1, float64(s.cfg.ScreenH-playerH))
	if cx != x || cy != y {
		s.player.SetPosition(cx, cy)
	}
}

// driftMotes applies gravity up to terminal speed and the sine wind, with
// a gentle pull toward the lantern. Motes past the bottom come back at
// the top.
func (s *Scene) driftMotes() {
	pcx, _ := s.playerCenter()
	gravity := s.tuning.Physics.GravityY

	for i := range s.motes {
		m := &s.motes[i]

		m.vy += gravity * s.dt
		if m.vy > moteMaxFall {
			m.vy = moteMaxFall
		}

		vx := math.Sin(m.phase+float64(s.tickCount)*windFreq) * windAmp
		if d := pcx - m.x; math.Abs(d) < biasRange {
			if d > 0 {
				vx += biasStrength
			} else {
				vx -= biasStrength
			}
		}

		m.x += vx * s.dt
		m.y += m.vy * s.dt

		if m.x < 0 {
			m.x = 0
		}
		if edge := float64(s.cfg.ScreenW - 1); m.x > edge {
			m.x = edge
		}
		if m.y > float64(s.cfg.ScreenH) {
			*m = s.rollMote()
		}
	}
}

// catchMotes scores any mote inside the lantern's glow and sends it back
// to the sky.
func (s *Scene) catchMotes() {
	pb := s.player.Bounds()
	for i := range s.motes {
		m := &s.motes[i]
		if !pb.Contains(int(m.x), int(m.y)) {
			continue
		}

		s.score++
		if s.tuning.Polish.Particles {
			s.bursts = append(s.bursts, sprite.NewBurst(int(m.x), int(m.y), sprite.BurstPuff, 4, s.rng.Int63()))
		}
		*m = s.rollMote()
	}
}

// playerCenter returns the middle of the lantern hitbox.
func (s *Scene) playerCenter() (float64, float64) {
	x, y := s.player.Position()
	return x + float64(playerW)/2, y + float64(playerH)/2
}

// advanceBursts ages catch puffs and drops the finished ones.
func (s *Scene) advanceBursts() {
	live := s.bursts[:0]
	for _, b := range s.bursts {
		b.Advance(s.dt)
		if b.Alive() {
			live = append(live, b)
		}
	}
	s.bursts = live
}

// tints returns the mote palette for the current time of day.
func (s *Scene) tints() []core.Color {
	if s.tickCount >= duskAt {
		return duskTints
	}
	return dayTints
}

// Render draws the current scene state to the screen.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()

	palette := s.tints()
	for i := range s.motes {
		m := &s.motes[i]
		if m.y < 0 {
			continue
		}
		dst.SetColored(int(m.x), int(m.y), moteGlyphs[m.glyph], palette[m.glyph%len(palette)])
	}

	px, py := s.player.Position()
	s.lantern.DrawAt(dst, int(px), int(py))

	for _, b := range s.bursts {
		b.Draw(dst)
	}

	s.drawHUD(dst)

	if s.paused {
		s.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if s.gameOver {
		s.drawCenteredMessage(dst, "THE DAY ENDS", fmt.Sprintf("Caught: %d  |  Press R for a new day", s.score))
	}
}

// drawHUD draws the catch count and the sun or moon crossing the sky.
func (s *Scene) drawHUD(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" Caught: %d ", s.score))

	marker := '☀'
	if s.tickCount >= duskAt {
		marker = '☽'
	}
	track := dst.Width() - 4
	x := 2 + track*s.tickCount/dayTicks
	dst.SetColored(x, 0, marker, core.ColorBrightYellow)
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
	registry.Register("zen", func() registry.Scene {
		return New()
	})
}
