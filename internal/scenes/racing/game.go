// Package racing implements the lane-dodging starter scene: a three-lane
// road scrolling under the player's car, oncoming traffic that thickens
// and speeds up the longer the run lasts, and one life.
package racing

import (
	"fmt"
	"math/rand"

	"gameforge/internal/actor"
	"gameforge/internal/camera"
	"gameforge/internal/core"
	"gameforge/internal/preset"
	"gameforge/internal/registry"
	"gameforge/internal/sprite"
)

// Road and traffic constants
const (
	laneCount      = 3
	laneW          = 8
	roadW          = laneCount*laneW + 2 // interior plus both edge columns
	playerW        = 4
	playerH        = 2
	carW           = 4
	carH           = 2
	passValue      = 10
	spawnEveryBase = 55         // ticks between traffic spawns at ramp 1.0
	spawnEveryMin  = 20         // cadence floor at full ramp
	doubleChance   = 0.2        // chance a spawn fills a second lane
	rampMax        = 2.0        // top speed multiplier
	rampPerTick    = 0.5 / 3600 // reaches 1.5x after a minute at 60 fps
)

// trafficTints color incoming cars.
var trafficTints = []core.Color{
	core.ColorBrightYellow,
	core.ColorBrightCyan,
	core.ColorBrightGreen,
	core.ColorBrightMagenta,
}

// car is one oncoming vehicle.
type car struct {
	vis    *sprite.Visual
	lane   int
	x      int
	y      float64
	passed bool // already counted for score
}

// Scene implements the racing starter.
type Scene struct {
	cfg    core.RuntimeConfig
	tuning preset.Preset
	rng    *rand.Rand
	dt     float64

	player *actor.Actor
	racer  *sprite.Visual
	shake  *camera.Shaker

	roadX      int
	roadScroll float64
	cars       []car
	spawnTick  int

	bursts []*sprite.Burst
	labels []*sprite.Feedback

	score     int
	gameOver  bool
	paused    bool
	tickCount int
}

// New creates a new racing scene instance.
func New() *Scene {
	return &Scene{}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return "racing"
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Lane Rush"
}

// Reset initializes or restarts the scene.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	s.cfg = cfg
	s.tuning = preset.ForGenre(preset.GenreRacing)
	s.rng = rand.New(rand.NewSource(cfg.Seed))
	s.dt = 1.0 / float64(tickRate)
	s.roadX = (cfg.ScreenW - roadW) / 2
	s.roadScroll = 0
	s.cars = nil
	s.bursts = nil
	s.labels = nil
	s.score = 0
	s.gameOver = false
	s.paused = false
	s.tickCount = 0

	s.player = actor.New(float64(s.laneX(1)), float64(cfg.ScreenH-4), s.tuning, tickRate)
	s.player.SetSize(playerW, playerH)
	s.racer = sprite.NewCharacter(0, 0, sprite.CharacterRacer, nil)
	s.shake = camera.NewShaker(cfg.Seed)
	s.spawnTick = s.cadence()
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
	s.clampToRoad()

	s.roadScroll += s.carSpeed() * s.dt

	s.spawnTick--
	if s.spawnTick <= 0 {
		s.spawnTraffic()
		s.spawnTick = s.cadence()
	}

	s.advanceTraffic()
	s.resolveCollision()

	s.shake.Advance()
	s.advanceEffects()

	return core.StepResult{State: s.State()}
}

// carSpeed returns the current traffic speed in cells per second.
func (s *Scene) carSpeed() float64 {
	return s.tuning.Player.Speed * s.ramp()
}

// ramp grows the difficulty multiplier with run time, capped at rampMax.
func (s *Scene) ramp() float64 {
	r := 1 + float64(s.tickCount)*rampPerTick
	if r > rampMax {
		r = rampMax
	}
	return r
}

// cadence returns ticks between spawns, shrinking as the ramp climbs.
func (s *Scene) cadence() int {
	c := int(float64(spawnEveryBase) / s.ramp())
	if c < spawnEveryMin {
		c = spawnEveryMin
	}
	return c
}

// laneX returns the left column of a car centered in the given lane.
func (s *Scene) laneX(lane int) int {
	return s.roadX + 1 + lane*laneW + (laneW-1-carW)/2
}

// clampToRoad keeps the player between the road edges.
func (s *Scene) clampToRoad() {
	x, y := s.player.Position()
	cx := core.ClampF(x, float64(s.roadX+1), float64(s.roadX+roadW-1-playerW))
	if cx != x {
		s.player.SetPosition(cx, y)
	}
}

// spawnTraffic drops a car into a random lane, sometimes two. One lane
// always stays open.
func (s *Scene) spawnTraffic() {
	lane := s.rng.Intn(laneCount)
	s.addCar(lane)
	if s.rng.Float64() < doubleChance {
		second := (lane + 1 + s.rng.Intn(laneCount-1)) % laneCount
		s.addCar(second)
	}
}

func (s *Scene) addCar(lane int) {
	tint := trafficTints[s.rng.Intn(len(trafficTints))]
	s.cars = append(s.cars, car{
		vis:  sprite.NewCharacter(0, 0, sprite.CharacterRacer, &sprite.Style{Tint: tint}),
		lane: lane,
		x:    s.laneX(lane),
		y:    -carH,
	})
}

// advanceTraffic moves cars down the road, scores the ones the player
// clears, and drops cars past the bottom edge.
func (s *Scene) advanceTraffic() {
	_, py := s.player.Position()
	playerBottom := py + playerH

	live := s.cars[:0]
	for i := range s.cars {
		c := s.cars[i]
		c.y += s.carSpeed() * s.dt

		if !c.passed && c.y > playerBottom {
			c.passed = true
			s.score += passValue
			lbl := sprite.NewFeedback(c.x, int(c.y)-1, fmt.Sprintf("+%d", passValue), core.ColorBrightYellow)
			lbl.SetDuration(sprite.TweenDuration(s.tuning.Polish.Tween))
			s.labels = append(s.labels, lbl)
		}

		if c.y < float64(s.cfg.ScreenH+2) {
			live = append(live, c)
		}
	}
	s.cars = live
}

// resolveCollision ends the run on any contact. Racing runs on one life.
func (s *Scene) resolveCollision() {
	pb := s.player.Bounds()
	for i := range s.cars {
		c := &s.cars[i]
		r := core.NewRect(c.x, int(c.y), carW, carH)
		if !pb.Intersects(r) {
			continue
		}

		s.gameOver = true
		s.shake.Jolt(s.tuning.Polish.Shake)
		if s.tuning.Polish.Particles {
			px, py := s.player.Position()
			s.bursts = append(s.bursts, sprite.NewBurst(int(px)+1, int(py), sprite.BurstEmber, 10, s.rng.Int63()))
		}
		return
	}
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

	s.drawRoad(dst, shx, shy)

	for i := range s.cars {
		c := &s.cars[i]
		c.vis.DrawAt(dst, c.x+shx, int(c.y)+shy)
	}

	px, py := s.player.Position()
	s.racer.DrawAt(dst, int(px)+shx, int(py)+shy)

	for _, b := range s.bursts {
		b.DrawOffset(dst, shx, shy)
	}
	for _, f := range s.labels {
		f.Draw(dst)
	}

	s.drawHUD(dst)

	if s.paused {
		s.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if s.gameOver {
		s.drawCenteredMessage(dst, "CRASH", fmt.Sprintf("Score: %d  |  Press R to restart", s.score))
	}
}

// drawRoad draws the edges, scrolling lane dividers, and roadside grass.
func (s *Scene) drawRoad(dst *core.Screen, shx, shy int) {
	off := int(s.roadScroll)
	left := s.roadX + shx
	right := s.roadX + roadW - 1 + shx

	for y := 0; y < s.cfg.ScreenH; y++ {
		dst.SetColored(left, y+shy, '║', core.ColorGray)
		dst.SetColored(right, y+shy, '║', core.ColorGray)

		// Dashed dividers scroll with the road.
		if ((y-off)%4+4)%4 < 2 {
			for lane := 1; lane < laneCount; lane++ {
				dst.SetColored(s.roadX+lane*laneW+shx, y+shy, '┊', core.ColorGray)
			}
		}

		// Roadside grass drifts by at the same rate.
		if ((y-off)%5+5)%5 == 0 {
			dst.SetColored(left-3, y+shy, '·', core.ColorMoss)
			dst.SetColored(right+3, y+shy, '·', core.ColorMoss)
		}
	}
}

// drawHUD draws the score and current speed.
func (s *Scene) drawHUD(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", s.score))
	speed := fmt.Sprintf(" %3.0f cells/s ", s.carSpeed())
	dst.DrawText(dst.Width()-len(speed)-2, 0, speed)
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
		Lives:    boolToLives(!s.gameOver),
		GameOver: s.gameOver,
		Paused:   s.paused,
	}
}

// boolToLives maps the single racing life onto the lives counter.
func boolToLives(alive bool) int {
	if alive {
		return 1
	}
	return 0
}

// Register the scene with the registry
func init() {
	registry.Register("racing", func() registry.Scene {
		return New()
	})
}
