// Package rpg implements the top-down adventure starter scene: a meadow
// twice the screen size, a quest-giving guide, wandering critters, and a
// gem hunt with hearts to patch up bites.
package rpg

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

// Gameplay constants
const (
	worldSizeFactor = 2 // world size as a multiple of the screen
	playerW         = 3
	playerH         = 2
	critterW        = 3
	critterH        = 2
	critterSpeed    = 4.0 // cells/s, slower than the player
	retargetMin     = 30  // ticks before a critter rolls a new direction
	retargetSpread  = 30
	invulnDuration  = 60 // ticks of grace after a bite
	gemValue        = 25
	questBonus      = 100 // awarded for collecting every gem
	guideRangeX     = 8   // dialog shows inside this range
	guideRangeY     = 5
)

// Scene implements the rpg starter.
type Scene struct {
	cfg    core.RuntimeConfig
	tuning preset.Preset
	rng    *rand.Rand
	dt     float64

	player *actor.Actor
	hero   *sprite.Visual
	cam    *camera.Camera

	worldW, worldH int
	guide          *sprite.Visual
	guideX, guideY int
	guideNear      bool
	dialogIdx      int

	gems     []pickup
	hearts   []pickup
	critters []critter
	decor    []dot
	labels   []*sprite.Feedback

	score       int
	health      int
	invulnTicks int
	completed   bool
	gameOver    bool
	paused      bool
	tickCount   int
}

// New creates a new rpg scene instance.
func New() *Scene {
	return &Scene{}
}

// ID returns the unique identifier for this scene.
func (s *Scene) ID() string {
	return "rpg"
}

// Title returns the display name for this scene.
func (s *Scene) Title() string {
	return "Meadow Quest"
}

// Reset initializes or restarts the scene.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	s.cfg = cfg
	s.tuning = preset.ForGenre(preset.GenreRPG)
	s.rng = rand.New(rand.NewSource(cfg.Seed))
	s.dt = 1.0 / float64(tickRate)
	s.worldW = cfg.ScreenW * worldSizeFactor
	s.worldH = cfg.ScreenH * worldSizeFactor
	s.score = 0
	s.health = s.tuning.Player.Health
	s.invulnTicks = 0
	s.guideNear = false
	s.dialogIdx = 0
	s.completed = false
	s.gameOver = false
	s.paused = false
	s.tickCount = 0
	s.labels = nil

	s.buildWorld()

	spawnX, spawnY := s.spawnPoint()
	s.player = actor.New(float64(spawnX), float64(spawnY), s.tuning, tickRate)
	s.player.SetSize(playerW, playerH)
	s.hero = sprite.NewCharacter(spawnX, spawnY, sprite.CharacterHero, nil)

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
	s.clampToWorld()

	s.advanceCritters()
	s.collectGems()
	s.collectHearts()
	s.resolveContact()
	s.updateGuide()

	if !s.gameOver && s.gemsLeft() == 0 {
		s.completed = true
		s.gameOver = true
		s.score += questBonus
	}

	cx, cy := s.playerCenter()
	s.cam.Follow(cx, cy)
	s.advanceLabels()

	return core.StepResult{State: s.State()}
}

// playerCenter returns the middle of the hero hitbox in world cells.
func (s *Scene) playerCenter() (float64, float64) {
	x, y := s.player.Position()
	return x + float64(playerW)/2, y + float64(playerH)/2
}

// clampToWorld keeps the player inside the meadow.
func (s *Scene) clampToWorld() {
	x, y := s.player.Position()
	cx := core.ClampF(x, 0, float64(s.worldW-playerW))
	cy := core.ClampF(y, 0, float64(s.worldH-playerH))
	if cx != x || cy != y {
		s.player.SetPosition(cx, cy)
	}
}

// advanceCritters wanders each critter, bouncing off the world edges.
func (s *Scene) advanceCritters() {
	maxX := float64(s.worldW - critterW)
	maxY := float64(s.worldH - critterH)

	for i := range s.critters {
		c := &s.critters[i]
		c.retarget--
		if c.retarget <= 0 {
			c.dx = float64(s.rng.Intn(3) - 1)
			c.dy = float64(s.rng.Intn(3) - 1)
			c.retarget = retargetMin + s.rng.Intn(retargetSpread)
		}

		c.x += c.dx * critterSpeed * s.dt
		c.y += c.dy * critterSpeed * s.dt
		if c.x < 0 {
			c.x, c.dx = 0, -c.dx
		}
		if c.x > maxX {
			c.x, c.dx = maxX, -c.dx
		}
		if c.y < 0 {
			c.y, c.dy = 0, -c.dy
		}
		if c.y > maxY {
			c.y, c.dy = maxY, -c.dy
		}
	}
}

// collectGems scores any gem overlapping the player.
func (s *Scene) collectGems() {
	pb := s.player.Bounds()
	for i := range s.gems {
		g := &s.gems[i]
		if g.taken || !pb.Intersects(g.vis.Bounds()) {
			continue
		}
		g.taken = true
		s.score += gemValue

		gx, gy := g.vis.Position()
		lbl := sprite.NewFeedback(gx-1, gy-1, fmt.Sprintf("+%d", gemValue), core.ColorBrightCyan)
		lbl.SetDuration(sprite.TweenDuration(s.tuning.Polish.Tween))
		s.labels = append(s.labels, lbl)
	}
}

// collectHearts heals one point per heart, capped at the preset health.
func (s *Scene) collectHearts() {
	pb := s.player.Bounds()
	for i := range s.hearts {
		h := &s.hearts[i]
		if h.taken || !pb.Intersects(h.vis.Bounds()) {
			continue
		}
		h.taken = true
		if s.health < s.tuning.Player.Health {
			s.health++
		}

		hx, hy := h.vis.Position()
		lbl := sprite.NewFeedback(hx-1, hy-1, "+♥", core.ColorBrightRed)
		lbl.SetDuration(sprite.TweenDuration(s.tuning.Polish.Tween))
		s.labels = append(s.labels, lbl)
	}
}

// resolveContact applies critter bites: one heart per bite, followed by a
// short grace period so overlapping for a few ticks costs one heart, not
// one per tick.
func (s *Scene) resolveContact() {
	if s.invulnTicks > 0 {
		s.invulnTicks--
		return
	}

	pb := s.player.Bounds()
	for i := range s.critters {
		c := &s.critters[i]
		r := core.NewRect(int(c.x), int(c.y), critterW, critterH)
		if !pb.Intersects(r) {
			continue
		}

		s.health--
		s.invulnTicks = invulnDuration

		px, py := s.player.Position()
		lbl := sprite.NewFeedback(int(px), int(py)-1, "OUCH", core.ColorBrightRed)
		lbl.SetDuration(sprite.TweenDuration(s.tuning.Polish.Tween))
		s.labels = append(s.labels, lbl)

		if s.health <= 0 {
			s.gameOver = true
		}
		return
	}
}

// updateGuide tracks whether the player stands near the guide. The dialog
// line advances when the player walks away, so each visit reads fresh.
func (s *Scene) updateGuide() {
	cx, cy := s.playerCenter()
	near := core.Abs(int(cx)-(s.guideX+1)) <= guideRangeX &&
		core.Abs(int(cy)-(s.guideY+1)) <= guideRangeY

	if !near && s.guideNear {
		s.dialogIdx = (s.dialogIdx + 1) % len(guideLines)
	}
	s.guideNear = near
}

// gemsLeft counts gems not yet collected.
func (s *Scene) gemsLeft() int {
	left := 0
	for i := range s.gems {
		if !s.gems[i].taken {
			left++
		}
	}
	return left
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

// Render draws the current scene state to the screen.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()
	ox, oy := s.cam.Offset()

	for _, d := range s.decor {
		if !s.cam.Visible(core.NewRect(d.x, d.y, 1, 1)) {
			continue
		}
		dst.SetColored(d.x-ox, d.y-oy, '·', core.ColorMoss)
	}

	for i := range s.gems {
		g := &s.gems[i]
		if g.taken || !s.cam.Visible(g.vis.Bounds()) {
			continue
		}
		gx, gy := g.vis.Position()
		g.vis.DrawAt(dst, gx-ox, gy-oy)
	}
	for i := range s.hearts {
		h := &s.hearts[i]
		if h.taken || !s.cam.Visible(h.vis.Bounds()) {
			continue
		}
		hx, hy := h.vis.Position()
		h.vis.DrawAt(dst, hx-ox, hy-oy)
	}

	s.guide.DrawAt(dst, s.guideX-ox, s.guideY-oy)
	if s.guideNear {
		line := guideLines[s.dialogIdx]
		s.drawDialog(dst, line, s.guideX-ox, s.guideY-oy)
	}

	for i := range s.critters {
		c := &s.critters[i]
		r := core.NewRect(int(c.x), int(c.y), critterW, critterH)
		if !s.cam.Visible(r) {
			continue
		}
		c.vis.DrawAt(dst, int(c.x)-ox, int(c.y)-oy)
	}

	// Blink the hero during the post-bite grace period
	if s.invulnTicks == 0 || (s.invulnTicks/4)%2 == 0 {
		px, py := s.player.Position()
		s.hero.DrawAt(dst, int(px)-ox, int(py)-oy)
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
			title = "QUEST COMPLETE"
		}
		s.drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  Press R to restart", s.score))
	}
}

// drawDialog draws a speech line centered above the guide.
func (s *Scene) drawDialog(dst *core.Screen, line string, gx, gy int) {
	x := gx + 1 - len([]rune(line))/2
	y := gy - 2
	if y < 1 {
		y = 1
	}
	dst.DrawTextColored(x, y, line, core.ColorBrightYellow)
}

// drawHUD draws the score, gem progress, and remaining hearts.
func (s *Scene) drawHUD(dst *core.Screen) {
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", s.score))
	dst.DrawText(20, 0, fmt.Sprintf(" Gems: %d/%d ", gemCount-s.gemsLeft(), gemCount))
	if s.health > 0 {
		hearts := strings.TrimRight(strings.Repeat("♥ ", s.health), " ")
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
		Lives:    s.health,
		GameOver: s.gameOver,
		Paused:   s.paused,
	}
}

// Register the scene with the registry
func init() {
	registry.Register("rpg", func() registry.Scene {
		return New()
	})
}
