// Package camera provides the preset-tuned follow camera for scrolling
// scenes and the screen shaker used for impact feedback.
package camera

import (
	"math"
	"math/rand"

	"gameforge/internal/core"
	"gameforge/internal/preset"
)

// Shaker produces decaying random view offsets for screen shake. Scenes
// without a scrolling camera use it standalone; Camera embeds one.
type Shaker struct {
	rng      *rand.Rand
	ticks    int
	duration int
	strength float64
	offX     int
	offY     int
}

// NewShaker creates a shaker with its own seeded RNG so shake patterns are
// reproducible in deterministic runs.
func NewShaker(seed int64) *Shaker {
	return &Shaker{rng: rand.New(rand.NewSource(seed))}
}

// Jolt starts a shake sized by the preset style. ShakeNone is a no-op.
func (s *Shaker) Jolt(style preset.ShakeStyle) {
	switch style {
	case preset.ShakeSubtle:
		s.start(1.0, 8)
	case preset.ShakeBold:
		s.start(2.0, 14)
	}
}

func (s *Shaker) start(strength float64, ticks int) {
	s.strength = strength
	s.ticks = ticks
	s.duration = ticks
}

// Advance decays the shake by one tick and rolls new offsets.
func (s *Shaker) Advance() {
	if s.ticks <= 0 {
		s.offX, s.offY = 0, 0
		return
	}
	s.ticks--

	amp := s.strength * float64(s.ticks) / float64(s.duration)
	s.offX = roll(s.rng, amp)
	s.offY = roll(s.rng, amp)
}

// roll picks an integer offset in [-amp, amp].
func roll(rng *rand.Rand, amp float64) int {
	if amp <= 0 {
		return 0
	}
	return int(math.Round((rng.Float64()*2 - 1) * amp))
}

// Offset returns the current shake offset.
func (s *Shaker) Offset() (int, int) {
	return s.offX, s.offY
}

// Active returns true while the shake is still decaying.
func (s *Shaker) Active() bool {
	return s.ticks > 0
}

// Camera follows a target through a world larger than the screen. The
// preset supplies the follow lerp, the deadzone in which the target moves
// freely, and the zoom factor. The view never leaves the world bounds.
type Camera struct {
	Shaker

	x, y           float64 // view center in world cells
	lerp           float64
	deadzoneW      int
	deadzoneH      int
	zoom           float64
	viewW, viewH   int
	worldW, worldH int
}

// New creates a camera for a view of viewW x viewH cells over a world of
// worldW x worldH cells, tuned by the preset camera group.
func New(p preset.Camera, viewW, viewH, worldW, worldH int, seed int64) *Camera {
	c := &Camera{
		Shaker:    Shaker{rng: rand.New(rand.NewSource(seed))},
		lerp:      core.ClampF(p.Lerp, 0, 1),
		deadzoneW: p.DeadzoneW,
		deadzoneH: p.DeadzoneH,
		zoom:      p.Zoom,
		viewW:     viewW,
		viewH:     viewH,
		worldW:    worldW,
		worldH:    worldH,
	}
	if c.zoom <= 0 {
		c.zoom = 1.0
	}
	c.x = float64(viewW) / (2 * c.zoom)
	c.y = float64(viewH) / (2 * c.zoom)
	c.clamp()
	return c
}

// SnapTo centers the view on a point immediately, skipping the lerp.
func (c *Camera) SnapTo(x, y float64) {
	c.x, c.y = x, y
	c.clamp()
}

// Center returns the view center in world cells.
func (c *Camera) Center() (float64, float64) {
	return c.x, c.y
}

// Follow advances the camera one tick toward the target. While the target
// stays inside the deadzone the view does not move. Shake decays on the
// same tick.
func (c *Camera) Follow(targetX, targetY float64) {
	desiredX := c.x
	halfW := float64(c.deadzoneW) / 2
	if dx := targetX - c.x; dx > halfW {
		desiredX = c.x + (dx - halfW)
	} else if dx < -halfW {
		desiredX = c.x + (dx + halfW)
	}

	desiredY := c.y
	halfH := float64(c.deadzoneH) / 2
	if dy := targetY - c.y; dy > halfH {
		desiredY = c.y + (dy - halfH)
	} else if dy < -halfH {
		desiredY = c.y + (dy + halfH)
	}

	c.x = core.Lerp(c.x, desiredX, c.lerp)
	c.y = core.Lerp(c.y, desiredY, c.lerp)
	c.clamp()

	c.Shaker.Advance()
}

// clamp keeps the visible area inside the world. Worlds smaller than the
// view are centered.
func (c *Camera) clamp() {
	halfW := float64(c.viewW) / (2 * c.zoom)
	halfH := float64(c.viewH) / (2 * c.zoom)

	if float64(c.worldW) <= 2*halfW {
		c.x = float64(c.worldW) / 2
	} else {
		c.x = core.ClampF(c.x, halfW, float64(c.worldW)-halfW)
	}
	if float64(c.worldH) <= 2*halfH {
		c.y = float64(c.worldH) / 2
	} else {
		c.y = core.ClampF(c.y, halfH, float64(c.worldH)-halfH)
	}
}

// WorldToScreen maps a world position to screen cells, applying zoom and
// the current shake offset.
func (c *Camera) WorldToScreen(wx, wy float64) (int, int) {
	sx := int(math.Round((wx-c.x)*c.zoom)) + c.viewW/2
	sy := int(math.Round((wy-c.y)*c.zoom)) + c.viewH/2
	return sx + c.offX, sy + c.offY
}

// Offset returns the subtractive view offset including shake, so that for
// the default zoom screenX = worldX - offsetX. The DrawOffset sprite
// helpers add their shift, so scenes pass the negation.
func (c *Camera) Offset() (int, int) {
	ox := int(math.Round(c.x)) - c.viewW/2 - c.offX
	oy := int(math.Round(c.y)) - c.viewH/2 - c.offY
	return ox, oy
}

// Visible reports whether any part of a world rect is inside the view,
// with a one-cell margin for partially drawn composites.
func (c *Camera) Visible(r core.Rect) bool {
	ox, oy := c.Offset()
	view := core.NewRect(ox-1, oy-1, c.viewW+2, c.viewH+2)
	return r.Intersects(view)
}
