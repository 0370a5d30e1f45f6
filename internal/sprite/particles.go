package sprite

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"gameforge/internal/core"
)

// BurstKind selects the launch pattern and glyph ramp of a particle burst.
type BurstKind int

const (
	BurstSpark BurstKind = iota // fast radial flash, falls under gravity
	BurstPuff                   // slow dust cloud, drifts upward
	BurstEmber                  // heavy debris, drops quickly
)

// particle is one moving cell of a burst.
type particle struct {
	pos  mgl64.Vec2
	vel  mgl64.Vec2
	life int // remaining ticks
}

// Burst is a one-shot particle effect. Construction seeds every particle;
// the host advances it each tick and drops it once Alive reports false.
type Burst struct {
	gravity mgl64.Vec2
	parts   []particle
	ramp    []rune
	color   core.Color
	ttl     int
}

// NewBurst builds a burst of count particles centered on (x, y).
// The same seed always produces the same particle paths. Unknown kinds
// fall back to sparks. Count clamps to a minimum of 1.
func NewBurst(x, y int, kind BurstKind, count int, seed int64) *Burst {
	if count < 1 {
		count = 1
	}

	b := &Burst{}
	var speedMin, speedMax float64
	switch kind {
	case BurstPuff:
		b.gravity = mgl64.Vec2{0, -4}
		b.ramp = []rune{'●', '○', '·'}
		b.color = core.ColorGray
		b.ttl = 36
		speedMin, speedMax = 2, 6
	case BurstEmber:
		b.gravity = mgl64.Vec2{0, 34}
		b.ramp = []rune{'◆', '✦', '·'}
		b.color = core.ColorBrightRed
		b.ttl = 30
		speedMin, speedMax = 6, 14
	default: // BurstSpark
		b.gravity = mgl64.Vec2{0, 22}
		b.ramp = []rune{'✸', '✶', '·'}
		b.color = core.ColorBrightYellow
		b.ttl = 24
		speedMin, speedMax = 8, 18
	}

	rng := rand.New(rand.NewSource(seed))
	origin := mgl64.Vec2{float64(x), float64(y)}
	b.parts = make([]particle, count)
	for i := range b.parts {
		angle := rng.Float64() * 2 * math.Pi
		speed := speedMin + rng.Float64()*(speedMax-speedMin)
		dir := mgl64.Vec2{math.Cos(angle), math.Sin(angle)}
		b.parts[i] = particle{
			pos:  origin,
			vel:  dir.Mul(speed),
			life: b.ttl - rng.Intn(b.ttl/3+1),
		}
	}
	return b
}

// Advance integrates every live particle by dt seconds.
func (b *Burst) Advance(dt float64) {
	for i := range b.parts {
		p := &b.parts[i]
		if p.life <= 0 {
			continue
		}
		p.life--
		p.vel = p.vel.Add(b.gravity.Mul(dt))
		p.pos = p.pos.Add(p.vel.Mul(dt))
	}
}

// Alive returns true while any particle remains.
func (b *Burst) Alive() bool {
	for i := range b.parts {
		if b.parts[i].life > 0 {
			return true
		}
	}
	return false
}

// Live returns the number of particles still burning.
func (b *Burst) Live() int {
	n := 0
	for i := range b.parts {
		if b.parts[i].life > 0 {
			n++
		}
	}
	return n
}

// Draw plots live particles in world coordinates.
func (b *Burst) Draw(dst *core.Screen) {
	b.DrawOffset(dst, 0, 0)
}

// DrawOffset plots live particles shifted by a camera offset.
func (b *Burst) DrawOffset(dst *core.Screen, offX, offY int) {
	for i := range b.parts {
		p := &b.parts[i]
		if p.life <= 0 {
			continue
		}
		// Older particles move down the glyph ramp
		stage := (b.ttl - p.life) * len(b.ramp) / (b.ttl + 1)
		if stage >= len(b.ramp) {
			stage = len(b.ramp) - 1
		}
		dst.SetColored(int(p.pos.X())+offX, int(p.pos.Y())+offY, b.ramp[stage], b.color)
	}
}
