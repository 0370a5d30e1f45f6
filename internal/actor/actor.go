// Package actor provides the preset-tuned player body shared by the starter
// scenes: continuous movement, gravity, jumping, and fire cooldown. It is
// pure simulation with no rendering or input dependencies.
package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"gameforge/internal/core"
	"gameforge/internal/preset"
)

// MaxFallSpeed caps downward velocity in cells per second.
const MaxFallSpeed = 45.0

// Actor is a movable body tuned by a genre preset. Horizontal and top-down
// movement is direct (no momentum); vertical velocity integrates gravity so
// jumps describe arcs.
type Actor struct {
	pos      mgl64.Vec2
	vel      mgl64.Vec2
	gravity  mgl64.Vec2
	speed    float64 // cells/s from the preset
	jumpVel  float64 // launch speed derived from jump height, 0 = no jump
	fireGap  int     // ticks between shots, 0 = no fire action
	cooldown int     // ticks until the next shot
	grounded bool
	w, h     int
}

// New creates an actor at (x, y) tuned by the given preset. The tick rate
// converts the preset fire rate into a tick cooldown.
func New(x, y float64, p preset.Preset, tickRate int) *Actor {
	a := &Actor{
		pos:     mgl64.Vec2{x, y},
		gravity: mgl64.Vec2{p.Physics.GravityX, p.Physics.GravityY},
		speed:   p.Player.Speed,
		w:       1,
		h:       1,
	}

	// Launch speed for the requested apex height: v = sqrt(2*g*h)
	if p.Player.JumpHeight > 0 && p.Physics.GravityY > 0 {
		a.jumpVel = math.Sqrt(2 * p.Physics.GravityY * p.Player.JumpHeight)
	}

	if p.Player.FireRate > 0 && tickRate > 0 {
		a.fireGap = int(float64(tickRate) / p.Player.FireRate)
		if a.fireGap < 1 {
			a.fireGap = 1
		}
	}

	return a
}

// SetSize sets the hitbox dimensions in cells.
func (a *Actor) SetSize(w, h int) {
	a.w = w
	a.h = h
}

// Position returns the current position in world cells.
func (a *Actor) Position() (float64, float64) {
	return a.pos.X(), a.pos.Y()
}

// SetPosition teleports the actor.
func (a *Actor) SetPosition(x, y float64) {
	a.pos = mgl64.Vec2{x, y}
}

// Velocity returns the current velocity in cells per second.
func (a *Actor) Velocity() (float64, float64) {
	return a.vel.X(), a.vel.Y()
}

// MoveX shifts the actor horizontally at its preset speed.
// dir is -1 for left, +1 for right.
func (a *Actor) MoveX(dir, dt float64) {
	a.pos[0] += dir * a.speed * dt
}

// MoveY shifts the actor vertically at its preset speed, for top-down
// scenes without gravity. dir is -1 for up, +1 for down.
func (a *Actor) MoveY(dir, dt float64) {
	a.pos[1] += dir * a.speed * dt
}

// Jump launches the actor upward if it is grounded and its preset has a
// jump height. Returns true if the jump happened.
func (a *Actor) Jump() bool {
	if !a.grounded || a.jumpVel == 0 {
		return false
	}
	a.vel[1] = -a.jumpVel
	a.grounded = false
	return true
}

// Land snaps the actor's feet onto a surface at the given y and kills
// vertical velocity.
func (a *Actor) Land(surfaceY float64) {
	a.pos[1] = surfaceY - float64(a.h)
	a.vel[1] = 0
	a.grounded = true
}

// Airborne marks the actor as no longer supported, e.g. after walking off
// a platform edge.
func (a *Actor) Airborne() {
	a.grounded = false
}

// Grounded reports whether the actor is standing on a surface.
func (a *Actor) Grounded() bool {
	return a.grounded
}

// Falling reports whether the actor is moving downward.
func (a *Actor) Falling() bool {
	return a.vel.Y() > 0
}

// TryFire consumes the fire cooldown. Returns false while cooling down or
// when the preset has no fire action.
func (a *Actor) TryFire() bool {
	if a.fireGap == 0 || a.cooldown > 0 {
		return false
	}
	a.cooldown = a.fireGap
	return true
}

// Step advances gravity integration and the fire cooldown by dt seconds.
func (a *Actor) Step(dt float64) {
	if !a.grounded {
		a.vel = a.vel.Add(a.gravity.Mul(dt))
		if a.vel[1] > MaxFallSpeed {
			a.vel[1] = MaxFallSpeed
		}
		a.pos = a.pos.Add(a.vel.Mul(dt))
	}
	if a.cooldown > 0 {
		a.cooldown--
	}
}

// Bounds returns the hitbox at the current position.
func (a *Actor) Bounds() core.Rect {
	return core.NewRect(int(a.pos.X()), int(a.pos.Y()), a.w, a.h)
}
