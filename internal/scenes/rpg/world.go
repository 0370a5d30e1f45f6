package rpg

import (
	"gameforge/internal/core"
	"gameforge/internal/sprite"
)

// World population constants
const (
	gemCount     = 10
	heartCount   = 3
	critterCount = 5
	decorCount   = 40
	edgeMargin   = 3  // keep spawns off the world border
	spawnRadius  = 8  // keep pickups clear of the player spawn
	critterKeep  = 12 // keep critters further out than pickups
)

// guideLines rotate every time the player walks up to the guide.
var guideLines = []string{
	"Welcome to the meadow, traveler!",
	"Gems glitter out in the tall grass.",
	"Mind the critters. They bite.",
	"Bring home every last gem!",
}

// dot is a decorative grass tuft.
type dot struct {
	x, y int
}

// pickup is a collectible with a taken flag so it only scores once.
type pickup struct {
	vis   *sprite.Visual
	taken bool
}

// critter wanders the meadow and bites on contact.
type critter struct {
	vis      *sprite.Visual
	x, y     float64
	dx, dy   float64 // current wander direction
	retarget int     // ticks until a new direction is rolled
}

// buildWorld places the guide, pickups, critters, and grass decor.
// Everything rolls from the scene rng, so a seed reproduces the meadow.
func (s *Scene) buildWorld() {
	s.guideX = s.worldW / 4
	s.guideY = s.worldH / 4
	s.guide = sprite.NewCharacter(s.guideX, s.guideY, sprite.CharacterGuide, nil)

	spawnX, spawnY := s.spawnPoint()

	s.gems = s.gems[:0]
	for len(s.gems) < gemCount {
		x, y := s.rollSpot(spawnX, spawnY, spawnRadius)
		s.gems = append(s.gems, pickup{vis: sprite.NewCollectible(x, y, sprite.CollectibleGem)})
	}

	s.hearts = s.hearts[:0]
	for len(s.hearts) < heartCount {
		x, y := s.rollSpot(spawnX, spawnY, spawnRadius)
		s.hearts = append(s.hearts, pickup{vis: sprite.NewCollectible(x, y, sprite.CollectibleHeart)})
	}

	s.critters = s.critters[:0]
	for len(s.critters) < critterCount {
		x, y := s.rollSpot(spawnX, spawnY, critterKeep)
		s.critters = append(s.critters, critter{
			vis: sprite.NewCharacter(0, 0, sprite.CharacterCreep, &sprite.Style{Tint: core.ColorGreen}),
			x:   float64(x),
			y:   float64(y),
		})
	}

	s.decor = s.decor[:0]
	for len(s.decor) < decorCount {
		x := edgeMargin + s.rng.Intn(s.worldW-2*edgeMargin)
		y := edgeMargin + s.rng.Intn(s.worldH-2*edgeMargin)
		s.decor = append(s.decor, dot{x: x, y: y})
	}
}

// rollSpot picks a random world cell at least keep cells from the spawn,
// measured on the larger axis.
func (s *Scene) rollSpot(spawnX, spawnY, keep int) (int, int) {
	for {
		x := edgeMargin + s.rng.Intn(s.worldW-2*edgeMargin)
		y := edgeMargin + s.rng.Intn(s.worldH-2*edgeMargin)
		if core.Max(core.Abs(x-spawnX), core.Abs(y-spawnY)) < keep {
			continue
		}
		return x, y
	}
}

// spawnPoint returns the player start at the world center.
func (s *Scene) spawnPoint() (int, int) {
	return s.worldW / 2, s.worldH / 2
}
