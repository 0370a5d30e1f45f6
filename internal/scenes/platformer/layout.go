package platformer

import "gameforge/internal/sprite"

// Layout tuning constants
const (
	minGroundRun    = 12 // shortest ground segment
	groundRunSpread = 16
	minPitWidth     = 3
	pitSpread       = 3
	finalStretch    = 10 // no pits this close to the goal
	floatingEvery   = 16 // one floating platform per this many world cells
	maxFloatHeight  = 11 // highest platform above the ground
	groundCoinEvery = 20
)

// buildWorld lays out ground segments, floating platforms, and the coin
// trail between them. The layout is fully determined by the scene RNG.
func (s *Scene) buildWorld() {
	s.platforms = s.platforms[:0]
	s.coins = s.coins[:0]

	groundY := s.worldH - 1

	// Ground segments separated by pits. The first segment always covers
	// the spawn point and the last one reaches the goal.
	x := 0
	for x < s.worldW {
		segW := minGroundRun + s.rng.Intn(groundRunSpread)
		if segW > s.worldW-x {
			segW = s.worldW - x
		}
		s.platforms = append(s.platforms, sprite.NewPlatform(x, groundY, segW, sprite.PlatformGrass))
		x += segW
		if x < s.worldW-finalStretch {
			x += minPitWidth + s.rng.Intn(pitSpread)
		}
	}

	// Floating platforms, most carrying a short coin run.
	for i := 0; i < s.worldW/floatingEvery; i++ {
		px := 8 + s.rng.Intn(s.worldW-24)
		py := groundY - 3 - s.rng.Intn(maxFloatHeight)
		if py < 2 {
			py = 2
		}
		pw := 4 + s.rng.Intn(5)

		kind := sprite.PlatformStone
		switch s.rng.Intn(3) {
		case 1:
			kind = sprite.PlatformIce
		case 2:
			kind = sprite.PlatformCloud
		}
		s.platforms = append(s.platforms, sprite.NewPlatform(px, py, pw, kind))

		if s.rng.Intn(10) < 7 {
			n := 1 + s.rng.Intn(3)
			for c := 0; c < n; c++ {
				s.coins = append(s.coins, coin{vis: sprite.NewCollectible(px+1+c*2, py-2, sprite.CollectibleCoin)})
			}
		}
	}

	// A few coins along the ground reward plain running.
	for i := 0; i < s.worldW/groundCoinEvery; i++ {
		cx := 10 + s.rng.Intn(s.worldW-14)
		s.coins = append(s.coins, coin{vis: sprite.NewCollectible(cx, groundY-2, sprite.CollectibleCoin)})
	}
}
