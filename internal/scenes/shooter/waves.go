package shooter

import (
	"gameforge/internal/core"
	"gameforge/internal/sprite"
)

// Formation constants
const (
	creepRows      = 3
	maxCols        = 8
	creepSpacingX  = 5
	creepSpacingY  = 3
	formationTop   = 2
	baseMarchEvery = 12 // ticks per march step on wave 1
	minMarchEvery  = 4
)

// waveTints cycles the formation color per wave.
var waveTints = []core.Color{
	core.ColorBrightGreen,
	core.ColorBrightMagenta,
	core.ColorBrightCyan,
	core.ColorBrightRed,
}

// spawnWave builds the next formation, sized to the screen.
func (s *Scene) spawnWave() {
	s.wave++
	s.creeps = s.creeps[:0]

	cols := (s.cfg.ScreenW - 12) / creepSpacingX
	if cols > maxCols {
		cols = maxCols
	}
	if cols < 1 {
		cols = 1
	}

	startX := (s.cfg.ScreenW - (cols-1)*creepSpacingX - creepW) / 2
	for row := 0; row < creepRows; row++ {
		for col := 0; col < cols; col++ {
			s.creeps = append(s.creeps, creep{
				x:     startX + col*creepSpacingX,
				y:     formationTop + row*creepSpacingY,
				alive: true,
			})
		}
	}

	s.marchDir = 1
	s.marchTick = s.marchEvery()
	s.creepVis = sprite.NewCharacter(0, 0, sprite.CharacterCreep, &sprite.Style{
		Tint: waveTints[(s.wave-1)%len(waveTints)],
	})
}

// marchEvery returns the march cadence in ticks, faster on later waves.
func (s *Scene) marchEvery() int {
	every := baseMarchEvery - (s.wave-1)*2
	if every < minMarchEvery {
		every = minMarchEvery
	}
	return every
}

// march advances the formation: sideways each cadence tick, dropping one
// row and reversing at the screen edges.
func (s *Scene) march() {
	if s.aliveCreeps() == 0 {
		return
	}

	s.marchTick--
	if s.marchTick > 0 {
		return
	}
	s.marchTick = s.marchEvery()

	lo, hi := s.formationSpan()
	atEdge := (s.marchDir > 0 && hi+creepW >= s.cfg.ScreenW-1) ||
		(s.marchDir < 0 && lo <= 1)

	if atEdge {
		for i := range s.creeps {
			if s.creeps[i].alive {
				s.creeps[i].y++
			}
		}
		s.marchDir = -s.marchDir
		return
	}

	for i := range s.creeps {
		if s.creeps[i].alive {
			s.creeps[i].x += s.marchDir
		}
	}
}

// formationSpan returns the leftmost and rightmost x of living creeps.
func (s *Scene) formationSpan() (int, int) {
	lo, hi := s.cfg.ScreenW, 0
	for _, c := range s.creeps {
		if !c.alive {
			continue
		}
		if c.x < lo {
			lo = c.x
		}
		if c.x > hi {
			hi = c.x
		}
	}
	return lo, hi
}
