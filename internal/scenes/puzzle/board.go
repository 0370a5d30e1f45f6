package puzzle

import (
	"math/rand"

	"gameforge/internal/sprite"
)

// Board dimensions and tile set
const (
	boardW    = 9
	boardH    = 7
	tileKinds = 4 // coin, gem, star, heart
)

// board holds the tile grid. Zero means an empty cell awaiting refill.
type board [boardH][boardW]int8

// mask marks cells scheduled for clearing.
type mask [boardH][boardW]bool

// kindFor maps a tile value to its collectible glyph.
func kindFor(tile int8) sprite.CollectibleKind {
	switch tile {
	case 2:
		return sprite.CollectibleGem
	case 3:
		return sprite.CollectibleStar
	case 4:
		return sprite.CollectibleHeart
	default:
		return sprite.CollectibleCoin
	}
}

// newBoard fills the grid and resolves any starting matches without
// scoring, so every run begins stable.
func newBoard(rng *rand.Rand) board {
	var b board
	b.refill(rng)
	for {
		m, n := b.findMatches()
		if n == 0 {
			return b
		}
		b.remove(m)
		b.collapse()
		b.refill(rng)
	}
}

// findMatches marks every run of three or more equal tiles, horizontal or
// vertical, and returns the marked cell count.
func (b *board) findMatches() (mask, int) {
	var m mask

	for y := 0; y < boardH; y++ {
		run := 1
		for x := 1; x <= boardW; x++ {
			if x < boardW && b[y][x] != 0 && b[y][x] == b[y][x-1] {
				run++
				continue
			}
			if run >= 3 {
				for i := x - run; i < x; i++ {
					m[y][i] = true
				}
			}
			run = 1
		}
	}

	for x := 0; x < boardW; x++ {
		run := 1
		for y := 1; y <= boardH; y++ {
			if y < boardH && b[y][x] != 0 && b[y][x] == b[y-1][x] {
				run++
				continue
			}
			if run >= 3 {
				for i := y - run; i < y; i++ {
					m[i][x] = true
				}
			}
			run = 1
		}
	}

	count := 0
	for y := 0; y < boardH; y++ {
		for x := 0; x < boardW; x++ {
			if m[y][x] {
				count++
			}
		}
	}
	return m, count
}

// remove empties every marked cell.
func (b *board) remove(m mask) {
	for y := 0; y < boardH; y++ {
		for x := 0; x < boardW; x++ {
			if m[y][x] {
				b[y][x] = 0
			}
		}
	}
}

// collapse drops tiles down each column to fill the holes left by a clear.
func (b *board) collapse() {
	for x := 0; x < boardW; x++ {
		write := boardH - 1
		for y := boardH - 1; y >= 0; y-- {
			if b[y][x] == 0 {
				continue
			}
			b[write][x] = b[y][x]
			if write != y {
				b[y][x] = 0
			}
			write--
		}
		for y := write; y >= 0; y-- {
			b[y][x] = 0
		}
	}
}

// refill rolls a fresh tile into every empty cell.
func (b *board) refill(rng *rand.Rand) {
	for y := 0; y < boardH; y++ {
		for x := 0; x < boardW; x++ {
			if b[y][x] == 0 {
				b[y][x] = int8(1 + rng.Intn(tileKinds))
			}
		}
	}
}

// full reports whether the board has no empty cells.
func (b *board) full() bool {
	for y := 0; y < boardH; y++ {
		for x := 0; x < boardW; x++ {
			if b[y][x] == 0 {
				return false
			}
		}
	}
	return true
}
