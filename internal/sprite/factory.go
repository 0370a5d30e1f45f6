package sprite

import (
	"gameforge/internal/core"
)

// CharacterKind selects a character body shape.
type CharacterKind int

const (
	CharacterHero CharacterKind = iota
	CharacterShip
	CharacterCreep
	CharacterGuide
	CharacterRacer
)

// PlatformKind selects a platform surface texture.
type PlatformKind int

const (
	PlatformGrass PlatformKind = iota
	PlatformStone
	PlatformIce
	PlatformCloud
)

// CollectibleKind selects a pickup glyph.
type CollectibleKind int

const (
	CollectibleCoin CollectibleKind = iota
	CollectibleGem
	CollectibleStar
	CollectibleHeart
)

// Style optionally recolors a character. Zero values keep the kind's
// default palette.
type Style struct {
	Tint   core.Color // body color
	Accent core.Color // head/detail color
}

// resolve fills unset style fields from kind defaults.
func (s *Style) resolve(defTint, defAccent core.Color) (core.Color, core.Color) {
	tint, accent := defTint, defAccent
	if s != nil {
		if s.Tint != core.ColorDefault {
			tint = s.Tint
		}
		if s.Accent != core.ColorDefault {
			accent = s.Accent
		}
	}
	return tint, accent
}

// NewCharacter builds a character composite anchored at (x, y).
// Unknown kinds fall back to the hero shape. The optional style recolors
// the body and detail cells.
func NewCharacter(x, y int, kind CharacterKind, style *Style) *Visual {
	v := newVisual(x, y)

	switch kind {
	case CharacterShip:
		tint, accent := style.resolve(core.ColorBrightCyan, core.ColorWhite)
		v.put(1, 0, '▲', accent)
		v.put(0, 1, '◣', tint)
		v.put(1, 1, '█', tint)
		v.put(2, 1, '◢', tint)

	case CharacterCreep:
		tint, accent := style.resolve(core.ColorBrightMagenta, core.ColorMagenta)
		v.put(0, 0, '▞', tint)
		v.put(1, 0, '▒', accent)
		v.put(2, 0, '▚', tint)
		v.put(0, 1, '▚', tint)
		v.put(1, 1, '▒', accent)
		v.put(2, 1, '▞', tint)

	case CharacterGuide:
		tint, accent := style.resolve(core.ColorYellow, core.ColorBrightYellow)
		v.put(1, 0, '◎', accent)
		v.put(0, 1, '▗', tint)
		v.put(1, 1, '▓', tint)
		v.put(2, 1, '▖', tint)

	case CharacterRacer:
		tint, accent := style.resolve(core.ColorBrightRed, core.ColorWhite)
		v.put(1, 0, '▄', accent)
		v.put(2, 0, '▄', accent)
		v.put(0, 1, '▜', tint)
		v.put(1, 1, '█', tint)
		v.put(2, 1, '█', tint)
		v.put(3, 1, '▛', tint)

	default: // CharacterHero
		tint, accent := style.resolve(core.ColorBrightCyan, core.ColorBrightYellow)
		v.put(1, 0, '◉', accent)
		v.put(0, 1, '▙', tint)
		v.put(1, 1, '█', tint)
		v.put(2, 1, '▟', tint)
	}

	return v
}

// NewPlatform builds a one-row platform of the given width anchored at
// (x, y). Width clamps to a minimum of 2. Unknown kinds fall back to grass.
func NewPlatform(x, y, width int, kind PlatformKind) *Visual {
	if width < 2 {
		width = 2
	}

	var surface rune
	var color core.Color
	switch kind {
	case PlatformStone:
		surface, color = '█', core.ColorGray
	case PlatformIce:
		surface, color = '▔', core.ColorBrightCyan
	case PlatformCloud:
		surface, color = '░', core.ColorWhite
	default: // PlatformGrass
		surface, color = '▀', core.ColorGreen
	}

	v := newVisual(x, y)
	for i := 0; i < width; i++ {
		v.put(i, 0, surface, color)
	}
	return v
}

// NewCollectible builds a single-cell pickup anchored at (x, y).
// Unknown kinds fall back to the coin.
func NewCollectible(x, y int, kind CollectibleKind) *Visual {
	var r rune
	var color core.Color
	switch kind {
	case CollectibleGem:
		r, color = '◆', core.ColorBrightCyan
	case CollectibleStar:
		r, color = '✦', core.ColorBrightWhite
	case CollectibleHeart:
		r, color = '♥', core.ColorBrightRed
	default: // CollectibleCoin
		r, color = '●', core.ColorBrightYellow
	}

	v := newVisual(x, y)
	v.put(0, 0, r, color)
	return v
}
