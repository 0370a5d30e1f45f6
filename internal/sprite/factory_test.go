package sprite

import (
	"testing"

	"gameforge/internal/core"
)

func TestNewCharacterPosition(t *testing.T) {
	kinds := []CharacterKind{CharacterHero, CharacterShip, CharacterCreep, CharacterGuide, CharacterRacer}

	for _, kind := range kinds {
		v := NewCharacter(12, 7, kind, nil)
		if v == nil {
			t.Fatalf("kind %d: NewCharacter returned nil", kind)
		}
		x, y := v.Position()
		if x != 12 || y != 7 {
			t.Errorf("kind %d: Position() = (%d, %d), expected (12, 7)", kind, x, y)
		}
		w, h := v.Size()
		if w < 3 || h != 2 {
			t.Errorf("kind %d: Size() = (%d, %d), expected a 2-row body", kind, w, h)
		}
	}
}

func TestNewCharacterUnknownKindFallsBack(t *testing.T) {
	v := NewCharacter(0, 0, CharacterKind(99), nil)
	hero := NewCharacter(0, 0, CharacterHero, nil)

	if len(v.cells) != len(hero.cells) {
		t.Errorf("unknown kind should use the hero shape, got %d cells vs %d", len(v.cells), len(hero.cells))
	}
}

func TestNewCharacterStyleOverride(t *testing.T) {
	v := NewCharacter(0, 0, CharacterHero, &Style{Tint: core.ColorGreen})

	s := core.NewScreen(10, 10)
	v.Draw(s)

	// Body row takes the tint; the accent head keeps its default
	if got := s.GetCell(1, 1).Color; got != core.ColorGreen {
		t.Errorf("body color = %d, expected ColorGreen", got)
	}
	if got := s.GetCell(1, 0).Color; got != core.ColorBrightYellow {
		t.Errorf("head color = %d, expected default accent", got)
	}
}

func TestNewPlatform(t *testing.T) {
	v := NewPlatform(5, 9, 12, PlatformGrass)

	x, y := v.Position()
	if x != 5 || y != 9 {
		t.Errorf("Position() = (%d, %d), expected (5, 9)", x, y)
	}
	w, h := v.Size()
	if w != 12 || h != 1 {
		t.Errorf("Size() = (%d, %d), expected (12, 1)", w, h)
	}

	// Width clamps to 2
	narrow := NewPlatform(0, 0, 0, PlatformStone)
	if w, _ := narrow.Size(); w != 2 {
		t.Errorf("clamped width = %d, expected 2", w)
	}
}

func TestNewCollectiblePosition(t *testing.T) {
	kinds := []CollectibleKind{CollectibleCoin, CollectibleGem, CollectibleStar, CollectibleHeart}

	for _, kind := range kinds {
		v := NewCollectible(3, 4, kind)
		x, y := v.Position()
		if x != 3 || y != 4 {
			t.Errorf("kind %d: Position() = (%d, %d), expected (3, 4)", kind, x, y)
		}
		if w, h := v.Size(); w != 1 || h != 1 {
			t.Errorf("kind %d: Size() = (%d, %d), expected (1, 1)", kind, w, h)
		}
	}
}

func TestVisualDraw(t *testing.T) {
	s := core.NewScreen(20, 10)
	v := NewCollectible(4, 2, CollectibleGem)
	v.Draw(s)

	cell := s.GetCell(4, 2)
	if cell.Rune != '◆' {
		t.Errorf("drawn rune = %q, expected '◆'", cell.Rune)
	}
	if cell.Color != core.ColorBrightCyan {
		t.Errorf("drawn color = %d, expected ColorBrightCyan", cell.Color)
	}
}

func TestVisualDrawAtLeavesAnchor(t *testing.T) {
	s := core.NewScreen(20, 10)
	v := NewCollectible(4, 2, CollectibleCoin)
	v.DrawAt(s, 10, 5)

	if s.Get(10, 5) != '●' {
		t.Error("DrawAt should draw at the explicit position")
	}
	if s.Get(4, 2) == '●' {
		t.Error("DrawAt should not draw at the anchor")
	}
	if x, y := v.Position(); x != 4 || y != 2 {
		t.Errorf("DrawAt should not move the anchor, got (%d, %d)", x, y)
	}
}

func TestVisualMoveAndBounds(t *testing.T) {
	v := NewCharacter(10, 10, CharacterHero, nil)
	v.Move(2, -3)

	x, y := v.Position()
	if x != 12 || y != 7 {
		t.Errorf("Position after Move = (%d, %d), expected (12, 7)", x, y)
	}

	b := v.Bounds()
	if b.X != 12 || b.Y != 7 || b.W != 3 || b.H != 2 {
		t.Errorf("Bounds() = %+v, expected {12 7 3 2}", b)
	}
}

func TestVisualOffscreenDrawIsSilent(t *testing.T) {
	s := core.NewScreen(10, 10)
	v := NewCharacter(-5, -5, CharacterHero, nil)
	v.Draw(s) // Should not panic

	v.SetPosition(100, 100)
	v.Draw(s) // Should not panic
}
