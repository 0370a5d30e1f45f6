package preset

import "strings"

// detectRule pairs a genre with the keywords that select it.
type detectRule struct {
	genre    Genre
	keywords []string
}

// detectRules is scanned top to bottom; the first rule with any keyword
// matching wins. Order is significant: a description touching several
// genres resolves to the earliest rule.
var detectRules = []detectRule{
	{GenrePlatformer, []string{"platform", "jump", "mario", "side-scroll", "sidescroll", "metroidvania"}},
	{GenreShooter, []string{"shoot", "space", "invader", "bullet", "blast", "alien", "galaga"}},
	{GenrePuzzle, []string{"puzzle", "match", "tetris", "block", "grid", "brain", "logic"}},
	{GenreRPG, []string{"rpg", "adventure", "quest", "dungeon", "story", "explore", "hero"}},
	{GenreRacing, []string{"racing", "race", "car", "drive", "speed", "lap"}},
	{GenreZen, []string{"zen", "relax", "calm", "chill", "ambient", "peaceful", "cozy"}},
}

// Detect maps a free-text game description to a genre by case-insensitive
// substring matching against the keyword rules. Descriptions that match
// nothing, including empty ones, resolve to DefaultGenre.
func Detect(description string) Genre {
	d := strings.ToLower(description)
	for _, r := range detectRules {
		for _, kw := range r.keywords {
			if strings.Contains(d, kw) {
				return r.genre
			}
		}
	}
	return DefaultGenre
}

// Keywords returns the detection keywords for a genre, for display.
// Unknown genres return nil.
func Keywords(g Genre) []string {
	for _, r := range detectRules {
		if r.genre == g {
			out := make([]string, len(r.keywords))
			copy(out, r.keywords)
			return out
		}
	}
	return nil
}
