// Package preset maps free-text game descriptions to genres and genres to
// tuning presets. A preset is the complete tuning bundle a starter scene
// boots from: physics, player handling, camera behavior, and polish flags.
package preset

// Genre identifies one of the built-in starter genres.
type Genre string

// The closed set of supported genres.
const (
	GenrePlatformer Genre = "platformer"
	GenreShooter    Genre = "shooter"
	GenrePuzzle     Genre = "puzzle"
	GenreRPG        Genre = "rpg"
	GenreRacing     Genre = "racing"
	GenreZen        Genre = "zen"
)

// DefaultGenre is used when detection finds no match and when an unknown
// genre is looked up.
const DefaultGenre = GenrePlatformer

// Genres returns all supported genres in declaration order.
func Genres() []Genre {
	return []Genre{
		GenrePlatformer,
		GenreShooter,
		GenrePuzzle,
		GenreRPG,
		GenreRacing,
		GenreZen,
	}
}

// ShakeStyle controls how much screen shake a scene applies on impacts.
type ShakeStyle string

const (
	ShakeNone   ShakeStyle = "none"
	ShakeSubtle ShakeStyle = "subtle"
	ShakeBold   ShakeStyle = "bold"
)

// TweenStyle controls how aggressively transient animations play.
type TweenStyle string

const (
	TweenMinimal TweenStyle = "minimal"
	TweenSmooth  TweenStyle = "smooth"
	TweenSnappy  TweenStyle = "snappy"
)

// SoundDensity is carried for hosts that can produce audio cues.
// The terminal platform displays it but does not render sound.
type SoundDensity string

const (
	SoundQuiet  SoundDensity = "quiet"
	SoundSparse SoundDensity = "sparse"
	SoundBusy   SoundDensity = "busy"
)

// Physics holds world forces in cells per second squared.
type Physics struct {
	GravityX float64 `yaml:"gravity_x"`
	GravityY float64 `yaml:"gravity_y"`
}

// Player holds player handling numbers. Speed is in cells per second.
// JumpHeight is in cells; zero means the genre has no jump. FireRate is in
// shots per second; zero means the genre has no fire action.
type Player struct {
	Speed      float64 `yaml:"speed"`
	JumpHeight float64 `yaml:"jump_height"`
	FireRate   float64 `yaml:"fire_rate"`
	Health     int     `yaml:"health"`
}

// Camera holds follow-camera tuning. Lerp is the per-tick interpolation
// factor in [0, 1]; the deadzone is a centered rectangle in cells inside
// which the target moves without the camera following.
type Camera struct {
	Lerp      float64 `yaml:"lerp"`
	DeadzoneW int     `yaml:"deadzone_w"`
	DeadzoneH int     `yaml:"deadzone_h"`
	Zoom      float64 `yaml:"zoom"`
}

// Polish holds the juice flags: how loud the scene feels.
type Polish struct {
	Shake     ShakeStyle   `yaml:"shake"`
	Particles bool         `yaml:"particles"`
	Tween     TweenStyle   `yaml:"tween"`
	Sound     SoundDensity `yaml:"sound"`
}

// Preset is the complete tuning bundle for one genre. Presets are plain
// values; lookups hand out copies, so callers can modify their copy freely
// without affecting the catalog.
type Preset struct {
	Genre   Genre   `yaml:"-"`
	Physics Physics `yaml:"physics"`
	Player  Player  `yaml:"player"`
	Camera  Camera  `yaml:"camera"`
	Polish  Polish  `yaml:"polish"`
}

// ForGenre returns the built-in preset for a genre. Unknown genres fall
// back to the default genre's preset; the call never fails.
func ForGenre(g Genre) Preset {
	return builtin.ForGenre(g)
}

// SetCatalog replaces the catalog behind ForGenre, typically with the
// result of Load. Call once at startup, before any scene resets.
func SetCatalog(c Catalog) {
	builtin = c
}

var builtin = Catalog{presets: DefaultPresets()}

// Catalog is a full genre-to-preset table, typically the built-in values
// with any user overrides applied by Load.
type Catalog struct {
	presets map[Genre]Preset
}

// ForGenre returns the catalog's preset for a genre. Unknown genres fall
// back to the default genre's preset.
func (c Catalog) ForGenre(g Genre) Preset {
	if p, ok := c.presets[g]; ok {
		return p
	}
	return c.presets[DefaultGenre]
}
