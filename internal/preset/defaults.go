package preset

import (
	_ "embed"
)

//go:embed presets.yaml
var defaultPresetsYAML []byte

// DefaultPresets returns the built-in preset table. Values mirror the
// embedded presets.yaml, which is the reference copy for user overrides.
func DefaultPresets() map[Genre]Preset {
	return map[Genre]Preset{
		GenrePlatformer: {
			Genre:   GenrePlatformer,
			Physics: Physics{GravityX: 0, GravityY: 38},
			Player:  Player{Speed: 14, JumpHeight: 7, FireRate: 0, Health: 3},
			Camera:  Camera{Lerp: 0.12, DeadzoneW: 8, DeadzoneH: 4, Zoom: 1.0},
			Polish:  Polish{Shake: ShakeSubtle, Particles: true, Tween: TweenSnappy, Sound: SoundSparse},
		},
		GenreShooter: {
			Genre:   GenreShooter,
			Physics: Physics{GravityX: 0, GravityY: 0},
			Player:  Player{Speed: 22, JumpHeight: 0, FireRate: 5, Health: 3},
			Camera:  Camera{Lerp: 0.25, DeadzoneW: 4, DeadzoneH: 2, Zoom: 1.0},
			Polish:  Polish{Shake: ShakeBold, Particles: true, Tween: TweenSnappy, Sound: SoundBusy},
		},
		GenrePuzzle: {
			Genre:   GenrePuzzle,
			Physics: Physics{GravityX: 0, GravityY: 0},
			// Speed 0: puzzle movement is discrete grid steps, not continuous.
			Player: Player{Speed: 0, JumpHeight: 0, FireRate: 0, Health: 0},
			Camera: Camera{Lerp: 1.0, DeadzoneW: 0, DeadzoneH: 0, Zoom: 1.0},
			Polish: Polish{Shake: ShakeNone, Particles: false, Tween: TweenSmooth, Sound: SoundQuiet},
		},
		GenreRPG: {
			Genre:   GenreRPG,
			Physics: Physics{GravityX: 0, GravityY: 0},
			Player:  Player{Speed: 10, JumpHeight: 0, FireRate: 0, Health: 5},
			Camera:  Camera{Lerp: 0.08, DeadzoneW: 10, DeadzoneH: 6, Zoom: 1.0},
			Polish:  Polish{Shake: ShakeNone, Particles: false, Tween: TweenSmooth, Sound: SoundSparse},
		},
		GenreRacing: {
			Genre:   GenreRacing,
			Physics: Physics{GravityX: 0, GravityY: 0},
			Player:  Player{Speed: 26, JumpHeight: 0, FireRate: 0, Health: 1},
			Camera:  Camera{Lerp: 0.3, DeadzoneW: 6, DeadzoneH: 10, Zoom: 1.0},
			Polish:  Polish{Shake: ShakeBold, Particles: true, Tween: TweenSnappy, Sound: SoundBusy},
		},
		GenreZen: {
			Genre:   GenreZen,
			Physics: Physics{GravityX: 0, GravityY: 6},
			Player:  Player{Speed: 6, JumpHeight: 0, FireRate: 0, Health: 0},
			Camera:  Camera{Lerp: 0.04, DeadzoneW: 12, DeadzoneH: 8, Zoom: 1.0},
			Polish:  Polish{Shake: ShakeNone, Particles: true, Tween: TweenSmooth, Sound: SoundQuiet},
		},
	}
}
