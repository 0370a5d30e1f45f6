package sprite

import (
	"gameforge/internal/core"
	"gameforge/internal/preset"
)

// Default feedback lifetime in ticks (~0.75s at 60fps).
const feedbackDuration = 45

// Feedback is floating feedback text ("+10", "Ouch") that rises from its
// spawn point and fades before disappearing. The host ticks it via Advance.
type Feedback struct {
	x, y     int
	text     string
	color    core.Color
	ticks    int
	duration int
	rise     int // cells risen at full progress
}

// NewFeedback builds feedback text anchored at (x, y) with the default
// lifetime.
func NewFeedback(x, y int, text string, color core.Color) *Feedback {
	return &Feedback{
		x:        x,
		y:        y,
		text:     text,
		color:    color,
		duration: feedbackDuration,
		rise:     3,
	}
}

// SetDuration overrides the lifetime in ticks. Values below 1 are ignored.
func (f *Feedback) SetDuration(ticks int) {
	if ticks >= 1 {
		f.duration = ticks
	}
}

// Position returns the spawn anchor.
func (f *Feedback) Position() (int, int) {
	return f.x, f.y
}

// Advance moves the animation forward one tick.
func (f *Feedback) Advance() {
	if f.ticks < f.duration {
		f.ticks++
	}
}

// Alive returns true until the lifetime has elapsed.
func (f *Feedback) Alive() bool {
	return f.ticks < f.duration
}

// Draw renders the text at its current height in world coordinates.
func (f *Feedback) Draw(dst *core.Screen) {
	f.DrawOffset(dst, 0, 0)
}

// DrawOffset renders the text shifted by a camera offset.
func (f *Feedback) DrawOffset(dst *core.Screen, offX, offY int) {
	if !f.Alive() {
		return
	}

	progress := float64(f.ticks) / float64(f.duration)
	dy := int(easeOutQuad(progress) * float64(f.rise))

	// Fade to gray over the last third of the lifetime
	color := f.color
	if progress > 0.66 {
		color = core.ColorGray
	}

	dst.DrawTextColored(f.x+offX, f.y-dy+offY, f.text, color)
}

// TweenDuration maps a preset tween style to an effect lifetime in ticks.
// Snappy effects clear fast, smooth ones linger, minimal ones barely show.
func TweenDuration(style preset.TweenStyle) int {
	switch style {
	case preset.TweenMinimal:
		return 18
	case preset.TweenSnappy:
		return 32
	default: // TweenSmooth
		return 60
	}
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}
