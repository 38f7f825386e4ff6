// Package message shows short fading text overlays. Fades run on their own
// per-frame clock and never touch the game simulation.
package message

import (
	"image/color"
	"time"
)

// ID names one shown message.
type ID uint64

// Options controls how a message looks and how long it stays.
type Options struct {
	Text  string
	Color color.RGBA
	// Size is the font size in points.
	Size float64
	// X and Y place the message centre as a fraction of the viewport.
	X, Y float64
	// Duration is the full lifetime including both fades. Zero keeps the
	// message until it is hidden.
	Duration time.Duration
	FadeIn   time.Duration
	FadeOut  time.Duration

	Background      bool
	BackgroundColor color.RGBA
}

// Option adjusts a preset for one message.
type Option func(*Options)

func At(x, y float64) Option {
	return func(o *Options) { o.X, o.Y = x, y }
}

func WithColor(c color.RGBA) Option {
	return func(o *Options) { o.Color = c }
}

func WithSize(size float64) Option {
	return func(o *Options) { o.Size = size }
}

func Lasting(d time.Duration) Option {
	return func(o *Options) { o.Duration = d }
}

// Default is the base every preset starts from.
var Default = Options{
	Color:           color.RGBA{0xff, 0xff, 0xff, 0xff},
	Size:            24,
	X:               0.5,
	Y:               0.5,
	Duration:        3 * time.Second,
	FadeIn:          500 * time.Millisecond,
	FadeOut:         500 * time.Millisecond,
	BackgroundColor: color.RGBA{0, 0, 0, 0x80},
}

func preset(mutate func(*Options)) Options {
	o := Default
	mutate(&o)
	return o
}

var (
	Alert = preset(func(o *Options) {
		o.Color = color.RGBA{0xff, 0x00, 0x00, 0xff}
		o.Size = 32
		o.Background = true
		o.Duration = 2 * time.Second
	})
	Info = preset(func(o *Options) {
		o.Color = color.RGBA{0x00, 0xff, 0xff, 0xff}
		o.Background = true
		o.BackgroundColor = color.RGBA{0x33, 0x33, 0x33, 0x80}
		o.Duration = 4 * time.Second
	})
	Score = preset(func(o *Options) {
		o.Color = color.RGBA{0xff, 0xff, 0x00, 0xff}
		o.Size = 28
		o.Duration = 1500 * time.Millisecond
		o.FadeOut = 800 * time.Millisecond
	})
	Tutorial = preset(func(o *Options) {
		o.Size = 20
		o.Background = true
		o.BackgroundColor = color.RGBA{0, 0, 0, 0xb3}
		o.Duration = 8 * time.Second
	})
)

// View is a message as a renderer should draw it this frame.
type View struct {
	ID ID
	Options
	Alpha float64
}
