package evergreen

import (
	"errors"
	"image/color"
)

// Sentinel errors. Callers compare with errors.Is; constructors wrap them
// with context.
var (
	// ErrInvalidConfig reports a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("evergreen: invalid config")
	// ErrSurfaceUnavailable reports that a render surface could not be set up.
	// Callers treat it as "render nothing" rather than as a fatal error.
	ErrSurfaceUnavailable = errors.New("evergreen: render surface unavailable")
	// ErrDisposed reports use of a scene after Dispose.
	ErrDisposed = errors.New("evergreen: scene disposed")
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float32
}

// ColorWhite is the neutral tint.
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	a := clamp(c.A, 0, 1)
	return color.RGBA{
		R: uint8(clamp(c.R, 0, 1)*a*255 + 0.5),
		G: uint8(clamp(c.G, 0, 1)*a*255 + 0.5),
		B: uint8(clamp(c.B, 0, 1)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

// Scale returns c with its RGB components multiplied by k. Alpha is kept.
func (c Color) Scale(k float32) Color {
	return Color{c.R * k, c.G * k, c.B * k, c.A}
}

// Luminance returns the Rec. 601 luma of the color.
func (c Color) Luminance() float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Vec2 is a 2D vector used for screen-space positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Mode is the binary scene mode owned by the Shell.
type Mode uint8

const (
	ModeScattered Mode = iota // particles drift in a sphere
	ModeAssembled             // particles form the tree
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeScattered:
		return "scattered"
	case ModeAssembled:
		return "assembled"
	default:
		return "unknown"
	}
}

// Target returns the blend factor the mode pulls toward: 1 when assembled,
// 0 when scattered.
func (m Mode) Target() float64 {
	if m == ModeAssembled {
		return 1
	}
	return 0
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)
