package tui

import (
	"os"
	"strings"
)

// Capabilities records what the attached terminal is believed to support.
// The runtime degrades gracefully when a capability is false rather than
// failing (spec.md §6).
type Capabilities struct {
	TrueColor  bool
	Colors256  bool
	Hyperlinks bool
	SyncOutput bool // ESC[?2026h/l bracket support
	BracketedPaste bool
	FocusEvents    bool
	Mouse          bool
	Title          bool
	// InAnyMux reports whether the session is known to run inside a
	// terminal multiplexer (tmux/screen), as DetectCapabilities infers from
	// TMUX/STY. The terminal writer does not consult it: SyncOutput alone
	// decides whether the synchronized-output brackets are emitted.
	InAnyMux bool
}

// DetectCapabilities sniffs capabilities from the process environment, in
// the style of the teacher's TERM-based sniffing in screen.go, extended to
// cover the broader capability set this presenter/writer need.
func DetectCapabilities() Capabilities {
	term := os.Getenv("TERM")
	colorterm := os.Getenv("COLORTERM")
	c := Capabilities{
		TrueColor:      colorterm == "truecolor" || colorterm == "24bit",
		Colors256:      strings.Contains(term, "256color") || colorterm != "",
		Hyperlinks:     true,
		SyncOutput:     true,
		BracketedPaste: true,
		FocusEvents:    true,
		Mouse:          true,
		Title:          true,
	}
	if term == "" || term == "dumb" {
		return Capabilities{}
	}
	_, inTmux := os.LookupEnv("TMUX")
	sty := os.Getenv("STY") // screen
	c.InAnyMux = inTmux || sty != ""
	if strings.HasPrefix(term, "screen") && !c.TrueColor {
		// classic screen chokes on direct truecolor SGR unless explicitly
		// configured; be conservative absent an explicit COLORTERM.
		c.TrueColor = false
	}
	return c
}

// downsample maps c to whatever color depth caps actually supports: true
// color passes through unchanged; with Colors256, RGB is quantized to the
// nearest entry of the 6x6x6 xterm color cube (the grayscale ramp is not
// used), reported back as that entry's RGB value, which writeColorSGR then
// emits as an indexed 38;5;n/48;5;n escape; and with no color support at
// all every non-default color collapses to default (there is no 16-color
// mapping).
func downsample(c Color, caps Capabilities) Color {
	if c.Default {
		return c
	}
	if caps.TrueColor {
		return c
	}
	if caps.Colors256 {
		return quantize256(c)
	}
	return DefaultColor()
}

// the 6-level steps used by the xterm 256-color RGB cube (indices 16-231).
var cubeSteps = [6]uint8{0, 95, 135, 175, 215, 255}

func nearestCubeIndex(v uint8) int {
	best, bestDist := 0, 256
	for i, s := range cubeSteps {
		d := int(v) - int(s)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// quantize256 snaps an RGB color to the nearest xterm 256-color palette
// entry and returns that entry's RGB value, so every later equality check
// (BitsEq, pen diffing) stays purely RGB-based.
func quantize256(c Color) Color {
	ri, gi, bi := nearestCubeIndex(c.R), nearestCubeIndex(c.G), nearestCubeIndex(c.B)
	return RGB(cubeSteps[ri], cubeSteps[gi], cubeSteps[bi])
}

// paletteIndex256 returns the xterm 256-color cube index (16-231) nearest
// c. It assumes c has already passed through quantize256 (its R/G/B are
// cube-step values), so the SGR writer can emit an indexed `38;5;n`/
// `48;5;n` escape instead of a 24-bit truecolor one on terminals that
// only advertise Colors256.
func paletteIndex256(c Color) int {
	ri, gi, bi := nearestCubeIndex(c.R), nearestCubeIndex(c.G), nearestCubeIndex(c.B)
	return 16 + 36*ri + 6*gi + bi
}
