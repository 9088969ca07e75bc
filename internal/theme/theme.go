// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/stage/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the UI. Entity styles are "entity.<kind>" and fall
// back to "entity".
const (
	StyleDefault          = "Default"
	StyleGrid             = "Grid"
	StyleOutOfBounds      = "OutOfBounds"
	StyleCursor           = "Cursor"
	StyleSelection        = "Selection"
	StyleDragging         = "Dragging"
	StyleStatusBar        = "StatusBar"
	StyleStatusBarMode    = "StatusBarMode"
	StyleStatusBarMessage = "StatusBarMessage"
	StyleStatusBarWarning = "StatusBarWarning"
)

// EntityStyle returns the style name for an entity kind.
func EntityStyle(kind string) string {
	return "entity." + kind
}

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
	Glyphs map[string]rune // Optional per-kind glyph overrides
}

// Glyph returns the theme's glyph for kind, or fallback.
func (t *Theme) Glyph(kind string, fallback rune) rune {
	if r, ok := t.Glyphs[kind]; ok {
		return r
	}
	return fallback
}

// GetStyle returns the named style, falling back to the part before the
// first dot, then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	// 1. Try exact name
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// 2. Try base name (part before first dot)
	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using base '%s'", t.Name, name, baseName)
			return style
		}
	}

	// 3. Return "Default" style
	if defStyle, ok := t.Styles[StyleDefault]; ok {
		if name != StyleDefault {
			logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	// 4. Absolute fallback
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// --- Built-in themes ---

// StageDark is the default theme.
var StageDark = newStageDark()

// StageLight is a light-background variant.
var StageLight = newStageLight()

func newStageDark() Theme {
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x3e4451)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)
	red := tcell.NewHexColor(0xe06c75)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)

	return Theme{
		Name:   "Stage Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:     base,
			StyleGrid:        base.Foreground(muted),
			StyleOutOfBounds: base.Background(tcell.NewHexColor(0x1e2127)),
			StyleCursor:      base.Reverse(true),
			StyleSelection:   tcell.StyleDefault.Background(blue).Foreground(tcell.ColorBlack),
			StyleDragging:    tcell.StyleDefault.Background(orange).Foreground(tcell.ColorBlack).Bold(true),

			StyleStatusBar:        tcell.StyleDefault.Background(bg).Foreground(fg),
			StyleStatusBarMode:    tcell.StyleDefault.Background(bg).Foreground(yellow).Bold(true),
			StyleStatusBarMessage: tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),
			StyleStatusBarWarning: tcell.StyleDefault.Background(bg).Foreground(red).Bold(true),

			"entity":          base.Foreground(fg),
			"entity.object":   base.Foreground(yellow).Bold(true),
			"entity.sprite":   base.Foreground(green).Bold(true),
			"entity.path":     base.Foreground(cyan),
			"entity.location": base.Foreground(magenta),
			"entity.comment":  base.Foreground(tcell.NewHexColor(0x5c6370)).Italic(true),
		},
	}
}

func newStageLight() Theme {
	fg := tcell.NewHexColor(0x383a42)
	bg := tcell.NewHexColor(0xe5e5e6)
	muted := tcell.NewHexColor(0xc8c8c9)

	base := tcell.StyleDefault.Background(tcell.NewHexColor(0xfafafa)).Foreground(fg)

	return Theme{
		Name:   "Stage Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:     base,
			StyleGrid:        base.Foreground(muted),
			StyleOutOfBounds: base.Background(bg),
			StyleCursor:      base.Reverse(true),
			StyleSelection:   tcell.StyleDefault.Background(tcell.NewHexColor(0x4078f2)).Foreground(tcell.ColorWhite),
			StyleDragging:    tcell.StyleDefault.Background(tcell.NewHexColor(0x986801)).Foreground(tcell.ColorWhite).Bold(true),

			StyleStatusBar:        tcell.StyleDefault.Background(bg).Foreground(fg),
			StyleStatusBarMode:    tcell.StyleDefault.Background(bg).Foreground(tcell.NewHexColor(0xa626a4)).Bold(true),
			StyleStatusBarMessage: tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),
			StyleStatusBarWarning: tcell.StyleDefault.Background(bg).Foreground(tcell.NewHexColor(0xe45649)).Bold(true),

			"entity":          base,
			"entity.object":   base.Foreground(tcell.NewHexColor(0x986801)).Bold(true),
			"entity.sprite":   base.Foreground(tcell.NewHexColor(0x50a14f)).Bold(true),
			"entity.path":     base.Foreground(tcell.NewHexColor(0x0184bc)),
			"entity.location": base.Foreground(tcell.NewHexColor(0xa626a4)),
			"entity.comment":  base.Foreground(tcell.NewHexColor(0xa0a1a7)).Italic(true),
		},
	}
}
