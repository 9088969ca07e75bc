// internal/tui/drawing.go
package tui

import (
	"github.com/bethropolis/stage/internal/core"
	"github.com/bethropolis/stage/internal/scene"
	"github.com/bethropolis/stage/internal/theme"
	"github.com/bethropolis/stage/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// MaxCommentWidth bounds how far comment text extends past its glyph.
const MaxCommentWidth = 40

// gridSpacing places a faint dot every few cells so positions are readable.
const gridSpacing = 5

// View is the screen area used for the scene, excluding the status bar.
type View struct {
	Width  int
	Height int
}

// GridAt converts a screen cell to a scene position.
func GridAt(ed *core.Editor, sx, sy int) types.Position {
	return ed.GetViewport().Add(sx, sy)
}

// ScreenAt converts a scene position to a screen cell. ok is false when
// the position is scrolled out of view.
func ScreenAt(ed *core.Editor, v View, pos types.Position) (sx, sy int, ok bool) {
	sx, sy = pos.Sub(ed.GetViewport())
	return sx, sy, sx >= 0 && sy >= 0 && sx < v.Width && sy < v.Height
}

// DrawScene draws the visible portion of the scene using the theme.
func DrawScene(tuiManager *TUI, ed *core.Editor, v View, th *theme.Theme) {
	screen := tuiManager.GetScreen()
	sc := ed.Scene()

	defaultStyle := th.GetStyle(theme.StyleDefault)
	gridStyle := th.GetStyle(theme.StyleGrid)
	outStyle := th.GetStyle(theme.StyleOutOfBounds)

	// Background: grid inside the scene, filler outside.
	for sy := 0; sy < v.Height; sy++ {
		for sx := 0; sx < v.Width; sx++ {
			pos := GridAt(ed, sx, sy)
			switch {
			case !sc.InBounds(pos):
				screen.SetContent(sx, sy, ' ', nil, outStyle)
			case pos.X%gridSpacing == 0 && pos.Y%gridSpacing == 0:
				screen.SetContent(sx, sy, '·', nil, gridStyle)
			default:
				screen.SetContent(sx, sy, ' ', nil, defaultStyle)
			}
		}
	}

	for _, ent := range sc.Entities() {
		drawEntity(screen, ed, v, th, ent)
	}
}

func drawEntity(screen tcell.Screen, ed *core.Editor, v View, th *theme.Theme, ent *scene.Entity) {
	style := entityStyle(ed, th, ent)
	glyph := th.Glyph(string(ent.Kind), ent.Kind.Glyph())

	b := ent.Bounds()
	for dy := 0; dy < b.H; dy++ {
		for dx := 0; dx < b.W; dx++ {
			if sx, sy, ok := ScreenAt(ed, v, b.Pos.Add(dx, dy)); ok {
				screen.SetContent(sx, sy, glyph, nil, style)
			}
		}
	}

	if ent.Kind == scene.KindComment && ent.Text != "" {
		sx, sy, _ := ScreenAt(ed, v, b.Pos.Add(b.W, 0))
		if sy < 0 || sy >= v.Height {
			return
		}
		text := Truncate(ent.Text, MaxCommentWidth)
		drawClipped(screen, sx, sy, v.Width, " "+text, style)
	}
}

func entityStyle(ed *core.Editor, th *theme.Theme, ent *scene.Entity) tcell.Style {
	if ed.IsSelected(ent.Key()) {
		if ed.IsDragging() {
			return th.GetStyle(theme.StyleDragging)
		}
		return th.GetStyle(theme.StyleSelection)
	}
	return th.GetStyle(theme.EntityStyle(string(ent.Kind)))
}

// drawClipped draws text starting at column x, skipping clusters left of
// the screen and stopping at limit.
func drawClipped(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		w := gr.Width()
		if x+w > limit {
			return
		}
		if x >= 0 {
			runes := gr.Runes()
			screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
}

// Truncate shortens text to at most width cells, ending in an ellipsis
// when anything was cut. Grapheme clusters are never split.
func Truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(text) <= width {
		return text
	}
	const ellipsis = "…"
	budget := width - 1
	used := 0
	end := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > budget {
			break
		}
		used += w
		end += len(cluster)
	}
	return text[:end] + ellipsis
}

// DrawCursor places the terminal cursor on the editor cursor, or hides it
// when the cursor is scrolled out of view.
func DrawCursor(tuiManager *TUI, ed *core.Editor, v View) {
	screen := tuiManager.GetScreen()
	if sx, sy, ok := ScreenAt(ed, v, ed.GetCursor()); ok {
		screen.ShowCursor(sx, sy)
		return
	}
	screen.HideCursor()
}
